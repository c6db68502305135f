package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation. All
// generators read flagRegistry, so a new flag only needs an entry there.
type FlagCompletion struct {
	Long       string   // long flag name without "--"
	Short      string   // short flag without "-"
	Help       string   // description text
	Values     []string // suggested values (nil = boolean or free value)
	ValueName  string   // label for the value in zsh
	IsFile     bool     // the flag takes a file path
	IsStrategy bool     // values come from the strategy list
}

// flagRegistry lists every CLI flag offered for completion.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Help: "Show version information"},
	{Long: "mode", Help: "Run mode", Values: []string{"tables", "select", "percentile", "repl"}, ValueName: "mode"},
	{Long: "tables", Help: "Table families to generate", Values: []string{"all", "expint", "expfrac", "lnmant", "sincos"}, ValueName: "tables"},
	{Long: "sine-len", Help: "Length of the sine tables", Values: []string{"14"}, ValueName: "length"},
	{Long: "output", Short: "o", Help: "Output file path", IsFile: true, ValueName: "file"},
	{Long: "input", Help: "Data file", IsFile: true, ValueName: "file"},
	{Long: "random", Help: "Number of random values", ValueName: "count"},
	{Long: "seed", Help: "Random seed", ValueName: "seed"},
	{Short: "k", Help: "Ranks to select", ValueName: "ranks"},
	{Short: "p", Help: "Quantiles to estimate", ValueName: "quantiles"},
	{Long: "estimation", Help: "Percentile estimation type", Values: []string{"legacy", "r1", "r2", "r3", "r4", "r5", "r6", "r7", "r8", "r9"}, ValueName: "type"},
	{Long: "strategy", Help: "Pivot strategy", IsStrategy: true, ValueName: "strategy"},
	{Long: "cache-levels", Help: "Depth of the pivot cache", Values: []string{"0", "5", "10", "15", "20"}, ValueName: "levels"},
	{Long: "timeout", Help: "Maximum execution time", Values: []string{"10s", "1m", "5m"}, ValueName: "duration"},
	{Long: "quiet", Short: "q", Help: "Quiet mode for scripts"},
	{Long: "verbose", Short: "v", Help: "Show every answer"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "tui", Help: "Interactive dashboard for select mode"},
	{Long: "metrics-file", Help: "Prometheus textfile path", IsFile: true, ValueName: "file"},
	{Long: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error"}, ValueName: "level"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish"}, ValueName: "shell"},
}

// GenerateCompletion writes a completion script for shell.
//
// Parameters:
//   - out: The writer to output the completion script.
//   - shell: "bash", "zsh" or "fish".
//   - strategies: The available pivot strategy names.
//
// Returns:
//   - error: An error if the shell is not supported or the write fails.
func GenerateCompletion(out io.Writer, shell string, strategies []string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out, strategies)
	case "zsh":
		return generateZshCompletion(out, strategies)
	case "fish":
		return generateFishCompletion(out, strategies)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish)", shell)
	}
}

func flagNames(f FlagCompletion) []string {
	var names []string
	if f.Long != "" {
		names = append(names, "--"+f.Long)
	}
	if f.Short != "" {
		names = append(names, "-"+f.Short)
	}
	return names
}

func generateBashCompletion(out io.Writer, strategies []string) error {
	var opts []string
	var cases strings.Builder
	for _, f := range flagRegistry {
		names := flagNames(f)
		opts = append(opts, names...)

		var body string
		switch {
		case f.IsStrategy:
			body = `COMPREPLY=( $(compgen -W "${strategies}" -- "${cur}") )`
		case f.IsFile:
			body = `COMPREPLY=( $(compgen -f -- "${cur}") )`
		case len(f.Values) > 0:
			body = fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " "))
		default:
			continue
		}
		fmt.Fprintf(&cases, "        %s)\n            %s\n            return 0\n            ;;\n", strings.Join(names, "|"), body)
	}

	script := fmt.Sprintf(`# Bash completion script for fastmath
# Add this to your ~/.bashrc or ~/.bash_completion

_fastmath_completions() {
    local cur prev opts strategies
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="%s"
    strategies="%s all"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _fastmath_completions fastmath
`, strings.Join(opts, " "), strings.Join(strategies, " "), cases.String())

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion bash generation failed: %w", err)
	}
	return nil
}

func generateZshCompletion(out io.Writer, strategies []string) error {
	var args []string
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}

	script := fmt.Sprintf(`#compdef fastmath

# Zsh completion script for fastmath
# Add this to your ~/.zshrc or place in $fpath

_fastmath() {
    local -a strategies
    strategies=(%s all)

    _arguments -s \
%s
}

_fastmath "$@"
`, strings.Join(strategies, " "), strings.Join(args, " \\\n"))

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion zsh generation failed: %w", err)
	}
	return nil
}

// zshArgEntry formats one flag as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	valueSuffix := ""
	switch {
	case f.IsFile:
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case f.IsStrategy:
		valueSuffix = fmt.Sprintf(":%s:($strategies)", f.ValueName)
	case len(f.Values) > 0:
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Long != "" && f.Short != "" {
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, f.Help, valueSuffix)
	}
	if f.Long != "" {
		return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, valueSuffix)
	}
	return fmt.Sprintf("        '-%s[%s]%s'", f.Short, f.Help, valueSuffix)
}

func generateFishCompletion(out io.Writer, strategies []string) error {
	lines := []string{
		"# Fish completion script for fastmath",
		"# Add this to ~/.config/fish/completions/fastmath.fish",
		"",
		"# Disable file completion by default",
		"complete -c fastmath -f",
		"",
	}
	for _, f := range flagRegistry {
		lines = append(lines, fishCompleteLine(f, strings.Join(strategies, " ")))
	}
	lines = append(lines, "")

	if _, err := fmt.Fprint(out, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("completion fish generation failed: %w", err)
	}
	return nil
}

// fishCompleteLine formats one flag as a fish complete command. Go's flag
// package reads single-dash long flags, so fish offers them with -o.
func fishCompleteLine(f FlagCompletion, strategyList string) string {
	parts := []string{"complete -c fastmath"}

	if f.Short != "" {
		parts = append(parts, "-s "+f.Short)
	}
	if f.Long != "" {
		parts = append(parts, "-l "+f.Long)
	}
	parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))

	switch {
	case f.IsFile:
		parts = append(parts, "-rF")
	case f.IsStrategy:
		parts = append(parts, fmt.Sprintf("-xa '%s all'", strategyList))
	case len(f.Values) > 0:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	case f.ValueName != "":
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}
