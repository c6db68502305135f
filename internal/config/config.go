// Package config defines the command line configuration of the fastmath tool:
// flag parsing, environment variable overrides and validation.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/agbru/fastmath/internal/errors"
	"github.com/agbru/fastmath/internal/selection"
	"github.com/agbru/fastmath/internal/stats"
	"github.com/agbru/fastmath/internal/tables"
)

// EnvPrefix is the prefix of every environment variable override.
const EnvPrefix = "FASTMATH_"

// Modes the tool can run in.
const (
	ModeTables     = "tables"
	ModeSelect     = "select"
	ModePercentile = "percentile"
	ModeREPL       = "repl"
)

// StrategyAll selects every registered pivot strategy.
const StrategyAll = "all"

// Defaults.
const (
	DefaultTimeout = 1 * time.Minute
	DefaultSeed    = 42
)

// AppConfig aggregates the configuration parameters of one run.
type AppConfig struct {
	// Mode is one of ModeTables, ModeSelect, ModePercentile or ModeREPL.
	Mode string
	// Tables is the comma separated list of table families, or "all".
	Tables string
	// SineLen is the length of the sine, cosine and tangent tables.
	SineLen int
	// OutputFile receives the generated tables or the rank answers. A ".gz"
	// suffix compresses the file.
	OutputFile string
	// InputFile holds the data set, one or more numbers per line. "-" reads
	// stdin.
	InputFile string
	// Random, when positive, replaces the input with that many uniform values.
	Random int
	// Seed seeds the random data and the random pivot strategy.
	Seed uint64
	// Ranks is the comma separated list of zero-based ranks for select mode.
	Ranks string
	// Quantiles is the comma separated list of quantiles for percentile mode.
	Quantiles string
	// Estimation names the percentile estimation type.
	Estimation string
	// Strategy names the pivot strategy, a comma separated list, or "all".
	Strategy string
	// CacheLevels is the depth of the pivot heap used by select mode.
	CacheLevels int
	Timeout     time.Duration
	Quiet       bool
	Verbose     bool
	NoColor     bool
	// TUI shows the interactive dashboard instead of the spinner in select
	// mode.
	TUI bool
	// MetricsFile receives the metrics in text exposition format.
	MetricsFile string
	LogLevel    string
	// Completion names a shell to print a completion script for.
	Completion string
	Version    bool

	// Ks and Ps hold the parsed Ranks and Quantiles.
	Ks []int
	Ps []float64
	// Kinds holds the parsed Tables.
	Kinds []tables.Kind
	// Strategies holds the resolved strategy names.
	Strategies []string
}

// ParseConfig parses the command line arguments, applies environment
// overrides for the flags that were not given, and validates the result.
//
// Parameters:
//   - programName: The name used in usage messages.
//   - args: The arguments without the program name.
//   - errorWriter: Destination of usage and parse errors.
//   - availableStrategies: The registered pivot strategy names.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: flag.ErrHelp when help was requested, a ConfigError otherwise.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableStrategies []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	config := AppConfig{}
	fs.StringVar(&config.Mode, "mode", ModeTables, "Run mode: tables, select, percentile or repl.")
	fs.StringVar(&config.Tables, "tables", "all", "Table families to generate (comma separated): expint, expfrac, lnmant, sincos or all.")
	fs.IntVar(&config.SineLen, "sine-len", tables.SineTableLen, "Length of the sine, cosine and tangent tables.")
	fs.StringVar(&config.OutputFile, "output", "", "Write the output to a file (.gz to compress).")
	fs.StringVar(&config.OutputFile, "o", "", "Shorthand for --output.")
	fs.StringVar(&config.InputFile, "input", "", "Data file, numbers separated by spaces, commas or new lines (- for stdin).")
	fs.IntVar(&config.Random, "random", 0, "Generate this many uniform random values instead of reading input.")
	fs.Uint64Var(&config.Seed, "seed", DefaultSeed, "Seed of the random data and of the random pivot strategy.")
	fs.StringVar(&config.Ranks, "k", "", "Zero-based ranks to select (comma separated).")
	fs.StringVar(&config.Quantiles, "p", "50", "Quantiles in (0, 100] to estimate (comma separated).")
	fs.StringVar(&config.Estimation, "estimation", stats.Legacy.String(), "Percentile estimation type: "+strings.Join(stats.EstimationNames(), ", ")+".")
	fs.StringVar(&config.Strategy, "strategy", StrategyAll, "Pivot strategy: "+strings.Join(availableStrategies, ", ")+", a list, or all.")
	fs.IntVar(&config.CacheLevels, "cache-levels", stats.DefaultCacheLevels, "Depth of the cached pivot heap (0 disables the cache).")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum duration of the run.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print only the results.")
	fs.BoolVar(&config.Quiet, "q", false, "Shorthand for --quiet.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Print per-strategy details.")
	fs.BoolVar(&config.Verbose, "v", false, "Shorthand for --verbose.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.BoolVar(&config.TUI, "tui", false, "Follow select mode in an interactive dashboard.")
	fs.StringVar(&config.MetricsFile, "metrics-file", "", "Write run metrics in Prometheus text format to this file.")
	fs.StringVar(&config.LogLevel, "log-level", "warn", "Log level: debug, info, warn or error.")
	fs.StringVar(&config.Completion, "completion", "", "Print a completion script for bash, zsh or fish.")
	fs.BoolVar(&config.Version, "version", false, "Print the version and exit.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&config, fs)

	if config.Version || config.Completion != "" {
		return config, nil
	}
	if err := config.Validate(availableStrategies); err != nil {
		fmt.Fprintln(errorWriter, "Error:", err)
		return AppConfig{}, err
	}
	return config, nil
}

// Validate checks the configuration and fills the parsed fields (Ks, Ps,
// Kinds, Strategies).
func (c *AppConfig) Validate(availableStrategies []string) error {
	c.Mode = strings.ToLower(strings.TrimSpace(c.Mode))
	switch c.Mode {
	case ModeTables, ModeSelect, ModePercentile, ModeREPL:
	default:
		return apperrors.NewConfigError("unknown mode %q (want %s, %s, %s or %s)",
			c.Mode, ModeTables, ModeSelect, ModePercentile, ModeREPL)
	}

	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if c.Random < 0 {
		return apperrors.NewConfigError("random must not be negative, got %d", c.Random)
	}
	if c.CacheLevels < 0 || c.CacheLevels > 20 {
		return apperrors.NewConfigError("cache-levels must be in [0, 20], got %d", c.CacheLevels)
	}
	if c.TUI && c.Mode != ModeSelect {
		return apperrors.NewConfigError("-tui is only available in %s mode", ModeSelect)
	}

	switch c.Mode {
	case ModeTables:
		kinds, err := tables.ParseKinds(c.Tables)
		if err != nil {
			return apperrors.NewConfigError("%v", err)
		}
		c.Kinds = kinds
		if c.SineLen < 1 || c.SineLen > 64 {
			return apperrors.NewConfigError("sine-len must be in [1, 64], got %d", c.SineLen)
		}
		return nil

	case ModeSelect:
		ks, err := ParseIntList(c.Ranks)
		if err != nil {
			return apperrors.NewConfigError("invalid rank list: %v", err)
		}
		if len(ks) == 0 {
			return apperrors.NewConfigError("select mode needs at least one rank (-k)")
		}
		for _, k := range ks {
			if k < 0 {
				return apperrors.NewConfigError("rank must not be negative, got %d", k)
			}
		}
		c.Ks = ks
		if c.TUI && c.Quiet {
			return apperrors.NewConfigError("-tui cannot be combined with -quiet")
		}

	case ModePercentile:
		ps, err := ParseFloatList(c.Quantiles)
		if err != nil {
			return apperrors.NewConfigError("invalid quantile list: %v", err)
		}
		if len(ps) == 0 {
			return apperrors.NewConfigError("percentile mode needs at least one quantile (-p)")
		}
		for _, p := range ps {
			if !(p > 0) || p > 100 {
				return apperrors.NewConfigError("quantile %g not in (0, 100]", p)
			}
		}
		c.Ps = ps
		if _, err := stats.ParseEstimationType(c.Estimation); err != nil {
			return apperrors.NewConfigError("%v", err)
		}
	}

	if c.Random == 0 && c.InputFile == "" && c.Mode != ModeREPL {
		return apperrors.NewConfigError("%s mode needs data: use -input or -random", c.Mode)
	}

	strategies, err := resolveStrategies(c.Strategy, availableStrategies)
	if err != nil {
		return err
	}
	if c.Mode != ModeSelect && len(strategies) > 1 {
		strategies = []string{defaultStrategy(availableStrategies)}
	}
	c.Strategies = strategies
	return nil
}

func resolveStrategies(list string, available []string) ([]string, error) {
	list = strings.ToLower(strings.TrimSpace(list))
	if list == "" || list == StrategyAll {
		return slices.Clone(available), nil
	}

	var names []string
	for _, part := range strings.Split(list, ",") {
		name := strings.TrimSpace(part)
		if !slices.Contains(available, name) {
			return nil, apperrors.NewConfigError("unknown pivot strategy %q (available: %s)",
				name, strings.Join(available, ", "))
		}
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	return names, nil
}

// defaultStrategy is the strategy single-strategy modes fall back to when
// "all" was requested.
func defaultStrategy(available []string) string {
	if slices.Contains(available, selection.NameMedianOf3) {
		return selection.NameMedianOf3
	}
	if len(available) > 0 {
		return available[0]
	}
	return ""
}

// ParseIntList parses a comma separated list of integers. An empty string
// yields an empty list.
func ParseIntList(s string) ([]int, error) {
	var out []int
	for _, field := range splitList(s) {
		v, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", field)
		}
		out = append(out, v)
	}
	return out, nil
}

// ParseFloatList parses a comma separated list of numbers. An empty string
// yields an empty list.
func ParseFloatList(s string) ([]float64, error) {
	var out []float64
	for _, field := range splitList(s) {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", field)
		}
		out = append(out, v)
	}
	return out, nil
}

func splitList(s string) []string {
	var fields []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			fields = append(fields, part)
		}
	}
	return fields
}
