package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/fastmath/internal/format"
	"github.com/agbru/fastmath/internal/selection"
	"github.com/agbru/fastmath/internal/stats"
	"github.com/agbru/fastmath/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// DefaultStrategy is the pivot strategy the session starts with.
	DefaultStrategy string
	// CacheLevels is the depth of the pivot heap kept across queries.
	CacheLevels int
	// Estimation is the percentile estimation type.
	Estimation stats.EstimationType
}

// REPL is an interactive rank query session over one data set. Queries share
// a single work array and pivot cache, so later queries reuse the
// partitioning done by earlier ones.
type REPL struct {
	config   REPLConfig
	factory  selection.StrategyFactory
	strategy string
	selector *selection.Selector
	pct      *stats.Percentile

	data   []float64
	work   []float64
	pivots []int

	in  io.Reader
	out io.Writer
}

// NewREPL creates a session over data. The data slice is copied.
//
// Parameters:
//   - factory: The source of pivot strategies.
//   - data: The values to query.
//   - config: REPL configuration.
//
// Returns:
//   - *REPL: A new REPL instance.
func NewREPL(factory selection.StrategyFactory, data []float64, config REPLConfig) *REPL {
	kept, _ := DropNaN(append([]float64(nil), data...))
	r := &REPL{
		config:  config,
		factory: factory,
		data:    kept,
		in:      os.Stdin,
		out:     os.Stdout,
	}

	name := config.DefaultStrategy
	if _, err := factory.Get(name); err != nil {
		if names := factory.List(); len(names) > 0 {
			name = names[0]
		}
	}
	r.useStrategy(name)
	r.reset()
	return r
}

// SetInput sets a custom input reader.
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer.
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start reads and processes commands until exit or EOF.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"rank> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return
		}

		if line := strings.TrimSpace(input); line != "" {
			if !r.processCommand(line) {
				return
			}
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %sRank Queries - Interactive Mode%s                      %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "Loaded %s%s%s values.\n", ui.ColorMagenta(), format.FormatCount(len(r.data)), ui.ColorReset())
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sselect <k>...%s         - k-th smallest value(s), zero-based\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %spercentile <p>...%s     - Estimate quantile(s) p in (0, 100]\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %smedian%s                - Median of the data\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstrategy <name>%s       - Change pivot strategy (%s)\n", ui.ColorYellow(), ui.ColorReset(), strings.Join(r.factory.List(), ", "))
	fmt.Fprintf(r.out, "  %sestimation <name>%s     - Change estimation type\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sreset%s                 - Restore the data order and clear the pivot cache\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s                - Display current configuration\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s                  - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s           - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// processCommand executes one command line. It returns false on exit.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "select", "s":
		r.cmdSelect(args)
	case "percentile", "p":
		r.cmdPercentile(args)
	case "median", "m":
		r.cmdPercentile([]string{"50"})
	case "strategy", "st":
		r.cmdStrategy(args)
	case "estimation", "e":
		r.cmdEstimation(args)
	case "reset":
		r.reset()
		fmt.Fprintf(r.out, "Data order restored, pivot cache cleared.\n")
	case "status":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		if _, err := strconv.Atoi(cmd); err == nil {
			r.cmdSelect(parts)
		} else {
			fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
			fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
		}
	}

	return true
}

func (r *REPL) cmdSelect(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: select <k>...%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}

	ks := make([]int, 0, len(args))
	for _, a := range args {
		k, err := strconv.Atoi(a)
		if err != nil || k < 0 || k >= len(r.work) {
			fmt.Fprintf(r.out, "%sInvalid rank: %s (want 0 to %d)%s\n", ui.ColorRed(), a, len(r.work)-1, ui.ColorReset())
			return
		}
		ks = append(ks, k)
	}

	start := time.Now()
	values := make([]float64, len(ks))
	for i, k := range ks {
		values[i] = r.selector.Select(r.work, r.pivots, k)
	}
	elapsed := time.Since(start)

	for i, k := range ks {
		fmt.Fprintf(r.out, "  k=%s%d%s: %s%s%s\n", ui.ColorCyan(), k, ui.ColorReset(), ui.ColorGreen(), FormatValue(values[i]), ui.ColorReset())
	}
	fmt.Fprintf(r.out, "  %s(%s, %d cached pivots)%s\n", ui.ColorGrey(), format.FormatExecutionDuration(elapsed),
		selection.CachedPivots(r.pivots), ui.ColorReset())
}

func (r *REPL) cmdPercentile(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: percentile <p>...%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}

	for _, a := range args {
		p, err := strconv.ParseFloat(a, 64)
		if err != nil {
			fmt.Fprintf(r.out, "%sInvalid quantile: %s%s\n", ui.ColorRed(), a, ui.ColorReset())
			return
		}
		v, err := r.pct.Evaluate(p)
		if err != nil {
			fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return
		}
		fmt.Fprintf(r.out, "  p=%s%s%s: %s%s%s\n", ui.ColorCyan(), FormatValue(p), ui.ColorReset(), ui.ColorGreen(), FormatValue(v), ui.ColorReset())
	}
}

func (r *REPL) cmdStrategy(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: strategy <name>%s\n", ui.ColorRed(), ui.ColorReset())
		fmt.Fprintf(r.out, "Available strategies: %s\n", strings.Join(r.factory.List(), ", "))
		return
	}

	name := strings.ToLower(args[0])
	if !r.useStrategy(name) {
		fmt.Fprintf(r.out, "%sUnknown strategy: %s%s\n", ui.ColorRed(), name, ui.ColorReset())
		fmt.Fprintf(r.out, "Available strategies: %s\n", strings.Join(r.factory.List(), ", "))
		return
	}
	fmt.Fprintf(r.out, "Strategy changed to: %s%s%s\n", ui.ColorGreen(), name, ui.ColorReset())
}

func (r *REPL) cmdEstimation(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: estimation <name>%s (%s)\n", ui.ColorRed(), ui.ColorReset(), strings.Join(stats.EstimationNames(), ", "))
		return
	}
	est, err := stats.ParseEstimationType(args[0])
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	r.config.Estimation = est
	r.rebuildPercentile()
	fmt.Fprintf(r.out, "Estimation changed to: %s%s%s\n", ui.ColorGreen(), est, ui.ColorReset())
}

func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Strategy:       %s%s%s\n", ui.ColorCyan(), r.strategy, ui.ColorReset())
	fmt.Fprintf(r.out, "  Estimation:     %s%s%s\n", ui.ColorCyan(), r.config.Estimation, ui.ColorReset())
	fmt.Fprintf(r.out, "  Values:         %s%s%s\n", ui.ColorCyan(), format.FormatCount(len(r.data)), ui.ColorReset())
	fmt.Fprintf(r.out, "  Cached pivots:  %s%d%s of %d\n", ui.ColorCyan(), selection.CachedPivots(r.pivots), ui.ColorReset(), len(r.pivots))
	fmt.Fprintln(r.out)
}

// useStrategy switches the selector. The work array and pivot cache stay
// valid: they describe the array's arrangement, not how it was reached.
func (r *REPL) useStrategy(name string) bool {
	s, err := r.factory.Get(name)
	if err != nil {
		return false
	}
	r.strategy = name
	r.selector = selection.New(s)
	r.rebuildPercentile()
	return true
}

func (r *REPL) rebuildPercentile() {
	s, err := r.factory.Get(r.strategy)
	if err != nil {
		s = nil
	}
	r.pct = stats.New(r.config.Estimation, s)
	r.pct.SetData(r.data)
}

func (r *REPL) reset() {
	r.work = append(r.work[:0], r.data...)
	if r.pivots == nil {
		r.pivots = selection.NewPivotCache(r.config.CacheLevels)
	}
	selection.ResetPivotCache(r.pivots)
}
