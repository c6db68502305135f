package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/fastmath/internal/cli"
	apperrors "github.com/agbru/fastmath/internal/errors"
	"github.com/agbru/fastmath/internal/logging"
	"github.com/agbru/fastmath/internal/metrics"
	"github.com/agbru/fastmath/internal/orchestration"
	"github.com/agbru/fastmath/internal/stats"
	"github.com/agbru/fastmath/internal/tables"
	"github.com/agbru/fastmath/internal/tui"
	"github.com/agbru/fastmath/internal/ui"
)

var tracer = otel.Tracer("github.com/agbru/fastmath/internal/app")

// runTables generates the interpolation tables to the output file, or to out
// when no file is configured.
func (a *Application) runTables(ctx context.Context, out io.Writer) int {
	ctx, stop := a.lifecycle(ctx)
	defer stop()

	dest := out
	info := out
	var file io.WriteCloser
	if a.Config.OutputFile != "" {
		f, err := a.createOutput(a.Config.OutputFile)
		if err != nil {
			return a.handle(err, 0, out)
		}
		file = f
		defer func() {
			if file != nil {
				_ = file.Close()
			}
		}()
		dest = f
	} else {
		// The generated source goes to out; keep it free of anything else.
		info = io.Discard
	}

	if !a.Config.Quiet {
		cli.PrintTablesConfig(a.Config, info)
	}

	ctx, span := tracer.Start(ctx, "tables.Generate", trace.WithAttributes(
		attribute.Int("sine_len", a.Config.SineLen),
		attribute.Int("families", len(a.Config.Kinds)),
	))
	start := time.Now()
	emitted, err := tables.Generate(ctx, dest, tables.Options{Kinds: a.Config.Kinds, SineLen: a.Config.SineLen})
	elapsed := time.Since(start)
	span.SetAttributes(attribute.Int("tables", len(emitted)))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()

	for _, e := range emitted {
		a.Metrics.OnTable(e.Name, e.Entries)
		a.Logger.Debug("table written", logging.String("table", e.Name), logging.Int("entries", e.Entries))
	}
	a.Metrics.OnGenerate(elapsed, err)
	if err != nil {
		return a.handle(err, elapsed, out)
	}

	// Closing flushes the gzip trailer; a file that failed to close is
	// incomplete.
	if file != nil {
		err := file.Close()
		file = nil
		if err != nil {
			a.Logger.Error("failed to close output", err, logging.String("path", a.Config.OutputFile))
			return a.handle(apperrors.WrapError(err, "writing %s", a.Config.OutputFile), elapsed, out)
		}
	}

	if !a.Config.Quiet && a.Config.OutputFile != "" {
		fmt.Fprintf(info, "\n%s✓ %d tables written to: %s%s%s in %s\n",
			ui.ColorGreen(), len(emitted), ui.ColorCyan(), a.Config.OutputFile, ui.ColorReset(), elapsed)
	}
	return apperrors.ExitSuccess
}

// loadData returns the data set of the run: -random values when requested,
// the -input file otherwise. NaN entries are dropped, so ranks address the
// ordered values only.
func (a *Application) loadData() ([]float64, error) {
	if a.Config.Random > 0 {
		return cli.RandomData(a.Config.Random, a.Config.Seed), nil
	}
	if a.Config.InputFile == "" {
		return nil, nil
	}
	data, err := cli.LoadData(a.Config.InputFile, a.Stdin)
	if err != nil {
		return nil, apperrors.WrapError(err, "loading %s", a.Config.InputFile)
	}
	data, dropped := cli.DropNaN(data)
	if dropped > 0 {
		a.Logger.Info("ignoring NaN input values",
			logging.Int("dropped", dropped), logging.Int("kept", len(data)))
	}
	return data, nil
}

// runSelect answers the configured ranks with every selected strategy and
// cross-checks the answers.
func (a *Application) runSelect(ctx context.Context, out io.Writer) int {
	data, err := a.loadData()
	if err != nil {
		return a.handle(err, 0, out)
	}
	if err := orchestration.ValidateRanks(a.Config.Ks, len(data)); err != nil {
		return a.handle(apperrors.NewConfigError("%v", err), 0, out)
	}
	a.Logger.Debug("data loaded", logging.Int("values", len(data)))

	ctx, stop := a.lifecycle(ctx)
	defer stop()

	jobs := orchestration.GetJobsToRun(a.Config.Strategies, a.Factory)
	opts := orchestration.RunOptions{CacheLevels: a.Config.CacheLevels, Observer: a.Metrics}

	if a.Config.TUI {
		return a.runDashboard(ctx, jobs, data, opts, out)
	}

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, len(data), out)
		cli.PrintExecutionMode(jobs, out)
	}

	var reporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if a.Config.Quiet {
		reporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	}

	before := metrics.ReadRuntimeStats()
	results := orchestration.ExecuteSelections(ctx, jobs, data, a.Config.Ks, opts, reporter, progressOut)
	if a.Config.Verbose && !a.Config.Quiet {
		cli.DisplayMemoryStats(metrics.ReadRuntimeStats().Since(before), out)
	}

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
	}
	return a.analyzeResultsWithOutput(results, len(data), outputCfg, out)
}

func (a *Application) analyzeResultsWithOutput(results []orchestration.SelectionResult, n int, outputCfg cli.OutputConfig, out io.Writer) int {
	var exitCode int
	if outputCfg.Quiet {
		exitCode = a.analyzeQuiet(results, out)
	} else {
		presOpts := orchestration.PresentationOptions{Ks: a.Config.Ks, Verbose: a.Config.Verbose}
		exitCode = orchestration.AnalyzeComparisonResults(results, presOpts, cli.CLIResultPresenter{}, out)
	}
	if exitCode == apperrors.ExitErrorMismatch {
		a.Metrics.OnMismatch()
	}

	if exitCode != apperrors.ExitSuccess {
		return exitCode
	}
	return a.saveBest(results, n, outputCfg, out)
}

// runDashboard follows the run in the interactive dashboard. The dashboard
// owns the terminal until it quits; the saved result is reported afterwards.
func (a *Application) runDashboard(ctx context.Context, jobs []orchestration.Job, data []float64, opts orchestration.RunOptions, out io.Writer) int {
	exitCode, results, err := tui.Run(ctx, tui.Session{
		Jobs:    jobs,
		Data:    data,
		Ks:      a.Config.Ks,
		Options: opts,
		Version: Version,
	})
	if err != nil {
		a.Logger.Error("dashboard failed", err)
		return exitCode
	}
	switch exitCode {
	case apperrors.ExitErrorMismatch:
		a.Metrics.OnMismatch()
		return exitCode
	case apperrors.ExitSuccess:
		outputCfg := cli.OutputConfig{OutputFile: a.Config.OutputFile, Verbose: a.Config.Verbose}
		return a.saveBest(results, len(data), outputCfg, out)
	default:
		return exitCode
	}
}

// saveBest writes the fastest successful result to the output file, when
// one is configured.
func (a *Application) saveBest(results []orchestration.SelectionResult, n int, outputCfg cli.OutputConfig, out io.Writer) int {
	best := findBestResult(results)
	if best == nil || outputCfg.OutputFile == "" {
		return apperrors.ExitSuccess
	}
	if err := cli.WriteSelectionResultToFile(*best, a.Config.Ks, n, outputCfg); err != nil {
		a.Logger.Error("failed to save result", err, logging.String("path", outputCfg.OutputFile))
		return apperrors.ExitErrorGeneric
	}
	if !outputCfg.Quiet {
		fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
			ui.ColorGreen(), ui.ColorCyan(), outputCfg.OutputFile, ui.ColorReset())
	}
	return apperrors.ExitSuccess
}

// analyzeQuiet prints the bare answers after the same agreement check the
// comparison table performs. Mismatches and failures go to ErrWriter.
func (a *Application) analyzeQuiet(results []orchestration.SelectionResult, out io.Writer) int {
	best := findBestResult(results)
	if best == nil {
		var firstErr error
		for _, r := range results {
			if r.Err != nil {
				firstErr = r.Err
				break
			}
		}
		return a.handle(firstErr, 0, a.ErrWriter)
	}
	for _, r := range results {
		if r.Err == nil && !orchestration.SameValues(r.Values, best.Values) {
			fmt.Fprintf(a.ErrWriter, "pivot strategies %s and %s disagree\n", best.Name, r.Name)
			return apperrors.ExitErrorMismatch
		}
	}
	cli.DisplayQuietResult(out, best.Values)
	return apperrors.ExitSuccess
}

func findBestResult(results []orchestration.SelectionResult) *orchestration.SelectionResult {
	var best *orchestration.SelectionResult
	for i := range results {
		if results[i].Err == nil {
			if best == nil || results[i].Duration < best.Duration {
				best = &results[i]
			}
		}
	}
	return best
}

// runPercentile estimates the configured quantiles with one strategy.
func (a *Application) runPercentile(ctx context.Context, out io.Writer) int {
	data, err := a.loadData()
	if err != nil {
		return a.handle(err, 0, out)
	}

	est, err := stats.ParseEstimationType(a.Config.Estimation)
	if err != nil {
		return a.handle(apperrors.NewConfigError("%v", err), 0, out)
	}
	strategy, err := a.Factory.Get(a.Config.Strategies[0])
	if err != nil {
		return a.handle(apperrors.NewConfigError("%v", err), 0, out)
	}

	ctx, stop := a.lifecycle(ctx)
	defer stop()

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, len(data), out)
	}

	pct := stats.New(est, strategy)
	pct.SetData(data)

	start := time.Now()
	values := make([]float64, len(a.Config.Ps))
	for i, p := range a.Config.Ps {
		if err := ctx.Err(); err != nil {
			return a.handle(err, time.Since(start), out)
		}
		if values[i], err = pct.Evaluate(p); err != nil {
			return a.handle(err, time.Since(start), out)
		}
	}
	elapsed := time.Since(start)
	a.Metrics.OnSelection(a.Config.Strategies[0], len(values), elapsed, nil)
	a.Logger.Debug("percentiles estimated",
		logging.Int("quantiles", len(values)),
		logging.Int("cached_pivots", pct.CachedPivots()),
		logging.Duration("duration", elapsed))

	cli.DisplayPercentiles(out, a.Config.Ps, values, est.String(), elapsed, a.Config.Quiet)

	outputCfg := cli.OutputConfig{OutputFile: a.Config.OutputFile, Quiet: a.Config.Quiet}
	if err := cli.WritePercentilesToFile(a.Config.Ps, values, est.String(), pct.Len(), outputCfg); err != nil {
		a.Logger.Error("failed to save result", err, logging.String("path", outputCfg.OutputFile))
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runREPL starts an interactive session over the data set.
func (a *Application) runREPL(out io.Writer) int {
	data, err := a.loadData()
	if err != nil {
		return a.handle(err, 0, out)
	}
	est, err := stats.ParseEstimationType(a.Config.Estimation)
	if err != nil {
		return a.handle(apperrors.NewConfigError("%v", err), 0, out)
	}

	name := ""
	if len(a.Config.Strategies) > 0 {
		name = a.Config.Strategies[0]
	}
	repl := cli.NewREPL(a.Factory, data, cli.REPLConfig{
		DefaultStrategy: name,
		CacheLevels:     a.Config.CacheLevels,
		Estimation:      est,
	})
	repl.SetInput(a.Stdin)
	repl.SetOutput(out)
	repl.Start()
	return apperrors.ExitSuccess
}

func (a *Application) handle(err error, d time.Duration, out io.Writer) int {
	return apperrors.HandleError(err, d, out, cli.CLIColorProvider{})
}
