package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/agbru/fastmath/internal/cli"
	"github.com/agbru/fastmath/internal/config"
	apperrors "github.com/agbru/fastmath/internal/errors"
	"github.com/agbru/fastmath/internal/logging"
	"github.com/agbru/fastmath/internal/metrics"
	"github.com/agbru/fastmath/internal/selection"
	"github.com/agbru/fastmath/internal/ui"
)

// Application represents the fastmath application instance.
type Application struct {
	Config    config.AppConfig
	Factory   selection.StrategyFactory
	Metrics   *metrics.Recorder
	Logger    logging.Logger
	ErrWriter io.Writer
	// Stdin feeds "-input -" and the REPL.
	Stdin io.Reader

	// openOutput replaces cli.CreateOutputFile when set.
	openOutput func(path string) (io.WriteCloser, error)
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom StrategyFactory for the application. Without it
// the standard strategies are used, with the random one seeded by -seed.
func WithFactory(f selection.StrategyFactory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithStdin sets the reader used for "-input -" and the REPL.
func WithStdin(r io.Reader) AppOption {
	return func(a *Application) { a.Stdin = r }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, Stdin: os.Stdin}
	for _, opt := range opts {
		opt(app)
	}

	customFactory := app.Factory != nil
	if !customFactory {
		app.Factory = selection.NewDefaultFactory(config.DefaultSeed)
	}

	programName := "fastmath"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Factory.List())
	if err != nil {
		return nil, err
	}
	if !customFactory {
		app.Factory = selection.NewDefaultFactory(cfg.Seed)
	}

	app.Config = cfg
	app.Metrics = metrics.NewRecorder()
	app.Logger = logging.NewLogger(errWriter, "fastmath")
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Version {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	lvl, err := logging.ParseLevel(a.Config.LogLevel)
	if err != nil {
		a.Logger.Error("invalid log level, using info", err)
	}
	logging.SetGlobalLevel(lvl)
	ui.InitTheme(a.Config.NoColor)

	var code int
	switch a.Config.Mode {
	case config.ModeTables:
		code = a.runTables(ctx, out)
	case config.ModeSelect:
		code = a.runSelect(ctx, out)
	case config.ModePercentile:
		code = a.runPercentile(ctx, out)
	case config.ModeREPL:
		code = a.runREPL(out)
	default:
		code = apperrors.HandleError(apperrors.NewConfigError("unknown mode %q", a.Config.Mode), 0, out, cli.CLIColorProvider{})
	}

	a.writeMetrics()
	return code
}

func (a *Application) createOutput(path string) (io.WriteCloser, error) {
	if a.openOutput != nil {
		return a.openOutput(path)
	}
	return cli.CreateOutputFile(path)
}

// lifecycle bounds ctx by the configured timeout and by SIGINT/SIGTERM.
func (a *Application) lifecycle(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	return ctx, func() {
		stopSignals()
		cancelTimeout()
	}
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// writeMetrics flushes the recorder to the textfile, when one is configured.
// A failure is logged; it does not change the exit code.
func (a *Application) writeMetrics() {
	if a.Config.MetricsFile == "" {
		return
	}
	if err := a.Metrics.WriteTextfile(a.Config.MetricsFile); err != nil {
		a.Logger.Error("failed to write metrics", err, logging.String("path", a.Config.MetricsFile))
		return
	}
	a.Logger.Debug("metrics written", logging.String("path", a.Config.MetricsFile))
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
