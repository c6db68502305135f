package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/sys/cpu"

	"github.com/agbru/fastmath/internal/config"
	"github.com/agbru/fastmath/internal/orchestration"
	"github.com/agbru/fastmath/internal/sysmon"
	"github.com/agbru/fastmath/internal/ui"
)

// fusedMultiplyAdd reports whether the compiler may fuse a*b+c on this
// platform. The arithmetic kernel blocks fusion with explicit conversions, so
// this is shown for information only.
func fusedMultiplyAdd() string {
	switch runtime.GOARCH {
	case "amd64":
		if cpu.X86.HasFMA {
			return "available, not fused by the compiler"
		}
		return "unavailable"
	case "arm64", "ppc64le", "ppc64", "s390x", "riscv64", "loong64":
		return "fused by the compiler, blocked in the kernel"
	default:
		return "not used"
	}
}

// PrintEnvironment displays the processor count, Go version, FMA status and
// host memory.
func PrintEnvironment(out io.Writer) {
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s, %s/%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(),
		ui.ColorCyan(), runtime.Version(), ui.ColorReset(),
		runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(out, "FMA: %s%s%s.\n", ui.ColorCyan(), fusedMultiplyAdd(), ui.ColorReset())

	host := sysmon.Sample()
	if host.MemTotal > 0 {
		model := host.CPUModel
		if model == "" {
			model = "unknown CPU"
		}
		fmt.Fprintf(out, "Host: %s, %s%s%s memory (%.0f%% in use).\n", model,
			ui.ColorCyan(), humanize.IBytes(host.MemTotal), ui.ColorReset(), host.MemPercent)
	}
}

// PrintTablesConfig displays the configuration of a generation run.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintTablesConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	kinds := make([]string, len(cfg.Kinds))
	for i, k := range cfg.Kinds {
		kinds[i] = string(k)
	}
	fmt.Fprintf(out, "Generating tables %s%s%s (sine length %d) with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), strings.Join(kinds, ", "), ui.ColorReset(), cfg.SineLen,
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	PrintEnvironment(out)
}

// PrintExecutionConfig displays the configuration of a rank query run.
//
// Parameters:
//   - cfg: The application configuration.
//   - n: The number of values loaded.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, n int, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	queries := len(cfg.Ks)
	what := "ranks"
	if cfg.Mode == config.ModePercentile {
		queries = len(cfg.Ps)
		what = "quantiles (" + cfg.Estimation + ")"
	}
	fmt.Fprintf(out, "Answering %s%d%s %s over %s%s%s values with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), queries, ui.ColorReset(), what,
		ui.ColorMagenta(), humanize.Comma(int64(n)), ui.ColorReset(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Pivot cache: %s%d%s levels.\n", ui.ColorCyan(), cfg.CacheLevels, ui.ColorReset())
	PrintEnvironment(out)
}

// PrintExecutionMode displays whether one strategy runs or several are
// compared.
func PrintExecutionMode(jobs []orchestration.Job, out io.Writer) {
	var modeDesc string
	if len(jobs) > 1 {
		modeDesc = fmt.Sprintf("Parallel comparison of %d pivot strategies", len(jobs))
	} else if len(jobs) == 1 {
		modeDesc = fmt.Sprintf("Single selection with the %s%s%s pivot strategy",
			ui.ColorGreen(), jobs[0].Name, ui.ColorReset())
	} else {
		modeDesc = "No pivot strategy selected"
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
