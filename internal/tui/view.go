package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/agbru/fastmath/internal/cli"
	apperrors "github.com/agbru/fastmath/internal/errors"
	"github.com/agbru/fastmath/internal/format"
)

const (
	barWidth      = 24
	maxAnswerRows = 8
)

// View renders the dashboard.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}
	sections := []string{
		m.viewHeader(),
		m.viewStrategies(),
	}
	if m.done {
		sections = append(sections, m.viewOutcome())
	}
	sections = append(sections, m.viewHost(), m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewHeader() string {
	elapsed := m.elapsed
	if !m.done {
		elapsed = time.Since(m.start)
	}
	var state string
	switch {
	case m.done && m.exitCode == apperrors.ExitSuccess:
		state = doneStyle.Render("DONE")
	case m.done:
		state = failedStyle.Render("FAILED")
	case m.paused:
		state = pausedStyle.Render("PAUSED")
	default:
		state = runningStyle.Render("RUNNING")
	}
	title := titleStyle.Render("fastmath select")
	if m.session.Version != "" {
		title += " " + dimStyle.Render(m.session.Version)
	}
	info := dimStyle.Render(fmt.Sprintf("%s values, %d ranks, elapsed %s",
		format.FormatCount(len(m.session.Data)), len(m.session.Ks), format.FormatExecutionDuration(elapsed)))
	return fmt.Sprintf("%s  %s  %s", title, info, state)
}

// viewStrategies renders one progress line per strategy, then the overall
// progress. Once results arrive the lines carry the comparison table columns.
func (m Model) viewStrategies() string {
	nameWidth := len("Strategy")
	for _, r := range m.rows {
		nameWidth = max(nameWidth, len(r.name))
	}

	var b strings.Builder
	b.WriteString(panelTitle.Render("Strategies"))
	b.WriteByte('\n')
	fmt.Fprintf(&b, "%-*s  %-*s  %6s  %-10s  %8s  %s\n",
		nameWidth, "Strategy", barWidth, "Progress", "", "Duration", "Pivots", "Status")
	for _, r := range m.rows {
		duration := ""
		cached := ""
		if r.status == statusDone || r.status == statusFailed {
			duration = format.FormatExecutionDuration(r.duration)
			cached = fmt.Sprint(r.cached)
		}
		fmt.Fprintf(&b, "%-*s  %s  %5.1f%%  %-10s  %8s  %s\n",
			nameWidth, r.name,
			barStyle.Render(format.ProgressBar(r.progress, barWidth)),
			r.progress*100, duration, cached, statusText(r))
	}
	fmt.Fprintf(&b, "%-*s  %s  %5.1f%%  ETA: %s",
		nameWidth, "overall",
		barStyle.Render(format.ProgressBar(m.average, barWidth)),
		m.average*100, format.FormatETA(m.eta))
	return panelStyle.Render(b.String())
}

func statusText(r jobRow) string {
	switch r.status {
	case statusRunning:
		return runningStyle.Render("running")
	case statusDone:
		return doneStyle.Render("✓ done")
	case statusFailed:
		return failedStyle.Render("✗ " + r.err.Error())
	default:
		return dimStyle.Render("waiting")
	}
}

// viewOutcome renders the global status and the agreed answers.
func (m Model) viewOutcome() string {
	var b strings.Builder
	b.WriteString(panelTitle.Render("Result"))
	b.WriteByte('\n')
	switch m.exitCode {
	case apperrors.ExitSuccess:
		b.WriteString(doneStyle.Render("Global Status: Success. All strategies agree."))
	case apperrors.ExitErrorMismatch:
		b.WriteString(failedStyle.Render("Global Status: CRITICAL ERROR! Pivot strategies disagree on at least one rank."))
	case apperrors.ExitErrorTimeout:
		b.WriteString(failedStyle.Render("Global Status: Timeout."))
	case apperrors.ExitErrorCanceled:
		b.WriteString(runningStyle.Render("Global Status: Canceled."))
	default:
		status := "Global Status: Failure."
		if m.runErr != nil {
			status += " " + m.runErr.Error()
		}
		b.WriteString(failedStyle.Render(status))
	}

	if len(m.answers) > 0 {
		end := min(m.offset+maxAnswerRows, len(m.answers))
		for i := m.offset; i < end; i++ {
			fmt.Fprintf(&b, "\n%s %s",
				answerKStyle.Render(fmt.Sprintf("k=%d:", m.session.Ks[i])),
				answerValStyle.Render(cli.FormatValue(m.answers[i])))
		}
		if len(m.answers) > maxAnswerRows {
			fmt.Fprintf(&b, "\n%s", dimStyle.Render(fmt.Sprintf("ranks %d-%d of %d", m.offset+1, end, len(m.answers))))
		}
	}
	return panelStyle.Render(b.String())
}

func (m Model) viewHost() string {
	rt := m.host.runtime
	cpu := fmt.Sprintf("CPU %s %5.1f%%", sparkStyle.Render(RenderSparkline(m.host.cpu.Slice())), m.host.cpu.Last())
	mem := fmt.Sprintf("Mem %5.1f%%", m.host.mem)
	heap := fmt.Sprintf("Heap %s  GC %d", humanize.IBytes(rt.HeapAlloc), rt.NumGC)
	return panelStyle.Render(panelTitle.Render("Host") + "\n" + cpu + "   " + mem + "   " + heap)
}
