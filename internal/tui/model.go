package tui

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/fastmath/internal/errors"
	"github.com/agbru/fastmath/internal/metrics"
	"github.com/agbru/fastmath/internal/orchestration"
	"github.com/agbru/fastmath/internal/sysmon"
)

const (
	tickInterval = 500 * time.Millisecond
	cpuHistory   = 40
)

// Session is what a dashboard runs: the jobs and their shared inputs.
type Session struct {
	Jobs    []orchestration.Job
	Data    []float64
	Ks      []int
	Options orchestration.RunOptions
	Version string
}

type jobStatus int

const (
	statusPending jobStatus = iota
	statusRunning
	statusDone
	statusFailed
)

// jobRow is the dashboard line of one strategy.
type jobRow struct {
	name     string
	progress float64
	status   jobStatus
	duration time.Duration
	cached   int
	err      error
}

// hostPanel holds the latest host and runtime sample.
type hostPanel struct {
	cpu     *RingBuffer
	mem     float64
	runtime metrics.RuntimeStats
}

// Model is the bubbletea model of the select dashboard.
type Model struct {
	session Session
	rows    []jobRow
	average float64
	eta     time.Duration

	results []orchestration.SelectionResult
	answers []float64
	runErr  error
	offset  int

	host hostPanel
	keys KeyMap
	help help.Model

	width, height int
	start         time.Time
	elapsed       time.Duration
	paused        bool
	done          bool
	exitCode      int

	generation uint64
	parentCtx  context.Context
	ctx        context.Context
	cancel     context.CancelFunc
	ref        *programRef
}

// NewModel creates the dashboard of one session. The run starts with Init.
func NewModel(parentCtx context.Context, s Session) Model {
	ctx, cancel := context.WithCancel(parentCtx)
	return Model{
		session:   s,
		rows:      newRows(s.Jobs),
		host:      hostPanel{cpu: NewRingBuffer(cpuHistory)},
		keys:      DefaultKeyMap(),
		help:      help.New(),
		start:     time.Now(),
		exitCode:  apperrors.ExitSuccess,
		parentCtx: parentCtx,
		ctx:       ctx,
		cancel:    cancel,
		ref:       &programRef{},
	}
}

func newRows(jobs []orchestration.Job) []jobRow {
	rows := make([]jobRow, len(jobs))
	for i, j := range jobs {
		rows[i] = jobRow{name: j.Name}
	}
	return rows
}

// ExitCode returns the exit code of the session so far.
func (m Model) ExitCode() int { return m.exitCode }

// Results returns the results of the last completed run, sorted as the
// comparison table shows them. It is nil until a run completes.
func (m Model) Results() []orchestration.SelectionResult { return m.results }

// Init starts the run, the host sampling and the context watcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		sampleHostCmd(),
		startSelectionCmd(m.ref, m.ctx, m.session, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

// Update handles all incoming messages. Messages of an earlier generation
// belong to a run that was restarted and are dropped.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case ProgressMsg:
		if msg.Generation != m.generation || m.paused {
			return m, nil
		}
		if msg.JobIndex >= 0 && msg.JobIndex < len(m.rows) {
			row := &m.rows[msg.JobIndex]
			row.progress = msg.Value
			if row.status == statusPending {
				row.status = statusRunning
			}
		}
		m.average = msg.AverageProgress
		m.eta = msg.ETA
		return m, nil

	case ProgressDoneMsg:
		return m, nil

	case ComparisonResultsMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.applyResults(msg.Results)
		return m, nil

	case FinalResultMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.answers = msg.Result.Values
		return m, nil

	case ErrorMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.runErr = msg.Err
		return m, nil

	case RunCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.finish(msg.ExitCode)
		m.results = msg.Results
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation || m.done {
			return m, nil
		}
		code := apperrors.ExitErrorCanceled
		if errors.Is(msg.Err, context.DeadlineExceeded) {
			code = apperrors.ExitErrorTimeout
		}
		m.runErr = msg.Err
		m.finish(code)
		return m, tea.Quit

	case TickMsg:
		if m.done {
			return m, nil
		}
		if m.paused {
			return m, tickCmd()
		}
		return m, tea.Batch(sampleHostCmd(), tickCmd())

	case HostStatsMsg:
		m.host.cpu.Push(msg.CPUPercent)
		m.host.mem = msg.MemPercent
		m.host.runtime = msg.Runtime
		return m, nil
	}

	return m, nil
}

// applyResults fills the rows from the finished jobs.
func (m *Model) applyResults(results []orchestration.SelectionResult) {
	for _, r := range results {
		for i := range m.rows {
			if m.rows[i].name != r.Name {
				continue
			}
			row := &m.rows[i]
			row.duration = r.Duration
			row.cached = r.CachedPivots
			row.err = r.Err
			if r.Err != nil {
				row.status = statusFailed
			} else {
				row.status = statusDone
				row.progress = 1
			}
		}
	}
}

func (m *Model) finish(code int) {
	m.done = true
	m.exitCode = code
	m.elapsed = time.Since(m.start)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if !m.done {
			m.exitCode = apperrors.ExitErrorCanceled
		}
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
		return m, nil

	case key.Matches(msg, m.keys.Restart):
		m.cancel()
		wasDone := m.done

		m.generation++
		m.ctx, m.cancel = context.WithCancel(m.parentCtx)
		m.rows = newRows(m.session.Jobs)
		m.average, m.eta = 0, 0
		m.results, m.answers, m.runErr = nil, nil, nil
		m.offset = 0
		m.start = time.Now()
		m.elapsed = 0
		m.paused = false
		m.done = false
		m.exitCode = apperrors.ExitSuccess

		cmds := []tea.Cmd{
			startSelectionCmd(m.ref, m.ctx, m.session, m.generation),
			watchContextCmd(m.ctx, m.generation),
		}
		// The tick loop stops once a run is done.
		if wasDone {
			cmds = append(cmds, tickCmd())
		}
		return m, tea.Batch(cmds...)

	case key.Matches(msg, m.keys.Up):
		if m.offset > 0 {
			m.offset--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.offset < len(m.answers)-maxAnswerRows {
			m.offset++
		}
		return m, nil
	}

	return m, nil
}

// Run shows the dashboard until the user quits or the context ends. It
// returns the exit code and the results of the last completed run.
func Run(ctx context.Context, s Session) (int, []orchestration.SelectionResult, error) {
	initStyles()

	model := NewModel(ctx, s)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	// The bridge needs the program before the first command runs.
	model.ref.SetProgram(p)

	final, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric, nil, err
	}
	if m, ok := final.(Model); ok {
		m.cancel()
		return m.exitCode, m.results, nil
	}
	return apperrors.ExitSuccess, nil, nil
}

// startSelectionCmd runs the jobs and the agreement check, reporting through
// the bridge.
func startSelectionCmd(ref sender, ctx context.Context, s Session, gen uint64) tea.Cmd {
	return func() tea.Msg {
		reporter := &ProgressReporter{ref: ref, generation: gen}
		presenter := &ResultPresenter{ref: ref, generation: gen}

		results := orchestration.ExecuteSelections(ctx, s.Jobs, s.Data, s.Ks, s.Options, reporter, io.Discard)
		code := orchestration.AnalyzeComparisonResults(results, orchestration.PresentationOptions{Ks: s.Ks}, presenter, io.Discard)
		return RunCompleteMsg{ExitCode: code, Results: results, Generation: gen}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleHostCmd reads the host and runtime counters off the UI goroutine.
func sampleHostCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return HostStatsMsg{
			CPUPercent: s.CPUPercent,
			MemPercent: s.MemPercent,
			Runtime:    metrics.ReadRuntimeStats(),
		}
	}
}

// watchContextCmd reports the end of ctx.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
