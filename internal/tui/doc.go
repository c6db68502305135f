// Package tui follows a select run in an interactive bubbletea dashboard:
// one progress bar per pivot strategy, the comparison table and agreed
// answers once the run ends, and a host panel sampled while it runs.
//
// The orchestration layer talks to the dashboard through the same
// ProgressReporter and ResultPresenter interfaces the command line uses;
// the bridge turns their calls into tea messages.
package tui
