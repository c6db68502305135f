// Package orchestration runs rank queries concurrently, one job per pivot
// strategy, and compares their answers. It decouples the selection work from
// presentation via the ProgressReporter and ResultPresenter interfaces.
package orchestration
