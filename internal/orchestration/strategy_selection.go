package orchestration

import "github.com/agbru/fastmath/internal/selection"

// GetJobsToRun builds one job per strategy name, in the given order. Unknown
// names are skipped.
//
// Parameters:
//   - names: The strategy names to run.
//   - factory: The factory the strategies come from.
//
// Returns:
//   - []Job: One job per known name.
func GetJobsToRun(names []string, factory selection.StrategyFactory) []Job {
	jobs := make([]Job, 0, len(names))
	for _, name := range names {
		if s, err := factory.Get(name); err == nil {
			jobs = append(jobs, Job{Name: name, Strategy: s})
		}
	}
	return jobs
}
