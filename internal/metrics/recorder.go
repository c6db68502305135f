package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/agbru/fastmath/internal/sysmon"
)

// Status label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Recorder collects the metrics of one run on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	tables       *prometheus.CounterVec
	tableEntries *prometheus.CounterVec
	selections   *prometheus.CounterVec
	ranks        *prometheus.CounterVec
	mismatches   prometheus.Counter
	opLatency    *prometheus.HistogramVec
}

// NewRecorder returns a recorder with every collector registered, including
// gauges reading the runtime and host memory statistics at collection time.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		tables: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fastmath_tables_generated_total",
			Help: "Tables written by the generator",
		}, []string{"table"}),
		tableEntries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fastmath_table_entries_total",
			Help: "Entries written by the generator",
		}, []string{"table"}),
		selections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fastmath_selections_total",
			Help: "Selection jobs run, by pivot strategy and status",
		}, []string{"strategy", "status"}),
		ranks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fastmath_ranks_answered_total",
			Help: "Rank queries answered, by pivot strategy",
		}, []string{"strategy"}),
		mismatches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fastmath_strategy_mismatches_total",
			Help: "Runs where pivot strategies disagreed on a rank",
		}),
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fastmath_operation_duration_seconds",
			Help:    "Duration of table generation and selection jobs",
			Buckets: prometheus.DefBuckets,
		}, []string{"op", "status"}),
	}

	heap := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "fastmath_heap_alloc_bytes",
		Help: "Bytes of allocated heap objects",
	}, func() float64 { return float64(ReadRuntimeStats().HeapAlloc) })
	gcs := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "fastmath_gc_cycles",
		Help: "Completed GC cycles",
	}, func() float64 { return float64(ReadRuntimeStats().NumGC) })
	hostMem := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "fastmath_host_memory_used_percent",
		Help: "Share of host memory in use",
	}, sysmon.MemPercent)

	r.registry.MustRegister(r.tables, r.tableEntries, r.selections, r.ranks, r.mismatches, r.opLatency, heap, gcs, hostMem)
	return r
}

// Registry returns the registry the collectors live on.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// OnTable records one generated table.
func (r *Recorder) OnTable(name string, entries int) {
	r.tables.WithLabelValues(name).Inc()
	r.tableEntries.WithLabelValues(name).Add(float64(entries))
}

// OnGenerate records the duration of a whole generation run.
func (r *Recorder) OnGenerate(d time.Duration, err error) {
	r.opLatency.WithLabelValues("generate", status(err)).Observe(d.Seconds())
}

// OnSelection records a finished selection job.
func (r *Recorder) OnSelection(strategy string, ranks int, d time.Duration, err error) {
	st := status(err)
	r.selections.WithLabelValues(strategy, st).Inc()
	if err == nil {
		r.ranks.WithLabelValues(strategy).Add(float64(ranks))
	}
	r.opLatency.WithLabelValues("select", st).Observe(d.Seconds())
}

// OnMismatch records a run where strategies disagreed.
func (r *Recorder) OnMismatch() {
	r.mismatches.Inc()
}

// WriteTextfile writes every metric to path in the text exposition format,
// atomically.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

func status(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusSuccess
}
