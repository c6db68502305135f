package metrics

import (
	"runtime"
	"time"
)

// RuntimeStats is a reading of the Go runtime memory counters.
type RuntimeStats struct {
	HeapAlloc   uint64 // bytes of live heap objects
	HeapObjects uint64
	Sys         uint64 // bytes obtained from the OS
	TotalAlloc  uint64 // cumulative bytes allocated
	NumGC       uint32
	GCPause     time.Duration // cumulative stop-the-world pause
}

// ReadRuntimeStats reads the runtime counters. It stops the world briefly.
func ReadRuntimeStats() RuntimeStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return RuntimeStats{
		HeapAlloc:   m.HeapAlloc,
		HeapObjects: m.HeapObjects,
		Sys:         m.Sys,
		TotalAlloc:  m.TotalAlloc,
		NumGC:       m.NumGC,
		GCPause:     time.Duration(m.PauseTotalNs),
	}
}

// Since returns s with its cumulative counters (TotalAlloc, NumGC, GCPause)
// taken relative to before. The gauges (HeapAlloc, HeapObjects, Sys) keep
// their values from s.
func (s RuntimeStats) Since(before RuntimeStats) RuntimeStats {
	s.TotalAlloc -= before.TotalAlloc
	s.NumGC -= before.NumGC
	s.GCPause -= before.GCPause
	return s
}
