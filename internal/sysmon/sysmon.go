// Package sysmon samples host-wide CPU and memory usage.
package sysmon

import (
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of the host.
type Stats struct {
	CPUModel   string  // empty when unknown
	CPUPercent float64 // 0.0 .. 100.0
	MemTotal   uint64  // bytes
	MemPercent float64 // 0.0 .. 100.0
}

// Sample collects one host snapshot. CPU usage is the delta since the
// previous call (interval 0). Fields that cannot be read stay zero.
func Sample() Stats {
	var s Stats
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		s.CPUModel = infos[0].ModelName
	}
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = pcts[0]
	}
	if vmem, err := mem.VirtualMemory(); err == nil && vmem != nil {
		s.MemTotal = vmem.Total
		s.MemPercent = vmem.UsedPercent
	}
	return s
}

// MemPercent returns the share of host memory in use, or 0 when unknown.
func MemPercent() float64 {
	vmem, err := mem.VirtualMemory()
	if err != nil || vmem == nil {
		return 0
	}
	return vmem.UsedPercent
}
