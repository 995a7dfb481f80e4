// Package debug reports process resource usage for the interactive
// mem command.
package debug

import (
	"fmt"
	"os"
	"runtime"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v3/process"
)

// MemoryReport is a point-in-time snapshot of process memory usage.
// RSS comes from the operating system and is absent on platforms
// where the process table cannot be read.
type MemoryReport struct {
	HeapAlloc uint64 `json:"heap_alloc"`
	HeapSys   uint64 `json:"heap_sys"`
	NumGC     uint32 `json:"num_gc"`
	RSS       uint64 `json:"rss"`
	RSSKnown  bool   `json:"rss_known"`
}

// ReadMemory collects Go heap statistics and, when available, the
// resident set size of the current process.
func ReadMemory() MemoryReport {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	rep := MemoryReport{
		HeapAlloc: ms.HeapAlloc,
		HeapSys:   ms.HeapSys,
		NumGC:     ms.NumGC,
	}

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return rep
	}
	mi, err := proc.MemoryInfo()
	if err != nil || mi == nil {
		return rep
	}
	rep.RSS = mi.RSS
	rep.RSSKnown = true
	return rep
}

// String renders the report in human units for terminal output.
func (r MemoryReport) String() string {
	s := fmt.Sprintf("heap %s (sys %s), gc cycles %d",
		humanize.IBytes(r.HeapAlloc), humanize.IBytes(r.HeapSys), r.NumGC)
	if r.RSSKnown {
		s += ", rss " + humanize.IBytes(r.RSS)
	}
	return s
}
