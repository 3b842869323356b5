// Package overhead tracks the core process's own resource consumption
// per scheduler tick, for local diagnostics only. Unlike the pipeline's
// derived state, this is never exported on the wire (§1 non-goals: no
// raw-signal upload, and this isn't even a signal — it's self-introspection).
package overhead

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// TickOverhead is a single before/after delta for the process's own
// resource usage across one scheduler tick. MemoryRSSBytes is the
// exception: it is the resident set size after the tick, not a delta.
type TickOverhead struct {
	WindowType      string
	CPUUserMs       int64
	CPUSystemMs     int64
	MemoryRSSBytes  int64
	ContextSwitches int64
}

// procSnapshot holds raw values read from /proc/self/stat and
// /proc/self/status at one point in time.
type procSnapshot struct {
	utime          uint64
	stime          uint64
	rss            int64
	voluntaryCtxSw int64
	nonvolCtxSw    int64
}

// Tracker snapshots the current process's own overhead around a tick.
// It is self-only: unlike the teacher's PIDTracker it never tracks
// child PIDs, since the core has no spawned helper processes.
type Tracker struct {
	pid int
}

// NewTracker constructs a Tracker for the current process.
func NewTracker() *Tracker {
	return &Tracker{pid: os.Getpid()}
}

// Measure runs fn, returning the resource delta it consumed.
func (t *Tracker) Measure(windowType string, fn func()) TickOverhead {
	before := readProcSnapshot(t.pid)
	fn()
	after := readProcSnapshot(t.pid)

	return TickOverhead{
		WindowType:      windowType,
		CPUUserMs:       ticksToMs(after.utime - before.utime),
		CPUSystemMs:     ticksToMs(after.stime - before.stime),
		MemoryRSSBytes:  after.rss * 4096,
		ContextSwitches: (after.voluntaryCtxSw - before.voluntaryCtxSw) + (after.nonvolCtxSw - before.nonvolCtxSw),
	}
}

func ticksToMs(ticks uint64) int64 {
	return int64(ticks) * 10
}

func readProcSnapshot(pid int) procSnapshot {
	var snap procSnapshot

	statData, err := os.ReadFile(fmt.Sprintf("/proc/%d/stat", pid))
	if err != nil {
		return snap
	}
	snap = parseProcStat(string(statData))

	statusData, err := os.ReadFile(fmt.Sprintf("/proc/%d/status", pid))
	if err != nil {
		return snap
	}
	snap.voluntaryCtxSw, snap.nonvolCtxSw = parseProcStatus(string(statusData))

	return snap
}

func parseProcStat(content string) procSnapshot {
	var snap procSnapshot

	commEnd := strings.LastIndex(content, ")")
	if commEnd < 0 || commEnd+2 >= len(content) {
		return snap
	}

	fields := strings.Fields(content[commEnd+2:])
	if len(fields) > 12 {
		snap.utime, _ = strconv.ParseUint(fields[11], 10, 64)
		snap.stime, _ = strconv.ParseUint(fields[12], 10, 64)
	}
	if len(fields) > 21 {
		snap.rss, _ = strconv.ParseInt(fields[21], 10, 64)
	}

	return snap
}

func parseProcStatus(content string) (voluntary, nonvoluntary int64) {
	for _, line := range strings.Split(content, "\n") {
		fields := strings.SplitN(line, ":", 2)
		if len(fields) != 2 {
			continue
		}
		key := strings.TrimSpace(fields[0])
		val := strings.TrimSpace(fields[1])
		switch key {
		case "voluntary_ctxt_switches":
			voluntary, _ = strconv.ParseInt(val, 10, 64)
		case "nonvoluntary_ctxt_switches":
			nonvoluntary, _ = strconv.ParseInt(val, 10, 64)
		}
	}
	return voluntary, nonvoluntary
}
