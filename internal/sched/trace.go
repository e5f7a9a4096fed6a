package sched

import (
	"fmt"
	"strings"
)

// TraceKind categorizes a single per-CPU diagnostic emitted during a
// tick.
type TraceKind int

const (
	TraceIdle TraceKind = iota
	TraceDispatch
	TracePreempt
	TraceMigrate
)

func (k TraceKind) String() string {
	switch k {
	case TraceIdle:
		return "Idle"
	case TraceDispatch:
		return "Dispatch"
	case TracePreempt:
		return "Preempt"
	case TraceMigrate:
		return "Migrate"
	default:
		return "Unknown"
	}
}

// TraceEvent is one CPU's diagnostic outcome for a tick.
type TraceEvent struct {
	Vtime    int64
	CPU      int
	TaskID   string
	Kind     TraceKind
	Vruntime int64
}

// center pads str with spaces to width for fixed-column log lines.
func center(str string, width int) string {
	if len(str) >= width {
		return str
	}
	spaces := (width - len(str)) / 2
	return strings.Repeat(" ", spaces) + str + strings.Repeat(" ", width-(spaces+len(str)))
}

// FormatLine renders a TraceEvent as a fixed-width diagnostic line:
// kind, task id, vruntime.
func (ev TraceEvent) FormatLine() string {
	return fmt.Sprintf("tick=%d cpu=%d [%s] task=%s vruntime=%d",
		ev.Vtime, ev.CPU, center(ev.Kind.String(), 10), ev.TaskID, ev.Vruntime)
}
