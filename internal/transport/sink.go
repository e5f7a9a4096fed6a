package transport

import (
	"io"

	"ticksched/internal/sched"
)

// Sink writes Results as line-terminated JSON, in stream order.
// Grounded on original_source/alfs_scheduler.cpp's
// `cout << tick.dump() << "\n"`.
type Sink struct {
	w io.Writer
}

// NewSink wraps w as a result sink.
func NewSink(w io.Writer) *Sink {
	return &Sink{w: w}
}

// Write emits one Result line.
func (s *Sink) Write(r sched.Result) error {
	return r.Encode(s.w)
}
