package sched

import (
	"encoding/json"
	"io"
)

// Idle is the placeholder schedule entry for a CPU with no eligible
// runnable task.
const Idle = "idle"

// Meta carries the per-tick preemption/migration counters.
type Meta struct {
	Preemptions int `json:"preemptions"`
	Migrations  int `json:"migrations"`
}

// Result is the per-tick output record.
type Result struct {
	Vtime    int64    `json:"vtime"`
	Schedule []string `json:"schedule"`
	Meta     Meta     `json:"meta"`
}

// Encode writes one compact, line-terminated JSON object to w, as the
// outbound framing requires: "one per processed record, line
// terminated, in stream order".
func (r Result) Encode(w io.Writer) error {
	b, err := json.Marshal(r)
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}
