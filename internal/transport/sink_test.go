package transport

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"ticksched/internal/sched"
)

func TestSinkWritesLineTerminatedJSON(t *testing.T) {
	var buf bytes.Buffer
	sink := NewSink(&buf)

	err := sink.Write(sched.Result{
		Vtime:    7,
		Schedule: []string{"A", "idle"},
		Meta:     sched.Meta{Preemptions: 1, Migrations: 0},
	})
	assert.NoError(t, err)
	assert.Equal(t, `{"vtime":7,"schedule":["A","idle"],"meta":{"preemptions":1,"migrations":0}}`+"\n", buf.String())
}
