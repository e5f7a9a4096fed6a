package sched

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunqueueOrderingAndTieBreak(t *testing.T) {
	tasks := map[string]*Task{
		"b": {ID: "b", Vruntime: 5},
		"a": {ID: "a", Vruntime: 5},
		"c": {ID: "c", Vruntime: 1},
	}
	rq := newRunqueue(tasks)
	rq.Push("b")
	rq.Push("a")
	rq.Push("c")

	id, ok := rq.PopMin()
	require.True(t, ok)
	assert.Equal(t, "c", id)

	id, ok = rq.PopMin()
	require.True(t, ok)
	assert.Equal(t, "a", id) // tie on vruntime, "a" < "b"

	id, ok = rq.PopMin()
	require.True(t, ok)
	assert.Equal(t, "b", id)

	_, ok = rq.PopMin()
	assert.False(t, ok)
}

func TestRunqueuePushIdempotent(t *testing.T) {
	tasks := map[string]*Task{"a": {ID: "a", Vruntime: 0}}
	rq := newRunqueue(tasks)
	rq.Push("a")
	rq.Push("a")
	assert.True(t, rq.Contains("a"))
	_, ok := rq.PopMin()
	assert.True(t, ok)
	assert.True(t, rq.Empty())
}

func TestRunqueueRemoveIdempotent(t *testing.T) {
	tasks := map[string]*Task{"a": {ID: "a", Vruntime: 0}}
	rq := newRunqueue(tasks)
	rq.Push("a")
	rq.Remove("a")
	rq.Remove("a") // no-op, must not panic
	assert.False(t, rq.Contains("a"))
	assert.True(t, rq.Empty())
}

func TestRunqueueFixKeyReordersAfterVruntimeChange(t *testing.T) {
	a := &Task{ID: "a", Vruntime: 10}
	b := &Task{ID: "b", Vruntime: 20}
	tasks := map[string]*Task{"a": a, "b": b}
	rq := newRunqueue(tasks)
	rq.Push("a")
	rq.Push("b")

	a.Vruntime = 30 // now behind b
	rq.FixKey("a")

	id, _ := rq.PopMin()
	assert.Equal(t, "b", id)
	id, _ = rq.PopMin()
	assert.Equal(t, "a", id)
}
