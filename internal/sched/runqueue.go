package sched

import (
	"github.com/emirpasic/gods/trees/redblacktree"
)

// nodeKey orders the runqueue by (vruntime, id), ties broken
// lexicographically on id — deliberately a string compare, never
// insertion or hash order, so dispatch order is fully deterministic.
type nodeKey struct {
	vruntime int64
	id       string
}

func cmpNodeKey(a, b any) int {
	ka, kb := a.(nodeKey), b.(nodeKey)
	switch {
	case ka.vruntime < kb.vruntime:
		return -1
	case ka.vruntime > kb.vruntime:
		return 1
	case ka.id < kb.id:
		return -1
	case ka.id > kb.id:
		return 1
	default:
		return 0
	}
}

// Runqueue is the ordered set of RUNNABLE task identifiers, backed by
// a red-black tree keyed on (vruntime, id) plus an id->key index so
// removal/contains/fixKey by id stay O(log n) instead of a tree scan.
// It stores only identifiers and a back-pointer to the task map for
// key construction; it never owns a task record.
type Runqueue struct {
	tree  *redblacktree.Tree
	index map[string]nodeKey
	tasks map[string]*Task
}

func newRunqueue(tasks map[string]*Task) *Runqueue {
	return &Runqueue{
		tree:  redblacktree.NewWith(cmpNodeKey),
		index: make(map[string]nodeKey),
		tasks: tasks,
	}
}

// Push inserts id under its task's current vruntime; idempotent.
func (q *Runqueue) Push(id string) {
	if _, queued := q.index[id]; queued {
		return
	}
	t, ok := q.tasks[id]
	if !ok {
		return
	}
	key := nodeKey{vruntime: t.Vruntime, id: id}
	q.tree.Put(key, id)
	q.index[id] = key
}

// Contains reports whether id is currently queued.
func (q *Runqueue) Contains(id string) bool {
	_, ok := q.index[id]
	return ok
}

// PopMin removes and returns the minimum-keyed id.
func (q *Runqueue) PopMin() (string, bool) {
	node := q.tree.Left()
	if node == nil {
		return "", false
	}
	key := node.Key.(nodeKey)
	id := node.Value.(string)
	q.tree.Remove(key)
	delete(q.index, id)
	return id, true
}

// Remove deletes id if present; idempotent no-op otherwise.
func (q *Runqueue) Remove(id string) {
	key, ok := q.index[id]
	if !ok {
		return
	}
	q.tree.Remove(key)
	delete(q.index, id)
}

// FixKey re-inserts id under its task's current vruntime, to be called
// after a mutation that may have changed its ordering key (vruntime
// reset on yield). Renice also calls it, but the key holds no weight,
// so that call leaves the order as it was. No-op if id is not
// currently queued.
func (q *Runqueue) FixKey(id string) {
	oldKey, ok := q.index[id]
	if !ok {
		return
	}
	t, ok := q.tasks[id]
	if !ok {
		return
	}
	newKey := nodeKey{vruntime: t.Vruntime, id: id}
	if newKey == oldKey {
		return
	}
	q.tree.Remove(oldKey)
	q.tree.Put(newKey, id)
	q.index[id] = newKey
}

// Empty reports whether the runqueue holds no tasks.
func (q *Runqueue) Empty() bool {
	return q.tree.Size() == 0
}
