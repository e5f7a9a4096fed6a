package sched

import "encoding/json"

// Scheduler is the owned aggregate backing the whole core: process
// -wide task/cgroup maps, the runqueue, and the bookkeeping the tick
// procedure needs (maxVruntime, lastSchedule). It is a single owned
// struct whose methods take exclusive access — no hidden sharing, no
// goroutines, no suspension points. Tick is a plain synchronous call:
// the caller drives it once per inbound record and owns all timing.
type Scheduler struct {
	cpuCount int
	quanta   int64

	tasks   map[string]*Task
	cgroups map[string]Cgroup
	rq      *Runqueue

	maxVruntime  int64
	lastSchedule []string
}

// New constructs a Scheduler with cpuCount simulated CPUs and the
// given quanta. Nonpositive inputs are floored to 1 rather than
// rejected, matching the default a caller would otherwise have to
// substitute itself.
func New(cpuCount int, quanta int64) *Scheduler {
	if cpuCount < 1 {
		cpuCount = 1
	}
	if quanta < 1 {
		quanta = 1
	}

	tasks := make(map[string]*Task)
	lastSchedule := make([]string, cpuCount)
	for i := range lastSchedule {
		lastSchedule[i] = Idle
	}

	s := &Scheduler{
		cpuCount:     cpuCount,
		quanta:       quanta,
		tasks:        tasks,
		cgroups:      make(map[string]Cgroup),
		lastSchedule: lastSchedule,
	}
	s.rq = newRunqueue(tasks)
	s.cgroups[RootCgroupID] = newRootCgroup(cpuCount)
	return s
}

// effectiveWeight computes the cgroup-share-weighted effective weight
// for a task.
func (s *Scheduler) effectiveWeight(t *Task) int64 {
	cg := s.cgroupOrRoot(t.CgroupID)
	return EffectiveWeight(t.Weight, cg.CPUShares)
}

// vruntimeDelta is the per-scheduled-tick vruntime increment: higher
// weight means a smaller delta, so the task falls behind more slowly
// in the runqueue.
func (s *Scheduler) vruntimeDelta(t *Task) int64 {
	ew := s.effectiveWeight(t)
	d := (s.quanta * NiceZeroWeight) / ew
	if d < 1 {
		d = 1
	}
	return d
}

// canRunOnCPU reports whether t may be dispatched to cpu under both
// its own affinity mask and its cgroup's CPU mask.
func (s *Scheduler) canRunOnCPU(t *Task, cpu int) bool {
	if t.State != Runnable {
		return false
	}
	if !t.AffinityMask.Allowed(cpu) {
		return false
	}
	cg := s.cgroupOrRoot(t.CgroupID)
	return cg.CPUMask.Allowed(cpu)
}

// Tick applies the event batch then fills each simulated CPU from the
// runqueue under affinity/cgroup constraints, returning the
// assignment plus a diagnostic trace.
func (s *Scheduler) Tick(vtime int64, events []json.RawMessage) (Result, []TraceEvent) {
	// 1) apply events in order
	for _, raw := range events {
		s.applyEvent(raw)
	}

	// 2) initialize per-CPU schedule
	schedule := make([]string, s.cpuCount)
	for i := range schedule {
		schedule[i] = Idle
	}

	// 3) per-CPU selection, ascending CPU index, with per-CPU
	//    stash-and-reinsert so a task unfit for an earlier CPU is not
	//    lost for a later one.
	var stash []string
	for cpu := 0; cpu < s.cpuCount; cpu++ {
		picked := ""

		for {
			cand, ok := s.rq.PopMin()
			if !ok {
				break
			}
			t, exists := s.tasks[cand]
			if !exists || t.State != Runnable {
				// discarded, not stashed
				continue
			}
			if !t.AffinityMask.AnyAllowed() {
				stash = append(stash, cand)
				continue
			}
			cg := s.cgroupOrRoot(t.CgroupID)
			if !cg.CPUMask.AnyAllowed() {
				stash = append(stash, cand)
				continue
			}
			if s.canRunOnCPU(t, cpu) {
				picked = cand
				break
			}
			stash = append(stash, cand)
		}

		if picked != "" {
			schedule[cpu] = picked
		}

		for _, id := range stash {
			s.rq.Push(id)
		}
		stash = stash[:0]
	}

	// 4) accounting pass
	preemptions, migrations := 0, 0
	var trace []TraceEvent

	for cpu := 0; cpu < s.cpuCount; cpu++ {
		cur := schedule[cpu]
		prev := s.lastSchedule[cpu]

		if cur != prev && prev != Idle {
			preemptions++
			trace = append(trace, TraceEvent{Vtime: vtime, CPU: cpu, TaskID: prev, Kind: TracePreempt})
		}

		if cur == Idle {
			continue
		}
		t := s.tasks[cur]

		migrated := t.LastCPU >= 0 && t.LastCPU != cpu
		if migrated {
			migrations++
		}
		t.LastCPU = cpu

		d := s.vruntimeDelta(t)
		t.Vruntime += d
		if t.Vruntime > s.maxVruntime {
			s.maxVruntime = t.Vruntime
		}

		if t.BurstRemaining > 0 {
			t.BurstRemaining--
		}

		if t.State == Runnable {
			s.rq.Push(cur)
		}

		kind := TraceDispatch
		if migrated {
			kind = TraceMigrate
		}
		trace = append(trace, TraceEvent{Vtime: vtime, CPU: cpu, TaskID: cur, Kind: kind, Vruntime: t.Vruntime})
	}

	// 5) replace lastSchedule
	s.lastSchedule = schedule

	// 6) emit result
	res := Result{
		Vtime:    vtime,
		Schedule: schedule,
		Meta: Meta{
			Preemptions: preemptions,
			Migrations:  migrations,
		},
	}
	return res, trace
}
