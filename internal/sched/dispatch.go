package sched

// applyEvent interprets one decoded event into a state mutation.
// Unknown actions and events with missing required fields are
// silently ignored: the dispatcher never reports failure, it just
// chooses not to mutate anything.
func (s *Scheduler) applyEvent(raw []byte) {
	e, ok := decodeEvent(raw)
	if !ok {
		return
	}

	switch e.Action {
	case ActionTaskCreate:
		s.taskCreate(e)
	case ActionTaskExit:
		s.taskExit(e)
	case ActionTaskBlock:
		s.taskBlock(e)
	case ActionTaskUnblock:
		s.taskUnblock(e)
	case ActionTaskYield:
		s.taskYield(e)
	case ActionTaskSetNice:
		s.taskSetNice(e)
	case ActionTaskSetAffinity:
		s.taskSetAffinity(e)
	case ActionCgroupCreate:
		s.cgroupCreate(e)
	case ActionCgroupModify:
		s.cgroupModify(e)
	case ActionCgroupDelete:
		s.cgroupDelete(e)
	case ActionTaskMoveCgroup:
		s.taskMoveCgroup(e)
	case ActionCPUBurst:
		s.cpuBurst(e)
	default:
		// unknown action: ignore
	}
}

func (s *Scheduler) taskCreate(e wireEvent) {
	if e.TaskID == "" {
		return
	}
	if _, exists := s.tasks[e.TaskID]; exists {
		return
	}

	nice := 0
	if e.Nice != nil {
		nice = *e.Nice
	}

	cgroupID := RootCgroupID
	if e.CgroupID != "" {
		cgroupID = e.CgroupID
	}
	if _, ok := s.cgroups[cgroupID]; !ok {
		cgroupID = RootCgroupID
	}

	t := newTask(e.TaskID, nice, cgroupID, s.cpuCount, s.maxVruntime)
	s.tasks[t.ID] = t
	s.rq.Push(t.ID)
}

func (s *Scheduler) taskExit(e wireEvent) {
	t, ok := s.tasks[e.TaskID]
	if !ok {
		return
	}
	s.rq.Remove(t.ID)
	t.State = Exited
}

func (s *Scheduler) taskBlock(e wireEvent) {
	t, ok := s.tasks[e.TaskID]
	if !ok {
		return
	}
	if t.State == Exited {
		return
	}
	// burst shields against blocking
	if t.BurstRemaining > 0 {
		return
	}
	s.rq.Remove(t.ID)
	t.State = Blocked
}

func (s *Scheduler) taskUnblock(e wireEvent) {
	t, ok := s.tasks[e.TaskID]
	if !ok {
		return
	}
	if t.State == Exited {
		return
	}
	t.Vruntime = s.maxVruntime
	t.State = Runnable
	t.AffinityMask = ensureLen(t.AffinityMask, s.cpuCount)
	s.rq.Push(t.ID)
}

func (s *Scheduler) taskYield(e wireEvent) {
	t, ok := s.tasks[e.TaskID]
	if !ok {
		return
	}
	if t.State != Runnable {
		return
	}
	t.Vruntime = s.maxVruntime
	s.rq.FixKey(t.ID)
}

func (s *Scheduler) taskSetNice(e wireEvent) {
	t, ok := s.tasks[e.TaskID]
	if !ok {
		return
	}
	if t.State == Exited {
		return
	}
	if e.NewNice == nil {
		return
	}
	t.Nice = ClampNice(*e.NewNice)
	t.Weight = WeightForNice(t.Nice)
	s.rq.FixKey(t.ID)
}

func (s *Scheduler) taskSetAffinity(e wireEvent) {
	t, ok := s.tasks[e.TaskID]
	if !ok {
		return
	}
	if t.State == Exited {
		return
	}
	if e.CPUMask == nil {
		return
	}
	t.AffinityMask = MaskFromIndices(s.cpuCount, e.CPUMask)
}

func (s *Scheduler) cgroupCreate(e wireEvent) {
	if e.CgroupID == "" {
		return
	}
	cg := defaultCgroup(e.CgroupID, s.cpuCount)
	if e.CPUShares != nil {
		cg.CPUShares = *e.CPUShares
	}
	if cg.CPUShares < 1 {
		cg.CPUShares = 1
	}
	if e.CPUQuotaUs != nil {
		cg.CPUQuotaUs = *e.CPUQuotaUs
	}
	if e.CPUPeriod != nil {
		cg.CPUPeriodUs = *e.CPUPeriod
	}
	if e.CPUMask != nil {
		cg.CPUMask = MaskFromIndices(s.cpuCount, e.CPUMask)
	}
	s.cgroups[cg.ID] = cg
}

func (s *Scheduler) cgroupModify(e wireEvent) {
	if e.CgroupID == "" {
		return
	}
	cg, ok := s.cgroups[e.CgroupID]
	if !ok {
		cg = defaultCgroup(e.CgroupID, s.cpuCount)
	}
	if e.CPUShares != nil {
		cg.CPUShares = *e.CPUShares
		if cg.CPUShares < 1 {
			cg.CPUShares = 1
		}
	}
	if e.CPUQuotaUs != nil {
		cg.CPUQuotaUs = *e.CPUQuotaUs
	}
	if e.CPUPeriod != nil {
		cg.CPUPeriodUs = *e.CPUPeriod
	}
	if e.CPUMask != nil {
		cg.CPUMask = MaskFromIndices(s.cpuCount, e.CPUMask)
	}
	s.cgroups[e.CgroupID] = cg
}

func (s *Scheduler) cgroupDelete(e wireEvent) {
	if e.CgroupID == "" || e.CgroupID == RootCgroupID {
		return
	}
	for _, t := range s.tasks {
		if t.CgroupID == e.CgroupID && t.State != Exited {
			t.CgroupID = RootCgroupID
		}
	}
	delete(s.cgroups, e.CgroupID)
}

func (s *Scheduler) taskMoveCgroup(e wireEvent) {
	t, ok := s.tasks[e.TaskID]
	if !ok {
		return
	}
	if t.State == Exited {
		return
	}
	if e.NewCgroup == "" {
		return
	}
	cg := e.NewCgroup
	if _, ok := s.cgroups[cg]; !ok {
		cg = RootCgroupID
	}
	t.CgroupID = cg
}

func (s *Scheduler) cpuBurst(e wireEvent) {
	t, ok := s.tasks[e.TaskID]
	if !ok {
		return
	}
	if t.State == Exited {
		return
	}
	if e.Duration == nil {
		return
	}
	dur := *e.Duration
	if dur < 0 {
		dur = 0
	}
	t.BurstRemaining = dur
}
