package sched

// RootCgroupID is the reserved control group that always exists and
// can never be deleted.
const RootCgroupID = "0"

const (
	defaultCPUShares  = 1024
	defaultCPUQuotaUs = -1
	defaultPeriodUs   = 100000
)

// Cgroup carries a share multiplier, quota/period placeholders (stored
// but never enforced by this core), and a CPU allowability mask.
type Cgroup struct {
	ID          string
	CPUShares   int64
	CPUQuotaUs  int64
	CPUPeriodUs int64
	CPUMask     Mask
}

func newRootCgroup(cpuCount int) Cgroup {
	return Cgroup{
		ID:          RootCgroupID,
		CPUShares:   defaultCPUShares,
		CPUQuotaUs:  defaultCPUQuotaUs,
		CPUPeriodUs: defaultPeriodUs,
		CPUMask:     AllMask(cpuCount),
	}
}

func defaultCgroup(id string, cpuCount int) Cgroup {
	return Cgroup{
		ID:          id,
		CPUShares:   defaultCPUShares,
		CPUQuotaUs:  defaultCPUQuotaUs,
		CPUPeriodUs: defaultPeriodUs,
		CPUMask:     AllMask(cpuCount),
	}
}

// cgroupOrRoot looks up id, falling back to the root cgroup when it is
// absent; the root cgroup is always present so this never fails.
func (s *Scheduler) cgroupOrRoot(id string) Cgroup {
	if cg, ok := s.cgroups[id]; ok {
		return cg
	}
	return s.cgroups[RootCgroupID]
}
