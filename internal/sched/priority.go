package sched

// MinNice and MaxNice bound the legal niceness range.
const (
	MinNice = -20
	MaxNice = 19
)

// NiceZeroWeight is the weight assigned to nice 0, matching the
// standard CFS weight table.
const NiceZeroWeight = 1024

// maxEffectiveWeight caps effectiveWeight to keep downstream vruntime
// arithmetic from overflowing.
const maxEffectiveWeight = 2_000_000_000

// niceToWeight is the fixed 40-entry nice-to-weight table, indexed by
// nice+20. Values match the published CFS weights (88761 at nice -20,
// 1024 at nice 0, 15 at nice 19).
var niceToWeight = [40]int64{
	88761, 71755, 56483, 46273, 36291,
	29154, 23254, 18705, 14949, 11916,
	9548, 7620, 6100, 4904, 3906,
	3121, 2501, 1991, 1586, 1277,
	1024, 820, 655, 526, 423,
	335, 272, 215, 172, 137,
	110, 87, 70, 56, 45,
	36, 29, 23, 18, 15,
}

// ClampNice clamps n to [MinNice, MaxNice].
func ClampNice(n int) int {
	if n < MinNice {
		return MinNice
	}
	if n > MaxNice {
		return MaxNice
	}
	return n
}

// WeightForNice returns the table weight for a (clamped) niceness.
func WeightForNice(nice int) int64 {
	return niceToWeight[ClampNice(nice)-MinNice]
}

// EffectiveWeight applies cgroup share weighting to a task's base
// weight: weight * cpuShares / 1024, floored at 1 and ceiled at
// 2e9 to keep later vruntime-delta division well-behaved.
func EffectiveWeight(weight int64, cpuShares int64) int64 {
	ew := (weight * cpuShares) / NiceZeroWeight
	if ew < 1 {
		ew = 1
	}
	if ew > maxEffectiveWeight {
		ew = maxEffectiveWeight
	}
	return ew
}
