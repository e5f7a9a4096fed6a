package sched

import "encoding/json"

// Action is the event-type discriminator. Unknown actions are ignored
// by applyEvent.
type Action string

const (
	ActionTaskCreate      Action = "TASK_CREATE"
	ActionTaskExit        Action = "TASK_EXIT"
	ActionTaskBlock       Action = "TASK_BLOCK"
	ActionTaskUnblock     Action = "TASK_UNBLOCK"
	ActionTaskYield       Action = "TASK_YIELD"
	ActionTaskSetNice     Action = "TASK_SETNICE"
	ActionTaskSetAffinity Action = "TASK_SET_AFFINITY"
	ActionCgroupCreate    Action = "CGROUP_CREATE"
	ActionCgroupModify    Action = "CGROUP_MODIFY"
	ActionCgroupDelete    Action = "CGROUP_DELETE"
	ActionTaskMoveCgroup  Action = "TASK_MOVE_CGROUP"
	ActionCPUBurst        Action = "CPU_BURST"
)

// wireEvent mirrors the inbound event schema: every field any action
// might need, all optional except Action/TaskId which are validated
// per-action in applyEvent. Optional pointer fields let the decoder
// tell "field absent" from "field present with its zero value" without
// raising an error, so a handler can skip just the one malformed event
// instead of the whole batch.
type wireEvent struct {
	Action     Action `json:"action"`
	TaskID     string `json:"taskId"`
	CgroupID   string `json:"cgroupId"`
	NewCgroup  string `json:"newCgroupId"`
	Nice       *int   `json:"nice"`
	NewNice    *int   `json:"newNice"`
	CPUShares  *int64 `json:"cpuShares"`
	CPUQuotaUs *int64 `json:"cpuQuotaUs"`
	CPUPeriod  *int64 `json:"cpuPeriodUs"`
	CPUMask    []int  `json:"cpuMask"`
	Duration   *int   `json:"duration"`
}

// decodeEvent parses one raw event into wireEvent. Any malformed or
// type-mismatched payload yields ok=false so the caller can skip just
// this event, never the whole batch.
func decodeEvent(raw json.RawMessage) (wireEvent, bool) {
	var e wireEvent
	if err := json.Unmarshal(raw, &e); err != nil {
		return wireEvent{}, false
	}
	if e.Action == "" {
		return wireEvent{}, false
	}
	return e, true
}
