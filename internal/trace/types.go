// Rows emitted by the simulator for every processed command
package trace

import "time"

// StepRow records one processed command and the robot state after it.
type StepRow struct {
	RunID     string    `json:"run_id"`
	Seq       int       `json:"seq"`
	RobotID   int       `json:"robot_id"`
	Line      int       `json:"line,omitempty"`
	Requested string    `json:"requested"`
	Effective string    `json:"effective,omitempty"`
	Row       int       `json:"row"`
	Col       int       `json:"col"`
	Direction string    `json:"direction"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"ts"`
}

// Rejected reports whether the command was refused instead of performed.
func (s StepRow) Rejected() bool { return s.Error != "" }

// Snapshot kinds.
const (
	SnapshotInitial = "initial"
	SnapshotStep    = "step"
	SnapshotFinal   = "final"
)

// SnapshotRow is a rendered grid at one point of a run.
type SnapshotRow struct {
	RunID     string    `json:"run_id"`
	Seq       int       `json:"seq"`
	Kind      string    `json:"kind"`
	Rows      []string  `json:"rows"`
	Timestamp time.Time `json:"ts"`
}

// RunSummary describes a finished run.
type RunSummary struct {
	RunID     string         `json:"run_id"`
	Rules     string         `json:"rules"`
	Steps     int            `json:"steps"`
	Rejected  int            `json:"rejected"`
	Effective map[string]int `json:"effective"`
	Dirty     int            `json:"dirty_cells"`
	Timestamp time.Time      `json:"ts"`
}
