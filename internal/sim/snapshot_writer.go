package sim

import "vacuum-sim/internal/trace"

// SnapshotWriter handles rendered grid snapshots.
type SnapshotWriter interface {
	WriteSnapshot(trace.SnapshotRow) error
}
