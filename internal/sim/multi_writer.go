package sim

import "vacuum-sim/internal/trace"

// MultiWriter fans out step and snapshot rows to multiple writers.
type MultiWriter struct {
	stepWriters []StepWriter
	snapWriters []SnapshotWriter
}

// NewMultiWriter creates a new MultiWriter. Nil entries are ignored.
func NewMultiWriter(sws []StepWriter, gws []SnapshotWriter) *MultiWriter {
	mw := &MultiWriter{}
	for _, w := range sws {
		if w != nil {
			mw.stepWriters = append(mw.stepWriters, w)
		}
	}
	for _, w := range gws {
		if w != nil {
			mw.snapWriters = append(mw.snapWriters, w)
		}
	}
	return mw
}

// WriteStep sends a step row to all writers.
func (mw *MultiWriter) WriteStep(row trace.StepRow) error {
	for _, w := range mw.stepWriters {
		if err := w.WriteStep(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteSteps sends multiple rows to all writers, using batch if supported.
func (mw *MultiWriter) WriteSteps(rows []trace.StepRow) error {
	for _, w := range mw.stepWriters {
		if bw, ok := w.(batchStepWriter); ok {
			if err := bw.WriteSteps(rows); err != nil {
				return err
			}
			continue
		}
		for _, r := range rows {
			if err := w.WriteStep(r); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteSnapshot sends a snapshot to all snapshot writers.
func (mw *MultiWriter) WriteSnapshot(row trace.SnapshotRow) error {
	for _, w := range mw.snapWriters {
		if err := w.WriteSnapshot(row); err != nil {
			return err
		}
	}
	return nil
}
