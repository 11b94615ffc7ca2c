package sim

import (
	"bufio"
	"fmt"
	"os"
	"sort"

	"vacuum-sim/internal/trace"
)

// ActionLogWriter writes each robot's effective actions as plain text, one
// per line, to that robot's log file. Rejected commands produce no line.
type ActionLogWriter struct {
	files   []*os.File
	writers map[int]*bufio.Writer
}

// NewActionLogWriter creates (truncating) one file per distinct path. Robots
// sharing a path share the file. Robots without a path are not logged.
func NewActionLogWriter(paths map[int]string) (*ActionLogWriter, error) {
	w := &ActionLogWriter{writers: make(map[int]*bufio.Writer)}
	byPath := make(map[string]*bufio.Writer)
	ids := make([]int, 0, len(paths))
	for id := range paths {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		p := paths[id]
		if p == "" {
			continue
		}
		if bw, ok := byPath[p]; ok {
			w.writers[id] = bw
			continue
		}
		f, err := os.Create(p)
		if err != nil {
			w.Close()
			return nil, fmt.Errorf("%w: robot %d: %w", ErrIO, id, err)
		}
		w.files = append(w.files, f)
		bw := bufio.NewWriter(f)
		byPath[p] = bw
		w.writers[id] = bw
	}
	return w, nil
}

// WriteStep appends the effective action of row to its robot's log.
func (w *ActionLogWriter) WriteStep(row trace.StepRow) error {
	if row.Rejected() {
		return nil
	}
	bw, ok := w.writers[row.RobotID]
	if !ok {
		return nil
	}
	if _, err := bw.WriteString(row.Effective + "\n"); err != nil {
		return fmt.Errorf("%w: robot %d: %w", ErrIO, row.RobotID, err)
	}
	return nil
}

// Flush pushes buffered lines to disk.
func (w *ActionLogWriter) Flush() error {
	seen := make(map[*bufio.Writer]bool)
	for _, bw := range w.writers {
		if seen[bw] {
			continue
		}
		seen[bw] = true
		if err := bw.Flush(); err != nil {
			return fmt.Errorf("%w: %w", ErrIO, err)
		}
	}
	return nil
}

// Close flushes and closes all log files.
func (w *ActionLogWriter) Close() error {
	err := w.Flush()
	for _, f := range w.files {
		if e := f.Close(); e != nil && err == nil {
			err = fmt.Errorf("%w: %w", ErrIO, e)
		}
	}
	return err
}
