package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"vacuum-sim/internal/trace"
)

// JSONStdoutWriter prints step and snapshot rows as JSON to STDOUT.
type JSONStdoutWriter struct {
	out io.Writer
}

// NewJSONStdoutWriter creates a JSONStdoutWriter writing to os.Stdout.
func NewJSONStdoutWriter() *JSONStdoutWriter {
	return &JSONStdoutWriter{out: os.Stdout}
}

// WriteStep outputs a step row in JSON format.
func (w *JSONStdoutWriter) WriteStep(row trace.StepRow) error {
	data, err := json.Marshal(row)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w.out, string(data))
	return err
}

// WriteSteps outputs multiple step rows in JSON format.
func (w *JSONStdoutWriter) WriteSteps(rows []trace.StepRow) error {
	for _, r := range rows {
		if err := w.WriteStep(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteSnapshot outputs a grid snapshot in JSON format.
func (w *JSONStdoutWriter) WriteSnapshot(row trace.SnapshotRow) error {
	data, err := json.Marshal(row)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w.out, string(data))
	return err
}
