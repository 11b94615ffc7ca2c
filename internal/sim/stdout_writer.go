// Writer implementation printing plain action lines to STDOUT
package sim

import (
	"fmt"
	"io"
	"os"
	"strings"

	"vacuum-sim/internal/trace"
)

// StdoutWriter prints "<robot> <effective action>" lines and bare grid
// snapshots, without colour. It is used when STDOUT is not a terminal.
type StdoutWriter struct {
	out io.Writer
}

// NewStdoutWriter creates a StdoutWriter writing to os.Stdout.
func NewStdoutWriter() *StdoutWriter {
	return &StdoutWriter{out: os.Stdout}
}

// WriteStep outputs a single step.
func (w *StdoutWriter) WriteStep(row trace.StepRow) error {
	var err error
	if row.Rejected() {
		_, err = fmt.Fprintf(w.out, "%d ! %s\n", row.RobotID, row.Error)
	} else {
		_, err = fmt.Fprintf(w.out, "%d %s\n", row.RobotID, row.Effective)
	}
	return err
}

// WriteSnapshot prints the grid followed by a blank line.
func (w *StdoutWriter) WriteSnapshot(row trace.SnapshotRow) error {
	_, err := fmt.Fprintf(w.out, "%s\n\n", strings.Join(row.Rows, "\n"))
	return err
}
