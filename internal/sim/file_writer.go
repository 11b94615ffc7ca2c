package sim

import (
	"encoding/json"
	"os"

	"vacuum-sim/internal/trace"
)

// FileWriter writes step and snapshot rows to JSONL files.
type FileWriter struct {
	stepFile *os.File
	snapFile *os.File
	stepEnc  *json.Encoder
	snapEnc  *json.Encoder
}

// NewFileWriter creates a FileWriter. snapshotPath may be empty to skip snapshots.
func NewFileWriter(stepPath, snapshotPath string) (*FileWriter, error) {
	sf, err := os.Create(stepPath)
	if err != nil {
		return nil, err
	}
	fw := &FileWriter{stepFile: sf, stepEnc: json.NewEncoder(sf)}
	if snapshotPath != "" {
		gf, err := os.Create(snapshotPath)
		if err != nil {
			sf.Close()
			return nil, err
		}
		fw.snapFile = gf
		fw.snapEnc = json.NewEncoder(gf)
	}
	return fw, nil
}

// WriteStep logs a single step row.
func (f *FileWriter) WriteStep(row trace.StepRow) error {
	return f.stepEnc.Encode(row)
}

// WriteSteps logs multiple step rows.
func (f *FileWriter) WriteSteps(rows []trace.StepRow) error {
	for _, r := range rows {
		if err := f.WriteStep(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteSnapshot logs a grid snapshot, if enabled.
func (f *FileWriter) WriteSnapshot(row trace.SnapshotRow) error {
	if f.snapEnc == nil {
		return nil
	}
	return f.snapEnc.Encode(row)
}

// Close closes any underlying files.
func (f *FileWriter) Close() error {
	var err error
	if f.stepFile != nil {
		if e := f.stepFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	if f.snapFile != nil {
		if e := f.snapFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}
