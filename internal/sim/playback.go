package sim

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"vacuum-sim/internal/trace"
)

// ReplayLog replays step rows from r to writer. A speed >0 scales the
// recorded gaps between rows. If speed <= 0, rows are delivered without delay,
// in one batch when the writer supports it.
func ReplayLog(r io.Reader, writer StepWriter, speed float64) error {
	dec := json.NewDecoder(r)
	var prev time.Time
	var batch []trace.StepRow
	bw, batched := writer.(batchStepWriter)
	batched = batched && speed <= 0
	for {
		var row trace.StepRow
		if err := dec.Decode(&row); err != nil {
			if err == io.EOF {
				break
			}
			return err
		}
		if batched {
			batch = append(batch, row)
			continue
		}
		if !prev.IsZero() && speed > 0 {
			diff := row.Timestamp.Sub(prev)
			if speed != 1 {
				diff = time.Duration(float64(diff) / speed)
			}
			if diff > 0 {
				time.Sleep(diff)
			}
		}
		if err := writer.WriteStep(row); err != nil {
			return err
		}
		prev = row.Timestamp
	}
	if len(batch) > 0 {
		return bw.WriteSteps(batch)
	}
	return nil
}

// ReplayLogFile opens a file and replays its step rows.
func ReplayLogFile(path string, writer StepWriter, speed float64) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return ReplayLog(f, writer, speed)
}
