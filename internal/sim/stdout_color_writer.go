// ColorStdoutWriter prints human-friendly, colorized steps to STDOUT.
package sim

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"

	"vacuum-sim/internal/config"
	"vacuum-sim/internal/trace"
)

const (
	colorReset   = "\x1b[0m"
	colorRed     = "\x1b[31m"
	colorGreen   = "\x1b[32m"
	colorYellow  = "\x1b[33m"
	colorBlue    = "\x1b[34m"
	colorMagenta = "\x1b[35m"
	colorCyan    = "\x1b[36m"
	colorGray    = "\x1b[90m"
)

var robotPalette = []string{colorGreen, colorYellow, colorBlue, colorMagenta, colorCyan, colorRed}

// ColorStdoutWriter prints step rows using ANSI colors and snapshots as
// styled, framed grids.
type ColorStdoutWriter struct {
	cfg         *config.SimulationConfig
	out         io.Writer
	renderer    *lipgloss.Renderer
	styles      cellStyles
	once        sync.Once
	robotColors map[int]string
	colorIdx    int
}

// NewColorStdoutWriter creates a ColorStdoutWriter writing to os.Stdout.
func NewColorStdoutWriter(cfg *config.SimulationConfig) *ColorStdoutWriter {
	return newColorWriter(cfg, os.Stdout)
}

func newColorWriter(cfg *config.SimulationConfig, out io.Writer) *ColorStdoutWriter {
	r := lipgloss.NewRenderer(out)
	return &ColorStdoutWriter{
		cfg:         cfg,
		out:         out,
		renderer:    r,
		styles:      newCellStyles(r),
		robotColors: make(map[int]string),
	}
}

func (w *ColorStdoutWriter) robotColor(id int) string {
	if c, ok := w.robotColors[id]; ok {
		return c
	}
	c := robotPalette[w.colorIdx%len(robotPalette)]
	w.robotColors[id] = c
	w.colorIdx++
	return c
}

func (w *ColorStdoutWriter) printOverview() {
	if w.cfg == nil {
		return
	}

	fmt.Fprintln(w.out, "Simulation Configuration:")
	tw := tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
	room := w.cfg.Room
	if room == "" {
		room = "(inline)"
	}
	height := len(w.cfg.Terrain)
	width := 0
	if height > 0 {
		width = len(w.cfg.Terrain[0])
	}
	fmt.Fprintf(tw, "Room:\t%s\n", room)
	fmt.Fprintf(tw, "Size:\t%dx%d\n", width, height)
	fmt.Fprintf(tw, "Rules:\t%s\n", w.cfg.Rules)
	fmt.Fprintf(tw, "Order:\t%s\n", w.cfg.Order)
	fmt.Fprintf(tw, "On Invalid:\t%s\n", w.cfg.OnInvalid)
	fmt.Fprintf(tw, "Clean Reset:\t%t\n", w.cfg.CleanReset)
	tw.Flush()

	fmt.Fprintln(w.out, "\nRobots:")
	tw = tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tStart\tFacing\n")
	for _, r := range w.cfg.Robots {
		col := w.robotColor(r.ID)
		fmt.Fprintf(tw, "%s%d%s\t(%d,%d)\t%s\n", col, r.ID, colorReset, r.Row, r.Col, strings.ToUpper(r.Direction))
	}
	tw.Flush()
	fmt.Fprintln(w.out)
}

// WriteStep outputs a single step row in colorized format.
func (w *ColorStdoutWriter) WriteStep(row trace.StepRow) error {
	w.once.Do(w.printOverview)

	rColor := w.robotColor(row.RobotID)
	fmt.Fprintf(w.out, "%s[%04d %s]%s ", colorGray, row.Seq, row.Timestamp.Format(time.TimeOnly), colorReset)
	fmt.Fprintf(w.out, "%srobot=%d%s ", rColor, row.RobotID, colorReset)
	if row.Line > 0 {
		fmt.Fprintf(w.out, "%sline=%d%s ", colorGray, row.Line, colorReset)
	}
	if row.Rejected() {
		_, err := fmt.Fprintf(w.out, "%sREJECTED%s %s\n", colorRed, colorReset, row.Error)
		return err
	}
	effColor := colorGreen
	if row.Effective != row.Requested {
		effColor = colorYellow
	}
	fmt.Fprintf(w.out, "%s%s%s", colorBlue, row.Requested, colorReset)
	if row.Effective != row.Requested {
		fmt.Fprintf(w.out, " -> %s%s%s", effColor, row.Effective, colorReset)
	}
	_, err := fmt.Fprintf(w.out, " %spos=(%d,%d)%s %sdir=%s%s\n",
		colorMagenta, row.Row, row.Col, colorReset,
		colorCyan, row.Direction, colorReset)
	return err
}

// WriteSteps outputs multiple step rows.
func (w *ColorStdoutWriter) WriteSteps(rows []trace.StepRow) error {
	for _, r := range rows {
		if err := w.WriteStep(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteSnapshot prints a framed, styled grid.
func (w *ColorStdoutWriter) WriteSnapshot(row trace.SnapshotRow) error {
	w.once.Do(w.printOverview)
	title := fmt.Sprintf("%s grid after %d steps", row.Kind, row.Seq)
	_, err := fmt.Fprintln(w.out, frame(w.renderer, title, w.styles.render(row.Rows)))
	return err
}
