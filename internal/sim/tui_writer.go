package sim

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"vacuum-sim/internal/config"
	"vacuum-sim/internal/trace"
)

// teaProgram abstracts bubbletea.Program for testing.
type teaProgram interface {
	Send(tea.Msg)
}

// logMsg carries a rendered step line and its row.
type logMsg struct {
	line string
	row  trace.StepRow
}

// snapshotMsg carries a grid snapshot.
type snapshotMsg struct{ trace.SnapshotRow }

// finishedMsg marks the end of the run.
type finishedMsg struct{}

// TUIWriter renders steps and grid snapshots using a bubbletea TUI.
type TUIWriter struct {
	program     teaProgram
	robotColors map[int]string
	colorIdx    int
	hold        bool
	done        chan struct{}
}

// NewTUIWriter starts a bubbletea program and returns a TUIWriter. When hold
// is set, Close waits for the user to quit instead of closing the screen.
func NewTUIWriter(cfg *config.SimulationConfig, hold bool) *TUIWriter {
	w := &TUIWriter{robotColors: make(map[int]string), hold: hold, done: make(chan struct{})}
	for _, r := range cfg.Robots {
		w.robotColor(r.ID)
	}
	p := tea.NewProgram(newTUIModel(cfg), tea.WithAltScreen())
	w.program = p
	go func() {
		_, _ = p.Run()
		close(w.done)
	}()
	return w
}

func (w *TUIWriter) robotColor(id int) string {
	if c, ok := w.robotColors[id]; ok {
		return c
	}
	c := robotPalette[w.colorIdx%len(robotPalette)]
	w.robotColors[id] = c
	w.colorIdx++
	return c
}

// WriteStep implements StepWriter.
func (w *TUIWriter) WriteStep(row trace.StepRow) error {
	rColor := w.robotColor(row.RobotID)
	var line string
	if row.Rejected() {
		line = fmt.Sprintf("%s[%04d]%s %srobot=%d%s %sREJECTED%s %s",
			colorGray, row.Seq, colorReset,
			rColor, row.RobotID, colorReset,
			colorRed, colorReset, row.Error)
	} else {
		line = fmt.Sprintf("%s[%04d]%s %srobot=%d%s %s%s%s -> %s%s%s %spos=(%d,%d)%s %sdir=%s%s",
			colorGray, row.Seq, colorReset,
			rColor, row.RobotID, colorReset,
			colorBlue, row.Requested, colorReset,
			colorGreen, row.Effective, colorReset,
			colorMagenta, row.Row, row.Col, colorReset,
			colorCyan, row.Direction, colorReset)
	}
	w.program.Send(logMsg{line: line, row: row})
	return nil
}

// WriteSteps outputs multiple step rows.
func (w *TUIWriter) WriteSteps(rows []trace.StepRow) error {
	for _, r := range rows {
		_ = w.WriteStep(r)
	}
	return nil
}

// WriteSnapshot implements SnapshotWriter.
func (w *TUIWriter) WriteSnapshot(row trace.SnapshotRow) error {
	w.program.Send(snapshotMsg{row})
	return nil
}

// Close marks the run finished and shuts down the TUI, or waits for the user
// to quit when the writer holds the screen.
func (w *TUIWriter) Close() error {
	if w.program != nil {
		w.program.Send(finishedMsg{})
		if !w.hold {
			w.program.Send(tea.Quit())
		}
	}
	if w.done != nil {
		<-w.done
	}
	return nil
}

type robotState struct {
	row, col int
	dir      string
	last     string
	steps    int
	rejected int
}

type tuiModel struct {
	cfg          *config.SimulationConfig
	table        table.Model
	vp           viewport.Model
	filter       textinput.Model
	filtering    bool
	filterID     *int
	logs         []logMsg
	robots       map[int]*robotState
	order        []int
	styles       cellStyles
	snapshot     trace.SnapshotRow
	wrap         bool
	autoscroll   bool
	showGrid     bool
	help         bool
	finished     bool
	header       string
	headerHeight int
	height       int
}

func newTUIModel(cfg *config.SimulationConfig) tuiModel {
	cols := []table.Column{
		{Title: "Robot", Width: 6},
		{Title: "Position", Width: 9},
		{Title: "Dir", Width: 4},
		{Title: "Last", Width: 10},
		{Title: "Steps", Width: 6},
		{Title: "Rejected", Width: 8},
	}
	robots := make(map[int]*robotState)
	var order []int
	for _, r := range cfg.Robots {
		robots[r.ID] = &robotState{row: r.Row, col: r.Col, dir: strings.ToUpper(r.Direction)}
		order = append(order, r.ID)
	}
	t := table.New(table.WithColumns(cols), table.WithHeight(len(order)+1))
	fi := textinput.New()
	fi.Placeholder = "robot id"
	fi.Prompt = "filter> "
	fi.CharLimit = 6
	m := tuiModel{
		cfg:        cfg,
		table:      t,
		vp:         viewport.New(0, 0),
		filter:     fi,
		robots:     robots,
		order:      order,
		styles:     newCellStyles(lipgloss.DefaultRenderer()),
		autoscroll: true,
		showGrid:   true,
	}
	m.refreshTable()
	return m
}

func (m tuiModel) Init() tea.Cmd { return nil }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.vp.Width = msg.Width
		m.height = msg.Height
		m.refreshHeader()
		m.updateViewportHeight()
		m.refreshViewport()
	case tea.KeyMsg:
		if m.filtering {
			switch msg.Type {
			case tea.KeyEnter:
				m.applyFilter(m.filter.Value())
				m.filtering = false
				m.filter.Blur()
				m.updateViewportHeight()
				m.refreshViewport()
			case tea.KeyEsc:
				m.filtering = false
				m.filter.Blur()
				m.updateViewportHeight()
			default:
				var cmd tea.Cmd
				m.filter, cmd = m.filter.Update(msg)
				return m, cmd
			}
			return m, nil
		}
		if m.help {
			switch msg.String() {
			case "?", "esc", "q":
				m.help = false
			}
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "?":
			m.help = true
		case "w":
			m.wrap = !m.wrap
			m.refreshViewport()
		case "s":
			m.autoscroll = !m.autoscroll
			if m.autoscroll {
				m.vp.GotoBottom()
			}
		case "g":
			m.showGrid = !m.showGrid
			m.refreshHeader()
			m.updateViewportHeight()
		case "/":
			m.filtering = true
			m.filter.SetValue("")
			m.filter.Focus()
			m.updateViewportHeight()
			return m, textinput.Blink
		default:
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		}
	case logMsg:
		m.logs = append(m.logs, msg)
		m.track(msg.row)
		m.refreshTable()
		m.refreshHeader()
		m.refreshViewport()
	case snapshotMsg:
		m.snapshot = msg.SnapshotRow
		m.refreshHeader()
		m.updateViewportHeight()
	case finishedMsg:
		m.finished = true
	}
	return m, nil
}

func (m *tuiModel) track(row trace.StepRow) {
	st, ok := m.robots[row.RobotID]
	if !ok {
		st = &robotState{}
		m.robots[row.RobotID] = st
		m.order = append(m.order, row.RobotID)
	}
	if row.Rejected() {
		st.rejected++
		return
	}
	st.row, st.col, st.dir = row.Row, row.Col, row.Direction
	st.last = row.Effective
	st.steps++
}

func (m *tuiModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.order))
	for _, id := range m.order {
		st := m.robots[id]
		rows = append(rows, table.Row{
			strconv.Itoa(id),
			fmt.Sprintf("(%d,%d)", st.row, st.col),
			st.dir,
			st.last,
			strconv.Itoa(st.steps),
			strconv.Itoa(st.rejected),
		})
	}
	m.table.SetRows(rows)
	m.table.SetHeight(len(rows) + 1)
}

func (m *tuiModel) applyFilter(v string) {
	v = strings.TrimSpace(v)
	if v == "" {
		m.filterID = nil
		return
	}
	id, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	m.filterID = &id
}

func (m *tuiModel) refreshHeader() {
	m.header = m.renderHeader()
	m.headerHeight = lipgloss.Height(m.header)
}

func (m *tuiModel) updateViewportHeight() {
	bottomHeight := lipgloss.Height(m.renderBottom())
	h := m.height - m.headerHeight - bottomHeight - 2
	if m.filtering {
		h--
	}
	if h < 0 {
		h = 0
	}
	m.vp.Height = h
	if m.autoscroll {
		m.vp.GotoBottom()
	}
}

func (m *tuiModel) refreshViewport() {
	var lines []string
	for _, l := range m.logs {
		if m.filterID != nil && l.row.RobotID != *m.filterID {
			continue
		}
		if m.wrap {
			lines = append(lines, wordwrap.String(l.line, m.vp.Width))
		} else {
			lines = append(lines, l.line)
		}
	}
	m.vp.SetContent(strings.Join(lines, "\n"))
	if m.autoscroll {
		m.vp.GotoBottom()
	}
}

func (m tuiModel) View() string {
	if m.help {
		return m.renderHelp()
	}
	divider := strings.Repeat("─", m.vp.Width)
	sections := []string{m.header, divider, m.vp.View()}
	if m.filtering {
		sections = append(sections, m.filter.View())
	}
	sections = append(sections, divider, m.renderBottom())
	return strings.Join(sections, "\n")
}

func (m tuiModel) renderHeader() string {
	tableView := m.table.View()
	if !m.showGrid || len(m.snapshot.Rows) == 0 {
		return tableView
	}
	title := fmt.Sprintf("%s @ %d", m.snapshot.Kind, m.snapshot.Seq)
	gridView := frame(lipgloss.DefaultRenderer(), title, m.styles.render(m.snapshot.Rows))
	sep := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(" │ ")
	return lipgloss.JoinHorizontal(lipgloss.Top, tableView, sep, gridView)
}

func indicator(on bool) string {
	c := lipgloss.Color("9")
	if on {
		c = lipgloss.Color("10")
	}
	return lipgloss.NewStyle().Foreground(c).Render("●")
}

func (m tuiModel) renderBottom() string {
	status := "running"
	if m.finished {
		status = "finished (q to quit)"
	}
	filter := "all"
	if m.filterID != nil {
		filter = strconv.Itoa(*m.filterID)
	}
	return fmt.Sprintf("%s wrap  %s scroll  %s grid  robot: %s  rules: %s  %s  [? help]",
		indicator(m.wrap), indicator(m.autoscroll), indicator(m.showGrid),
		filter, m.cfg.Rules, status)
}

func (m tuiModel) renderHelp() string {
	var b strings.Builder
	b.WriteString("Keys\n\n")
	keys := [][2]string{
		{"w", "toggle line wrap"},
		{"s", "toggle autoscroll"},
		{"g", "toggle grid panel"},
		{"/", "filter steps by robot id (empty for all)"},
		{"up/down", "scroll log when autoscroll is off"},
		{"q", "quit"},
	}
	for _, k := range keys {
		fmt.Fprintf(&b, "  %-8s %s\n", k[0], k[1])
	}
	return b.String()
}
