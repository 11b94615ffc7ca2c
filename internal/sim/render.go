package sim

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"vacuum-sim/internal/grid"
)

// cellStyles maps grid symbols to their display style.
type cellStyles map[byte]lipgloss.Style

func newCellStyles(r *lipgloss.Renderer) cellStyles {
	return cellStyles{
		grid.Robot.Symbol(): r.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		grid.Wall.Symbol():  r.NewStyle().Foreground(lipgloss.Color("8")),
		grid.Cat.Symbol():   r.NewStyle().Foreground(lipgloss.Color("11")),
		grid.Dirty.Symbol(): r.NewStyle().Foreground(lipgloss.Color("3")),
		grid.Water.Symbol(): r.NewStyle().Foreground(lipgloss.Color("12")),
		grid.Mud.Symbol():   r.NewStyle().Foreground(lipgloss.Color("1")),
		grid.Soap.Symbol():  r.NewStyle().Foreground(lipgloss.Color("13")),
	}
}

// render styles each cell of a snapshot. Clean cells are left plain.
func (cs cellStyles) render(rows []string) string {
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j := 0; j < len(row); j++ {
			ch := row[j]
			if st, ok := cs[ch]; ok {
				b.WriteString(st.Render(string(ch)))
				continue
			}
			b.WriteByte(ch)
		}
	}
	return b.String()
}

// frame draws a rounded border around a rendered grid.
func frame(r *lipgloss.Renderer, title, body string) string {
	box := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	if title == "" {
		return box.Render(body)
	}
	head := r.NewStyle().Bold(true).Render(title)
	return lipgloss.JoinVertical(lipgloss.Left, head, box.Render(body))
}
