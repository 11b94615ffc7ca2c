package command

import "fmt"

// Order selects how commands for several robots are sequenced.
type Order string

const (
	// Interleave replays commands strictly in file order.
	Interleave Order = "interleave"
	// GroupByRobot runs every command of the first robot seen, then the
	// next robot, and so on. This matches the legacy multi-robot driver.
	GroupByRobot Order = "group"
)

// ParseOrder validates an order name; empty selects Interleave.
func ParseOrder(s string) (Order, error) {
	switch Order(s) {
	case "", Interleave:
		return Interleave, nil
	case GroupByRobot:
		return GroupByRobot, nil
	}
	return "", fmt.Errorf("unknown command order %q", s)
}

// Sequence returns cmds arranged according to o. The input is not modified.
func Sequence(cmds []Command, o Order) []Command {
	out := make([]Command, 0, len(cmds))
	if o != GroupByRobot {
		return append(out, cmds...)
	}
	groups := map[int][]Command{}
	var ids []int
	for _, c := range cmds {
		if _, ok := groups[c.RobotID]; !ok {
			ids = append(ids, c.RobotID)
		}
		groups[c.RobotID] = append(groups[c.RobotID], c)
	}
	for _, id := range ids {
		out = append(out, groups[id]...)
	}
	return out
}
