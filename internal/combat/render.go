package combat

import (
	"fmt"
	"slices"
	"strings"
)

// Render draws the map with living units on it. With hp set, each row is
// followed by the hit points of its units, left to right.
func Render(m *Map, units []*Unit, hp bool) string {
	grid := make([][]byte, m.H)
	for y := range grid {
		grid[y] = make([]byte, m.W)
		for x := range grid[y] {
			if m.Open(Pos{X: x, Y: y}) {
				grid[y][x] = '.'
			} else {
				grid[y][x] = '#'
			}
		}
	}

	rows := make([][]*Unit, m.H)
	for _, u := range units {
		if !u.Alive() || !m.InBounds(u.Pos) {
			continue
		}
		grid[u.Pos.Y][u.Pos.X] = u.Faction.Marker()
		rows[u.Pos.Y] = append(rows[u.Pos.Y], u)
	}

	var sb strings.Builder
	for y, line := range grid {
		sb.Write(line)
		if hp && len(rows[y]) > 0 {
			slices.SortFunc(rows[y], func(a, b *Unit) int { return a.Pos.X - b.Pos.X })
			labels := make([]string, len(rows[y]))
			for i, u := range rows[y] {
				labels[i] = fmt.Sprintf("%c(%d)", u.Faction.Marker(), u.HP)
			}
			sb.WriteString("   ")
			sb.WriteString(strings.Join(labels, ", "))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Render draws the battle's current state.
func (b *Battle) Render(hp bool) string { return Render(b.Map, b.Units, hp) }
