package combat

import (
	"bufio"
	"io"
	"strings"
)

// Map is the static cave layout. Units are not part of it.
type Map struct {
	W, H  int
	walls []bool
}

// NewMap builds an all-open map of the given size.
func NewMap(w, h int) *Map {
	return &Map{W: w, H: h, walls: make([]bool, w*h)}
}

func (m *Map) InBounds(p Pos) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < m.W && p.Y < m.H
}

// Open reports whether p is floor. Anything outside the map is wall.
func (m *Map) Open(p Pos) bool {
	return m.InBounds(p) && !m.walls[p.Y*m.W+p.X]
}

func (m *Map) setWall(p Pos) { m.walls[p.Y*m.W+p.X] = true }

// Spawn is a unit marker found while scanning the map.
type Spawn struct {
	Faction Faction
	Pos     Pos
}

// Scenario is a parsed input: the map plus the starting units in
// reading order.
type Scenario struct {
	Map    *Map
	Spawns []Spawn
}

// Parse reads a map drawn with '#' walls, '.' floor and 'E'/'G' units.
func Parse(r io.Reader) (*Scenario, error) {
	var rows []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		rows = append(rows, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	for len(rows) > 0 && strings.TrimSpace(rows[len(rows)-1]) == "" {
		rows = rows[:len(rows)-1]
	}
	if len(rows) == 0 {
		return nil, &MalformedInputError{Reason: "empty map"}
	}

	w := len(rows[0])
	m := NewMap(w, len(rows))
	out := &Scenario{Map: m}
	for y, row := range rows {
		if len(row) != w {
			return nil, &MalformedInputError{Line: y + 1, Reason: "ragged row"}
		}
		for x := 0; x < len(row); x++ {
			c := row[x]
			p := Pos{X: x, Y: y}
			switch c {
			case '#':
				m.setWall(p)
			case '.':
			default:
				f, ok := factionForMarker(c)
				if !ok {
					return nil, &MalformedInputError{Line: y + 1, Col: x + 1, Char: rune(c)}
				}
				out.Spawns = append(out.Spawns, Spawn{Faction: f, Pos: p})
			}
		}
	}
	return out, nil
}

// ParseString is Parse for inline maps.
func ParseString(s string) (*Scenario, error) {
	return Parse(strings.NewReader(s))
}
