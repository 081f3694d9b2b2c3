package combat

import (
	"fmt"
	"strings"
)

type Event struct {
	Round   int            `json:"round"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Faction is one of the two sides of a battle.
type Faction uint8

const (
	Elf Faction = iota + 1
	Goblin
)

func (f Faction) String() string {
	switch f {
	case Elf:
		return "elf"
	case Goblin:
		return "goblin"
	}
	return fmt.Sprintf("faction(%d)", uint8(f))
}

// Marker is the map character for units of f.
func (f Faction) Marker() byte {
	switch f {
	case Elf:
		return 'E'
	case Goblin:
		return 'G'
	}
	return '?'
}

func (f Faction) Enemy() Faction {
	if f == Elf {
		return Goblin
	}
	return Elf
}

// ParseFaction accepts the yaml/CLI spelling of a faction name.
func ParseFaction(s string) (Faction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "elf", "elves", "e":
		return Elf, nil
	case "goblin", "goblins", "g":
		return Goblin, nil
	}
	return 0, fmt.Errorf("unknown faction %q", s)
}

func factionForMarker(c byte) (Faction, bool) {
	switch c {
	case 'E':
		return Elf, true
	case 'G':
		return Goblin, true
	}
	return 0, false
}

type Unit struct {
	ID      int
	Faction Faction
	Pos     Pos
	HP      int
	AP      int
}

func (u *Unit) Alive() bool { return u.HP > 0 }

func (u *Unit) Name() string {
	return fmt.Sprintf("%c%d", u.Faction.Marker(), u.ID)
}
