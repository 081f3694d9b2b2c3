package combat

// TurnState is where a unit's turn ended up after targeting.
type TurnState uint8

const (
	// NoEnemies: nothing left to fight, the battle is over.
	NoEnemies TurnState = iota
	// InRange: already next to an enemy, no move.
	InRange
	// Moved: took one step towards the nearest reachable in-range square.
	Moved
	// CannotMove: no in-range square is free and reachable.
	CannotMove
)

func (s TurnState) String() string {
	switch s {
	case NoEnemies:
		return "no_enemies"
	case InRange:
		return "in_range"
	case Moved:
		return "moved"
	case CannotMove:
		return "cannot_move"
	}
	return "unknown"
}

// Turn is a unit's decision for one turn. Step is the unit's position
// after moving (its current position if it did not move). Target is the
// enemy to attack, nil when nothing is adjacent after the move.
type Turn struct {
	State  TurnState
	Dest   Pos
	Step   Pos
	Target *Unit
}

// Field is the read-only battle state targeting works on.
type Field struct {
	Map   *Map
	Units []*Unit
	// At is the occupancy index: living unit by position.
	At map[Pos]*Unit
}

func (f *Field) occupied(p Pos) bool {
	u, ok := f.At[p]
	return ok && u.Alive()
}

func (f *Field) pathfinder() *Pathfinder {
	return &Pathfinder{Map: f.Map, Occupied: f.occupied}
}

// Decide works out what u does this turn. It does not mutate anything.
func (f *Field) Decide(u *Unit) Turn {
	enemy := u.Faction.Enemy()
	var enemies []*Unit
	for _, o := range f.Units {
		if o.Alive() && o.Faction == enemy {
			enemies = append(enemies, o)
		}
	}
	if len(enemies) == 0 {
		return Turn{State: NoEnemies, Step: u.Pos}
	}

	t := Turn{State: InRange, Step: u.Pos}
	if !f.nextToEnemy(u.Pos, enemy) {
		t.State = CannotMove
		if dest, step, ok := f.chooseMove(u, enemies); ok {
			t.State, t.Dest, t.Step = Moved, dest, step
		}
	}
	t.Target = f.weakestAdjacent(t.Step, enemy)
	return t
}

func (f *Field) nextToEnemy(p Pos, enemy Faction) bool {
	for _, n := range p.Neighbors() {
		if o, ok := f.At[n]; ok && o.Alive() && o.Faction == enemy {
			return true
		}
	}
	return false
}

// chooseMove picks the nearest reachable in-range square (reading order
// on ties) and the first step towards it.
func (f *Field) chooseMove(u *Unit, enemies []*Unit) (dest, step Pos, ok bool) {
	pf := f.pathfinder()
	dist := pf.Distances(u.Pos)

	bestDist := -1
	for _, e := range enemies {
		for _, sq := range e.Pos.Neighbors() {
			if !f.Map.Open(sq) || f.occupied(sq) {
				continue
			}
			d, reachable := dist[sq]
			if !reachable {
				continue
			}
			if bestDist < 0 || d < bestDist || (d == bestDist && sq.Less(dest)) {
				bestDist, dest = d, sq
			}
		}
	}
	if bestDist < 0 {
		return Pos{}, Pos{}, false
	}
	path, ok := pf.ShortestPath(u.Pos, dest)
	if !ok {
		return Pos{}, Pos{}, false
	}
	return dest, path.First, true
}

// weakestAdjacent returns the adjacent living enemy with the fewest hit
// points. Neighbours are scanned in reading order, so ties go to the
// earliest one.
func (f *Field) weakestAdjacent(p Pos, enemy Faction) *Unit {
	var best *Unit
	for _, n := range p.Neighbors() {
		o, ok := f.At[n]
		if !ok || !o.Alive() || o.Faction != enemy {
			continue
		}
		if best == nil || o.HP < best.HP {
			best = o
		}
	}
	return best
}
