package combat

// Path is the part of a shortest path a mover needs: its length and the
// first cell to step into.
type Path struct {
	Steps int
	First Pos
}

// Pathfinder runs breadth-first searches over open cells. Occupied
// reports cells that currently hold a living unit; those block every
// cell of a path except its two ends.
type Pathfinder struct {
	Map      *Map
	Occupied func(Pos) bool
}

func (pf *Pathfinder) passable(p Pos) bool {
	if !pf.Map.Open(p) {
		return false
	}
	return pf.Occupied == nil || !pf.Occupied(p)
}

// Distances returns the step count from start to every cell reachable
// from it. The start cell itself is always at distance 0, occupied or not.
func (pf *Pathfinder) Distances(start Pos) map[Pos]int {
	dist := map[Pos]int{start: 0}
	frontier := []Pos{start}
	for len(frontier) > 0 {
		cur := frontier[0]
		frontier = frontier[1:]
		d := dist[cur]
		for _, n := range cur.Neighbors() {
			if _, seen := dist[n]; seen || !pf.passable(n) {
				continue
			}
			dist[n] = d + 1
			frontier = append(frontier, n)
		}
	}
	return dist
}

// ShortestPath finds the length of the shortest path from start to
// target and, among all such paths, the first step that comes first in
// reading order. It searches outward from the target, so the occupant
// of the target cell (if any) never matters; the start cell is only
// ever an endpoint. ok is false when target cannot be reached.
func (pf *Pathfinder) ShortestPath(start, target Pos) (Path, bool) {
	if start == target {
		return Path{Steps: 0, First: start}, true
	}
	if !pf.Map.Open(start) || !pf.Map.Open(target) {
		return Path{}, false
	}
	if start.Adjacent(target) {
		return Path{Steps: 1, First: target}, true
	}

	fromTarget := pf.Distances(target)
	best := Path{Steps: -1}
	for _, n := range start.Neighbors() {
		d, ok := fromTarget[n]
		if !ok || n == target {
			continue
		}
		// Neighbours come in reading order, so strict < keeps the
		// earliest one on ties.
		if best.Steps < 0 || d+1 < best.Steps {
			best = Path{Steps: d + 1, First: n}
		}
	}
	if best.Steps < 0 {
		return Path{}, false
	}
	return best, true
}
