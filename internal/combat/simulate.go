package combat

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SimResult struct {
	RunID     string         `json:"run_id"`
	Winner    string         `json:"winner,omitempty"`
	Rounds    int            `json:"rounds"`
	HPLeft    int            `json:"hp_left"`
	Outcome   int            `json:"outcome"`
	Aborted   bool           `json:"aborted,omitempty"`
	Casualty  string         `json:"casualty,omitempty"`
	Survivors []UnitReport   `json:"survivors"`
	Losses    map[string]int `json:"losses"`
	Events    []Event        `json:"events,omitempty"`
	Frames    []string       `json:"frames,omitempty"`
}

type UnitReport struct {
	ID      string `json:"id"`
	Faction string `json:"faction"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	HP      int    `json:"hp"`
}

// Battle is one fight on one map. Units is the owned unit list; At is
// the occupancy index derived from it and kept in step on every move
// and death.
type Battle struct {
	Field
	opts   Options
	log    *zap.Logger
	runID  string
	round  int
	events []Event
	frames []string
	losses map[Faction]int

	over     bool
	aborted  bool
	casualty *Unit
}

// NewBattle places a fresh unit for every spawn of sc.
func NewBattle(sc *Scenario, opts Options) (*Battle, error) {
	if opts.InitialHP <= 0 {
		opts.InitialHP = DefaultHP
	}
	if opts.ProtectedFaction == 0 {
		opts.ProtectedFaction = Elf
	}
	b := &Battle{
		Field: Field{
			Map: sc.Map,
			At:  make(map[Pos]*Unit, len(sc.Spawns)),
		},
		opts:   opts,
		runID:  uuid.NewString(),
		losses: map[Faction]int{},
	}
	b.log = opts.Logger
	if b.log == nil {
		b.log = zap.NewNop()
	}
	b.log = b.log.With(zap.String("run_id", b.runID))

	for i, s := range sc.Spawns {
		if !sc.Map.Open(s.Pos) {
			return nil, &MalformedInputError{Line: s.Pos.Y + 1, Col: s.Pos.X + 1, Reason: "unit on a wall"}
		}
		if _, dup := b.At[s.Pos]; dup {
			return nil, &MalformedInputError{Line: s.Pos.Y + 1, Col: s.Pos.X + 1, Reason: "two units on one cell"}
		}
		u := &Unit{
			ID:      i,
			Faction: s.Faction,
			Pos:     s.Pos,
			HP:      opts.InitialHP,
			AP:      opts.attackPower(s.Faction),
		}
		b.Units = append(b.Units, u)
		b.At[u.Pos] = u
		b.emit(Event{Type: "Spawn", Payload: map[string]any{
			"id": u.Name(), "faction": u.Faction.String(), "x": u.Pos.X, "y": u.Pos.Y,
			"hp": u.HP, "ap": u.AP,
		}})
	}
	return b, nil
}

func (b *Battle) RunID() string { return b.runID }
func (b *Battle) Round() int    { return b.round }
func (b *Battle) Over() bool    { return b.over }

// Losses counts units of f killed so far.
func (b *Battle) Losses(f Faction) int { return b.losses[f] }

func (b *Battle) emit(ev Event) {
	ev.Round = b.round
	if b.opts.Record {
		b.events = append(b.events, ev)
	}
	if b.opts.Emit != nil {
		b.opts.Emit(ev)
	}
}

// Run plays rounds until the battle ends.
func (b *Battle) Run() (SimResult, error) {
	b.log.Debug("battle start", zap.Int("units", len(b.Units)))
	for !b.over {
		if b.opts.MaxRounds > 0 && b.round >= b.opts.MaxRounds {
			return b.Result(), fmt.Errorf("after %d rounds: %w", b.round, ErrRoundLimit)
		}
		if err := b.Step(); err != nil {
			return b.Result(), err
		}
	}
	res := b.Result()
	b.log.Info("battle end",
		zap.String("winner", res.Winner),
		zap.Int("rounds", res.Rounds),
		zap.Int("hp_left", res.HPLeft),
		zap.Int("outcome", res.Outcome),
		zap.Bool("aborted", res.Aborted))
	b.emit(Event{Type: "BattleEnd", Payload: map[string]any{
		"winner": res.Winner, "rounds": res.Rounds, "hp_left": res.HPLeft, "outcome": res.Outcome,
	}})
	res.Events = b.events
	return res, nil
}

// Step plays one round. The round counts as completed only if every
// unit took its turn before the enemy ran out.
func (b *Battle) Step() error {
	if b.over {
		return nil
	}
	order := make([]*Unit, 0, len(b.Units))
	for _, u := range b.Units {
		if u.Alive() {
			order = append(order, u)
		}
	}
	slices.SortFunc(order, func(x, y *Unit) int { return x.Pos.Compare(y.Pos) })

	for _, u := range order {
		if !u.Alive() {
			continue
		}
		t := b.Decide(u)
		if t.State == NoEnemies {
			b.over = true
			b.compact()
			return nil
		}
		if t.State == Moved {
			if err := b.move(u, t.Step); err != nil {
				return err
			}
		}
		if t.Target != nil {
			if err := b.attack(u, t.Target); err != nil {
				return err
			}
			if b.over {
				b.compact()
				return nil
			}
		}
	}

	b.compact()
	if err := b.Check(); err != nil {
		return err
	}
	b.round++
	b.log.Debug("round complete", zap.Int("round", b.round), zap.Int("alive", len(b.Units)))
	b.emit(Event{Type: "RoundEnd", Payload: map[string]any{"alive": len(b.Units)}})
	if b.opts.Frames {
		b.frames = append(b.frames, Render(b.Map, b.Units, true))
	}
	return nil
}

func (b *Battle) move(u *Unit, to Pos) error {
	switch {
	case !u.Pos.Adjacent(to):
		return b.violation(u, fmt.Sprintf("move %v -> %v is not a single step", u.Pos, to))
	case !b.Map.Open(to):
		return b.violation(u, fmt.Sprintf("move onto wall at %v", to))
	case b.occupied(to):
		return b.violation(u, fmt.Sprintf("move onto occupied cell %v (%s)", to, b.At[to].Name()))
	}
	from := u.Pos
	delete(b.At, from)
	u.Pos = to
	b.At[to] = u
	b.log.Debug("move", zap.String("unit", u.Name()), zap.Int("x", to.X), zap.Int("y", to.Y))
	b.emit(Event{Type: "Move", Payload: map[string]any{
		"id": u.Name(), "from": []int{from.X, from.Y}, "to": []int{to.X, to.Y},
	}})
	return nil
}

func (b *Battle) attack(u, target *Unit) error {
	if !target.Alive() || target.Faction == u.Faction || !u.Pos.Adjacent(target.Pos) {
		return b.violation(u, fmt.Sprintf("illegal attack on %s", target.Name()))
	}
	target.HP -= u.AP
	if target.HP < 0 {
		target.HP = 0
	}
	b.log.Debug("hit",
		zap.String("attacker", u.Name()),
		zap.String("target", target.Name()),
		zap.Int("dmg", u.AP),
		zap.Int("hp", target.HP))
	b.emit(Event{Type: "Hit", Payload: map[string]any{
		"caster": u.Name(), "target": target.Name(), "dmg": u.AP, "hp": target.HP,
	}})
	if target.Alive() {
		return nil
	}

	delete(b.At, target.Pos)
	b.losses[target.Faction]++
	b.log.Debug("death", zap.String("unit", target.Name()), zap.String("by", u.Name()))
	b.emit(Event{Type: "Death", Payload: map[string]any{
		"id": target.Name(), "faction": target.Faction.String(), "x": target.Pos.X, "y": target.Pos.Y,
	}})
	if b.opts.StopOnFirstCasualty && target.Faction == b.opts.ProtectedFaction {
		b.over, b.aborted, b.casualty = true, true, target
		b.log.Debug("casualty stop", zap.String("unit", target.Name()))
		b.emit(Event{Type: "Abort", Payload: map[string]any{"casualty": target.Name()}})
	}
	return nil
}

func (b *Battle) violation(u *Unit, detail string) error {
	b.over = true
	err := &InvariantError{Round: b.round, Unit: u.Name(), Detail: detail}
	b.log.Error("invariant violation", zap.Error(err))
	return err
}

// compact drops dead units from the living set.
func (b *Battle) compact() {
	b.Units = slices.DeleteFunc(b.Units, func(u *Unit) bool { return !u.Alive() })
}

// Check verifies the occupancy index against the unit list, both ways.
func (b *Battle) Check() error {
	seen := make(map[Pos]*Unit, len(b.Units))
	for _, u := range b.Units {
		if !u.Alive() {
			continue
		}
		if o, dup := seen[u.Pos]; dup {
			return b.violation(u, fmt.Sprintf("shares %v with %s", u.Pos, o.Name()))
		}
		if !b.Map.Open(u.Pos) {
			return b.violation(u, fmt.Sprintf("stands in a wall at %v", u.Pos))
		}
		if b.At[u.Pos] != u {
			return b.violation(u, fmt.Sprintf("missing from occupancy index at %v", u.Pos))
		}
		seen[u.Pos] = u
	}
	for p, u := range b.At {
		if u.Pos != p || !u.Alive() {
			return b.violation(u, fmt.Sprintf("stale occupancy entry at %v", p))
		}
	}
	return nil
}

// Result summarises the battle so far.
func (b *Battle) Result() SimResult {
	res := SimResult{
		RunID:  b.runID,
		Rounds: b.round,
		Losses: map[string]int{},
		Events: b.events,
		Frames: b.frames,
	}
	factions := map[Faction]bool{}
	for _, u := range b.Units {
		if !u.Alive() {
			continue
		}
		factions[u.Faction] = true
		res.HPLeft += u.HP
		res.Survivors = append(res.Survivors, UnitReport{
			ID: u.Name(), Faction: u.Faction.String(), X: u.Pos.X, Y: u.Pos.Y, HP: u.HP,
		})
	}
	for f, n := range b.losses {
		res.Losses[f.String()] = n
	}
	res.Outcome = res.HPLeft * res.Rounds
	if b.over && !b.aborted && len(factions) == 1 {
		for f := range factions {
			res.Winner = f.String()
		}
	}
	if b.aborted {
		res.Aborted = true
		res.Casualty = b.casualty.Name()
	}
	return res
}

func MarshalPretty(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}
