package combat

import (
	"go.uber.org/zap"

	"cavebattle/internal/config"
)

const (
	DefaultHP          = 200
	DefaultAttackPower = 3
)

// Options control how a battle is set up and when it stops.
type Options struct {
	InitialHP   int
	AttackPower map[Faction]int

	// StopOnFirstCasualty halts the battle the moment a unit of
	// ProtectedFaction dies.
	StopOnFirstCasualty bool
	ProtectedFaction    Faction

	// MaxRounds caps the number of rounds; 0 means no cap.
	MaxRounds int

	// Record keeps every event in the result; Frames keeps a rendered
	// map after each completed round.
	Record bool
	Frames bool

	Logger *zap.Logger
	// Emit, when set, receives every event as it happens.
	Emit func(Event)
}

// DefaultOptions is the reference setup: 200 HP and 3 AP for everyone.
func DefaultOptions() Options {
	return Options{
		InitialHP:        DefaultHP,
		AttackPower:      map[Faction]int{Elf: DefaultAttackPower, Goblin: DefaultAttackPower},
		ProtectedFaction: Elf,
	}
}

func (o Options) attackPower(f Faction) int {
	if ap, ok := o.AttackPower[f]; ok && ap > 0 {
		return ap
	}
	return DefaultAttackPower
}

// NewOptions turns a loaded battle config into engine options.
func NewOptions(cfg *config.BattleConfig) (Options, error) {
	opts := DefaultOptions()
	if cfg == nil {
		return opts, nil
	}
	if err := cfg.Validate(); err != nil {
		return Options{}, err
	}
	opts.InitialHP = cfg.InitialHP
	for name, ap := range cfg.AttackPower {
		f, err := ParseFaction(name)
		if err != nil {
			return Options{}, err
		}
		opts.AttackPower[f] = ap
	}
	protected, err := ParseFaction(cfg.ProtectedFaction)
	if err != nil {
		return Options{}, err
	}
	opts.ProtectedFaction = protected
	opts.StopOnFirstCasualty = cfg.StopOnFirstCasualty
	opts.MaxRounds = cfg.MaxRounds
	return opts, nil
}
