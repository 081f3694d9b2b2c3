package combat

import (
	"fmt"

	"go.uber.org/zap"
)

// BoostResult is the weakest attack power with which the protected
// faction wins without losing anyone, and how that battle went.
type BoostResult struct {
	AttackPower int       `json:"attack_power"`
	Attempts    int       `json:"attempts"`
	Result      SimResult `json:"result"`
}

// FindMinimumBoost replays sc with the protected faction's attack power
// raised one point at a time from start, stopping each replay at the
// first protected casualty. Any power at or above the initial hit points
// kills in one blow, so the search gives up there.
func FindMinimumBoost(sc *Scenario, base Options, start int) (BoostResult, error) {
	if start <= 0 {
		start = DefaultAttackPower + 1
	}
	if base.InitialHP <= 0 {
		base.InitialHP = DefaultHP
	}
	if base.ProtectedFaction == 0 {
		base.ProtectedFaction = Elf
	}
	log := base.Logger
	if log == nil {
		log = zap.NewNop()
	}
	limit := base.InitialHP
	if start > limit {
		limit = start
	}

	attempts := 0
	for ap := start; ap <= limit; ap++ {
		attempts++
		b, err := NewBattle(sc, BoostOptions(base, ap))
		if err != nil {
			return BoostResult{}, err
		}
		res, err := b.Run()
		if err != nil {
			return BoostResult{}, fmt.Errorf("attack power %d: %w", ap, err)
		}
		won := !res.Aborted && res.Winner == base.ProtectedFaction.String()
		log.Info("boost attempt",
			zap.Int("attack_power", ap),
			zap.Bool("won", won),
			zap.String("casualty", res.Casualty),
			zap.Int("rounds", res.Rounds))
		if won {
			return BoostResult{AttackPower: ap, Attempts: attempts, Result: res}, nil
		}
	}
	return BoostResult{Attempts: attempts}, ErrNoBoost
}

// BoostOptions is base with the protected faction hitting for ap and the
// battle halted at its first casualty. The AttackPower map is copied.
func BoostOptions(base Options, ap int) Options {
	if base.ProtectedFaction == 0 {
		base.ProtectedFaction = Elf
	}
	opts := base
	opts.StopOnFirstCasualty = true
	opts.AttackPower = make(map[Faction]int, len(base.AttackPower)+1)
	for f, v := range base.AttackPower {
		opts.AttackPower[f] = v
	}
	opts.AttackPower[base.ProtectedFaction] = ap
	return opts
}
