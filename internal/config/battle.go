package config

import (
	"errors"
	"fmt"
	"strings"
)

type BattleConfig struct {
	InitialHP           int            `yaml:"initial_hp"`
	AttackPower         map[string]int `yaml:"attack_power"`
	StopOnFirstCasualty bool           `yaml:"stop_on_first_casualty"`
	ProtectedFaction    string         `yaml:"protected_faction"`
	MaxRounds           int            `yaml:"max_rounds"`
	BoostStart          int            `yaml:"boost_start"`
}

var knownFactions = map[string]bool{"elf": true, "goblin": true}

// Default is the reference scenario: every unit starts with 200 HP and
// hits for 3.
func Default() *BattleConfig {
	return &BattleConfig{
		InitialHP:        200,
		AttackPower:      map[string]int{"elf": 3, "goblin": 3},
		ProtectedFaction: "elf",
		BoostStart:       4,
	}
}

// applyDefaults fills fields left out of the yaml file.
func (c *BattleConfig) applyDefaults() {
	def := Default()
	if c.InitialHP == 0 {
		c.InitialHP = def.InitialHP
	}
	norm := make(map[string]int, len(def.AttackPower))
	for k, v := range def.AttackPower {
		norm[k] = v
	}
	for k, v := range c.AttackPower {
		norm[strings.ToLower(strings.TrimSpace(k))] = v
	}
	c.AttackPower = norm
	if c.ProtectedFaction == "" {
		c.ProtectedFaction = def.ProtectedFaction
	}
	c.ProtectedFaction = strings.ToLower(strings.TrimSpace(c.ProtectedFaction))
	if c.BoostStart == 0 {
		c.BoostStart = def.BoostStart
	}
}

func (c *BattleConfig) Validate() error {
	var errs []error
	if c.InitialHP <= 0 {
		errs = append(errs, fmt.Errorf("initial_hp must be positive, got %d", c.InitialHP))
	}
	for f, ap := range c.AttackPower {
		if !knownFactions[f] {
			errs = append(errs, fmt.Errorf("attack_power: unknown faction %q", f))
			continue
		}
		if ap <= 0 {
			errs = append(errs, fmt.Errorf("attack_power.%s must be positive, got %d", f, ap))
		}
	}
	if !knownFactions[c.ProtectedFaction] {
		errs = append(errs, fmt.Errorf("protected_faction: unknown faction %q", c.ProtectedFaction))
	}
	if c.MaxRounds < 0 {
		errs = append(errs, fmt.Errorf("max_rounds must not be negative, got %d", c.MaxRounds))
	}
	if c.BoostStart <= 0 {
		errs = append(errs, fmt.Errorf("boost_start must be positive, got %d", c.BoostStart))
	}
	return errors.Join(errs...)
}
