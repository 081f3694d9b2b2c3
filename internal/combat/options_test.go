package combat

import (
	"testing"

	"cavebattle/internal/config"
)

func TestNewOptions_FromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.InitialHP = 50
	cfg.AttackPower["elf"] = 12
	cfg.ProtectedFaction = "goblin"
	cfg.StopOnFirstCasualty = true
	cfg.MaxRounds = 9

	opts, err := NewOptions(cfg)
	if err != nil {
		t.Fatalf("NewOptions: %v", err)
	}
	if opts.InitialHP != 50 || opts.AttackPower[Elf] != 12 || opts.AttackPower[Goblin] != 3 {
		t.Fatalf("unexpected options: %+v", opts)
	}
	if opts.ProtectedFaction != Goblin || !opts.StopOnFirstCasualty || opts.MaxRounds != 9 {
		t.Fatalf("unexpected options: %+v", opts)
	}
}

func TestNewOptions_NilConfig(t *testing.T) {
	opts, err := NewOptions(nil)
	if err != nil {
		t.Fatalf("NewOptions: %v", err)
	}
	if opts.InitialHP != DefaultHP || opts.attackPower(Elf) != DefaultAttackPower {
		t.Fatalf("expected defaults, got %+v", opts)
	}
}

func TestNewOptions_Invalid(t *testing.T) {
	cfg := config.Default()
	cfg.AttackPower["goblin"] = -1
	if _, err := NewOptions(cfg); err == nil {
		t.Fatal("expected an error for a negative attack power")
	}
}

func TestParseFaction(t *testing.T) {
	for in, want := range map[string]Faction{"elf": Elf, "Goblin": Goblin, " E ": Elf, "goblins": Goblin} {
		got, err := ParseFaction(in)
		if err != nil || got != want {
			t.Fatalf("ParseFaction(%q) = %v, %v; expected %v", in, got, err, want)
		}
	}
	if _, err := ParseFaction("orc"); err == nil {
		t.Fatal("expected an error for an unknown faction")
	}
}
