package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"cavebattle/internal/combat"
)

const sampleMap = `#######
#.G...#
#...EG#
#.#.#G#
#..G#E#
#.....#
#######
`

func writeMap(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "map.txt")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun_PartOneWritesResult(t *testing.T) {
	in := writeMap(t, sampleMap)
	out := filepath.Join(t.TempDir(), "out.json")
	if err := run(zap.NewNop(), t.TempDir(), in, out, 1, false, true); err != nil {
		t.Fatalf("run: %v", err)
	}
	var res struct {
		Rounds  int `json:"rounds"`
		HPLeft  int `json:"hp_left"`
		Outcome int `json:"outcome"`
		Events  []struct {
			Type string `json:"type"`
		} `json:"events"`
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(b, &res); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if res.Outcome != 27730 || res.Rounds != 47 || res.HPLeft != 590 {
		t.Fatalf("expected 47 * 590 = 27730, got %d * %d = %d", res.Rounds, res.HPLeft, res.Outcome)
	}
	if len(res.Events) == 0 {
		t.Fatal("expected the event log with -log")
	}
}

func TestRun_PartTwo(t *testing.T) {
	in := writeMap(t, sampleMap)
	out := filepath.Join(t.TempDir(), "out.json")
	if err := run(zap.NewNop(), filepath.Join("..", "..", "assets"), in, out, 2, false, false); err != nil {
		t.Fatalf("run: %v", err)
	}
	var br struct {
		AttackPower int `json:"attack_power"`
		Result      struct {
			Outcome int `json:"outcome"`
		} `json:"result"`
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(b, &br); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if br.AttackPower != 15 || br.Result.Outcome != 4988 {
		t.Fatalf("expected power 15 and outcome 4988, got %d and %d", br.AttackPower, br.Result.Outcome)
	}
}

func TestRun_Errors(t *testing.T) {
	if err := run(zap.NewNop(), t.TempDir(), writeMap(t, "#?#\n"), "", 1, false, false); err == nil {
		t.Fatal("expected a parse error for an unknown map char")
	}
	if err := run(zap.NewNop(), t.TempDir(), writeMap(t, sampleMap), "", 3, false, false); err == nil {
		t.Fatal("expected an error for an unknown part")
	}
	if err := run(zap.NewNop(), t.TempDir(), filepath.Join(t.TempDir(), "missing.txt"), "", 1, false, false); err == nil {
		t.Fatal("expected an error for a missing map file")
	}
}

func TestRun_Render(t *testing.T) {
	if err := run(zap.NewNop(), t.TempDir(), writeMap(t, sampleMap), "", 1, true, false); err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestPlay_RendersEveryRound(t *testing.T) {
	sc, err := combat.ParseString(sampleMap)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	res, err := play(&buf, sc, combat.DefaultOptions(), true)
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "Initially:\n") {
		t.Fatal("expected the starting map first")
	}
	if n := strings.Count(out, "After "); n != res.Rounds {
		t.Fatalf("expected %d rendered rounds, got %d", res.Rounds, n)
	}
	if !strings.Contains(out, "After 2 rounds:\n#######\n#...G.#   G(200)\n") {
		t.Fatal("round two frame missing from the output")
	}
	if !strings.HasSuffix(out, "Outcome: 47 * 590 = 27730\n") {
		t.Fatal("expected the outcome line last")
	}
}

func TestPlay_ReplaysWinningBoost(t *testing.T) {
	sc, err := combat.ParseString(sampleMap)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	res, err := play(&buf, sc, combat.BoostOptions(combat.DefaultOptions(), 15), true)
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if res.Aborted || res.Outcome != 4988 {
		t.Fatalf("expected the winning boost run 29 * 172 = 4988, got %+v", res)
	}
	if !strings.HasSuffix(buf.String(), "Outcome: 29 * 172 = 4988\n") {
		t.Fatal("expected the replayed outcome line")
	}
}

func TestRun_PartTwoRender(t *testing.T) {
	if err := run(zap.NewNop(), t.TempDir(), writeMap(t, sampleMap), "", 2, true, false); err != nil {
		t.Fatalf("run: %v", err)
	}
}
