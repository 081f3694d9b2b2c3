package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"cavebattle/internal/combat"
	"cavebattle/internal/config"
	"cavebattle/internal/util"
)

func main() {
	var cfgDir, in, out string
	var part int
	var render, saveLog, verbose bool
	flag.StringVar(&cfgDir, "config", "assets", "config dir")
	flag.StringVar(&in, "in", "-", "map file, - for stdin")
	flag.StringVar(&out, "out", "", "write the JSON result here")
	flag.IntVar(&part, "part", 1, "1: plain battle, 2: lowest elf attack power with no elf losses")
	flag.BoolVar(&render, "render", false, "print the map after every round")
	flag.BoolVar(&saveLog, "log", false, "keep the full event log in the JSON result")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.Parse()

	log, err := util.NewLogger(verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(log, cfgDir, in, out, part, render, saveLog); err != nil {
		log.Error("simsvc failed", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.Logger, cfgDir, in, out string, part int, render, saveLog bool) error {
	cfg, err := config.Load(cfgDir)
	if err != nil {
		return err
	}
	opts, err := combat.NewOptions(cfg)
	if err != nil {
		return err
	}
	opts.Logger = log
	opts.Record = saveLog

	sc, err := readScenario(in)
	if err != nil {
		return err
	}
	log.Debug("map loaded",
		zap.Int("w", sc.Map.W), zap.Int("h", sc.Map.H), zap.Int("units", len(sc.Spawns)))

	var result any
	switch part {
	case 1:
		res, err := play(os.Stdout, sc, opts, render)
		if err != nil {
			return err
		}
		result = res
	case 2:
		br, err := combat.FindMinimumBoost(sc, opts, cfg.BoostStart)
		if err != nil {
			return err
		}
		fmt.Printf("Attack power: %d (after %d attempts)\n", br.AttackPower, br.Attempts)
		if render {
			// Replay the winning run; the search itself stays quiet.
			replay := combat.BoostOptions(opts, br.AttackPower)
			replay.Record = false
			if _, err := play(os.Stdout, sc, replay, true); err != nil {
				return err
			}
		} else {
			fmt.Printf("Outcome: %d * %d = %d\n", br.Result.Rounds, br.Result.HPLeft, br.Result.Outcome)
		}
		result = br
	default:
		return fmt.Errorf("unknown part %d", part)
	}

	if out == "" {
		return nil
	}
	if err := os.WriteFile(out, combat.MarshalPretty(result), 0644); err != nil {
		return err
	}
	log.Info("result saved", zap.String("file", filepath.Base(out)))
	return nil
}

// play fights one battle on sc, printing the map to w after every round
// when render is set, and the outcome line at the end.
func play(w io.Writer, sc *combat.Scenario, opts combat.Options, render bool) (combat.SimResult, error) {
	var b *combat.Battle
	if render {
		opts.Emit = func(ev combat.Event) {
			if ev.Type == "RoundEnd" {
				fmt.Fprintf(w, "After %d rounds:\n%s\n", b.Round(), b.Render(true))
			}
		}
	}
	b, err := combat.NewBattle(sc, opts)
	if err != nil {
		return combat.SimResult{}, err
	}
	if render {
		fmt.Fprintf(w, "Initially:\n%s\n", b.Render(true))
	}
	res, err := b.Run()
	if err != nil {
		return res, err
	}
	fmt.Fprintf(w, "Outcome: %d * %d = %d\n", res.Rounds, res.HPLeft, res.Outcome)
	if res.Aborted {
		fmt.Fprintf(w, "Stopped early: %s died\n", res.Casualty)
	}
	return res, nil
}

func readScenario(in string) (*combat.Scenario, error) {
	var r io.Reader = os.Stdin
	if in != "-" {
		f, err := os.Open(in)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return combat.Parse(r)
}
