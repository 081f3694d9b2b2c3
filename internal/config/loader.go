package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const BattleFile = "battle.yaml"

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// Load reads battle.yaml from dir. A missing file gives the defaults.
func Load(dir string) (*BattleConfig, error) {
	return LoadFile(filepath.Join(dir, BattleFile))
}

func LoadFile(path string) (*BattleConfig, error) {
	var bc BattleConfig
	if err := loadYAML(path, &bc); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	bc.applyDefaults()
	if err := bc.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &bc, nil
}
