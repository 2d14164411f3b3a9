package gamecfg

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Load parses the embedded defaults and, when path is set, overrides them
// section by section with the file at path. The merged result is validated.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
		return nil, fmt.Errorf("parse embedded defaults: %w", err)
	}

	if path != "" {
		override, err := readYAML(path)
		if err != nil {
			return nil, fmt.Errorf("read game config %s: %w", path, err)
		}
		cfg = merge(cfg, override)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// readYAML loads a YAML file. A missing file yields a zero config.
func readYAML(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// merge returns a with every non-zero section of b replacing a's.
// Tables are replaced whole, never appended.
func merge(a, b Config) Config {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.WinThreshold != 0 {
		out.WinThreshold = b.WinThreshold
	}
	if b.MinRosterSize != 0 {
		out.MinRosterSize = b.MinRosterSize
	}
	if b.MinAverageStamina != 0 {
		out.MinAverageStamina = b.MinAverageStamina
	}
	if b.EnemyPower != (EnemyPowerConfig{}) {
		out.EnemyPower = b.EnemyPower
	}
	if b.RarityWeightTotal != 0 {
		out.RarityWeightTotal = b.RarityWeightTotal
	}
	if len(b.Rarities) > 0 {
		out.Rarities = append([]RarityTier(nil), b.Rarities...)
	}
	if b.Case != (CaseConfig{}) {
		out.Case = b.Case
	}
	if b.StarterKit.Jitter != 0 || b.StarterKit.MinStat != 0 || b.StarterKit.MaxStat != 0 || len(b.StarterKit.Positions) > 0 {
		out.StarterKit = b.StarterKit
	}
	if len(b.Tactics) > 0 {
		out.Tactics = append([]Tactic(nil), b.Tactics...)
	}
	if len(b.Mascots) > 0 {
		out.Mascots = append([]Mascot(nil), b.Mascots...)
	}
	if len(b.SpecialEvents) > 0 {
		out.SpecialEvents = append([]SpecialEvent(nil), b.SpecialEvents...)
	}
	if b.Ambient.Probability != 0 || len(b.Ambient.Events) > 0 {
		out.Ambient = b.Ambient
	}
	if b.Rewards != (RewardsConfig{}) {
		out.Rewards = b.Rewards
	}
	if b.AceBet != (AceBetConfig{}) {
		out.AceBet = b.AceBet
	}
	if len(b.Trainings) > 0 {
		out.Trainings = append([]Training(nil), b.Trainings...)
	}
	if len(b.Maps) > 0 {
		out.Maps = append([]string(nil), b.Maps...)
	}
	if len(b.RoundPhrases) > 0 {
		out.RoundPhrases = append([]string(nil), b.RoundPhrases...)
	}
	if len(b.Nicknames) > 0 {
		out.Nicknames = append([]string(nil), b.Nicknames...)
	}
	if len(b.Divisions) > 0 {
		out.Divisions = append([]Division(nil), b.Divisions...)
	}
	if b.NewUser != (NewUserConfig{}) {
		out.NewUser = b.NewUser
	}

	return out
}
