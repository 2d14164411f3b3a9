package gamecfg

import (
	"fmt"
	"strings"

	"arena-manager/internal/domain"
)

// Validate checks the semantic constraints of a Config and reports every
// violation at once.
func Validate(cfg Config) error {
	var errs []string

	if cfg.WinThreshold < 1 {
		errs = append(errs, "win_threshold must be >= 1")
	}
	if cfg.MinRosterSize < 1 {
		errs = append(errs, "min_roster_size must be >= 1")
	}
	if cfg.MinAverageStamina < 0 || cfg.MinAverageStamina > 100 {
		errs = append(errs, "min_average_stamina must be in [0,100]")
	}
	if cfg.EnemyPower.MinFactor <= 0 || cfg.EnemyPower.MaxFactor < cfg.EnemyPower.MinFactor {
		errs = append(errs, "enemy_power requires 0 < min_factor <= max_factor")
	}

	// rarity simplex
	if len(cfg.Rarities) == 0 {
		errs = append(errs, "rarities must not be empty")
	}
	sum := 0
	seen := map[string]bool{}
	for i, r := range cfg.Rarities {
		if r.Name == "" {
			errs = append(errs, fmt.Sprintf("rarities[%d].name is required", i))
		}
		if seen[r.Name] {
			errs = append(errs, fmt.Sprintf("rarities[%d].name %q is duplicated", i, r.Name))
		}
		seen[r.Name] = true
		if r.Weight <= 0 {
			errs = append(errs, fmt.Sprintf("rarities[%d].weight must be > 0", i))
		}
		sum += r.Weight
	}
	if cfg.RarityWeightTotal != 0 && sum != cfg.RarityWeightTotal {
		errs = append(errs, fmt.Sprintf("rarity weights sum to %d, want rarity_weight_total %d", sum, cfg.RarityWeightTotal))
	}

	if cfg.Case.Cost < 0 {
		errs = append(errs, "case.cost must be >= 0")
	}
	if cfg.Case.Jitter < 0 {
		errs = append(errs, "case.jitter must be >= 0")
	}
	if cfg.StarterKit.Jitter < 0 {
		errs = append(errs, "starter_kit.jitter must be >= 0")
	}
	if cfg.StarterKit.MinStat > cfg.StarterKit.MaxStat {
		errs = append(errs, "starter_kit.min_stat must be <= max_stat")
	}
	if len(cfg.StarterKit.Positions) == 0 {
		errs = append(errs, "starter_kit.positions must not be empty")
	}
	for i, p := range cfg.StarterKit.Positions {
		if !domain.Position(p).Valid() {
			errs = append(errs, fmt.Sprintf("starter_kit.positions[%d] %q is not a known position", i, p))
		}
	}

	if len(cfg.Tactics) == 0 {
		errs = append(errs, "tactics must not be empty")
	}
	for i, t := range cfg.Tactics {
		if t.ID == "" {
			errs = append(errs, fmt.Sprintf("tactics[%d].id is required", i))
		}
		if t.Risk < 0 || t.Risk > 1 {
			errs = append(errs, fmt.Sprintf("tactics[%d].risk must be in [0,1]", i))
		}
		if t.RewardMultiplier <= 0 {
			errs = append(errs, fmt.Sprintf("tactics[%d].reward_multiplier must be > 0", i))
		}
	}

	if len(cfg.Mascots) == 0 {
		errs = append(errs, "mascots must not be empty")
	}
	for i, m := range cfg.Mascots {
		if m.ID == "" {
			errs = append(errs, fmt.Sprintf("mascots[%d].id is required", i))
		}
		if !m.Kind.Valid() {
			errs = append(errs, fmt.Sprintf("mascots[%d].kind %q must be one of: none, flat, scaled", i, m.Kind))
		}
	}

	for i, ev := range cfg.SpecialEvents {
		if ev.Kind == "" {
			errs = append(errs, fmt.Sprintf("special_events[%d].kind is required", i))
		}
		if ev.Probability < 0 || ev.Probability > 1 {
			errs = append(errs, fmt.Sprintf("special_events[%d].probability must be in [0,1]", i))
		}
	}

	if cfg.Ambient.Probability < 0 || cfg.Ambient.Probability > 1 {
		errs = append(errs, "ambient.probability must be in [0,1]")
	}
	if cfg.Ambient.Probability > 0 && len(cfg.Ambient.Events) == 0 {
		errs = append(errs, "ambient.events must not be empty when ambient.probability > 0")
	}
	for i, ev := range cfg.Ambient.Events {
		switch ev.Target {
		case TargetAll:
		case TargetRandom:
			if ev.Count < 1 {
				errs = append(errs, fmt.Sprintf("ambient.events[%d].count must be >= 1 for target=random", i))
			}
		default:
			errs = append(errs, fmt.Sprintf("ambient.events[%d].target must be one of: all, random", i))
		}
	}

	if cfg.Rewards.StaminaLoss.Min < 0 || cfg.Rewards.StaminaLoss.Max < cfg.Rewards.StaminaLoss.Min {
		errs = append(errs, "rewards.stamina_loss requires 0 <= min <= max")
	}
	if cfg.AceBet.Cost < 0 || cfg.AceBet.Payout < 0 {
		errs = append(errs, "ace_bet.cost and ace_bet.payout must be >= 0")
	}

	for i, tr := range cfg.Trainings {
		if tr.ID == "" {
			errs = append(errs, fmt.Sprintf("trainings[%d].id is required", i))
		}
		if tr.Cost < 0 || tr.StaminaCost < 0 {
			errs = append(errs, fmt.Sprintf("trainings[%d] costs must be >= 0", i))
		}
	}

	if len(cfg.Maps) == 0 {
		errs = append(errs, "maps must not be empty")
	}
	if len(cfg.Nicknames) == 0 {
		errs = append(errs, "nicknames must not be empty")
	}
	if len(cfg.Divisions) == 0 {
		errs = append(errs, "divisions must not be empty")
	}
	for i := 1; i < len(cfg.Divisions); i++ {
		if cfg.Divisions[i].MinFans <= cfg.Divisions[i-1].MinFans {
			errs = append(errs, fmt.Sprintf("divisions[%d].min_fans must increase", i))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("game config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
