package engine

import (
	"math"

	"arena-manager/internal/domain"
	"arena-manager/internal/gamecfg"
)

const (
	aimWeight      = 0.4
	reactionWeight = 0.3
	tacticsWeight  = 0.3

	fatigueThreshold = 50
)

// ComputePower resolves the tactic and mascot keys and returns TeamPower.
func (e *Engine) ComputePower(roster []domain.Player, tacticID, mascotID string) (float64, error) {
	tactic, err := e.cfg.Tactic(tacticID)
	if err != nil {
		return 0, err
	}
	mascot, err := e.cfg.Mascot(mascotID)
	if err != nil {
		return 0, err
	}
	return TeamPower(roster, tactic, mascot), nil
}

// TeamPower sums per-player power and scales it by the tactic multiplier,
// rounded to 2 decimals. The mascot's morale delta lands on tactics.
func TeamPower(roster []domain.Player, tactic gamecfg.Tactic, mascot gamecfg.Mascot) float64 {
	total := 0.0
	for _, p := range roster {
		total += PlayerPower(p, mascot)
	}
	return round2(total * tactic.RewardMultiplier)
}

// PlayerPower is a single player's contribution before the tactic multiplier.
func PlayerPower(p domain.Player, mascot gamecfg.Mascot) float64 {
	d := mascot.Apply(p.Aim, p.Reaction, p.Tactics)
	aim := float64(p.Aim + d.Aim)
	reaction := float64(p.Reaction + d.Reaction)
	tactics := float64(p.Tactics + d.Morale)

	base := aim*aimWeight + reaction*reactionWeight + tactics*tacticsWeight
	return base * fatigueMultiplier(p.Stamina)
}

// fatigueMultiplier degrades linearly below the threshold and never boosts.
func fatigueMultiplier(stamina int) float64 {
	if stamina < fatigueThreshold {
		return float64(stamina) / fatigueThreshold
	}
	return 1.0
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
