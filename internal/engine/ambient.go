package engine

import (
	"arena-manager/internal/domain"
	"arena-manager/internal/gamecfg"
)

// AmbientRoll is a fired ambient event with its resolved targets.
type AmbientRoll struct {
	Event     gamecfg.AmbientEvent
	PlayerIDs []string
}

// RollStaminaLoss draws the single stamina cost shared by the whole roster
// for one match.
func (e *Engine) RollStaminaLoss(rng RandomSource) int {
	r := e.cfg.Rewards.StaminaLoss
	return intBetween(rng, r.Min, r.Max)
}

// RollAmbient decides whether an ambient event fires and, if so, which one
// and whom it hits. Random targets are sampled uniformly without replacement.
func (e *Engine) RollAmbient(roster []domain.Player, rng RandomSource) (AmbientRoll, bool) {
	amb := e.cfg.Ambient
	if len(amb.Events) == 0 || rng.Float64() >= amb.Probability {
		return AmbientRoll{}, false
	}

	ev := amb.Events[rng.IntN(len(amb.Events))]
	roll := AmbientRoll{Event: ev}

	switch ev.Target {
	case gamecfg.TargetRandom:
		for _, idx := range sampleIndexes(len(roster), ev.Count, rng) {
			roll.PlayerIDs = append(roll.PlayerIDs, roster[idx].ID)
		}
	default:
		for _, p := range roster {
			roll.PlayerIDs = append(roll.PlayerIDs, p.ID)
		}
	}
	return roll, true
}

// sampleIndexes picks k distinct indexes from [0, n) with a partial
// Fisher-Yates shuffle.
func sampleIndexes(n, k int, rng RandomSource) []int {
	k = min(k, n)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + rng.IntN(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:k]
}
