package engine

import (
	"arena-manager/internal/domain"
	"arena-manager/internal/gamecfg"
)

// DrawRarity performs one weighted draw over the rarity table.
func (e *Engine) DrawRarity(rng RandomSource) gamecfg.RarityTier {
	total := 0
	for _, r := range e.cfg.Rarities {
		total += r.Weight
	}
	pick := rng.IntN(total)
	for _, r := range e.cfg.Rarities {
		if pick < r.Weight {
			return r
		}
		pick -= r.Weight
	}
	// unreachable with a validated table
	return e.cfg.Rarities[len(e.cfg.Rarities)-1]
}

// OpenCase draws one new roster member. The caller has already checked and
// debited costPaid; no balance logic lives here. Case stats are jittered but
// not clamped.
func (e *Engine) OpenCase(userID int64, costPaid int64, rng RandomSource) domain.CaseOutcome {
	tier := e.DrawRarity(rng)
	position := domain.Positions[rng.IntN(len(domain.Positions))]
	jitter := e.cfg.Case.Jitter

	stats := domain.StatLine{
		Aim:      tier.Aim + intBetween(rng, -jitter, jitter),
		Reaction: tier.Reaction + intBetween(rng, -jitter, jitter),
		Tactics:  tier.Tactics + intBetween(rng, -jitter, jitter),
	}

	return domain.CaseOutcome{
		Rarity:   tier.Name,
		Stats:    stats,
		Position: position,
		CostPaid: costPaid,
		Player:   e.newPlayer(userID, tier.Name, position, stats, rng),
	}
}

// StarterKit builds the initial roster: one player per starter position,
// rarity drawn independently per slot, wider jitter and stats clamped into
// [MinStat, MaxStat].
func (e *Engine) StarterKit(userID int64, rng RandomSource) []domain.Player {
	kit := e.cfg.StarterKit
	players := make([]domain.Player, 0, len(kit.Positions))

	for _, pos := range kit.Positions {
		tier := e.DrawRarity(rng)
		stats := domain.StatLine{
			Aim:      clampStat(tier.Aim+intBetween(rng, -kit.Jitter, kit.Jitter), kit.MinStat, kit.MaxStat),
			Reaction: clampStat(tier.Reaction+intBetween(rng, -kit.Jitter, kit.Jitter), kit.MinStat, kit.MaxStat),
			Tactics:  clampStat(tier.Tactics+intBetween(rng, -kit.Jitter, kit.Jitter), kit.MinStat, kit.MaxStat),
		}
		players = append(players, e.newPlayer(userID, tier.Name, domain.Position(pos), stats, rng))
	}
	return players
}

func (e *Engine) newPlayer(userID int64, rarity string, pos domain.Position, stats domain.StatLine, rng RandomSource) domain.Player {
	return domain.Player{
		UserID:   userID,
		Nickname: e.cfg.Nicknames[rng.IntN(len(e.cfg.Nicknames))],
		Position: pos,
		Rarity:   rarity,
		Aim:      stats.Aim,
		Reaction: stats.Reaction,
		Tactics:  stats.Tactics,
		Stamina:  e.cfg.Case.Stamina,
		Morale:   e.cfg.Case.Morale,
	}
}

func clampStat(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
