// Package engine is the randomized outcome core: team power, the round
// simulation, case draws and ambient event selection. It performs no I/O and
// every random decision goes through an injected RandomSource.
package engine

import (
	"fmt"

	"arena-manager/internal/domain"
	"arena-manager/internal/gamecfg"
)

type Engine struct {
	cfg *gamecfg.Config
}

func New(cfg *gamecfg.Config) *Engine {
	return &Engine{cfg: cfg}
}

func (e *Engine) Config() *gamecfg.Config {
	return e.cfg
}

// SimulateMatch plays one first-to-WinThreshold match. The opponent's power
// is drawn around the roster's own average player power, and the per-round
// win probability is fixed for the whole match.
//
// Given the same roster, keys and RandomSource stream the result is identical.
func (e *Engine) SimulateMatch(roster []domain.Player, tacticID, mascotID string, rng RandomSource) (domain.MatchResult, error) {
	if len(roster) < e.cfg.MinRosterSize {
		return domain.MatchResult{}, fmt.Errorf("%w: have %d players, need %d", domain.ErrInsufficientRoster, len(roster), e.cfg.MinRosterSize)
	}

	userPower, err := e.ComputePower(roster, tacticID, mascotID)
	if err != nil {
		return domain.MatchResult{}, err
	}

	mapName := e.cfg.Maps[rng.IntN(len(e.cfg.Maps))]

	avgPlayerPower := userPower / float64(len(roster))
	enemyPower := floatBetween(rng,
		avgPlayerPower*e.cfg.EnemyPower.MinFactor,
		avgPlayerPower*e.cfg.EnemyPower.MaxFactor,
	)

	result := e.playMatch(userPower, enemyPower, rng)
	result.Map = mapName
	return result, nil
}

// WinProbability is the constant per-round chance the user takes a round.
// Two zero-power sides are an even contest.
func WinProbability(userPower, enemyPower float64) float64 {
	total := userPower + enemyPower
	if total == 0 {
		return 0.5
	}
	return userPower / total
}

func (e *Engine) playMatch(userPower, enemyPower float64, rng RandomSource) domain.MatchResult {
	result := domain.MatchResult{
		UserPower:  userPower,
		EnemyPower: round2(enemyPower),
	}
	winProbability := WinProbability(userPower, enemyPower)
	threshold := e.cfg.WinThreshold

	for round := 1; result.UserWins < threshold && result.EnemyWins < threshold; round++ {
		winner := domain.SideEnemy
		if rng.Float64() < winProbability {
			winner = domain.SideUser
			result.UserWins++
		} else {
			result.EnemyWins++
		}

		result.Rounds = append(result.Rounds, e.roundLine(round, winner, result.UserWins, result.EnemyWins, rng))

		// independent checks, several kinds may fire in one round
		for _, ev := range e.cfg.SpecialEvents {
			if rng.Float64() < ev.Probability {
				result.SpecialEvents = append(result.SpecialEvents, domain.SpecialEvent{
					Kind:        ev.Kind,
					RoundNumber: round,
					WinnerSide:  winner,
				})
			}
		}
	}

	return result
}

func (e *Engine) roundLine(round int, winner domain.Side, userWins, enemyWins int, rng RandomSource) string {
	phrase := string(winner) + " takes the round"
	if len(e.cfg.RoundPhrases) > 0 {
		phrase = e.cfg.RoundPhrases[rng.IntN(len(e.cfg.RoundPhrases))]
	}
	return fmt.Sprintf("Round %d: %s | %d-%d", round, phrase, userWins, enemyWins)
}
