package service

import (
	"context"
	"errors"
	"fmt"

	"arena-manager/internal/constants"
	"arena-manager/internal/domain"
	"arena-manager/internal/engine"
	"arena-manager/internal/gamecfg"
	"arena-manager/internal/lock"
	"arena-manager/internal/progression"
	"arena-manager/internal/repository"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// RNG streams drawn from one request seed.
const (
	streamDraw uint64 = iota
	streamProgression
	streamStarterKit
)

// SeedSource produces the seed of one request's random streams.
type SeedSource func() (int64, error)

type ArenaService struct {
	engine  *engine.Engine
	applier *progression.Applier
	store   *repository.Store
	locks   *lock.Keyed[int64]
	seeds   SeedSource
	logger  zerolog.Logger
}

func NewArenaService(e *engine.Engine, applier *progression.Applier, store *repository.Store, logger zerolog.Logger) *ArenaService {
	return &ArenaService{
		engine:  e,
		applier: applier,
		store:   store,
		locks:   lock.NewKeyed[int64](),
		seeds:   engine.NewSeed,
		logger:  logger,
	}
}

// WithSeeds replaces the crypto seed source, so tests can replay requests.
func (s *ArenaService) WithSeeds(seeds SeedSource) *ArenaService {
	s.seeds = seeds
	return s
}

type PlayMatchRequest struct {
	UserID   int64
	TacticID string
	MascotID string
	AceBet   bool
}

// MatchReport is everything a committed match changed.
type MatchReport struct {
	MatchID     string
	Seed        int64
	Result      domain.MatchResult
	Progression progression.Summary
	AceStake    int64
	User        domain.User
	Division    gamecfg.Division
}

type TeamOverview struct {
	User     domain.User
	Roster   []domain.Player
	Payroll  int
	Division gamecfg.Division
}

// SimulateMatch runs a match against the stored roster without touching the
// economy.
func (s *ArenaService) SimulateMatch(ctx context.Context, userID int64, tacticID, mascotID string) (domain.MatchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	unlock := s.locks.Lock(userID)
	defer unlock()

	if _, err := s.ensureUser(ctx, userID); err != nil {
		return domain.MatchResult{}, err
	}
	roster, err := s.store.Queries().GetRoster(ctx, userID)
	if err != nil {
		return domain.MatchResult{}, err
	}

	seed, err := s.seeds()
	if err != nil {
		return domain.MatchResult{}, err
	}
	return s.engine.SimulateMatch(roster, tacticID, mascotID, engine.NewStreamRNG(seed, streamDraw))
}

// PlayMatch simulates a match and commits its economy in one transaction:
// the optional ace stake, the outcome reward, the ace payout and the match
// record. The user is locked from the snapshot read to the commit.
func (s *ArenaService) PlayMatch(ctx context.Context, req PlayMatchRequest) (MatchReport, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	cfg := s.engine.Config()
	log := s.logger.With().Int64("user_id", req.UserID).Str("tactic", req.TacticID).Str("mascot", req.MascotID).Logger()

	unlock := s.locks.Lock(req.UserID)
	defer unlock()

	if _, err := s.ensureUser(ctx, req.UserID); err != nil {
		return MatchReport{}, err
	}

	user, roster, err := s.snapshot(ctx, req.UserID)
	if err != nil {
		return MatchReport{}, err
	}

	if len(roster) < cfg.MinRosterSize {
		return MatchReport{}, fmt.Errorf("%w: have %d players, need %d", domain.ErrInsufficientRoster, len(roster), cfg.MinRosterSize)
	}
	if avg := averageStamina(roster); avg < cfg.MinAverageStamina {
		return MatchReport{}, fmt.Errorf("%w: average stamina %d, need %d", domain.ErrRosterFatigued, avg, cfg.MinAverageStamina)
	}
	var stake int64
	if req.AceBet {
		stake = cfg.AceBet.Cost
		if user.Balance < stake {
			return MatchReport{}, fmt.Errorf("ace bet of %d: %w", stake, domain.ErrInsufficientFunds)
		}
	}

	seed, err := s.seeds()
	if err != nil {
		return MatchReport{}, err
	}
	result, err := s.engine.SimulateMatch(roster, req.TacticID, req.MascotID, engine.NewStreamRNG(seed, streamDraw))
	if err != nil {
		return MatchReport{}, err
	}

	matchID, err := gonanoid.New(constants.NanoIDLength)
	if err != nil {
		return MatchReport{}, fmt.Errorf("generate match id: %w", err)
	}

	if err := ctx.Err(); err != nil {
		log.Info().Err(err).Msg("match cancelled before commit")
		return MatchReport{}, err
	}

	report := MatchReport{MatchID: matchID, Seed: seed, Result: result, AceStake: stake}
	err = s.store.InTx(context.WithoutCancel(ctx), func(ctx context.Context, q *repository.Queries) error {
		if err := s.applier.Debit(ctx, q, req.UserID, stake); err != nil {
			return err
		}

		summary, err := s.applier.ApplyMatchOutcome(ctx, q, req.UserID, result.Outcome(), roster, engine.NewStreamRNG(seed, streamProgression))
		if err != nil {
			return err
		}
		if req.AceBet {
			if summary.AcePayout, err = s.applier.SettleAceBet(ctx, q, req.UserID, result); err != nil {
				return err
			}
		}

		if err := q.InsertMatch(ctx, domain.MatchRecord{
			MatchID:    matchID,
			UserID:     req.UserID,
			Map:        result.Map,
			Outcome:    result.Outcome(),
			UserWins:   result.UserWins,
			EnemyWins:  result.EnemyWins,
			UserPower:  result.UserPower,
			EnemyPower: result.EnemyPower,
			TacticID:   req.TacticID,
			MascotID:   req.MascotID,
			Seed:       seed,
		}); err != nil {
			return err
		}

		report.Progression = summary
		report.User, err = q.GetUser(ctx, req.UserID)
		return err
	})
	if err != nil {
		log.Error().Err(err).Str("match_id", matchID).Msg("failed to commit match")
		return MatchReport{}, fmt.Errorf("commit match: %w", err)
	}
	report.Division = cfg.Division(report.User.Fans)

	log.Info().
		Str("match_id", matchID).
		Str("outcome", string(result.Outcome())).
		Int("user_wins", result.UserWins).
		Int("enemy_wins", result.EnemyWins).
		Float64("user_power", result.UserPower).
		Float64("enemy_power", result.EnemyPower).
		Int64("ace_payout", report.Progression.AcePayout).
		Msg("match played")

	return report, nil
}

// ApplyMatchOutcome applies a WIN or LOSS to the given players of the user,
// or to the whole roster when playerIDs is empty.
func (s *ArenaService) ApplyMatchOutcome(ctx context.Context, userID int64, outcome domain.Outcome, playerIDs []string) (progression.Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	if !outcome.Valid() {
		return progression.Summary{}, fmt.Errorf("unknown match outcome %q", outcome)
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	if _, err := s.ensureUser(ctx, userID); err != nil {
		return progression.Summary{}, err
	}
	seed, err := s.seeds()
	if err != nil {
		return progression.Summary{}, err
	}

	var summary progression.Summary
	err = s.store.InTx(context.WithoutCancel(ctx), func(ctx context.Context, q *repository.Queries) error {
		roster, err := rosterSubset(ctx, q, userID, playerIDs)
		if err != nil {
			return err
		}
		summary, err = s.applier.ApplyMatchOutcome(ctx, q, userID, outcome, roster, engine.NewStreamRNG(seed, streamProgression))
		return err
	})
	if err != nil {
		return progression.Summary{}, fmt.Errorf("apply match outcome: %w", err)
	}
	return summary, nil
}

// OpenCase debits cost, draws a player and signs them, all in one
// transaction. A non-positive cost means the configured case price.
func (s *ArenaService) OpenCase(ctx context.Context, userID int64, cost int64) (domain.CaseOutcome, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	if cost <= 0 {
		cost = s.engine.Config().Case.Cost
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	if _, err := s.ensureUser(ctx, userID); err != nil {
		return domain.CaseOutcome{}, err
	}
	seed, err := s.seeds()
	if err != nil {
		return domain.CaseOutcome{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.CaseOutcome{}, err
	}

	var outcome domain.CaseOutcome
	err = s.store.InTx(context.WithoutCancel(ctx), func(ctx context.Context, q *repository.Queries) error {
		if err := s.applier.Debit(ctx, q, userID, cost); err != nil {
			return err
		}
		drawn := s.engine.OpenCase(userID, cost, engine.NewStreamRNG(seed, streamDraw))
		var err error
		outcome, err = s.applier.ApplyCaseOutcome(ctx, q, userID, drawn)
		return err
	})
	if err != nil {
		return domain.CaseOutcome{}, fmt.Errorf("open case: %w", err)
	}

	s.logger.Info().
		Int64("user_id", userID).
		Str("player_id", outcome.Player.ID).
		Str("rarity", outcome.Rarity).
		Str("position", string(outcome.Position)).
		Int64("cost", cost).
		Msg("case opened")

	return outcome, nil
}

// Train runs one training session for a player the user owns.
func (s *ArenaService) Train(ctx context.Context, userID int64, playerID, trainingID string) (domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	tr, err := s.engine.Config().Training(trainingID)
	if err != nil {
		return domain.Player{}, err
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	if _, err := s.ensureUser(ctx, userID); err != nil {
		return domain.Player{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.Player{}, err
	}

	var trained domain.Player
	err = s.store.InTx(context.WithoutCancel(ctx), func(ctx context.Context, q *repository.Queries) error {
		p, err := ownedPlayer(ctx, q, userID, playerID)
		if err != nil {
			return err
		}
		if err := s.applier.ApplyTraining(ctx, q, userID, p, tr); err != nil {
			return err
		}
		trained, err = q.GetPlayer(ctx, playerID)
		return err
	})
	if err != nil {
		return domain.Player{}, fmt.Errorf("train: %w", err)
	}

	s.logger.Info().Int64("user_id", userID).Str("player_id", playerID).Str("training", tr.ID).Msg("player trained")
	return trained, nil
}

func (s *ArenaService) GetTeam(ctx context.Context, userID int64) (TeamOverview, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	unlock := s.locks.Lock(userID)
	defer unlock()

	if _, err := s.ensureUser(ctx, userID); err != nil {
		return TeamOverview{}, err
	}
	user, roster, err := s.snapshot(ctx, userID)
	if err != nil {
		return TeamOverview{}, err
	}

	cfg := s.engine.Config()
	payroll, err := cfg.Payroll(roster)
	if err != nil {
		return TeamOverview{}, err
	}
	return TeamOverview{User: user, Roster: roster, Payroll: payroll, Division: cfg.Division(user.Fans)}, nil
}

// MatchHistory lists committed matches, newest first.
func (s *ArenaService) MatchHistory(ctx context.Context, userID int64, limit int) ([]domain.MatchRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if limit <= 0 {
		limit = constants.MatchHistoryDefaultLimit
	}
	limit = min(limit, constants.MatchHistoryMaxLimit)

	return s.store.Queries().MatchHistory(ctx, userID, limit)
}

// RestoreStamina tops up every player's stamina by amount.
func (s *ArenaService) RestoreStamina(ctx context.Context, amount int) (int64, error) {
	var n int64
	err := s.store.InTx(ctx, func(ctx context.Context, q *repository.Queries) error {
		var err error
		n, err = q.RestoreStamina(ctx, amount)
		return err
	})
	return n, err
}

// ensureUser creates an unknown user with the new-user economy and a starter
// kit. The caller holds the user's lock.
func (s *ArenaService) ensureUser(ctx context.Context, userID int64) (domain.User, error) {
	q := s.store.Queries()
	user, err := q.GetUser(ctx, userID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return domain.User{}, err
	}

	seed, err := s.seeds()
	if err != nil {
		return domain.User{}, err
	}
	cfg := s.engine.Config()

	err = s.store.InTx(ctx, func(ctx context.Context, q *repository.Queries) error {
		created, err := q.CreateUser(ctx, domain.User{
			UserID:  userID,
			Balance: cfg.NewUser.Balance,
			Fans:    cfg.NewUser.Fans,
			Morale:  cfg.NewUser.Morale,
		})
		if err != nil {
			return err
		}
		for _, p := range s.engine.StarterKit(userID, engine.NewStreamRNG(seed, streamStarterKit)) {
			if _, err := q.AddPlayer(ctx, userID, p); err != nil {
				return err
			}
		}
		user = created
		return nil
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("provision user %d: %w", userID, err)
	}

	s.logger.Info().Int64("user_id", userID).Int64("balance", user.Balance).Msg("new user provisioned with starter kit")
	return user, nil
}

func (s *ArenaService) snapshot(ctx context.Context, userID int64) (domain.User, []domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	q := s.store.Queries()
	g, gCtx := errgroup.WithContext(ctx)
	var user domain.User
	var roster []domain.Player

	g.Go(func() error {
		var err error
		user, err = q.GetUser(gCtx, userID)
		return err
	})

	g.Go(func() error {
		var err error
		roster, err = q.GetRoster(gCtx, userID)
		return err
	})

	if err := g.Wait(); err != nil {
		return domain.User{}, nil, err
	}
	return user, roster, nil
}

func ownedPlayer(ctx context.Context, q *repository.Queries, userID int64, playerID string) (domain.Player, error) {
	p, err := q.GetPlayer(ctx, playerID)
	if err != nil {
		return domain.Player{}, err
	}
	if p.UserID != userID {
		return domain.Player{}, fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, playerID)
	}
	return p, nil
}

func rosterSubset(ctx context.Context, q *repository.Queries, userID int64, playerIDs []string) ([]domain.Player, error) {
	if len(playerIDs) == 0 {
		return q.GetRoster(ctx, userID)
	}
	roster := make([]domain.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		p, err := ownedPlayer(ctx, q, userID, id)
		if err != nil {
			return nil, err
		}
		roster = append(roster, p)
	}
	return roster, nil
}

func averageStamina(roster []domain.Player) int {
	if len(roster) == 0 {
		return 0
	}
	total := 0
	for _, p := range roster {
		total += p.Stamina
	}
	return total / len(roster)
}
