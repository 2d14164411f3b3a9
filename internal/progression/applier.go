// Package progression applies match, case and training outcomes to the
// roster/ledger store.
package progression

import (
	"context"
	"fmt"

	"arena-manager/internal/domain"
	"arena-manager/internal/engine"
	"arena-manager/internal/gamecfg"

	"github.com/rs/zerolog"
)

// AceEventKind is the special event that settles an ace bet.
const AceEventKind = "ace"

// Ledger is the store contract the applier mutates through. Within one
// service call every method runs inside a single transaction.
type Ledger interface {
	GetUser(ctx context.Context, userID int64) (domain.User, error)
	GetRoster(ctx context.Context, userID int64) ([]domain.Player, error)
	// UpdateBalance fails with domain.ErrInsufficientFunds, leaving the
	// balance untouched, if delta would take it below zero.
	UpdateBalance(ctx context.Context, userID int64, delta int64) error
	UpdateFans(ctx context.Context, userID int64, delta int) error
	UpdatePlayerStats(ctx context.Context, playerID string, deltas []domain.StatDelta) error
	AddPlayer(ctx context.Context, userID int64, p domain.Player) (domain.Player, error)
}

type Applier struct {
	engine *engine.Engine
	logger zerolog.Logger
}

func NewApplier(e *engine.Engine, logger zerolog.Logger) *Applier {
	return &Applier{engine: e, logger: logger}
}

// Summary describes what ApplyMatchOutcome changed.
type Summary struct {
	Outcome     domain.Outcome
	Currency    int64
	Fans        int
	Morale      int
	StaminaLoss int
	Ambient     *engine.AmbientRoll
	AcePayout   int64
}

// ApplyMatchOutcome credits the outcome reward, shifts every player's morale,
// drains one shared stamina amount from the whole roster and then maybe fires
// one ambient event.
func (a *Applier) ApplyMatchOutcome(ctx context.Context, l Ledger, userID int64, outcome domain.Outcome, roster []domain.Player, rng engine.RandomSource) (Summary, error) {
	cfg := a.engine.Config()

	var reward gamecfg.Reward
	switch outcome {
	case domain.OutcomeWin:
		reward = cfg.Rewards.Win
	case domain.OutcomeLoss:
		reward = cfg.Rewards.Loss
	default:
		return Summary{}, fmt.Errorf("unknown match outcome %q", outcome)
	}

	summary := Summary{
		Outcome:     outcome,
		Currency:    reward.Currency,
		Fans:        reward.Fans,
		Morale:      reward.Morale,
		StaminaLoss: a.engine.RollStaminaLoss(rng),
	}

	if err := l.UpdateBalance(ctx, userID, reward.Currency); err != nil {
		return Summary{}, fmt.Errorf("credit match reward: %w", err)
	}
	if err := l.UpdateFans(ctx, userID, reward.Fans); err != nil {
		return Summary{}, fmt.Errorf("credit fans: %w", err)
	}

	for _, p := range roster {
		deltas := []domain.StatDelta{
			{Stat: domain.StatMorale, Amount: reward.Morale, Clamp: true},
			{Stat: domain.StatStamina, Amount: -summary.StaminaLoss, Clamp: true},
		}
		if err := l.UpdatePlayerStats(ctx, p.ID, deltas); err != nil {
			return Summary{}, fmt.Errorf("update player %s: %w", p.ID, err)
		}
	}

	if roll, ok := a.engine.RollAmbient(roster, rng); ok {
		if err := a.applyAmbient(ctx, l, roll); err != nil {
			return Summary{}, err
		}
		summary.Ambient = &roll
		a.logger.Debug().
			Int64("user_id", userID).
			Str("event", roll.Event.Name).
			Strs("player_ids", roll.PlayerIDs).
			Msg("ambient event fired")
	}

	return summary, nil
}

func (a *Applier) applyAmbient(ctx context.Context, l Ledger, roll engine.AmbientRoll) error {
	var deltas []domain.StatDelta
	if roll.Event.Morale != 0 {
		deltas = append(deltas, domain.StatDelta{Stat: domain.StatMorale, Amount: roll.Event.Morale, Clamp: true})
	}
	if roll.Event.Stamina != 0 {
		deltas = append(deltas, domain.StatDelta{Stat: domain.StatStamina, Amount: roll.Event.Stamina, Clamp: true})
	}
	if len(deltas) == 0 {
		return nil
	}
	for _, id := range roll.PlayerIDs {
		if err := l.UpdatePlayerStats(ctx, id, deltas); err != nil {
			return fmt.Errorf("apply ambient event to %s: %w", id, err)
		}
	}
	return nil
}

// Debit takes amount from the user's balance, failing with
// domain.ErrInsufficientFunds and no mutation when the balance is short.
func (a *Applier) Debit(ctx context.Context, l Ledger, userID int64, amount int64) error {
	if amount <= 0 {
		return nil
	}
	if err := l.UpdateBalance(ctx, userID, -amount); err != nil {
		return fmt.Errorf("debit %d: %w", amount, err)
	}
	return nil
}

// ApplyCaseOutcome adds the drawn player to the roster. The cost was debited
// before the draw.
func (a *Applier) ApplyCaseOutcome(ctx context.Context, l Ledger, userID int64, outcome domain.CaseOutcome) (domain.CaseOutcome, error) {
	added, err := l.AddPlayer(ctx, userID, outcome.Player)
	if err != nil {
		return domain.CaseOutcome{}, fmt.Errorf("add case player: %w", err)
	}
	outcome.Player = added
	return outcome, nil
}

// SettleAceBet pays out when the user won a round with an ace.
func (a *Applier) SettleAceBet(ctx context.Context, l Ledger, userID int64, result domain.MatchResult) (int64, error) {
	if !result.HasEvent(AceEventKind, domain.SideUser) {
		return 0, nil
	}
	payout := a.engine.Config().AceBet.Payout
	if err := l.UpdateBalance(ctx, userID, payout); err != nil {
		return 0, fmt.Errorf("pay ace bet: %w", err)
	}
	return payout, nil
}

// ApplyTraining charges the training cost and applies its stat changes.
// Skill gains are clamped to the generation range.
func (a *Applier) ApplyTraining(ctx context.Context, l Ledger, userID int64, player domain.Player, tr gamecfg.Training) error {
	if err := a.Debit(ctx, l, userID, tr.Cost); err != nil {
		return err
	}

	deltas := []domain.StatDelta{
		{Stat: domain.StatAim, Amount: tr.Aim, Clamp: true},
		{Stat: domain.StatReaction, Amount: tr.Reaction, Clamp: true},
		{Stat: domain.StatTactics, Amount: tr.Tactics, Clamp: true},
		{Stat: domain.StatMorale, Amount: tr.Morale, Clamp: true},
		{Stat: domain.StatStamina, Amount: -tr.StaminaCost, Clamp: true},
	}
	if err := l.UpdatePlayerStats(ctx, player.ID, deltas); err != nil {
		return fmt.Errorf("train player %s: %w", player.ID, err)
	}
	return nil
}
