package domain

import (
	"time"
)

type Position string

const (
	PositionAWPer        Position = "AWPer"
	PositionEntryFragger Position = "Entry Fragger"
	PositionLurker       Position = "Lurker"
	PositionIGL          Position = "IGL"
	PositionSupport      Position = "Support"
	PositionRifle        Position = "Rifle"
)

// Positions is the fixed position set, in starter-kit order.
var Positions = []Position{
	PositionAWPer,
	PositionEntryFragger,
	PositionLurker,
	PositionIGL,
	PositionSupport,
	PositionRifle,
}

func (p Position) Valid() bool {
	for _, known := range Positions {
		if p == known {
			return true
		}
	}
	return false
}

type Player struct {
	ID        string
	UserID    int64
	Nickname  string
	Position  Position
	Rarity    string
	Aim       int
	Reaction  int
	Tactics   int
	Stamina   int // 0-100
	Morale    int // 0-100
	CreatedAt time.Time
	UpdatedAt time.Time
}

type User struct {
	UserID    int64
	Balance   int64
	Fans      int
	Morale    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Stat string

const (
	StatAim      Stat = "aim"
	StatReaction Stat = "reaction"
	StatTactics  Stat = "tactics"
	StatStamina  Stat = "stamina"
	StatMorale   Stat = "morale"
)

func (s Stat) Valid() bool {
	switch s {
	case StatAim, StatReaction, StatTactics, StatStamina, StatMorale:
		return true
	}
	return false
}

// Bounds is the clamp range applied when a StatDelta asks for clamping.
// Skill stats clamp to the generation range, resources to 0-100.
func (s Stat) Bounds() (lo, hi int) {
	switch s {
	case StatStamina, StatMorale:
		return 0, 100
	default:
		return 30, 100
	}
}

// StatDelta is a single typed mutation of one player stat.
type StatDelta struct {
	Stat   Stat
	Amount int
	Clamp  bool
}

// Apply returns value shifted by the delta. With Clamp set the result is held
// inside Bounds, but a value already outside them is never pulled further
// against the delta's direction.
func (d StatDelta) Apply(value int) int {
	v := value + d.Amount
	if !d.Clamp {
		return v
	}
	lo, hi := d.Stat.Bounds()
	switch {
	case v > hi:
		return max(hi, min(value, v))
	case v < lo:
		return min(lo, max(value, v))
	}
	return v
}

type Outcome string

const (
	OutcomeWin  Outcome = "WIN"
	OutcomeLoss Outcome = "LOSS"
)

func (o Outcome) Valid() bool {
	return o == OutcomeWin || o == OutcomeLoss
}

type Side string

const (
	SideUser  Side = "user"
	SideEnemy Side = "enemy"
)

type SpecialEvent struct {
	Kind        string
	RoundNumber int
	WinnerSide  Side
}

type MatchResult struct {
	Map           string
	UserWins      int
	EnemyWins     int
	Rounds        []string
	SpecialEvents []SpecialEvent
	UserPower     float64
	EnemyPower    float64
}

func (r MatchResult) Outcome() Outcome {
	if r.UserWins > r.EnemyWins {
		return OutcomeWin
	}
	return OutcomeLoss
}

// HasEvent reports whether kind fired in a round won by side.
func (r MatchResult) HasEvent(kind string, side Side) bool {
	for _, ev := range r.SpecialEvents {
		if ev.Kind == kind && ev.WinnerSide == side {
			return true
		}
	}
	return false
}

type StatLine struct {
	Aim      int
	Reaction int
	Tactics  int
}

type CaseOutcome struct {
	Rarity   string
	Stats    StatLine
	Position Position
	CostPaid int64
	Player   Player
}

// MatchRecord is a persisted, committed match.
type MatchRecord struct {
	MatchID    string
	UserID     int64
	Map        string
	Outcome    Outcome
	UserWins   int
	EnemyWins  int
	UserPower  float64
	EnemyPower float64
	TacticID   string
	MascotID   string
	Seed       int64
	PlayedAt   time.Time
}
