package server

import "time"

type SimulateMatchRequest struct {
	UserID   int64  `json:"user_id"`
	TacticID string `json:"tactic_id"`
	MascotID string `json:"mascot_id"`
}

type PlayMatchRequest struct {
	UserID   int64  `json:"user_id"`
	TacticID string `json:"tactic_id"`
	MascotID string `json:"mascot_id"`
	AceBet   bool   `json:"ace_bet"`
}

type ApplyMatchOutcomeRequest struct {
	UserID    int64    `json:"user_id"`
	Outcome   string   `json:"outcome"`
	PlayerIDs []string `json:"player_ids,omitempty"`
}

type OpenCaseRequest struct {
	UserID   int64 `json:"user_id"`
	CaseCost int64 `json:"case_cost"`
}

type TrainRequest struct {
	UserID     int64  `json:"user_id"`
	PlayerID   string `json:"player_id"`
	TrainingID string `json:"training_id"`
}

type GetTeamRequest struct {
	UserID int64 `json:"user_id"`
}

type MatchHistoryRequest struct {
	UserID int64 `json:"user_id"`
	Limit  int   `json:"limit"`
}

type SpecialEvent struct {
	Kind        string `json:"kind"`
	RoundNumber int    `json:"round_number"`
	WinnerSide  string `json:"winner_side"`
}

type MatchResult struct {
	Map           string         `json:"map"`
	Outcome       string         `json:"outcome"`
	UserWins      int            `json:"user_wins"`
	EnemyWins     int            `json:"enemy_wins"`
	Rounds        []string       `json:"rounds"`
	SpecialEvents []SpecialEvent `json:"special_events"`
	UserPower     float64        `json:"user_power"`
	EnemyPower    float64        `json:"enemy_power"`
}

type SimulateMatchResponse struct {
	Result MatchResult `json:"result"`
	Report string      `json:"report"`
}

type Ambient struct {
	Name      string   `json:"name"`
	Morale    int      `json:"morale"`
	Stamina   int      `json:"stamina"`
	PlayerIDs []string `json:"player_ids"`
}

type Progression struct {
	Outcome     string   `json:"outcome"`
	Currency    int64    `json:"currency"`
	Fans        int      `json:"fans"`
	Morale      int      `json:"morale"`
	StaminaLoss int      `json:"stamina_loss"`
	AcePayout   int64    `json:"ace_payout"`
	Ambient     *Ambient `json:"ambient,omitempty"`
}

type User struct {
	UserID  int64 `json:"user_id"`
	Balance int64 `json:"balance"`
	Fans    int   `json:"fans"`
	Morale  int   `json:"morale"`
}

type PlayMatchResponse struct {
	MatchID     string      `json:"match_id"`
	Seed        int64       `json:"seed"`
	Result      MatchResult `json:"result"`
	Progression Progression `json:"progression"`
	AceStake    int64       `json:"ace_stake"`
	User        User        `json:"user"`
	Division    string      `json:"division"`
	Report      string      `json:"report"`
}

type ApplyMatchOutcomeResponse struct {
	Progression Progression `json:"progression"`
}

type Player struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	Position string `json:"position"`
	Rarity   string `json:"rarity"`
	Aim      int    `json:"aim"`
	Reaction int    `json:"reaction"`
	Tactics  int    `json:"tactics"`
	Stamina  int    `json:"stamina"`
	Morale   int    `json:"morale"`
}

type OpenCaseResponse struct {
	Rarity   string `json:"rarity"`
	Position string `json:"position"`
	CostPaid int64  `json:"cost_paid"`
	Player   Player `json:"player"`
	Report   string `json:"report"`
}

type TrainResponse struct {
	Player Player `json:"player"`
}

type GetTeamResponse struct {
	User     User     `json:"user"`
	Roster   []Player `json:"roster"`
	Payroll  int      `json:"payroll"`
	Division string   `json:"division"`
	Motto    string   `json:"motto"`
	Report   string   `json:"report"`
}

type MatchRecord struct {
	MatchID    string    `json:"match_id"`
	Map        string    `json:"map"`
	Outcome    string    `json:"outcome"`
	UserWins   int       `json:"user_wins"`
	EnemyWins  int       `json:"enemy_wins"`
	UserPower  float64   `json:"user_power"`
	EnemyPower float64   `json:"enemy_power"`
	TacticID   string    `json:"tactic_id"`
	MascotID   string    `json:"mascot_id"`
	Seed       int64     `json:"seed"`
	PlayedAt   time.Time `json:"played_at"`
}

type MatchHistoryResponse struct {
	Matches []MatchRecord `json:"matches"`
}
