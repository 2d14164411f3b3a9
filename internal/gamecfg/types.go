// Package gamecfg holds the tunable game tables: rarities, tactics, mascots,
// special and ambient events, rewards, trainings and divisions.
package gamecfg

// Config mirrors defaults.yaml.
type Config struct {
	Version           string           `yaml:"version"`
	WinThreshold      int              `yaml:"win_threshold"`
	MinRosterSize     int              `yaml:"min_roster_size"`
	MinAverageStamina int              `yaml:"min_average_stamina"`
	EnemyPower        EnemyPowerConfig `yaml:"enemy_power"`
	RarityWeightTotal int              `yaml:"rarity_weight_total"`
	Rarities          []RarityTier     `yaml:"rarities"`
	Case              CaseConfig       `yaml:"case"`
	StarterKit        StarterKitConfig `yaml:"starter_kit"`
	Tactics           []Tactic         `yaml:"tactics"`
	Mascots           []Mascot         `yaml:"mascots"`
	SpecialEvents     []SpecialEvent   `yaml:"special_events"`
	Ambient           AmbientConfig    `yaml:"ambient"`
	Rewards           RewardsConfig    `yaml:"rewards"`
	AceBet            AceBetConfig     `yaml:"ace_bet"`
	Trainings         []Training       `yaml:"trainings"`
	Maps              []string         `yaml:"maps"`
	RoundPhrases      []string         `yaml:"round_phrases"`
	Nicknames         []string         `yaml:"nicknames"`
	Divisions         []Division       `yaml:"divisions"`
	NewUser           NewUserConfig    `yaml:"new_user"`
}

type EnemyPowerConfig struct {
	MinFactor float64 `yaml:"min_factor"`
	MaxFactor float64 `yaml:"max_factor"`
}

type RarityTier struct {
	Name     string `yaml:"name"`
	Weight   int    `yaml:"weight"`
	Aim      int    `yaml:"aim"`
	Reaction int    `yaml:"reaction"`
	Tactics  int    `yaml:"tactics"`
	Salary   int    `yaml:"salary"`
}

type CaseConfig struct {
	Cost    int64 `yaml:"cost"`
	Jitter  int   `yaml:"jitter"`
	Stamina int   `yaml:"stamina"`
	Morale  int   `yaml:"morale"`
}

type StarterKitConfig struct {
	Jitter    int      `yaml:"jitter"`
	MinStat   int      `yaml:"min_stat"`
	MaxStat   int      `yaml:"max_stat"`
	Positions []string `yaml:"positions"`
}

type Tactic struct {
	ID               string  `yaml:"id"`
	Name             string  `yaml:"name"`
	Risk             float64 `yaml:"risk"` // informational
	RewardMultiplier float64 `yaml:"reward_multiplier"`
}

type SpecialEvent struct {
	Kind        string  `yaml:"kind"`
	Name        string  `yaml:"name"`
	Probability float64 `yaml:"probability"`
}

type AmbientTarget string

const (
	TargetAll    AmbientTarget = "all"
	TargetRandom AmbientTarget = "random"
)

type AmbientEvent struct {
	Name    string        `yaml:"name"`
	Target  AmbientTarget `yaml:"target"`
	Count   int           `yaml:"count"` // players affected when Target is random
	Morale  int           `yaml:"morale"`
	Stamina int           `yaml:"stamina"`
}

type AmbientConfig struct {
	Probability float64        `yaml:"probability"`
	Events      []AmbientEvent `yaml:"events"`
}

type Reward struct {
	Currency int64 `yaml:"currency"`
	Fans     int   `yaml:"fans"`
	Morale   int   `yaml:"morale"`
}

type IntRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

type RewardsConfig struct {
	Win         Reward   `yaml:"win"`
	Loss        Reward   `yaml:"loss"`
	StaminaLoss IntRange `yaml:"stamina_loss"`
}

type AceBetConfig struct {
	Cost   int64 `yaml:"cost"`
	Payout int64 `yaml:"payout"`
}

type Training struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Aim         int    `yaml:"aim"`
	Reaction    int    `yaml:"reaction"`
	Tactics     int    `yaml:"tactics"`
	Morale      int    `yaml:"morale"`
	StaminaCost int    `yaml:"stamina_cost"`
	Cost        int64  `yaml:"cost"`
}

type Division struct {
	Name    string `yaml:"name"`
	MinFans int    `yaml:"min_fans"`
	Motto   string `yaml:"motto"`
}

type NewUserConfig struct {
	Balance int64 `yaml:"balance"`
	Fans    int   `yaml:"fans"`
	Morale  int   `yaml:"morale"`
}
