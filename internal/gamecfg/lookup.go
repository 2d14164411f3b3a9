package gamecfg

import "arena-manager/internal/domain"

func (c *Config) Tactic(id string) (Tactic, error) {
	for _, t := range c.Tactics {
		if t.ID == id {
			return t, nil
		}
	}
	return Tactic{}, &domain.ConfigError{Kind: "tactic", Key: id}
}

func (c *Config) Mascot(id string) (Mascot, error) {
	for _, m := range c.Mascots {
		if m.ID == id {
			return m, nil
		}
	}
	return Mascot{}, &domain.ConfigError{Kind: "mascot", Key: id}
}

func (c *Config) Rarity(name string) (RarityTier, error) {
	for _, r := range c.Rarities {
		if r.Name == name {
			return r, nil
		}
	}
	return RarityTier{}, &domain.ConfigError{Kind: "rarity", Key: name}
}

func (c *Config) Training(id string) (Training, error) {
	for _, tr := range c.Trainings {
		if tr.ID == id {
			return tr, nil
		}
	}
	return Training{}, &domain.ConfigError{Kind: "training", Key: id}
}

// Division returns the highest division whose threshold fans reaches.
func (c *Config) Division(fans int) Division {
	for i := len(c.Divisions) - 1; i >= 0; i-- {
		if fans >= c.Divisions[i].MinFans {
			return c.Divisions[i]
		}
	}
	return c.Divisions[0]
}

// Payroll sums the tier salaries of the roster. Players of an unknown
// rarity are reported as a ConfigError.
func (c *Config) Payroll(roster []domain.Player) (int, error) {
	total := 0
	for _, p := range roster {
		tier, err := c.Rarity(p.Rarity)
		if err != nil {
			return 0, err
		}
		total += tier.Salary
	}
	return total, nil
}
