// Package report renders match, case and team results as chat-ready text.
package report

import (
	"fmt"
	"strings"

	"arena-manager/internal/domain"
	"arena-manager/internal/engine"
	"arena-manager/internal/gamecfg"
	"arena-manager/internal/progression"
)

// Result renders the round log and final score of a match.
func Result(r domain.MatchResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Match started on %s! Score 0-0\n", mapOrUnknown(r.Map))
	for _, line := range r.Rounds {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	for _, ev := range r.SpecialEvents {
		fmt.Fprintf(&b, "* Round %d: %s (%s)\n", ev.RoundNumber, ev.Kind, ev.WinnerSide)
	}
	fmt.Fprintf(&b, "Power %.2f vs %.2f\n", r.UserPower, r.EnemyPower)

	verdict := "Defeat"
	if r.Outcome() == domain.OutcomeWin {
		verdict = "Victory"
	}
	fmt.Fprintf(&b, "%s %d-%d", verdict, r.UserWins, r.EnemyWins)
	return b.String()
}

// Match renders a committed match with what it paid out.
func Match(r domain.MatchResult, s progression.Summary, aceStake int64, div gamecfg.Division) string {
	var b strings.Builder
	b.WriteString(Result(r))
	b.WriteByte('\n')

	fmt.Fprintf(&b, "Reward: +%d coins, %+d fans, morale %+d, stamina -%d\n", s.Currency, s.Fans, s.Morale, s.StaminaLoss)
	if aceStake > 0 {
		if s.AcePayout > 0 {
			fmt.Fprintf(&b, "Ace bet won: +%d coins\n", s.AcePayout)
		} else {
			fmt.Fprintf(&b, "Ace bet lost: -%d coins\n", aceStake)
		}
	}
	if s.Ambient != nil {
		b.WriteString(ambientLine(*s.Ambient))
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "Division: %s", div.Name)
	return b.String()
}

func ambientLine(a engine.AmbientRoll) string {
	var effects []string
	if a.Event.Morale != 0 {
		effects = append(effects, fmt.Sprintf("morale %+d", a.Event.Morale))
	}
	if a.Event.Stamina != 0 {
		effects = append(effects, fmt.Sprintf("stamina %+d", a.Event.Stamina))
	}
	return fmt.Sprintf("Event: %s (%s) for %d player(s)", a.Event.Name, strings.Join(effects, ", "), len(a.PlayerIDs))
}

// Case renders a case draw.
func Case(o domain.CaseOutcome) string {
	return fmt.Sprintf("Case opened for %d coins: %s %s %q (aim %d, reaction %d, tactics %d)",
		o.CostPaid, o.Rarity, o.Position, o.Player.Nickname, o.Stats.Aim, o.Stats.Reaction, o.Stats.Tactics)
}

// Team renders the team overview.
func Team(u domain.User, roster []domain.Player, payroll int, div gamecfg.Division) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Balance: %d | Fans: %d | Payroll: %d\n", u.Balance, u.Fans, payroll)
	fmt.Fprintf(&b, "Division: %s - %s\n", div.Name, div.Motto)
	for _, p := range roster {
		fmt.Fprintf(&b, "%-14s %-13s %-9s aim %3d  rea %3d  tac %3d  sta %3d  mor %3d\n",
			p.Nickname, p.Position, p.Rarity, p.Aim, p.Reaction, p.Tactics, p.Stamina, p.Morale)
	}
	return strings.TrimRight(b.String(), "\n")
}

func mapOrUnknown(m string) string {
	if m == "" {
		return "an unknown map"
	}
	return m
}
