package repository

import (
	"context"

	"arena-manager/internal/domain"
)

const matchColumns = `match_id, user_id, map, outcome, user_wins, enemy_wins, user_power, enemy_power, tactic_id, mascot_id, seed, played_at`

func (q *Queries) InsertMatch(ctx context.Context, m domain.MatchRecord) error {
	if m.PlayedAt.IsZero() {
		m.PlayedAt = q.now()
	}
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO matches (`+matchColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.MatchID, m.UserID, m.Map, m.Outcome, m.UserWins, m.EnemyWins,
		m.UserPower, m.EnemyPower, m.TacticID, m.MascotID, m.Seed, m.PlayedAt,
	)
	return wrap("insert match", err)
}

// MatchHistory returns the user's most recent matches, newest first.
func (q *Queries) MatchHistory(ctx context.Context, userID int64, limit int) ([]domain.MatchRecord, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+matchColumns+` FROM matches WHERE user_id = ? ORDER BY played_at DESC, rowid DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, wrap("match history", err)
	}
	defer rows.Close()

	var out []domain.MatchRecord
	for rows.Next() {
		var m domain.MatchRecord
		if err := rows.Scan(
			&m.MatchID, &m.UserID, &m.Map, &m.Outcome, &m.UserWins, &m.EnemyWins,
			&m.UserPower, &m.EnemyPower, &m.TacticID, &m.MascotID, &m.Seed, &m.PlayedAt,
		); err != nil {
			return nil, wrap("scan match", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("match history", err)
	}
	return out, nil
}
