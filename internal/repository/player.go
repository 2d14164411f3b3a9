package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"arena-manager/internal/constants"
	"arena-manager/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const playerColumns = `id, user_id, nickname, position, rarity, aim, reaction, tactics, stamina, morale, created_at, updated_at`

func scanPlayer(row interface{ Scan(...any) error }) (domain.Player, error) {
	var p domain.Player
	err := row.Scan(
		&p.ID, &p.UserID, &p.Nickname, &p.Position, &p.Rarity,
		&p.Aim, &p.Reaction, &p.Tactics, &p.Stamina, &p.Morale,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// GetRoster returns the user's players in signing order.
func (q *Queries) GetRoster(ctx context.Context, userID int64) ([]domain.Player, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+playerColumns+` FROM players WHERE user_id = ? ORDER BY created_at, rowid`, userID)
	if err != nil {
		return nil, wrap("get roster", err)
	}
	defer rows.Close()

	var roster []domain.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, wrap("scan player", err)
		}
		roster = append(roster, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("get roster", err)
	}
	return roster, nil
}

func (q *Queries) GetPlayer(ctx context.Context, playerID string) (domain.Player, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players WHERE id = ?`, playerID)
	p, err := scanPlayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Player{}, domain.ErrPlayerNotFound
	}
	if err != nil {
		return domain.Player{}, wrap("get player", err)
	}
	return p, nil
}

// AddPlayer signs p to the user under a fresh id.
func (q *Queries) AddPlayer(ctx context.Context, userID int64, p domain.Player) (domain.Player, error) {
	id, err := gonanoid.New(constants.NanoIDLength)
	if err != nil {
		return domain.Player{}, fmt.Errorf("generate player id: %w", err)
	}
	now := q.now()
	p.ID, p.UserID, p.CreatedAt, p.UpdatedAt = id, userID, now, now

	_, err = q.db.ExecContext(ctx,
		`INSERT INTO players (`+playerColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.Nickname, p.Position, p.Rarity,
		p.Aim, p.Reaction, p.Tactics, p.Stamina, p.Morale,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return domain.Player{}, wrap("add player", err)
	}
	return p, nil
}

// UpdatePlayerStats applies deltas in order to the stored player and writes
// the result back.
func (q *Queries) UpdatePlayerStats(ctx context.Context, playerID string, deltas []domain.StatDelta) error {
	p, err := q.GetPlayer(ctx, playerID)
	if err != nil {
		return err
	}

	for _, d := range deltas {
		switch d.Stat {
		case domain.StatAim:
			p.Aim = d.Apply(p.Aim)
		case domain.StatReaction:
			p.Reaction = d.Apply(p.Reaction)
		case domain.StatTactics:
			p.Tactics = d.Apply(p.Tactics)
		case domain.StatStamina:
			p.Stamina = d.Apply(p.Stamina)
		case domain.StatMorale:
			p.Morale = d.Apply(p.Morale)
		default:
			return fmt.Errorf("unknown stat %q", d.Stat)
		}
	}

	_, err = q.db.ExecContext(ctx,
		`UPDATE players SET aim = ?, reaction = ?, tactics = ?, stamina = ?, morale = ?, updated_at = ? WHERE id = ?`,
		p.Aim, p.Reaction, p.Tactics, p.Stamina, p.Morale, q.now(), playerID,
	)
	return wrap("update player stats", err)
}

// RestoreStamina gives every player amount stamina, capped at 100.
func (q *Queries) RestoreStamina(ctx context.Context, amount int) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`UPDATE players SET stamina = MIN(100, stamina + ?), updated_at = ? WHERE stamina < 100`,
		amount, q.now(),
	)
	if err != nil {
		return 0, wrap("restore stamina", err)
	}
	return rowsAffected(res, "restore stamina")
}
