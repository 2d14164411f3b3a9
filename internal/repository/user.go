package repository

import (
	"context"
	"database/sql"
	"errors"

	"arena-manager/internal/domain"
)

const userColumns = `user_id, balance, fans, morale, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.UserID, &u.Balance, &u.Fans, &u.Morale, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (q *Queries) GetUser(ctx context.Context, userID int64) (domain.User, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = ?`, userID)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, wrap("get user", err)
	}
	return u, nil
}

func (q *Queries) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	now := q.now()
	u.CreatedAt, u.UpdatedAt = now, now
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		u.UserID, u.Balance, u.Fans, u.Morale, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, wrap("create user", err)
	}
	return u, nil
}

// UpdateBalance adds delta to the balance. It changes nothing and returns
// domain.ErrInsufficientFunds when the result would be negative.
func (q *Queries) UpdateBalance(ctx context.Context, userID int64, delta int64) error {
	res, err := q.db.ExecContext(ctx,
		`UPDATE users SET balance = balance + ?, updated_at = ? WHERE user_id = ? AND balance + ? >= 0`,
		delta, q.now(), userID, delta,
	)
	if err != nil {
		return wrap("update balance", err)
	}
	n, err := rowsAffected(res, "update balance")
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}
	if _, err := q.GetUser(ctx, userID); err != nil {
		return err
	}
	return domain.ErrInsufficientFunds
}

func (q *Queries) UpdateFans(ctx context.Context, userID int64, delta int) error {
	res, err := q.db.ExecContext(ctx,
		`UPDATE users SET fans = MAX(0, fans + ?), updated_at = ? WHERE user_id = ?`,
		delta, q.now(), userID,
	)
	if err != nil {
		return wrap("update fans", err)
	}
	n, err := rowsAffected(res, "update fans")
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
