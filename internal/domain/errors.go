package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInsufficientRoster = errors.New("insufficient roster")
	ErrRosterFatigued     = errors.New("roster too fatigued to play")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrUserNotFound       = errors.New("user not found")
)

// ConfigError reports an unknown configuration key. It is never recovered
// from with a default.
type ConfigError struct {
	Kind string // "tactic", "mascot", "rarity", "training"
	Key  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.Key)
}

// PersistenceError wraps a store read or write failure.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

func IsPersistenceError(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
