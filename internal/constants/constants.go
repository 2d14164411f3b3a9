package constants

import "time"

const (
	DatabaseTimeout = 5 * time.Second
	RequestTimeout  = 30 * time.Second
	RestoreTimeout  = 1 * time.Minute
)

const (
	DBMaxOpenConns    = 8
	DBMaxIdleConns    = 4
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	MatchHistoryDefaultLimit = 10
	MatchHistoryMaxLimit     = 100
	NanoIDLength             = 12
)
