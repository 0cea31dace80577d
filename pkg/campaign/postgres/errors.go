package postgres

import "errors"

var (
	ErrFailedToParseConfig    = errors.New("postgres: failed to parse database configuration")
	ErrFailedToOpenConnection = errors.New("postgres: failed to open database connection")
	ErrInvalidCampaignRef     = errors.New("postgres: invalid campaign reference")
	ErrSetDialect             = errors.New("postgres migrator: failed to set dialect")
	ErrApplyMigrations        = errors.New("postgres migrator: failed to apply migrations")
	ErrQueryFailed            = errors.New("postgres: query failed")
)
