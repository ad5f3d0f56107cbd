package constants

import "time"

// Session / context keys
const (
	ContextKeyUserID  = "user_id"
	SessionCookieName = "synapse_session"
)

// Pagination bounds
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Auth
const (
	MinPasswordLength = 8
)

// Archive sweep
const (
	DefaultArchiveSweepInterval = time.Hour
)

// Statistics
const (
	TrendDays = 7
)
