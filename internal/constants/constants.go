package constants

// Session / context keys
const ContextKeyUserID = "user_id"

// Auth
const MinPasswordLength = 8

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// Category thresholds (calendar days)
const (
	ImportantDeadlineWindowDays = 3
	ForgottenAfterDays          = 7
)
