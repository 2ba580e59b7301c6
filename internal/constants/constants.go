package constants

// Context keys
const (
	ContextKeyOwnerID  = "owner_id"
	ContextKeyUsername = "username"
)

// Validation limits
const (
	MaxNameLength = 200
	MinPriority   = 1
	MaxPriority   = 5
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
