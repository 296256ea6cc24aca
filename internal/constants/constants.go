package constants

// ContextKeyUserID is the gin context key carrying the authenticated user ID.
const ContextKeyUserID = "user_id"

const (
	MinUsernameLength = 2
	MaxUsernameLength = 30
	MinPasswordLength = 6
)
