package constants

// HTTP Header Names
const (
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderXRealIP       = "X-Real-IP"
)

// Common HTTP Error Messages
const (
	MsgBadRequest    = "Invalid request"
	MsgInternalError = "Internal server error"
)

// HTTP Success Messages
const (
	MsgUserCreated     = "User created successfully"
	MsgUserUpdated     = "User updated successfully"
	MsgUserDeleted     = "User deleted successfully"
	MsgPasswordUpdated = "Password updated successfully"
	MsgCacheRefreshed  = "System parameter cache refreshed"
)
