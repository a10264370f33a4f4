package dto

type LoginRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expires_in"` // seconds
	User      UserResponse `json:"user"`
}

// Identity is the decoded token payload attached to authenticated requests.
type Identity struct {
	UserID string `json:"user_id"`
	RoleID string `json:"role_id"`
}
