package dto

type CreateUserRequest struct {
	UserID      string `json:"user_id" binding:"required,min=3,max=50"`
	FirstName   string `json:"first_name" binding:"required,max=100"`
	MiddleName  string `json:"middle_name" binding:"omitempty,max=100"`
	LastName    string `json:"last_name" binding:"required,max=100"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone" binding:"omitempty,min=7,max=15"`
	Gender      string `json:"gender" binding:"required,oneof=M F"`
	DOB         string `json:"dob" binding:"omitempty,datetime=2006-01-02"`
	CountryCode string `json:"country_code" binding:"omitempty,len=3"`
	StateCode   string `json:"state_code" binding:"omitempty,max=3"`
	CityName    string `json:"city_name" binding:"omitempty,max=100"`
	RoleID      string `json:"role_id" binding:"required"`
	IsAllowed   string `json:"is_allowed" binding:"omitempty,oneof=Y N"`
}

// UpdateUserRequest carries partial updates; nil pointers are left untouched.
type UpdateUserRequest struct {
	FirstName   *string `json:"first_name" binding:"omitempty,max=100"`
	MiddleName  *string `json:"middle_name" binding:"omitempty,max=100"`
	LastName    *string `json:"last_name" binding:"omitempty,max=100"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Phone       *string `json:"phone" binding:"omitempty,min=7,max=15"`
	Gender      *string `json:"gender" binding:"omitempty,oneof=M F"`
	DOB         *string `json:"dob" binding:"omitempty,datetime=2006-01-02"`
	CountryCode *string `json:"country_code" binding:"omitempty,len=3"`
	StateCode   *string `json:"state_code" binding:"omitempty,max=3"`
	CityName    *string `json:"city_name" binding:"omitempty,max=100"`
	RoleID      *string `json:"role_id" binding:"omitempty"`
	IsAllowed   *string `json:"is_allowed" binding:"omitempty,oneof=Y N"`
}

type UpdatePasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8,max=100"`
}

type UserResponse struct {
	UserID      string `json:"user_id"`
	FirstName   string `json:"first_name"`
	MiddleName  string `json:"middle_name,omitempty"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	Gender      string `json:"gender"`
	DOB         string `json:"dob,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
	StateCode   string `json:"state_code,omitempty"`
	CityName    string `json:"city_name,omitempty"`
	RoleID      string `json:"role_id"`
	IsAllowed   string `json:"is_allowed"`
	// Populated only when SendPasswordInResp is enabled
	Password string `json:"password,omitempty"`
}
