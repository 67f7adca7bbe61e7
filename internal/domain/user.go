package domain

import "time"

type User struct {
	UserID         string     `json:"id" dynamodbav:"user_id"`
	Username       string     `json:"username" dynamodbav:"username"`
	Email          string     `json:"email" dynamodbav:"email"`
	EmailLower     string     `json:"-" dynamodbav:"email_lc"` // lowercased lookup key
	Phone          *string    `json:"phone" dynamodbav:"phone"`
	PasswordHash   string     `json:"-" dynamodbav:"password_hash"`
	SecurityStamp  string     `json:"-" dynamodbav:"security_stamp"`
	Roles          []string   `json:"roles" dynamodbav:"roles"`
	AvatarURL      string     `json:"avatar_url" dynamodbav:"avatar_url"`
	EmailConfirmed bool       `json:"email_confirmed" dynamodbav:"email_confirmed"`
	Enable         bool       `json:"enable" dynamodbav:"enable"`
	LastLoginAt    *time.Time `json:"last_login,omitempty" dynamodbav:"last_login_at"`
	CreatedAt      time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt      time.Time  `json:"updated" dynamodbav:"updated_at"`
}

// FirstRole returns the user's primary role, defaulting to "User" when the
// user has no explicit role assignment yet.
func (u *User) FirstRole() string {
	if len(u.Roles) == 0 {
		return RoleUser
	}
	return u.Roles[0]
}

type RegisterRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,strongpwd"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	Username        string `json:"userName" validate:"required,max=100"`
}

type VerifyOtpRequest struct {
	Email   string `json:"email" validate:"required,email"`
	OtpCode string `json:"otpCode" validate:"required,len=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	Email        string `json:"email" validate:"required,email"`
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// LoginResponse is the DTO returned on a successful login or refresh.
type LoginResponse struct {
	UserID             string  `json:"id"`
	Email              string  `json:"email"`
	Username           string  `json:"userName"`
	AccessToken        string  `json:"accessToken"`
	RefreshToken       string  `json:"refreshToken"`
	RefreshTokenExpiry string  `json:"refreshTokenExpiry"`
	AvatarURL          string  `json:"avatarUrl"`
	Phone              *string `json:"phoneNumber"`
	Role               string  `json:"role"`
}
