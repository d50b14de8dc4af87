package domain

import (
	"context"

	"github.com/golang-jwt/jwt/v4"
)

type LoginRequest struct {
	Username string `json:"username" valid:"required~Username is required"`
	Password string `json:"password" valid:"required~Password is required"`
	Role     string `json:"role" valid:"-"`
}

type LoginResponse struct {
	Token              string `json:"token"`
	TokenType          string `json:"token_type"`
	ExpiresIn          int    `json:"expires_in"`
	UserID             int    `json:"user_id"`
	Username           string `json:"username"`
	Role               string `json:"role"`
	MustChangePassword bool   `json:"must_change_password"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" valid:"required~Current password is required"`
	NewPassword string `json:"new_password" valid:"required~New password is required,stringlength(6|72)~Password must be at least 6 characters"`
}

type Claims struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type AuthUseCase interface {
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	ChangePassword(ctx context.Context, userID int, req *ChangePasswordRequest) error
	Profile(ctx context.Context, userID int) (*User, error)
}
