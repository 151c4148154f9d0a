package models

import "github.com/golang-jwt/jwt/v5"

// LoginRequest holds the login payload. The password is accepted but not
// verified: credential checks live with the external identity provider.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password"`
}

// LoginResponse returns the placeholder credential issued by the mock login.
type LoginResponse struct {
	Token  string `json:"token"`
	UserID int64  `json:"user_id"`
}

// PasswordResetRequest starts the reset flow.
type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// PasswordResetConfirm completes the reset flow.
type PasswordResetConfirm struct {
	UserID      int64  `json:"uid" validate:"required"`
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// TokenClaims is the claim set of externally issued access tokens. Only the
// registered subject plus email and role are consulted; the application's own
// user store is not involved in validation.
type TokenClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}
