package models

import "github.com/golang-jwt/jwt/v5"

// SessionClaims is the JWT payload carried by the dashboard session cookie.
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// LoginRequest is the dashboard sign-in payload.
type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// LoginResponse confirms a successful sign-in.
type LoginResponse struct {
	Success   bool   `json:"success"`
	ExpiresIn int64  `json:"expires_in"`
	SessionID string `json:"session_id"`
}
