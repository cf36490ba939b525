package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenRequest exchanges the planner passphrase for an access token.
type TokenRequest struct {
	Passphrase string `json:"passphrase" validate:"required"`
	Device     string `json:"device" validate:"omitempty,max=64"`
}

// TokenResponse returns the issued access token.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	IssuedAt    time.Time `json:"issued_at"`
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	Device string `json:"device,omitempty"`
	jwt.RegisteredClaims
}
