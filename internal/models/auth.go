package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest holds teacher credentials.
type LoginRequest struct {
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required"`
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}

// LoginResponse returns the issued token and the authenticated teacher.
type LoginResponse struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresIn   int64     `json:"expiresIn"`
	IssuedAt    time.Time `json:"issuedAt"`
	Teacher     Principal `json:"teacher"`
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	Username    string      `json:"username"`
	DisplayName string      `json:"display_name"`
	Role        TeacherRole `json:"role"`
	jwt.RegisteredClaims
}

// Principal converts the claims into a request principal.
func (c *JWTClaims) Principal() *Principal {
	if c == nil {
		return nil
	}
	return &Principal{Username: c.Username, DisplayName: c.DisplayName, Role: c.Role}
}
