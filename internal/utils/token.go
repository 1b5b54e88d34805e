package utils

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNoCaller = errors.New("token carries no caller id")

// TokenClaims is the payload of access tokens, shared by the issuer and the
// auth middleware.
type TokenClaims struct {
	UID   string `json:"uid,omitempty"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// CallerID is the uid claim, or the subject for tokens issued without one.
func (c *TokenClaims) CallerID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.Subject
}

func SignToken(secret []byte, claims TokenClaims) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies an HS256 token and returns its claims. Other
// algorithms, expired tokens and tokens without a caller id are rejected.
func ParseToken(secret []byte, raw string) (*TokenClaims, error) {
	var claims TokenClaims
	_, err := jwt.ParseWithClaims(raw, &claims,
		func(*jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, err
	}
	if claims.CallerID() == "" {
		return nil, ErrNoCaller
	}
	return &claims, nil
}
