// Package token issues and verifies the signed access and refresh tokens the
// API hands out. Tokens are self-contained HS256 JWTs carrying the user ID as
// subject and a type tag; nothing is persisted.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

var (
	ErrExpired          = errors.New("token expired")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrMalformed        = errors.New("malformed token")
	ErrWrongType        = errors.New("wrong token type")
)

// Claims carries the user ID in the registered subject claim plus a type tag
// so access and refresh tokens cannot be swapped for one another.
type Claims struct {
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// Codec signs and verifies tokens with a single process-wide secret loaded at
// startup. It holds no mutable state and is safe for concurrent use.
type Codec struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewCodec(secret string, accessTTL, refreshTTL time.Duration) *Codec {
	return &Codec{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// IssueAccess creates a short-lived access token for the given user.
func (c *Codec) IssueAccess(userID string) (string, error) {
	return c.issue(userID, TypeAccess, c.accessTTL)
}

// IssueRefresh creates a longer-lived refresh token for the given user.
func (c *Codec) IssueRefresh(userID string) (string, error) {
	return c.issue(userID, TypeRefresh, c.refreshTTL)
}

func (c *Codec) issue(userID, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(c.secret)
}

// Verify checks the signature and expiry of a token string and that its type
// tag matches wantType. No clock skew is tolerated.
func (c *Codec) Verify(tokenString, wantType string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return nil, ErrInvalidSignature
	default:
		return nil, ErrMalformed
	}

	if !tok.Valid {
		return nil, ErrInvalidSignature
	}
	if claims.TokenType != wantType {
		return nil, ErrWrongType
	}
	if claims.Subject == "" {
		return nil, ErrMalformed
	}

	return claims, nil
}
