package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/cieslarmichal/just-join-us-auth/internal/auth/domain"
)

// TokenType is the closed set of token purposes. Every consumer must check
// the type before trusting any other claim; the codec itself never does.
type TokenType string

const (
	TokenTypeAccess            TokenType = "access"
	TokenTypeRefresh           TokenType = "refresh"
	TokenTypeEmailVerification TokenType = "emailVerification"
	TokenTypePasswordReset     TokenType = "passwordReset"
)

func (t TokenType) Valid() bool {
	switch t {
	case TokenTypeAccess, TokenTypeRefresh, TokenTypeEmailVerification, TokenTypePasswordReset:
		return true
	}
	return false
}

type JWTCustomClaims struct {
	jwt.RegisteredClaims
	TokenType TokenType   `json:"token_type"`
	Role      domain.Role `json:"role,omitempty"`
}

type TokenCodec interface {
	Issue(subject string, tokenType TokenType, role domain.Role, ttl time.Duration) (string, error)
	Verify(tokenString string) (*JWTCustomClaims, error)
	Decode(tokenString string) (*JWTCustomClaims, error)
	GetAccessTokenExpiry() time.Duration
	GetRefreshTokenExpiry() time.Duration
	GetResetTokenExpiry() time.Duration
	GetVerificationTokenExpiry() time.Duration
}

// TokenService signs and parses self-contained HS256 tokens. It is a pure
// primitive: no storage, no revocation lookups, no type enforcement.
type TokenService struct {
	Secret                  string
	AccessTokenExpiry       time.Duration
	RefreshTokenExpiry      time.Duration
	ResetTokenExpiry        time.Duration
	VerificationTokenExpiry time.Duration
}

func NewTokenService(secret string, accessMinutes, refreshMinutes, resetMinutes, verificationMinutes int) *TokenService {
	return &TokenService{
		Secret:                  secret,
		AccessTokenExpiry:       time.Duration(accessMinutes) * time.Minute,
		RefreshTokenExpiry:      time.Duration(refreshMinutes) * time.Minute,
		ResetTokenExpiry:        time.Duration(resetMinutes) * time.Minute,
		VerificationTokenExpiry: time.Duration(verificationMinutes) * time.Minute,
	}
}

// Issue embeds the type, optional subject and role, an issue timestamp and
// an expiry of now+ttl, and signs the payload. A random JTI keeps two tokens
// with identical claims distinct even when issued in the same second.
func (ts *TokenService) Issue(subject string, tokenType TokenType, role domain.Role, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := JWTCustomClaims{
		TokenType: tokenType,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(ts.Secret))
}

// Verify checks signature integrity and expiry. It does not check revocation
// or token type; that stays with the caller.
func (ts *TokenService) Verify(tokenString string) (*JWTCustomClaims, error) {
	claims := &JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ts.Secret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// Decode parses claims without re-validating signature or expiry. Used only
// after a token has already been accepted, to recover its expiry for writing
// a revocation record.
func (ts *TokenService) Decode(tokenString string) (*JWTCustomClaims, error) {
	claims := &JWTCustomClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("malformed token: %w", err)
	}

	return claims, nil
}

func (ts *TokenService) GetAccessTokenExpiry() time.Duration {
	return ts.AccessTokenExpiry
}

func (ts *TokenService) GetRefreshTokenExpiry() time.Duration {
	return ts.RefreshTokenExpiry
}

func (ts *TokenService) GetResetTokenExpiry() time.Duration {
	return ts.ResetTokenExpiry
}

func (ts *TokenService) GetVerificationTokenExpiry() time.Duration {
	return ts.VerificationTokenExpiry
}
