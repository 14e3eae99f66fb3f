package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cieslarmichal/just-join-us-auth/internal/auth/domain"
	"github.com/cieslarmichal/just-join-us-auth/internal/auth/dto"
	autherror "github.com/cieslarmichal/just-join-us-auth/internal/errors"
	"github.com/cieslarmichal/just-join-us-auth/pkg/constant"
)

// SessionService orchestrates login, refresh and logout. It holds no state
// of its own: sessions live entirely in the signed tokens plus the
// blacklist records written on logout.
type SessionService struct {
	users     domain.UserDirectory
	blacklist domain.TokenBlacklist
	codec     TokenCodec
	logger    *slog.Logger
}

func NewSessionService(users domain.UserDirectory, blacklist domain.TokenBlacklist, codec TokenCodec, logger *slog.Logger) *SessionService {
	return &SessionService{
		users:     users,
		blacklist: blacklist,
		codec:     codec,
		logger:    logger,
	}
}

// Login exchanges credentials for an access/refresh token pair. A missing
// user and a wrong password both map to the same invalid-credentials error
// so the response never reveals which field was wrong.
func (s *SessionService) Login(ctx context.Context, input dto.LoginInput) (*dto.TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	if user == nil || !ComparePassword(user.PasswordHash, input.Password) {
		return nil, autherror.ErrInvalidCredentials
	}

	if !user.EmailVerified {
		return nil, autherror.ErrEmailNotVerified
	}

	if user.Deleted {
		return nil, autherror.ErrUserDeleted
	}

	accessToken, err := s.codec.Issue(user.ID, TokenTypeAccess, user.Role, s.codec.GetAccessTokenExpiry())
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	// The refresh token carries no role: the role is re-read from the
	// directory on every refresh.
	refreshToken, err := s.codec.Issue(user.ID, TokenTypeRefresh, "", s.codec.GetRefreshTokenExpiry())
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	s.logger.Info("user logged in", slog.String("userID", user.ID))

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    constant.DefaultTokenType,
		ExpiresIn:    int(s.codec.GetAccessTokenExpiry().Seconds()),
	}, nil
}

// Refresh exchanges a still-valid refresh token for a new access token. The
// refresh token itself is returned unchanged: no rotation, no single-use
// enforcement, so concurrent refreshes all succeed independently.
func (s *SessionService) Refresh(ctx context.Context, input dto.RefreshInput) (*dto.TokenResponse, error) {
	revoked, err := s.blacklist.IsRevoked(ctx, input.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to check token blacklist: %w", err)
	}

	if revoked {
		return nil, autherror.ErrRefreshTokenBlacklisted
	}

	claims, err := s.codec.Verify(input.RefreshToken)
	if err != nil {
		return nil, autherror.ErrInvalidRefreshToken.WithCause(err)
	}

	if claims.TokenType != TokenTypeRefresh {
		return nil, autherror.ErrWrongTokenType
	}

	if claims.Subject == "" {
		return nil, autherror.ErrMissingSubject
	}

	user, err := s.users.GetByID(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	if user == nil {
		return nil, autherror.ErrUserNotFound
	}

	if user.Deleted {
		return nil, autherror.ErrUserBlocked
	}

	accessToken, err := s.codec.Issue(user.ID, TokenTypeAccess, user.Role, s.codec.GetAccessTokenExpiry())
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: input.RefreshToken,
		TokenType:    constant.DefaultTokenType,
		ExpiresIn:    int(s.codec.GetAccessTokenExpiry().Seconds()),
	}, nil
}

// Logout revokes the presented access/refresh pair. Revoking only the
// presented pair leaves the principal's other sessions untouched. Calling it
// twice with the same pair succeeds both times.
func (s *SessionService) Logout(ctx context.Context, userID string, input dto.LogoutInput) error {
	accessClaims, err := s.codec.Verify(input.AccessToken)
	if err != nil {
		return autherror.ErrLogoutInvalidAccess.WithCause(err)
	}

	refreshClaims, err := s.codec.Verify(input.RefreshToken)
	if err != nil {
		return autherror.ErrInvalidRefreshToken.WithCause(err)
	}

	accessRevoked, err := s.blacklist.IsRevoked(ctx, input.AccessToken)
	if err != nil {
		return fmt.Errorf("failed to check token blacklist: %w", err)
	}

	refreshRevoked, err := s.blacklist.IsRevoked(ctx, input.RefreshToken)
	if err != nil {
		return fmt.Errorf("failed to check token blacklist: %w", err)
	}

	// Both already revoked: an earlier logout for this pair went through.
	if accessRevoked && refreshRevoked {
		return nil
	}

	if refreshClaims.TokenType != TokenTypeRefresh || accessClaims.TokenType != TokenTypeAccess {
		return autherror.ErrWrongTokenType
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user by id: %w", err)
	}

	if user == nil {
		return autherror.ErrUserNotFound
	}

	if !accessRevoked {
		decoded, err := s.codec.Decode(input.AccessToken)
		if err != nil {
			return autherror.ErrLogoutInvalidAccess.WithCause(err)
		}

		if err := s.blacklist.Revoke(ctx, input.AccessToken, decoded.ExpiresAt.Time); err != nil {
			return fmt.Errorf("failed to revoke access token: %w", err)
		}
	}

	if !refreshRevoked {
		decoded, err := s.codec.Decode(input.RefreshToken)
		if err != nil {
			return autherror.ErrInvalidRefreshToken.WithCause(err)
		}

		if err := s.blacklist.Revoke(ctx, input.RefreshToken, decoded.ExpiresAt.Time); err != nil {
			return fmt.Errorf("failed to revoke refresh token: %w", err)
		}
	}

	s.logger.Info("user logged out", slog.String("userID", userID))

	return nil
}
