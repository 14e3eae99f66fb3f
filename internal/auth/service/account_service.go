package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cieslarmichal/just-join-us-auth/internal/auth/domain"
	"github.com/cieslarmichal/just-join-us-auth/internal/auth/dto"
	autherror "github.com/cieslarmichal/just-join-us-auth/internal/errors"
)

// AccountService covers the account-state workflows: password change (both
// the authenticated and the reset-token mode), password-reset emails, and
// email verification.
type AccountService struct {
	users           domain.UserDirectory
	blacklist       domain.TokenBlacklist
	codec           TokenCodec
	notifier        domain.Notifier
	frontendBaseURL string
	logger          *slog.Logger
}

func NewAccountService(
	users domain.UserDirectory,
	blacklist domain.TokenBlacklist,
	codec TokenCodec,
	notifier domain.Notifier,
	frontendBaseURL string,
	logger *slog.Logger,
) *AccountService {
	return &AccountService{
		users:           users,
		blacklist:       blacklist,
		codec:           codec,
		notifier:        notifier,
		frontendBaseURL: frontendBaseURL,
		logger:          logger,
	}
}

// ChangePassword sets a new password for the principal identified either by
// an authenticated subject id or by a password-reset token. A reset token is
// one-time: it is blacklisted after a successful change.
func (s *AccountService) ChangePassword(ctx context.Context, input dto.ChangePasswordInput) error {
	subject := input.UserID

	if input.ResetPasswordToken != "" {
		claims, err := s.codec.Verify(input.ResetPasswordToken)
		if err != nil {
			return autherror.ErrInvalidResetToken.WithCause(err)
		}

		revoked, err := s.blacklist.IsRevoked(ctx, input.ResetPasswordToken)
		if err != nil {
			return fmt.Errorf("failed to check token blacklist: %w", err)
		}

		if revoked {
			return autherror.ErrResetTokenAlreadyUsed
		}

		if claims.TokenType != TokenTypePasswordReset || claims.Subject == "" {
			return autherror.ErrInvalidResetToken
		}

		subject = claims.Subject
	}

	user, err := s.users.GetByID(ctx, subject)
	if err != nil {
		return fmt.Errorf("failed to get user by id: %w", err)
	}

	if user == nil {
		return autherror.ErrUserNotFound
	}

	if user.Deleted {
		return autherror.ErrUserIsBlocked
	}

	if err := ValidatePassword(input.NewPassword); err != nil {
		return err
	}

	passwordHash, err := HashPassword(input.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, user.ID, passwordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if input.ResetPasswordToken != "" {
		decoded, err := s.codec.Decode(input.ResetPasswordToken)
		if err != nil {
			return autherror.ErrInvalidResetToken.WithCause(err)
		}

		if err := s.blacklist.Revoke(ctx, input.ResetPasswordToken, decoded.ExpiresAt.Time); err != nil {
			return fmt.Errorf("failed to revoke reset token: %w", err)
		}
	}

	s.logger.Info("password changed", slog.String("userID", user.ID))

	return nil
}

// RequestPasswordReset issues a reset token and hands the link to the
// notifier. An unknown or deleted principal returns success without sending
// anything, so the endpoint cannot be used to enumerate accounts.
func (s *AccountService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to get user by email: %w", err)
	}

	if user == nil || user.Deleted {
		s.logger.Info("password reset requested for unknown or blocked account", slog.String("email", email))
		return nil
	}

	token, err := s.codec.Issue(user.ID, TokenTypePasswordReset, "", s.codec.GetResetTokenExpiry())
	if err != nil {
		return fmt.Errorf("failed to issue reset token: %w", err)
	}

	s.send(ctx, domain.Notification{
		Event:     domain.EventPasswordResetRequested,
		Recipient: user.Email,
		Link:      s.frontendBaseURL + "/reset-password?token=" + token,
	})

	return nil
}

// RequestVerificationEmail issues a verification token for an unverified
// principal. Unlike the reset flow this one does report an unknown email;
// the asymmetry is intentional.
func (s *AccountService) RequestVerificationEmail(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to get user by email: %w", err)
	}

	if user == nil {
		return autherror.ErrUserNotFound
	}

	if user.EmailVerified {
		return autherror.ErrEmailAlreadyVerified
	}

	token, err := s.codec.Issue(user.ID, TokenTypeEmailVerification, "", s.codec.GetVerificationTokenExpiry())
	if err != nil {
		return fmt.Errorf("failed to issue verification token: %w", err)
	}

	s.send(ctx, domain.Notification{
		Event:     domain.EventEmailVerificationRequested,
		Recipient: user.Email,
		Link:      s.frontendBaseURL + "/verify-email?token=" + token,
	})

	return nil
}

// VerifyEmail completes verification with a token from the emailed link.
func (s *AccountService) VerifyEmail(ctx context.Context, tokenString string) error {
	claims, err := s.codec.Verify(tokenString)
	if err != nil {
		return autherror.ErrInvalidVerifyToken.WithCause(err)
	}

	if claims.TokenType != TokenTypeEmailVerification || claims.Subject == "" {
		return autherror.ErrInvalidVerifyToken
	}

	user, err := s.users.GetByID(ctx, claims.Subject)
	if err != nil {
		return fmt.Errorf("failed to get user by id: %w", err)
	}

	if user == nil {
		return autherror.ErrUserNotFound
	}

	if user.EmailVerified {
		return autherror.ErrEmailAlreadyVerified
	}

	if err := s.users.SetEmailVerified(ctx, user.ID, true); err != nil {
		return fmt.Errorf("failed to update verification flag: %w", err)
	}

	s.logger.Info("email verified", slog.String("userID", user.ID))

	return nil
}

// send is fire-and-forget: delivery failures are logged, never surfaced.
func (s *AccountService) send(ctx context.Context, notification domain.Notification) {
	if err := s.notifier.Send(ctx, notification); err != nil {
		s.logger.Warn("failed to publish notification",
			slog.String("event", notification.Event),
			slog.String("error", err.Error()))
	}
}
