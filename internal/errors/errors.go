package errors

import (
	"errors"
)

// Kind classifies a failure for transport mapping. Unauthorized means no
// identity could be established, Forbidden means the identity is known but
// the action is disallowed, InvalidOperation is a named business-rule
// violation.
type Kind int

const (
	KindUnauthorized Kind = iota + 1
	KindForbidden
	KindInvalidOperation
	KindResourceNotFound
	KindResourceAlreadyExists
)

type Error struct {
	Kind   Kind
	Reason string
	cause  error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Reason + ": " + e.cause.Error()
	}
	return e.Reason
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches on kind and reason so a sentinel still matches after a cause
// has been attached with WithCause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Reason == t.Reason
}

// WithCause returns a copy of the error carrying the underlying cause.
// The token or password value itself must never end up in the cause chain.
func (e *Error) WithCause(cause error) *Error {
	return &Error{Kind: e.Kind, Reason: e.Reason, cause: cause}
}

// KindOf reports the kind of err, or 0 for errors outside the taxonomy.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func Unauthorized(reason string) *Error {
	return &Error{Kind: KindUnauthorized, Reason: reason}
}

func Forbidden(reason string) *Error {
	return &Error{Kind: KindForbidden, Reason: reason}
}

func InvalidOperation(reason string) *Error {
	return &Error{Kind: KindInvalidOperation, Reason: reason}
}

var (
	ErrInvalidCredentials = Unauthorized("invalid credentials")
	ErrMissingBearerToken = Unauthorized("missing bearer token")
	ErrInvalidAccessToken = Unauthorized("invalid access token")

	ErrEmailNotVerified = Forbidden("email not verified")
	ErrUserDeleted      = Forbidden("user deleted")
	ErrSubjectMismatch  = Forbidden("subject mismatch")

	ErrRefreshTokenBlacklisted = InvalidOperation("refresh token blacklisted")
	ErrInvalidRefreshToken     = InvalidOperation("invalid refresh token")
	ErrLogoutInvalidAccess     = InvalidOperation("invalid access token")
	ErrWrongTokenType          = InvalidOperation("wrong token type")
	ErrMissingSubject          = InvalidOperation("missing subject")
	ErrUserNotFound            = InvalidOperation("user not found")
	ErrUserBlocked             = InvalidOperation("user blocked")
	ErrUserIsBlocked           = InvalidOperation("user is blocked")
	ErrInvalidResetToken       = InvalidOperation("invalid reset password token")
	ErrResetTokenAlreadyUsed   = InvalidOperation("token already used")
	ErrInvalidVerifyToken      = InvalidOperation("invalid token")
	ErrEmailAlreadyVerified    = InvalidOperation("already verified")

	ErrPasswordTooShort         = InvalidOperation("password too short")
	ErrPasswordTooLong          = InvalidOperation("password too long")
	ErrPasswordMissingLowercase = InvalidOperation("password must contain a lowercase letter")
	ErrPasswordMissingUppercase = InvalidOperation("password must contain an uppercase letter")
	ErrPasswordMissingDigit     = InvalidOperation("password must contain a digit")
)
