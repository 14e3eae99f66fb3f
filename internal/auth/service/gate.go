package service

import (
	"strings"

	"github.com/cieslarmichal/just-join-us-auth/internal/auth/domain"
	autherror "github.com/cieslarmichal/just-join-us-auth/internal/errors"
	"github.com/cieslarmichal/just-join-us-auth/pkg/constant"
)

// AccessGate validates inbound bearer tokens for the HTTP layer. It checks
// signature, expiry and token type only; it deliberately does not consult
// the blacklist, so a logged-out access token stays accepted until its
// natural expiry.
type AccessGate struct {
	codec TokenCodec
}

func NewAccessGate(codec TokenCodec) *AccessGate {
	return &AccessGate{codec: codec}
}

type AuthContext struct {
	Subject string
	Role    domain.Role
}

// Authorize extracts and verifies the bearer token from the Authorization
// header value. A non-access token is rejected even with a valid signature.
// When expectedSubject is non-empty the token subject must match it, or the
// request is forbidden.
func (g *AccessGate) Authorize(authorizationHeader, expectedSubject string) (*AuthContext, error) {
	tokenString, ok := bearerToken(authorizationHeader)
	if !ok {
		return nil, autherror.ErrMissingBearerToken
	}

	claims, err := g.codec.Verify(tokenString)
	if err != nil {
		return nil, autherror.ErrInvalidAccessToken.WithCause(err)
	}

	if claims.TokenType != TokenTypeAccess {
		return nil, autherror.ErrInvalidAccessToken
	}

	if expectedSubject != "" && claims.Subject != expectedSubject {
		return nil, autherror.ErrSubjectMismatch
	}

	return &AuthContext{Subject: claims.Subject, Role: claims.Role}, nil
}

func bearerToken(header string) (string, bool) {
	scheme := constant.DefaultTokenType + " "
	if len(header) <= len(scheme) || !strings.EqualFold(header[:len(scheme)], scheme) {
		return "", false
	}

	token := strings.TrimSpace(header[len(scheme):])
	if token == "" {
		return "", false
	}

	return token, true
}
