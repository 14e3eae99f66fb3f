package service

import (
	"unicode"

	"golang.org/x/crypto/bcrypt"

	autherror "github.com/cieslarmichal/just-join-us-auth/internal/errors"
)

const (
	PasswordMinLength = 8
	PasswordMaxLength = 64
)

// ValidatePassword checks the plaintext password policy. Rules run in a
// fixed order so the first broken rule is always the one reported: min
// length, max length, lowercase, uppercase, digit.
func ValidatePassword(password string) error {
	if len(password) < PasswordMinLength {
		return autherror.ErrPasswordTooShort
	}

	if len(password) > PasswordMaxLength {
		return autherror.ErrPasswordTooLong
	}

	var hasLower, hasUpper, hasDigit bool

	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasLower {
		return autherror.ErrPasswordMissingLowercase
	}

	if !hasUpper {
		return autherror.ErrPasswordMissingUppercase
	}

	if !hasDigit {
		return autherror.ErrPasswordMissingDigit
	}

	return nil
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hashed), nil
}

// ComparePassword reports whether the plaintext password matches the stored
// hash.
func ComparePassword(passwordHash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)) == nil
}
