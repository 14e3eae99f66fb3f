package dto

// ChangePasswordInput identifies the principal either by an authenticated
// subject id (resolved from the bearer token by the handler) or by a
// password-reset token carried in the body. Exactly one of the two is set.
type ChangePasswordInput struct {
	NewPassword        string `json:"password"`
	ResetPasswordToken string `json:"reset_password_token,omitempty"`
	UserID             string `json:"-"`
}

type PasswordResetRequestInput struct {
	Email string `json:"email"`
}
