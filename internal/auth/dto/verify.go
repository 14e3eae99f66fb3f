package dto

type VerificationEmailRequestInput struct {
	Email string `json:"email"`
}

type VerifyEmailInput struct {
	Token string `json:"token"`
}
