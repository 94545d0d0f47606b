package model

type SendOTPRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Purpose string `json:"purpose" validate:"required,otp_purpose"`
}

type VerifyResult struct {
	Valid bool
	Error string
}
