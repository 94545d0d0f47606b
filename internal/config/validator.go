package config

import (
	"unicode"

	"SereneCMSAPI/internal/constant"

	"github.com/go-playground/validator/v10"
)

func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("otp_purpose", validateOTPPurpose)
	_ = v.RegisterValidation("content_type", validateOneOf(constant.ContentTypes))
	_ = v.RegisterValidation("event_type", validateOneOf(constant.EventTypes))
	_ = v.RegisterValidation("staff_role", validateOneOf(append([]string{constant.RoleMember}, constant.StaffRoles...)))
	_ = v.RegisterValidation("password_complexity", validatePasswordComplexity)
	return v
}

func validateOTPPurpose(fl validator.FieldLevel) bool {
	purpose := fl.Field().String()
	for _, p := range constant.OTPPurposes {
		if purpose == p {
			return true
		}
	}
	return false
}

func validateOneOf(allowed []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		for _, a := range allowed {
			if value == a {
				return true
			}
		}
		return false
	}
}

func validatePasswordComplexity(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		}
	}
	return hasUpper && hasLower && hasNumber
}
