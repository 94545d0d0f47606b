package helper

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestValidationMessage(t *testing.T) {
	v := validator.New()

	type form struct {
		FullName string `validate:"required"`
		Email    string `validate:"omitempty,email"`
	}

	err := v.Struct(form{})
	assert.Equal(t, "full_name is required", ValidationMessage(err))

	err = v.Struct(form{FullName: "x", Email: "not-an-email"})
	assert.Equal(t, "email is invalid", ValidationMessage(err))

	assert.Equal(t, MsgBadRequest, ValidationMessage(assert.AnError))
}
