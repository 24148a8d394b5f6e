package validator

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatValidationError(t *testing.T) {
	validate := validator.New()

	type form struct {
		SponsorName    string `validate:"required"`
		WhatsappNumber string `validate:"required"`
		Title          string `validate:"required,min=3"`
	}

	err := validate.Struct(form{Title: "ab"})
	require.Error(t, err)

	msg := FormatValidationError(err)
	assert.Contains(t, msg, "Sponsor name is required")
	assert.Contains(t, msg, "WhatsApp number is required")
	assert.Contains(t, msg, "Title must be at least 3 characters")
}

func TestFormatValidationErrorPassesThroughOtherErrors(t *testing.T) {
	err := errors.New("unexpected EOF")
	assert.Equal(t, "unexpected EOF", FormatValidationError(err))
}
