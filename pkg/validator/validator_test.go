package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrahimElhajji/alx-backend-graphql-crm/pkg/validator"
)

func TestPhoneRegex(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"+15551234567", true},
		{"+1", true},
		{"+123456789012345", true},
		{"555-123-4567", true},
		{"555-1234", false},
		{"+1234567890123456", false}, // 16 digits
		{"15551234567", false},       // missing plus
		{"+1555123456a", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			assert.Equal(t, tt.valid, validator.PhoneRegex.MatchString(tt.phone))
		})
	}
}

func TestDefaultValidator(t *testing.T) {
	v, err := validator.NewDefaultValidator()
	require.NoError(t, err)

	type input struct {
		Email string  `validate:"required,email"`
		Phone *string `validate:"omitempty,phone"`
	}

	t.Run("Should pass a valid struct", func(t *testing.T) {
		phone := "555-123-4567"
		assert.NoError(t, v.Validate(input{Email: "a@example.com", Phone: &phone}))
	})

	t.Run("Should skip nil optional phone", func(t *testing.T) {
		assert.NoError(t, v.Validate(input{Email: "a@example.com"}))
	})

	t.Run("Should fail on bad phone", func(t *testing.T) {
		phone := "555-1234"
		err := v.Validate(input{Email: "a@example.com", Phone: &phone})
		require.Error(t, err)
		assert.True(t, validator.IsValidationError(err))
	})

	t.Run("Should fail on bad email", func(t *testing.T) {
		err := v.Validate(input{Email: "nope"})
		require.Error(t, err)
		assert.True(t, validator.IsValidationError(err))
	})
}
