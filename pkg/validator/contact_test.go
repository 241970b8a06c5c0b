package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePhone_ValidNumbers(t *testing.T) {
	validator := NewContactValidator()

	validNumbers := []struct {
		input    string
		expected string
		name     string
	}{
		{"0771234567", "0771234567", "Standard format"},
		{"077 123 4567", "0771234567", "With spaces"},
		{"077-123-4567", "0771234567", "With dashes"},
		{"077.123.4567", "0771234567", "With dots"},
		{"(077) 123 4567", "0771234567", "With parentheses"},
		{"94771234567", "0771234567", "With country code"},
		{"1234567890", "1234567890", "Any 10 digit number"},
	}

	for _, tc := range validNumbers {
		t.Run(tc.name, func(t *testing.T) {
			sanitized, err := validator.ValidatePhone(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, sanitized)
		})
	}
}

func TestValidatePhone_InvalidNumbers(t *testing.T) {
	validator := NewContactValidator()

	invalidNumbers := []struct {
		input       string
		expectedErr error
		name        string
	}{
		{"", ErrEmptyPhone, "Empty string"},
		{"123", ErrInvalidPhoneLength, "Too short"},
		{"07712345678", ErrInvalidPhoneLength, "Too long"},
		{"077123456a", ErrInvalidPhoneFormat, "Contains letters"},
		{"077 123 456!", ErrInvalidPhoneFormat, "Contains special characters"},
	}

	for _, tc := range invalidNumbers {
		t.Run(tc.name, func(t *testing.T) {
			_, err := validator.ValidatePhone(tc.input)
			assert.Error(t, err)
			assert.Equal(t, tc.expectedErr, err)
		})
	}
}

func TestValidateEmail(t *testing.T) {
	validator := NewContactValidator()

	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, validator.ValidateEmail("rider@example.com"))
		assert.NoError(t, validator.ValidateEmail("a@b"))
	})

	t.Run("Invalid", func(t *testing.T) {
		assert.Equal(t, ErrEmptyEmail, validator.ValidateEmail(""))
		assert.Equal(t, ErrInvalidEmail, validator.ValidateEmail("no-at-sign"))
		assert.Equal(t, ErrInvalidEmail, validator.ValidateEmail("@leading"))
		assert.Equal(t, ErrInvalidEmail, validator.ValidateEmail("trailing@"))
	})
}
