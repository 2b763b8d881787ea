package validator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fieldrules/pkg/validator"
)

func sampleErrors() validator.ValidationErrors {
	var errs validator.ValidationErrors
	errs.Add(validator.ValidationError{Field: "email", Rule: "required", Message: "The email field is required."})
	errs.Add(validator.ValidationError{Field: "name", Rule: "min", Message: "The name must be at least 3 characters."})
	errs.Add(validator.ValidationError{Field: "email", Rule: "custom", Message: "second"})
	return errs
}

func TestValidationErrors_Error(t *testing.T) {
	t.Parallel()

	t.Run("returns default message when empty", func(t *testing.T) {
		var errs validator.ValidationErrors
		assert.Equal(t, "validation failed", errs.Error())
	})

	t.Run("joins field messages in order", func(t *testing.T) {
		errs := sampleErrors()
		assert.Equal(t,
			"validation failed: email: The email field is required.; name: The name must be at least 3 characters.; email: second",
			errs.Error(),
		)
	})
}

func TestValidationErrors_Queries(t *testing.T) {
	t.Parallel()
	errs := sampleErrors()

	assert.True(t, errs.Has("email"))
	assert.False(t, errs.Has("age"))
	assert.Equal(t, []string{"The email field is required.", "second"}, errs.Get("email"))
	assert.NotNil(t, errs.Get("age"))
	assert.Empty(t, errs.Get("age"))
	assert.Equal(t, []string{"email", "name"}, errs.Fields())
	assert.Equal(t, map[string][]string{
		"email": {"The email field is required.", "second"},
		"name":  {"The name must be at least 3 characters."},
	}, errs.Map())
	assert.False(t, errs.IsEmpty())

	first, ok := errs.First()
	require.True(t, ok)
	assert.Equal(t, "The email field is required.", first)

	var empty validator.ValidationErrors
	_, ok = empty.First()
	assert.False(t, ok)
	assert.True(t, empty.IsEmpty())
}

func TestValidationErrors_Unwrapping(t *testing.T) {
	t.Parallel()

	t.Run("matches ErrValidationFailed when non-empty", func(t *testing.T) {
		assert.ErrorIs(t, sampleErrors(), validator.ErrValidationFailed)

		var empty validator.ValidationErrors
		assert.NotErrorIs(t, empty, validator.ErrValidationFailed)
	})

	t.Run("extracts from wrapped error", func(t *testing.T) {
		wrapped := fmt.Errorf("signup: %w", sampleErrors())

		assert.True(t, validator.IsValidationError(wrapped))
		extracted := validator.ExtractValidationErrors(wrapped)
		require.Len(t, extracted, 3)
		assert.Equal(t, "email", extracted[0].Field)
	})

	t.Run("returns nil for other errors", func(t *testing.T) {
		assert.Nil(t, validator.ExtractValidationErrors(errors.New("boom")))
		assert.Nil(t, validator.ExtractValidationErrors(nil))
		assert.False(t, validator.IsValidationError(errors.New("boom")))
		assert.False(t, validator.IsValidationError(nil))
	})
}
