package validation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "invalid duration_days: must be between 1 and 30, got 31",
		Errorf("duration_days", "must be between %d and %d, got %d", 1, 30, 31).Error())
	assert.Equal(t, "validation failed: empty", (&Error{Reason: "empty"}).Error())
}

func TestErrorsAs(t *testing.T) {
	err := fmt.Errorf("set goal: %w", Errorf("duration_days", "too long"))

	var vErr *Error
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "duration_days", vErr.Field)
}
