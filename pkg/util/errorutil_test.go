package util

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError_Passthrough(t *testing.T) {
	t.Parallel()

	err := NewConflict("User already verified.")
	de := ToDomainError(err)
	require.NotNil(t, de)
	assert.Equal(t, "CONFLICT", de.Code)
	assert.Equal(t, 400, de.HTTPStatus)
	assert.Equal(t, "User already verified.", de.Message)
}

func TestToDomainError_WrapsUnknown(t *testing.T) {
	t.Parallel()

	cause := errors.New("pool exhausted")
	de := ToDomainError(cause)
	require.NotNil(t, de)
	assert.Equal(t, "INTERNAL_ERROR", de.Code)
	assert.Equal(t, 500, de.HTTPStatus)
	// The generic message hides the cause; the cause stays wrapped for logs.
	assert.Equal(t, "Internal server error", de.Message)
	assert.ErrorIs(t, de, cause)
}

func TestStatusMapping(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 401, ToDomainError(NewValidationError("bad input")).HTTPStatus)
	assert.Equal(t, 401, ToDomainError(NewDuplicate("User already exists")).HTTPStatus)
	assert.Equal(t, 401, ToDomainError(NewUnauthorized("Invalid credentials!")).HTTPStatus)
	assert.Equal(t, 403, ToDomainError(NewForbidden("not yours")).HTTPStatus)
	assert.Equal(t, 404, ToDomainError(NewNotFound("Post")).HTTPStatus)
	assert.Equal(t, 404, ToDomainError(NewNotFoundMessage("User does not exist.")).HTTPStatus)
	assert.Equal(t, 400, ToDomainError(NewExpired("Verification code expired.")).HTTPStatus)
}
