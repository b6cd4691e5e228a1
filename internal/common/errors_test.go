// File: internal/common/errors_test.go
package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelMatchByCode(t *testing.T) {
	assert.True(t, errors.Is(ErrEmailInUse, ErrEmailInUse))
	assert.False(t, errors.Is(ErrEmailInUse, ErrWeakPassword))

	// A detailed copy still matches its sentinel.
	detailed := ErrValidation.WithDetails(map[string]string{"name": "Name is required."})
	assert.True(t, errors.Is(detailed, ErrValidation))
}

func TestWithDetailsCopies(t *testing.T) {
	detailed := ErrNotFound.WithDetails("users/abc")
	assert.Nil(t, ErrNotFound.Details, "sentinel must stay pristine")
	assert.Equal(t, "users/abc", detailed.Details)
	assert.Equal(t, ErrNotFound.Code, detailed.Code)
}

func TestWrappedErrorsUnwrap(t *testing.T) {
	wrapped := fmt.Errorf("loading profile: %w", ErrNotFound)
	assert.True(t, errors.Is(wrapped, ErrNotFound))

	appErr, ok := IsError(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, appErr.Code)
}

func TestIsErrorPlainError(t *testing.T) {
	_, ok := IsError(errors.New("plain"))
	assert.False(t, ok)
}

func TestUnknownfCarriesDetail(t *testing.T) {
	err := Unknownf("provider said %q", "NEW_CODE")
	assert.True(t, errors.Is(err, ErrUnknown))
	assert.Contains(t, err.Error(), "NEW_CODE")
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "NOT_FOUND: The requested record could not be found.", ErrNotFound.Error())
}
