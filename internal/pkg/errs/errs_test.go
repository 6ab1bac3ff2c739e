package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewErrorFillsTemplate(t *testing.T) {
	err := NewError(ErrRoomNotFound)
	assert.Equal(t, ErrRoomNotFound, err.Code)
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.NotEmpty(t, err.Message)
}

func TestNewErrorUnknownCodeFallsBack(t *testing.T) {
	err := NewError(999999)
	assert.Equal(t, ErrUnknown, err.Code)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
}

func TestNewErrorDefaultsStatusToOK(t *testing.T) {
	// Client-side errors carry no HTTP status in their template.
	err := NewError(ErrSessionNotConnected)
	assert.Equal(t, http.StatusOK, err.Status)
}

func TestHasCode(t *testing.T) {
	err := NewError(ErrCredentialExpired)
	assert.True(t, HasCode(err, ErrCredentialExpired))
	assert.False(t, HasCode(err, ErrCredentialMissing))
	assert.False(t, HasCode(nil, ErrCredentialExpired))
	assert.False(t, HasCode(errors.New("plain"), ErrCredentialExpired))

	wrapped := fmt.Errorf("context: %w", err)
	assert.True(t, HasCode(wrapped, ErrCredentialExpired))
}

func TestFrom(t *testing.T) {
	assert.Nil(t, From(nil))
	assert.Equal(t, ErrUnknown, From(errors.New("plain")).Code)

	custom := NewError(ErrRoomNotFound)
	assert.Same(t, custom, From(custom))
}
