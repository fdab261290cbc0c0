package domain

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesKindAndCause(t *testing.T) {
	err := Wrapf(ErrConfigLoad, os.ErrNotExist, "Failed to load prompt configuration")

	assert.True(t, errors.Is(err, ErrConfigLoad))
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.False(t, errors.Is(err, ErrUpstream))
	assert.Equal(t, "Failed to load prompt configuration: file does not exist", err.Error())

	wrapped := fmt.Errorf("generate: %w", err)
	assert.True(t, errors.Is(wrapped, ErrConfigLoad))

	var de *Error
	assert.True(t, errors.As(wrapped, &de))
	assert.Equal(t, "Failed to load prompt configuration", de.Message)
}

func TestError_NewfHasNoCause(t *testing.T) {
	err := Newf(ErrUnsupportedPlatform, "Unsupported platform: %s", "myspace")

	assert.Equal(t, "Unsupported platform: myspace", err.Error())
	assert.Nil(t, err.Cause)
	assert.Equal(t, []error{ErrUnsupportedPlatform}, err.Unwrap())
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeAllModelsRateLimited, CodeOf(Newf(ErrAllModelsRateLimited, "x")))
	assert.Equal(t, CodeInvalidContentType, CodeOf(fmt.Errorf("wrap: %w", Newf(ErrInvalidContentType, "x"))))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
	assert.Equal(t, CodeInternal, CodeOf(nil))
}

func TestIsInputError(t *testing.T) {
	for _, kind := range []error{ErrInvalidRequest, ErrUnsupportedPlatform, ErrUnsupportedContentType, ErrInvalidPlatform, ErrInvalidContentType} {
		assert.True(t, IsInputError(Newf(kind, "x")), kind.Error())
	}
	for _, kind := range []error{ErrConfigLoad, ErrMissingCredential, ErrAllModelsRateLimited, ErrUpstream, ErrCancelled} {
		assert.False(t, IsInputError(Newf(kind, "x")), kind.Error())
	}
}
