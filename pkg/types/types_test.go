package types

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestKindOfWrappedError(t *testing.T) {
	base := NewEditError(ErrorKindEncodingFailure, "ffmpeg exited with status 1", errors.New("exit status 1"))
	wrapped := errors.Wrap(base, "export output.mp4")

	kind, ok := KindOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, ErrorKindEncodingFailure, kind)
	assert.True(t, IsKind(wrapped, ErrorKindEncodingFailure))
	assert.False(t, IsKind(wrapped, ErrorKindInputNotFound))
	assert.Contains(t, wrapped.Error(), "exit status 1")
}

func TestKindOfPlainError(t *testing.T) {
	_, ok := KindOf(fmt.Errorf("boom"))
	assert.False(t, ok)
}

func TestEditErrorWithoutCause(t *testing.T) {
	err := NewEditError(ErrorKindInputNotFound, "uploads/missing.mp4", nil)
	assert.Equal(t, "input_not_found: uploads/missing.mp4", err.Error())
	assert.Nil(t, err.Unwrap())
}
