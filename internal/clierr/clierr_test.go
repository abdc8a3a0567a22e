package clierr

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewf(t *testing.T) {
	err := Newf(NotFound, "item at path %s not found", "0.1")
	assert.Equal(t, "item at path 0.1 not found", err.Error())
	assert.Equal(t, NotFound, err.Code)
}

func TestWrap_Unwrap(t *testing.T) {
	cause := os.ErrPermission
	err := Wrap(IOFailure, cause, "writing data file")

	require.ErrorIs(t, err, os.ErrPermission)
	assert.Equal(t, "writing data file: permission denied", err.Error())
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(New(NotFound, "x")))
	assert.Equal(t, 1, ExitCode(New(AlreadyExists, "x")))
	assert.Equal(t, 1, ExitCode(New(Protected, "x")))
	assert.Equal(t, 1, ExitCode(New(InvalidDirection, "x")))
	assert.Equal(t, 2, ExitCode(New(DataCorruption, "x")))
	assert.Equal(t, 2, ExitCode(New(IOFailure, "x")))
	assert.Equal(t, 1, ExitCode(errors.New("plain")))
}

func TestExitCode_ThroughWrapping(t *testing.T) {
	inner := New(DataCorruption, "invalid data format in tasks.json")
	outer := fmt.Errorf("loading store: %w", inner)
	assert.Equal(t, 2, ExitCode(outer))
	assert.Equal(t, DataCorruption, CodeOf(outer))
}

func TestCodeOf_Unknown(t *testing.T) {
	assert.Equal(t, "", CodeOf(errors.New("plain")))
}

func TestSilentError(t *testing.T) {
	var err error = &SilentError{Code: 1}
	assert.Equal(t, "exit status 1", err.Error())

	var silent *SilentError
	require.True(t, errors.As(fmt.Errorf("wrapped: %w", err), &silent))
	assert.Equal(t, 1, silent.Code)
}
