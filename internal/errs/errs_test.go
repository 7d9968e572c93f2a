package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrappedSentinelsSurviveErrorsIs(t *testing.T) {
	wrapped := fmt.Errorf("dial scheduler: %w", ErrStartupRPC)
	assert.True(t, errors.Is(wrapped, ErrStartupRPC))
	assert.False(t, errors.Is(wrapped, ErrHashRing))
}
