package xerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesByCode(t *testing.T) {
	err := New(RangeExceeded, "expiration %d overflows", 42)
	wrapped := fmt.Errorf("bridge market entry: %w", err)

	assert.True(t, errors.Is(wrapped, ErrRangeExceeded))
	assert.False(t, errors.Is(wrapped, ErrMalformedUnion))
	assert.Equal(t, RangeExceeded, CodeOf(wrapped))
	assert.Contains(t, err.Error(), "RangeExceeded")
}

func TestCodeOfPlainError(t *testing.T) {
	assert.Equal(t, Code(0), CodeOf(errors.New("boom")))
}
