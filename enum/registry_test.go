package enum

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketmodel/xerr"
)

type side uint32

var sides = New[side]("Side", "bid", "ask")

func TestNameAndParse(t *testing.T) {
	for _, v := range sides.Values() {
		name, ok := sides.Name(v)
		require.True(t, ok)
		back, err := sides.Parse(name)
		require.NoError(t, err)
		assert.Equal(t, v, back)
	}

	v, err := sides.Parse("  ASK ")
	require.NoError(t, err)
	assert.Equal(t, side(1), v)

	_, err = sides.Parse("mid")
	assert.True(t, errors.Is(err, xerr.ErrUnknownEnumerant))
}

func TestUnknownOrdinalIsAMarker(t *testing.T) {
	next := side(sides.Len())

	v, err := sides.FromWire(uint64(next))
	require.NoError(t, err)
	assert.Equal(t, next, v)
	assert.False(t, sides.Known(v))
	assert.Equal(t, "unknown(2)", sides.String(v))

	parsed, err := sides.Parse("unknown(2)")
	require.NoError(t, err)
	assert.Equal(t, next, parsed)

	assert.True(t, errors.Is(sides.Check(v), xerr.ErrUnknownEnumerant))
	assert.NoError(t, sides.Check(0))
}

func TestFromWireRange(t *testing.T) {
	_, err := FromWire[side](1 << 32)
	assert.True(t, errors.Is(err, xerr.ErrRangeExceeded))

	v, err := FromWire[side](70000)
	require.NoError(t, err)
	assert.Equal(t, side(70000), v)

	v, err = FromWire[side](math.MaxUint32)
	require.NoError(t, err)
	assert.Equal(t, side(math.MaxUint32), v)
}

func TestJSON(t *testing.T) {
	b, err := sides.MarshalJSON(1)
	require.NoError(t, err)
	assert.Equal(t, `"ask"`, string(b))

	b, err = sides.MarshalJSON(7)
	require.NoError(t, err)
	assert.Equal(t, `7`, string(b))

	v, err := sides.UnmarshalJSON([]byte(`7`))
	require.NoError(t, err)
	assert.Equal(t, side(7), v)

	v, err = sides.UnmarshalJSON([]byte(`"BID"`))
	require.NoError(t, err)
	assert.Equal(t, side(0), v)

	_, err = sides.UnmarshalJSON([]byte(`true`))
	assert.True(t, errors.Is(err, xerr.ErrMalformedPayload))
}

func TestNewRejectsDuplicates(t *testing.T) {
	assert.Panics(t, func() { New[side]("Side", "bid", "BID") })
	assert.Panics(t, func() { New[side]("Side", "bid", "") })
}
