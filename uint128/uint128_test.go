package uint128

import (
	"errors"
	"math/big"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketmodel/xerr"
)

func mustBig(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok, "bad literal %s", s)
	return v
}

func TestWordsRoundTripEdges(t *testing.T) {
	cases := []struct {
		name string
		v    string
		low  uint64
		high uint64
	}{
		{"zero", "0", 0, 0},
		{"max low word", "18446744073709551615", ^uint64(0), 0},
		{"first high bit", "18446744073709551616", 0, 1},
		{"max", "340282366920938463463374607431768211455", ^uint64(0), ^uint64(0)},
		{"price", "12000", 12000, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u, err := FromBig(mustBig(t, tc.v))
			require.NoError(t, err)
			low, high := u.Words()
			assert.Equal(t, tc.low, low)
			assert.Equal(t, tc.high, high)
			assert.Equal(t, tc.v, FromWords(low, high).Big().String())
			assert.Equal(t, tc.v, u.String())
		})
	}
}

func TestRandomRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	limit := new(big.Int).Lsh(big.NewInt(1), 128)
	for i := 0; i < 2000; i++ {
		v := new(big.Int).Rand(r, limit)
		u, err := FromBig(v)
		require.NoError(t, err)
		low, high := u.Words()
		assert.Zero(t, v.Cmp(FromWords(low, high).Big()), "value %s", v)
	}
}

func TestFromBigRange(t *testing.T) {
	_, err := FromBig(big.NewInt(-1))
	assert.True(t, errors.Is(err, xerr.ErrRangeExceeded))

	tooBig := new(big.Int).Lsh(big.NewInt(1), 128)
	_, err = FromBig(tooBig)
	assert.True(t, errors.Is(err, xerr.ErrRangeExceeded))
}

func TestParse(t *testing.T) {
	u, err := Parse("0x10000000000000000")
	require.NoError(t, err)
	assert.Equal(t, FromWords(0, 1), u)

	_, err = Parse("12ab")
	assert.True(t, errors.Is(err, xerr.ErrMalformedPayload))
}

func TestCmpAndNarrow(t *testing.T) {
	assert.Equal(t, -1, FromWords(5, 0).Cmp(FromWords(0, 1)))
	assert.Equal(t, 1, FromWords(0, 2).Cmp(FromWords(^uint64(0), 1)))
	assert.Equal(t, 0, Max.Cmp(Max))

	v, ok := FromUint64(9).Uint64()
	assert.True(t, ok)
	assert.Equal(t, uint64(9), v)
	_, ok = FromWords(0, 1).Uint64()
	assert.False(t, ok)
}

func TestAddUint64(t *testing.T) {
	u, err := FromWords(^uint64(0), 0).AddUint64(1)
	require.NoError(t, err)
	assert.Equal(t, FromWords(0, 1), u)

	_, err = Max.AddUint64(1)
	assert.True(t, errors.Is(err, xerr.ErrRangeExceeded))
}

func TestJSON(t *testing.T) {
	b, err := Max.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"340282366920938463463374607431768211455"`, string(b))

	var u UInt128
	require.NoError(t, u.UnmarshalJSON(b))
	assert.Equal(t, Max, u)

	require.NoError(t, u.UnmarshalJSON([]byte("42")))
	assert.Equal(t, FromUint64(42), u)
}

func TestDecimal(t *testing.T) {
	u, err := FromDecimal(decimal.RequireFromString("65432.12345678"), 8)
	require.NoError(t, err)
	assert.Equal(t, FromUint64(6543212345678), u)
	assert.Equal(t, "65432.12345678", u.Decimal(8).String())

	_, err = FromDecimal(decimal.RequireFromString("1.123"), 2)
	assert.True(t, errors.Is(err, xerr.ErrRangeExceeded))

	_, err = FromDecimal(decimal.RequireFromString("-1"), 0)
	assert.True(t, errors.Is(err, xerr.ErrRangeExceeded))

	wide, err := FromDecimal(decimal.RequireFromString("1"), 30)
	require.NoError(t, err)
	assert.NotZero(t, wide.High)
}
