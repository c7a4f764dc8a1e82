package pb

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"marketmodel/codec/codectest"
	"marketmodel/models"
	"marketmodel/schema"
	"marketmodel/union"
	"marketmodel/xerr"
)

func TestRoundTrip(t *testing.T) {
	codectest.AssertRoundTrips(t, New())
}

func TestUnknownFieldsAreSkipped(t *testing.T) {
	c := New()
	want := codectest.Orderbook()
	data, err := c.Marshal(want)
	require.NoError(t, err)

	data = protowire.AppendTag(data, 99, protowire.BytesType)
	data = protowire.AppendString(data, "from a newer producer")
	data = protowire.AppendTag(data, 100, protowire.VarintType)
	data = protowire.AppendVarint(data, 7)

	var got models.OrderbookEntry
	require.NoError(t, c.Unmarshal(data, &got))
	assert.Equal(t, want, got)
}

func TestMissingArmsDecodeAbsent(t *testing.T) {
	var b []byte
	b = appendString(b, models.PriceSource, "okx")

	var got models.PriceEntry
	require.NoError(t, New().Unmarshal(b, &got))
	assert.Equal(t, union.None[models.Chain](), got.Chain)
	assert.Equal(t, union.None[int64](), got.Expiration)
}

func TestLastArmWins(t *testing.T) {
	var b []byte
	b = appendVarint(b, models.PriceChain, uint64(models.Base))
	b = appendVoid(b, models.PriceNoChain)
	b = appendVoid(b, models.PriceNoExpiration)
	b = appendInt64(b, models.PriceExpiration, 42)

	var got models.PriceEntry
	require.NoError(t, New().Unmarshal(b, &got))
	assert.False(t, got.Chain.IsSome())
	assert.Equal(t, union.Some[int64](42), got.Expiration)
}

func TestUnknownEnumOrdinalIsKept(t *testing.T) {
	var b []byte
	b = appendVarint(b, models.DepthChain, 500)
	b = appendVarint(b, models.DepthInstrumentType, 3)

	var got models.DepthEntry
	require.NoError(t, New().Unmarshal(b, &got))
	c, ok := got.Chain.Get()
	require.True(t, ok)
	assert.False(t, c.Known())
	assert.Equal(t, "unknown(500)", c.String())
	assert.Equal(t, "unknown(3)", got.InstrumentType.String())

	out, err := New().Marshal(got)
	require.NoError(t, err)
	var again models.DepthEntry
	require.NoError(t, New().Unmarshal(out, &again))
	assert.Equal(t, got, again)
}

func TestEnumsSpanInt32(t *testing.T) {
	var b []byte
	b = appendVarint(b, models.OrderbookType, 1<<20)
	// -1 as an int32 enum: sign-extended to ten bytes.
	b = appendVarint(b, models.OrderbookInstrumentType, math.MaxUint64)

	var got models.OrderbookEntry
	require.NoError(t, New().Unmarshal(b, &got))
	assert.Equal(t, models.OrderbookUpdateType(1<<20), got.Type)
	assert.Equal(t, models.InstrumentType(math.MaxUint32), got.InstrumentType)
	assert.False(t, got.InstrumentType.Known())

	out, err := New().Marshal(got)
	require.NoError(t, err)
	require.NoError(t, eachField(out, func(f value) error {
		if schema.FieldID(f.num) == models.OrderbookInstrumentType {
			raw, err := f.varint()
			require.NoError(t, err)
			assert.Equal(t, uint64(math.MaxUint64), raw)
		}
		return nil
	}))
	var again models.OrderbookEntry
	require.NoError(t, New().Unmarshal(out, &again))
	assert.Equal(t, got, again)
}

func TestMalformed(t *testing.T) {
	c := New()
	data, err := c.Marshal(codectest.Orderbook())
	require.NoError(t, err)

	var got models.OrderbookEntry
	err = c.Unmarshal(data[:len(data)-3], &got)
	assert.True(t, errors.Is(err, xerr.ErrMalformedPayload))

	wrongType := appendVarint(nil, models.OrderbookSource, 1)
	err = c.Unmarshal(wrongType, &got)
	assert.True(t, errors.Is(err, xerr.ErrMalformedPayload))
}

func TestFieldNumbersAreIdentifiers(t *testing.T) {
	data, err := New().Marshal(models.FundingRateEntry{Source: "x", FundingRate: 0.1, Timestamp: 3})
	require.NoError(t, err)

	var seen []protowire.Number
	require.NoError(t, eachField(data, func(f value) error {
		seen = append(seen, f.num)
		return nil
	}))
	assert.Equal(t, []protowire.Number{1, 2, 3, 4}, seen)
}

func TestUnsupportedType(t *testing.T) {
	_, err := New().Marshal(struct{}{})
	assert.True(t, errors.Is(err, xerr.ErrUnsupportedType))

	var s string
	assert.True(t, errors.Is(New().Unmarshal(nil, &s), xerr.ErrUnsupportedType))
}
