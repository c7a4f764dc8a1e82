package jsonx

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketmodel/codec/codectest"
	"marketmodel/models"
	"marketmodel/models/legacy"
	"marketmodel/uint128"
	"marketmodel/union"
	"marketmodel/xerr"
)

func TestRoundTrip(t *testing.T) {
	codectest.AssertRoundTrips(t, New())
	codectest.AssertRoundTrips(t, New(WithIndent("  ")))
}

func TestShape(t *testing.T) {
	e := models.PriceEntry{
		Source:     "okx",
		Chain:      union.Some(models.Starknet),
		Pair:       models.NewPair("eth", "usd"),
		Timestamp:  5,
		Price:      uint128.Max,
		Expiration: union.None[int64](),
	}
	data, err := New().Marshal(&e)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"source": "okx",
		"chain": "starknet",
		"pair": {"base": "ETH", "quote": "USD"},
		"timestamp": 5,
		"price": "340282366920938463463374607431768211455",
		"volume": "0",
		"expiration": null
	}`, string(data))
}

func TestEmptyLevelsDecodeNil(t *testing.T) {
	var got legacy.OrderbookUpdate
	require.NoError(t, New().Unmarshal([]byte(`{"bids": [], "asks": null, "instrument_type": "perp"}`), &got))
	assert.Nil(t, got.Bids)
	assert.Nil(t, got.Asks)
	assert.Equal(t, models.Perp, got.InstrumentType)
}

func TestUnmarshalReplaces(t *testing.T) {
	got := models.FundingRateEntry{Source: "old", FundingRate: 1}
	require.NoError(t, New().Unmarshal([]byte(`{"timestamp": 9}`), &got))
	assert.Equal(t, models.FundingRateEntry{Timestamp: 9}, got)

	err := New().Unmarshal([]byte(`{"timestamp": "x"}`), &got)
	assert.True(t, errors.Is(err, xerr.ErrMalformedPayload))
	assert.Equal(t, int64(9), got.Timestamp)
}

func TestUnknownEnumOrdinal(t *testing.T) {
	var got models.DepthEntry
	require.NoError(t, New().Unmarshal([]byte(`{"instrument_type": 7, "chain": 40}`), &got))
	assert.Equal(t, models.InstrumentType(7), got.InstrumentType)
	assert.Equal(t, union.Some(models.Chain(40)), got.Chain)

	data, err := New().Marshal(got)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"chain":40`)

	err = New().Unmarshal([]byte(`{"chain": "mars"}`), &got)
	assert.Error(t, err)
}

func TestNonFinite(t *testing.T) {
	_, err := New().Marshal(models.FundingRateEntry{FundingRate: math.NaN()})
	assert.True(t, errors.Is(err, xerr.ErrRangeExceeded))
	_, err = New().Marshal(models.DepthEntry{Depth: models.DepthLevel{Bid: math.Inf(1)}})
	assert.True(t, errors.Is(err, xerr.ErrRangeExceeded))
}

func TestMalformed(t *testing.T) {
	var got models.OrderbookEntry
	err := New().Unmarshal([]byte(`{"source": `), &got)
	assert.True(t, errors.Is(err, xerr.ErrMalformedPayload))
}

func TestUnsupportedType(t *testing.T) {
	_, err := New().Marshal(map[string]int{})
	assert.True(t, errors.Is(err, xerr.ErrUnsupportedType))

	var e models.PriceEntry
	assert.True(t, errors.Is(New().Unmarshal([]byte(`{}`), e), xerr.ErrUnsupportedType))
	var nilPtr *models.PriceEntry
	assert.True(t, errors.Is(New().Unmarshal([]byte(`{}`), nilPtr), xerr.ErrUnsupportedType))
}
