package models

import (
	"testing"

	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketmodel/schema"
	"marketmodel/uint128"
	"marketmodel/union"
)

func TestPriceEntryInstrumentType(t *testing.T) {
	spot := PriceEntry{Source: "binance", Pair: NewPair("BTC", "USD")}
	assert.Equal(t, Spot, spot.InstrumentType())

	perp := spot
	perp.Expiration = union.Some[int64](1_700_000_000)
	assert.Equal(t, Perp, perp.InstrumentType())
}

func TestPriceEntryJSONShape(t *testing.T) {
	e := PriceEntry{
		Source:    "okx",
		Chain:     union.Some(Base),
		Pair:      NewPair("ETH", "USD"),
		Timestamp: 1_700_000_000_123,
		Price:     uint128.FromWords(0, 1),
		Volume:    uint128.FromUint64(5),
	}
	data, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"source": "okx",
		"chain": "base",
		"pair": {"base": "ETH", "quote": "USD"},
		"timestamp": 1700000000123,
		"price": "18446744073709551616",
		"volume": "5",
		"expiration": null
	}`, string(data))

	var back PriceEntry
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, e, back)
}

func TestOrderbookEntryKeepsLevelOrder(t *testing.T) {
	e := OrderbookEntry{
		Source:         "bybit",
		InstrumentType: Perp,
		Pair:           NewPair("SOL", "USD"),
		Type:           Update,
		Data: OrderbookData{
			UpdateID: 42,
			Bids:     []BidOrAsk{{Price: 99, Quantity: 1}, {Price: 101, Quantity: 2}},
			Asks:     []BidOrAsk{{Price: 103, Quantity: 1}},
		},
		Timestamp: 1,
	}
	data, err := json.Marshal(e)
	require.NoError(t, err)

	var back OrderbookEntry
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, e, back)
	assert.Equal(t, 99.0, back.Data.Bids[0].Price)
}

func TestCurrentTablesValidate(t *testing.T) {
	c := schema.Catalog{Entities: Entities()}
	require.NoError(t, c.Validate())

	price, ok := c.Entity("PriceEntry")
	require.True(t, ok)
	absent, present, ok := price.Union("expiration")
	require.True(t, ok)
	assert.Equal(t, PriceNoExpiration, absent.ID)
	assert.Equal(t, PriceExpiration, present.ID)
}
