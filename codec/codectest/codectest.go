// Package codectest holds sample entities and round-trip helpers shared by
// the codec tests.
package codectest

import (
	"math"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketmodel/codec"
	"marketmodel/models"
	"marketmodel/models/legacy"
	"marketmodel/uint128"
	"marketmodel/union"
)

// Orderbook has levels deliberately out of price order; codecs must keep
// them as given.
func Orderbook() models.OrderbookEntry {
	return models.OrderbookEntry{
		Source:         "binance",
		InstrumentType: models.Perp,
		Pair:           models.NewPair("BTC", "USD"),
		Type:           models.Snapshot,
		Data: models.OrderbookData{
			UpdateID: math.MaxUint64 - 1,
			Bids: []models.BidOrAsk{
				{Price: 65432.1, Quantity: 0.25},
				{Price: 65433.9, Quantity: 1e-8},
				{Price: 0, Quantity: 0},
				{Price: 1e300, Quantity: -0.5},
			},
			Asks: []models.BidOrAsk{
				{Price: 65440, Quantity: 3},
				{Price: math.SmallestNonzeroFloat64, Quantity: math.MaxFloat64},
			},
		},
		Timestamp: 1_700_000_000_123,
	}
}

// Current returns one value of every current entity, covering both arms of
// every union and the 64-bit word boundary of UInt128.
func Current() []any {
	return []any{
		models.PriceEntry{
			Source:     "okx",
			Chain:      union.None[models.Chain](),
			Pair:       models.NewPair("ETH", "USD"),
			Timestamp:  1_700_000_000_000,
			Price:      uint128.FromUint64(math.MaxUint64),
			Volume:     uint128.Zero,
			Expiration: union.None[int64](),
		},
		models.PriceEntry{
			Source:     "ekubo",
			Chain:      union.Some(models.Worldchain),
			Pair:       models.NewPair("STRK", "USD"),
			Timestamp:  -1,
			Price:      uint128.Max,
			Volume:     uint128.FromWords(1, 1),
			Expiration: union.Some[int64](1_700_000_000),
		},
		models.PriceEntry{
			Source:     "",
			Chain:      union.Some(models.Starknet),
			Timestamp:  math.MinInt64,
			Price:      uint128.FromWords(0, 1),
			Expiration: union.Some[int64](0),
		},
		Orderbook(),
		models.OrderbookEntry{
			Source:         "kucoin",
			InstrumentType: models.Spot,
			Pair:           models.NewPair("SOL", "USD"),
			Type:           models.Update,
			Data:           models.OrderbookData{UpdateID: 1, Bids: []models.BidOrAsk{{Price: 1, Quantity: 2}}},
			Timestamp:      math.MaxInt64,
		},
		models.DepthEntry{
			Source:         "ekubo",
			InstrumentType: models.Spot,
			Pair:           models.NewPair("ETH", "USD"),
			Depth:          models.DepthLevel{Percentage: 0.02, Bid: 150000.5, Ask: 120000.25},
			Chain:          union.Some(models.Arbitrum),
			Timestamp:      1_700_000_000_000,
		},
		models.DepthEntry{
			Source:         "bybit",
			InstrumentType: models.Perp,
			Pair:           models.NewPair("BTC", "USD"),
			Depth:          models.DepthLevel{Percentage: 0.005},
			Chain:          union.None[models.Chain](),
		},
		models.FundingRateEntry{
			Source:      "hyperliquid",
			Pair:        models.NewPair("BTC", "USD"),
			FundingRate: -0.000125,
			Timestamp:   1_700_000_000_000,
		},
		models.TradeEntry{
			Source:         "ekubo",
			InstrumentType: models.Spot,
			Pair:           models.NewPair("ETH", "STRK"),
			TradeID:        "0x3f1c:12",
			BuyerAddress:   "0x04a1",
			SellerAddress:  "0x07b2",
			Side:           models.Sell,
			Size:           1.5,
			Price:          5123.75,
			Timestamp:      1_700_000_000_321,
		},
		models.VolumeEntry{
			Source:         "binance",
			InstrumentType: models.Perp,
			Pair:           models.NewPair("BTC", "USDT"),
			VolumeDaily:    1.25e9,
			Timestamp:      1_700_000_000_000,
		},
		models.OpenInterestEntry{
			Source:       "hyperliquid",
			Pair:         models.NewPair("SOL", "USD"),
			OpenInterest: 42_000_000.5,
			Timestamp:    1_700_000_000_000,
		},
		models.PositionEntry{
			Source:            "paradex",
			InstrumentType:    models.Perp,
			Pair:              models.NewPair("ETH", "USD"),
			Timestamp:         1_700_000_000_000,
			ReceivedTimestamp: 1_700_000_000_045,
			Side:              models.Buy,
			NotionalInUSD:     350_000,
			Size:              -100,
		},
		models.GlobalExposureEntry{
			Source:    "paradex",
			Timestamp: 1_700_000_000_000,
			Asset:     "BTC",
			Exposure:  -0.75,
		},
	}
}

// Legacy returns one value of every legacy entity.
func Legacy() []any {
	book := Orderbook()
	return []any{
		legacy.MarketEntry{
			Base:                  legacy.BaseEntry{Timestamp: 1_700_000_000, Source: "binance", Publisher: "PRAGMA"},
			PairID:                "BTC/USD",
			Price:                 uint128.FromUint64(6_543_212_345_678),
			Volume:                uint128.FromWords(math.MaxUint64, 7),
			ExpirationTimestampMs: union.Some[uint64](math.MaxUint64),
		},
		legacy.MarketEntry{
			Base:                  legacy.BaseEntry{Timestamp: -5, Source: "okx"},
			PairID:                "ETH/USD",
			ExpirationTimestampMs: union.None[uint64](),
		},
		legacy.OrderbookSnapshot{
			Base:           legacy.BaseEntry{Timestamp: 1_700_000_000, Source: "binance", Publisher: "PRAGMA"},
			InstrumentType: models.Perp,
			Pair:           book.Pair,
			LastUpdateID:   book.Data.UpdateID,
			Bids:           book.Data.Bids,
			Asks:           book.Data.Asks,
		},
		legacy.OrderbookUpdate{
			Base:           legacy.BaseEntry{Timestamp: 1, Source: "bybit", Publisher: "pub"},
			InstrumentType: models.Spot,
			Pair:           models.NewPair("DOGE", "USD"),
			LastUpdateID:   3,
			Asks:           []models.BidOrAsk{{Price: 0.1, Quantity: 1000}},
		},
		legacy.Depth{
			Depth:          models.DepthLevel{Percentage: 0.1, Bid: 1, Ask: 2},
			Pair:           models.NewPair("ETH", "USD"),
			Source:         "ekubo",
			InstrumentType: models.Spot,
			Chain:          union.Some(models.Starknet),
		},
		legacy.Depth{
			Pair:   models.NewPair("BTC", "USD"),
			Source: "binance",
			Chain:  union.None[models.Chain](),
		},
	}
}

// All is Current followed by Legacy.
func All() []any {
	return append(Current(), Legacy()...)
}

// New allocates a zero value of the same entity type as v and returns a
// pointer to it.
func New(v any) any {
	return reflect.New(reflect.TypeOf(v)).Interface()
}

// RoundTrip encodes v and decodes it into a fresh value of the same type.
func RoundTrip(t *testing.T, c codec.Codec, v any) any {
	t.Helper()
	data, err := c.Marshal(v)
	require.NoError(t, err, "%s marshal %T", c.Format(), v)
	out := New(codec.Indirect(v))
	require.NoError(t, c.Unmarshal(data, out), "%s unmarshal %T", c.Format(), v)
	return reflect.ValueOf(out).Elem().Interface()
}

// AssertRoundTrips checks decode(encode(v)) == v for every sample entity,
// from both a value and a pointer.
func AssertRoundTrips(t *testing.T, c codec.Codec) {
	t.Helper()
	for _, v := range All() {
		assert.Equal(t, v, RoundTrip(t, c, v), "%s %T", c.Format(), v)

		ptr := New(v)
		reflect.ValueOf(ptr).Elem().Set(reflect.ValueOf(v))
		assert.Equal(t, v, RoundTrip(t, c, ptr), "%s *%T", c.Format(), v)
	}
}
