package bridge

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketmodel/models"
	"marketmodel/models/legacy"
	"marketmodel/uint128"
	"marketmodel/union"
	"marketmodel/xerr"
)

func marketEntry() legacy.MarketEntry {
	return legacy.MarketEntry{
		Base:                  legacy.BaseEntry{Timestamp: 1_700_000_123, Source: "binance", Publisher: "PRAGMA"},
		PairID:                "BTC/USD",
		Price:                 uint128.FromUint64(6_543_212_345_678),
		Volume:                uint128.FromWords(7, 1),
		ExpirationTimestampMs: union.Some[uint64](1_700_000_000_000),
	}
}

func TestMarketToPriceExpiration(t *testing.T) {
	p, err := MarketToPrice(marketEntry())
	require.NoError(t, err)
	assert.Equal(t, union.Some[int64](1_700_000_000), p.Expiration)
	assert.Equal(t, models.Perp, p.InstrumentType())
	assert.Equal(t, int64(1_700_000_123_000), p.Timestamp)
	assert.Equal(t, models.NewPair("BTC", "USD"), p.Pair)
	assert.False(t, p.Chain.IsSome())
	assert.Equal(t, uint128.FromWords(7, 1), p.Volume)
}

func TestMarketToPriceNoExpiration(t *testing.T) {
	m := marketEntry()
	m.ExpirationTimestampMs = union.None[uint64]()
	p, err := MarketToPrice(m)
	require.NoError(t, err)
	assert.Equal(t, union.None[int64](), p.Expiration)
	assert.Equal(t, models.Spot, p.InstrumentType())
}

func TestMarketToPriceTruncatesSubSecond(t *testing.T) {
	m := marketEntry()
	m.ExpirationTimestampMs = union.Some[uint64](1_700_000_000_999)
	p, err := MarketToPrice(m)
	require.NoError(t, err)
	assert.Equal(t, union.Some[int64](1_700_000_000), p.Expiration)

	m.ExpirationTimestampMs = union.Some[uint64](math.MaxUint64)
	p, err = MarketToPrice(m)
	require.NoError(t, err)
	v, _ := p.Expiration.Get()
	assert.Equal(t, int64(math.MaxUint64/1000), v)
}

func TestUnsignedMillisToSeconds(t *testing.T) {
	s, err := unsignedMillisToSeconds("x", math.MaxUint64)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxUint64/1000), s)

	s, err = unsignedMillisToSeconds("x", 999)
	require.NoError(t, err)
	assert.Zero(t, s)
}

func TestMarketToPriceRangeExceeded(t *testing.T) {
	m := marketEntry()
	m.Base.Timestamp = math.MaxInt64 / 10
	_, err := MarketToPrice(m)
	assert.True(t, errors.Is(err, xerr.ErrRangeExceeded))

	m = marketEntry()
	m.PairID = "BTCUSD"
	_, err = MarketToPrice(m)
	assert.True(t, errors.Is(err, xerr.ErrInvalidPair))
}

func TestPriceToMarketRoundTrip(t *testing.T) {
	m := marketEntry()
	p, err := MarketToPrice(m)
	require.NoError(t, err)
	back, err := PriceToMarket(p, "PRAGMA")
	require.NoError(t, err)
	assert.Equal(t, m, back)
}

func TestPriceToMarketRejectsUnrepresentableExpiration(t *testing.T) {
	p := models.PriceEntry{Source: "okx", Pair: models.NewPair("ETH", "USD"), Expiration: union.Some[int64](-1)}
	_, err := PriceToMarket(p, "")
	assert.True(t, errors.Is(err, xerr.ErrRangeExceeded))

	p.Expiration = union.Some[int64](math.MaxInt64)
	_, err = PriceToMarket(p, "")
	assert.True(t, errors.Is(err, xerr.ErrRangeExceeded))
}

func TestPriceToMarketDropsChain(t *testing.T) {
	p := models.PriceEntry{Source: "ekubo", Chain: union.Some(models.Starknet), Pair: models.NewPair("STRK", "USD"), Timestamp: 1_500}
	m, err := PriceToMarket(p, "pub")
	require.NoError(t, err)
	assert.Equal(t, int64(1), m.Base.Timestamp)
	assert.Equal(t, "STRK/USD", m.PairID)
	assert.False(t, m.ExpirationTimestampMs.IsSome())
}

func bookLevels() ([]models.BidOrAsk, []models.BidOrAsk) {
	return []models.BidOrAsk{{Price: 100, Quantity: 1}, {Price: 99.5, Quantity: 3}},
		[]models.BidOrAsk{{Price: 100.5, Quantity: 2}}
}

func TestSnapshotAndUpdate(t *testing.T) {
	bids, asks := bookLevels()
	s := legacy.OrderbookSnapshot{
		Base:           legacy.BaseEntry{Timestamp: 10, Source: "bybit", Publisher: "pub"},
		InstrumentType: models.Perp,
		Pair:           models.NewPair("BTC", "USD"),
		LastUpdateID:   77,
		Bids:           bids,
		Asks:           asks,
	}
	e, err := SnapshotToOrderbook(s)
	require.NoError(t, err)
	assert.Equal(t, models.Snapshot, e.Type)
	assert.Equal(t, uint64(77), e.Data.UpdateID)
	assert.Equal(t, int64(10_000), e.Timestamp)
	assert.Equal(t, bids, e.Data.Bids)

	back, err := OrderbookToSnapshot(e, "pub")
	require.NoError(t, err)
	assert.Equal(t, s, back)

	_, err = OrderbookToUpdate(e, "pub")
	assert.True(t, errors.Is(err, xerr.ErrUnsupportedType))

	u := legacy.OrderbookUpdate(s)
	e, err = UpdateToOrderbook(u)
	require.NoError(t, err)
	assert.Equal(t, models.Update, e.Type)
	backU, err := OrderbookToUpdate(e, "pub")
	require.NoError(t, err)
	assert.Equal(t, u, backU)
}

func TestOrderbookRejectsUnknownEnums(t *testing.T) {
	s := legacy.OrderbookSnapshot{InstrumentType: models.InstrumentType(9)}
	_, err := SnapshotToOrderbook(s)
	assert.True(t, errors.Is(err, xerr.ErrUnknownEnumerant))

	e := models.OrderbookEntry{Type: models.OrderbookUpdateType(5)}
	_, err = OrderbookToSnapshot(e, "")
	assert.True(t, errors.Is(err, xerr.ErrUnknownEnumerant))
}

func TestDepth(t *testing.T) {
	d := legacy.Depth{
		Depth:          models.DepthLevel{Percentage: 0.02, Bid: 1500, Ask: 1200},
		Pair:           models.NewPair("ETH", "USD"),
		Source:         "ekubo",
		InstrumentType: models.Spot,
		Chain:          union.Some(models.Starknet),
	}
	e, err := DepthToEntry(d, 1_700_000_000_000)
	require.NoError(t, err)
	assert.Equal(t, int64(1_700_000_000_000), e.Timestamp)
	assert.Equal(t, d.Chain, e.Chain)

	back, err := EntryToDepth(e)
	require.NoError(t, err)
	assert.Equal(t, d, back)

	d.Chain = union.Some(models.Chain(200))
	_, err = DepthToEntry(d, 0)
	assert.True(t, errors.Is(err, xerr.ErrUnknownEnumerant))
}
