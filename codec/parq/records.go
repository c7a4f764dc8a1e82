package parq

import (
	"marketmodel/enum"
	"marketmodel/models"
	"marketmodel/models/legacy"
	"marketmodel/uint128"
	"marketmodel/union"
	"marketmodel/xerr"
)

// Records flatten an entity into one row. Unions become an <field>_arm
// column next to their payload column, UInt128 becomes two INT64 word
// columns holding the raw bits, and order book sides become parallel
// REPEATED DOUBLE columns.
//
// The parquet fieldid of a column is its 1-based position in the record and
// the field tag names the entity field the column is cut from. An arm column
// carries the identifier of the absent arm.

type priceRecord struct {
	Source        string `parquet:"name=source, type=BYTE_ARRAY, convertedtype=UTF8, fieldid=1" field:"1"`
	ChainArm      int32  `parquet:"name=chain_arm, type=INT32, fieldid=2" field:"2"`
	Chain         int32  `parquet:"name=chain, type=INT32, fieldid=3" field:"3"`
	PairBase      string `parquet:"name=pair_base, type=BYTE_ARRAY, convertedtype=UTF8, fieldid=4" field:"4"`
	PairQuote     string `parquet:"name=pair_quote, type=BYTE_ARRAY, convertedtype=UTF8, fieldid=5" field:"4"`
	Timestamp     int64  `parquet:"name=timestamp, type=INT64, fieldid=6" field:"5"`
	PriceLow      int64  `parquet:"name=price_low, type=INT64, fieldid=7" field:"6"`
	PriceHigh     int64  `parquet:"name=price_high, type=INT64, fieldid=8" field:"6"`
	VolumeLow     int64  `parquet:"name=volume_low, type=INT64, fieldid=9" field:"7"`
	VolumeHigh    int64  `parquet:"name=volume_high, type=INT64, fieldid=10" field:"7"`
	ExpirationArm int32  `parquet:"name=expiration_arm, type=INT32, fieldid=11" field:"8"`
	Expiration    int64  `parquet:"name=expiration, type=INT64, fieldid=12" field:"9"`
}

type orderbookRecord struct {
	Source         string    `parquet:"name=source, type=BYTE_ARRAY, convertedtype=UTF8, fieldid=1" field:"1"`
	InstrumentType int32     `parquet:"name=instrument_type, type=INT32, fieldid=2" field:"2"`
	PairBase       string    `parquet:"name=pair_base, type=BYTE_ARRAY, convertedtype=UTF8, fieldid=3" field:"3"`
	PairQuote      string    `parquet:"name=pair_quote, type=BYTE_ARRAY, convertedtype=UTF8, fieldid=4" field:"3"`
	Type           int32     `parquet:"name=type, type=INT32, fieldid=5" field:"4"`
	UpdateID       int64     `parquet:"name=update_id, type=INT64, fieldid=6" field:"5"`
	BidPrices      []float64 `parquet:"name=bid_prices, type=DOUBLE, repetitiontype=REPEATED, fieldid=7" field:"5"`
	BidQuantities  []float64 `parquet:"name=bid_quantities, type=DOUBLE, repetitiontype=REPEATED, fieldid=8" field:"5"`
	AskPrices      []float64 `parquet:"name=ask_prices, type=DOUBLE, repetitiontype=REPEATED, fieldid=9" field:"5"`
	AskQuantities  []float64 `parquet:"name=ask_quantities, type=DOUBLE, repetitiontype=REPEATED, fieldid=10" field:"5"`
	Timestamp      int64     `parquet:"name=timestamp, type=INT64, fieldid=11" field:"6"`
}

type depthRecord struct {
	Source         string  `parquet:"name=source, type=BYTE_ARRAY, convertedtype=UTF8, fieldid=1" field:"1"`
	InstrumentType int32   `parquet:"name=instrument_type, type=INT32, fieldid=2" field:"2"`
	PairBase       string  `parquet:"name=pair_base, type=BYTE_ARRAY, convertedtype=UTF8, fieldid=3" field:"3"`
	PairQuote      string  `parquet:"name=pair_quote, type=BYTE_ARRAY, convertedtype=UTF8, fieldid=4" field:"3"`
	Percentage     float64 `parquet:"name=percentage, type=DOUBLE, fieldid=5" field:"4"`
	Bid            float64 `parquet:"name=bid, type=DOUBLE, fieldid=6" field:"4"`
	Ask            float64 `parquet:"name=ask, type=DOUBLE, fieldid=7" field:"4"`
	ChainArm       int32   `parquet:"name=chain_arm, type=INT32, fieldid=8" field:"5"`
	Chain          int32   `parquet:"name=chain, type=INT32, fieldid=9" field:"6"`
	Timestamp      int64   `parquet:"name=timestamp, type=INT64, fieldid=10" field:"7"`
}

type fundingRateRecord struct {
	Source      string  `parquet:"name=source, type=BYTE_ARRAY, convertedtype=UTF8, fieldid=1" field:"1"`
	PairBase    string  `parquet:"name=pair_base, type=BYTE_ARRAY, convertedtype=UTF8, fieldid=2" field:"2"`
	PairQuote   string  `parquet:"name=pair_quote, type=BYTE_ARRAY, convertedtype=UTF8, fieldid=3" field:"2"`
	FundingRate float64 `parquet:"name=funding_rate, type=DOUBLE, fieldid=4" field:"3"`
	Timestamp   int64   `parquet:"name=timestamp, type=INT64, fieldid=5" field:"4"`
}

type tradeRecord struct {
	Source         string  `parquet:"name=source, type=BYTE_ARRAY, convertedtype=UTF8, fieldid=1" field:"1"`
	InstrumentType int32   `parquet:"name=instrument_type, type=INT32, fieldid=2" field:"2"`
	PairBase       string  `parquet:"name=pair_base, type=BYTE_ARRAY, convertedtype=UTF8, fieldid=3" field:"3"`
	PairQuote      string  `parquet:"name=pair_quote, type=BYTE_ARRAY, convertedtype=UTF8, fieldid=4" field:"3"`
	TradeID        string  `parquet:"name=trade_id, type=BYTE_ARRAY, convertedtype=UTF8, fieldid=5" field:"4"`
	BuyerAddress   string  `parquet:"name=buyer_address, type=BYTE_ARRAY, convertedtype=UTF8, fieldid=6" field:"5"`
	SellerAddress  string  `parquet:"name=seller_address, type=BYTE_ARRAY, convertedtype=UTF8, fieldid=7" field:"6"`
	Side           int32   `parquet:"name=side, type=INT32, fieldid=8" field:"7"`
	Size           float64 `parquet:"name=size, type=DOUBLE, fieldid=9" field:"8"`
	Price          float64 `parquet:"name=price, type=DOUBLE, fieldid=10" field:"9"`
	Timestamp      int64   `parquet:"name=timestamp, type=INT64, fieldid=11" field:"10"`
}

type volumeRecord struct {
	Source         string  `parquet:"name=source, type=BYTE_ARRAY, convertedtype=UTF8, fieldid=1" field:"1"`
	InstrumentType int32   `parquet:"name=instrument_type, type=INT32, fieldid=2" field:"2"`
	PairBase       string  `parquet:"name=pair_base, type=BYTE_ARRAY, convertedtype=UTF8, fieldid=3" field:"3"`
	PairQuote      string  `parquet:"name=pair_quote, type=BYTE_ARRAY, convertedtype=UTF8, fieldid=4" field:"3"`
	VolumeDaily    float64 `parquet:"name=volume_daily, type=DOUBLE, fieldid=5" field:"4"`
	Timestamp      int64   `parquet:"name=timestamp, type=INT64, fieldid=6" field:"5"`
}

type openInterestRecord struct {
	Source       string  `parquet:"name=source, type=BYTE_ARRAY, convertedtype=UTF8, fieldid=1" field:"1"`
	PairBase     string  `parquet:"name=pair_base, type=BYTE_ARRAY, convertedtype=UTF8, fieldid=2" field:"2"`
	PairQuote    string  `parquet:"name=pair_quote, type=BYTE_ARRAY, convertedtype=UTF8, fieldid=3" field:"2"`
	OpenInterest float64 `parquet:"name=open_interest, type=DOUBLE, fieldid=4" field:"3"`
	Timestamp    int64   `parquet:"name=timestamp, type=INT64, fieldid=5" field:"4"`
}

type positionRecord struct {
	Source            string  `parquet:"name=source, type=BYTE_ARRAY, convertedtype=UTF8, fieldid=1" field:"1"`
	InstrumentType    int32   `parquet:"name=instrument_type, type=INT32, fieldid=2" field:"2"`
	PairBase          string  `parquet:"name=pair_base, type=BYTE_ARRAY, convertedtype=UTF8, fieldid=3" field:"3"`
	PairQuote         string  `parquet:"name=pair_quote, type=BYTE_ARRAY, convertedtype=UTF8, fieldid=4" field:"3"`
	Timestamp         int64   `parquet:"name=timestamp, type=INT64, fieldid=5" field:"4"`
	ReceivedTimestamp int64   `parquet:"name=received_timestamp, type=INT64, fieldid=6" field:"5"`
	Side              int32   `parquet:"name=side, type=INT32, fieldid=7" field:"6"`
	NotionalInUSD     float64 `parquet:"name=notional_in_usd, type=DOUBLE, fieldid=8" field:"7"`
	Size              float64 `parquet:"name=size, type=DOUBLE, fieldid=9" field:"8"`
}

type globalExposureRecord struct {
	Source    string  `parquet:"name=source, type=BYTE_ARRAY, convertedtype=UTF8, fieldid=1" field:"1"`
	Timestamp int64   `parquet:"name=timestamp, type=INT64, fieldid=2" field:"2"`
	Asset     string  `parquet:"name=asset, type=BYTE_ARRAY, convertedtype=UTF8, fieldid=3" field:"3"`
	Exposure  float64 `parquet:"name=exposure, type=DOUBLE, fieldid=4" field:"4"`
}

type marketRecord struct {
	Timestamp             int64  `parquet:"name=timestamp, type=INT64, fieldid=1" field:"1"`
	Source                string `parquet:"name=source, type=BYTE_ARRAY, convertedtype=UTF8, fieldid=2" field:"1"`
	Publisher             string `parquet:"name=publisher, type=BYTE_ARRAY, convertedtype=UTF8, fieldid=3" field:"1"`
	PairID                string `parquet:"name=pair_id, type=BYTE_ARRAY, convertedtype=UTF8, fieldid=4" field:"2"`
	PriceLow              int64  `parquet:"name=price_low, type=INT64, fieldid=5" field:"3"`
	PriceHigh             int64  `parquet:"name=price_high, type=INT64, fieldid=6" field:"3"`
	VolumeLow             int64  `parquet:"name=volume_low, type=INT64, fieldid=7" field:"4"`
	VolumeHigh            int64  `parquet:"name=volume_high, type=INT64, fieldid=8" field:"4"`
	ExpirationArm         int32  `parquet:"name=expiration_arm, type=INT32, fieldid=9" field:"5"`
	ExpirationTimestampMs int64  `parquet:"name=expiration_timestamp_ms, type=INT64, fieldid=10" field:"6"`
}

type bookRecord struct {
	Timestamp      int64     `parquet:"name=timestamp, type=INT64, fieldid=1" field:"1"`
	Source         string    `parquet:"name=source, type=BYTE_ARRAY, convertedtype=UTF8, fieldid=2" field:"1"`
	Publisher      string    `parquet:"name=publisher, type=BYTE_ARRAY, convertedtype=UTF8, fieldid=3" field:"1"`
	InstrumentType int32     `parquet:"name=instrument_type, type=INT32, fieldid=4" field:"2"`
	PairBase       string    `parquet:"name=pair_base, type=BYTE_ARRAY, convertedtype=UTF8, fieldid=5" field:"3"`
	PairQuote      string    `parquet:"name=pair_quote, type=BYTE_ARRAY, convertedtype=UTF8, fieldid=6" field:"3"`
	LastUpdateID   int64     `parquet:"name=last_update_id, type=INT64, fieldid=7" field:"4"`
	BidPrices      []float64 `parquet:"name=bid_prices, type=DOUBLE, repetitiontype=REPEATED, fieldid=8" field:"5"`
	BidQuantities  []float64 `parquet:"name=bid_quantities, type=DOUBLE, repetitiontype=REPEATED, fieldid=9" field:"5"`
	AskPrices      []float64 `parquet:"name=ask_prices, type=DOUBLE, repetitiontype=REPEATED, fieldid=10" field:"6"`
	AskQuantities  []float64 `parquet:"name=ask_quantities, type=DOUBLE, repetitiontype=REPEATED, fieldid=11" field:"6"`
}

type legacyDepthRecord struct {
	Percentage     float64 `parquet:"name=percentage, type=DOUBLE, fieldid=1" field:"1"`
	Bid            float64 `parquet:"name=bid, type=DOUBLE, fieldid=2" field:"1"`
	Ask            float64 `parquet:"name=ask, type=DOUBLE, fieldid=3" field:"1"`
	PairBase       string  `parquet:"name=pair_base, type=BYTE_ARRAY, convertedtype=UTF8, fieldid=4" field:"2"`
	PairQuote      string  `parquet:"name=pair_quote, type=BYTE_ARRAY, convertedtype=UTF8, fieldid=5" field:"2"`
	Source         string  `parquet:"name=source, type=BYTE_ARRAY, convertedtype=UTF8, fieldid=6" field:"3"`
	InstrumentType int32   `parquet:"name=instrument_type, type=INT32, fieldid=7" field:"4"`
	ChainArm       int32   `parquet:"name=chain_arm, type=INT32, fieldid=8" field:"5"`
	Chain          int32   `parquet:"name=chain, type=INT32, fieldid=9" field:"6"`
}

// table converts between an entity and its row.
type table[E, R any] struct {
	encode func(E) R
	decode func(R) (E, error)
}

var (
	prices       = table[models.PriceEntry, priceRecord]{encodePrice, decodePrice}
	orderbooks   = table[models.OrderbookEntry, orderbookRecord]{encodeOrderbook, decodeOrderbook}
	depths       = table[models.DepthEntry, depthRecord]{encodeDepth, decodeDepth}
	fundingRates = table[models.FundingRateEntry, fundingRateRecord]{encodeFundingRate, decodeFundingRate}
	trades       = table[models.TradeEntry, tradeRecord]{encodeTrade, decodeTrade}
	volumes      = table[models.VolumeEntry, volumeRecord]{encodeVolume, decodeVolume}
	openInterest = table[models.OpenInterestEntry, openInterestRecord]{encodeOpenInterest, decodeOpenInterest}
	positions    = table[models.PositionEntry, positionRecord]{encodePosition, decodePosition}
	exposures    = table[models.GlobalExposureEntry, globalExposureRecord]{encodeGlobalExposure, decodeGlobalExposure}
	markets      = table[legacy.MarketEntry, marketRecord]{encodeMarket, decodeMarket}
	snapshots    = table[legacy.OrderbookSnapshot, bookRecord]{
		encode: func(e legacy.OrderbookSnapshot) bookRecord { return encodeBook(book(e)) },
		decode: func(r bookRecord) (legacy.OrderbookSnapshot, error) {
			b, err := decodeBook(r)
			return legacy.OrderbookSnapshot(b), err
		},
	}
	updates = table[legacy.OrderbookUpdate, bookRecord]{
		encode: func(e legacy.OrderbookUpdate) bookRecord { return encodeBook(book(e)) },
		decode: func(r bookRecord) (legacy.OrderbookUpdate, error) {
			b, err := decodeBook(r)
			return legacy.OrderbookUpdate(b), err
		},
	}
	legacyDepths = table[legacy.Depth, legacyDepthRecord]{encodeLegacyDepth, decodeLegacyDepth}
)

func words(u uint128.UInt128) (low, high int64) {
	l, h := u.Words()
	return int64(l), int64(h)
}

func fromWords(low, high int64) uint128.UInt128 {
	return uint128.FromWords(uint64(low), uint64(high))
}

// Enum columns are INT32 holding the ordinal's bit pattern, so every
// ordinal fits and none is rejected.
func decodeEnum[E enum.Ordinal](v int32) E { return E(uint32(v)) }

// arm flattens a union into its tag and payload columns. An absent payload
// column holds the zero value.
func arm[T any](o union.Optional[T]) (int32, T) {
	tag, v := union.Split(o)
	return int32(tag), v
}

func join[T any](tag int32, v T) (union.Optional[T], error) {
	return joinArm(tag, func() (T, error) { return v, nil })
}

// joinChain reads the chain column only when the arm says it is present.
func joinChain(tag, v int32) (union.Optional[models.Chain], error) {
	return joinArm(tag, func() (models.Chain, error) { return decodeEnum[models.Chain](v), nil })
}

func joinArm[T any](tag int32, payload func() (T, error)) (union.Optional[T], error) {
	if tag < 0 {
		return union.None[T](), xerr.New(xerr.MalformedUnion, "parquet: arm %d", tag)
	}
	return union.JoinRaw(uint64(tag), payload)
}

func chainArm(o union.Optional[models.Chain]) (int32, int32) {
	tag, c := arm(o)
	return tag, int32(c)
}

func splitLevels(levels []models.BidOrAsk) (px, qty []float64) {
	if len(levels) == 0 {
		return nil, nil
	}
	px = make([]float64, len(levels))
	qty = make([]float64, len(levels))
	for i, l := range levels {
		px[i] = l.Price
		qty[i] = l.Quantity
	}
	return px, qty
}

// joinLevels zips the parallel columns back; empty sides decode to nil.
func joinLevels(side string, px, qty []float64) ([]models.BidOrAsk, error) {
	if len(px) != len(qty) {
		return nil, xerr.New(xerr.MalformedPayload, "parquet: %s has %d prices and %d quantities", side, len(px), len(qty))
	}
	if len(px) == 0 {
		return nil, nil
	}
	levels := make([]models.BidOrAsk, len(px))
	for i := range px {
		levels[i] = models.BidOrAsk{Price: px[i], Quantity: qty[i]}
	}
	return levels, nil
}

func encodePrice(e models.PriceEntry) priceRecord {
	r := priceRecord{
		Source:    e.Source,
		PairBase:  e.Pair.Base,
		PairQuote: e.Pair.Quote,
		Timestamp: e.Timestamp,
	}
	r.ChainArm, r.Chain = chainArm(e.Chain)
	r.PriceLow, r.PriceHigh = words(e.Price)
	r.VolumeLow, r.VolumeHigh = words(e.Volume)
	r.ExpirationArm, r.Expiration = arm(e.Expiration)
	return r
}

func decodePrice(r priceRecord) (models.PriceEntry, error) {
	e := models.PriceEntry{
		Source:    r.Source,
		Pair:      models.Pair{Base: r.PairBase, Quote: r.PairQuote},
		Timestamp: r.Timestamp,
		Price:     fromWords(r.PriceLow, r.PriceHigh),
		Volume:    fromWords(r.VolumeLow, r.VolumeHigh),
	}
	var err error
	if e.Chain, err = joinChain(r.ChainArm, r.Chain); err != nil {
		return e, err
	}
	if e.Expiration, err = join(r.ExpirationArm, r.Expiration); err != nil {
		return e, err
	}
	return e, nil
}

func encodeOrderbook(e models.OrderbookEntry) orderbookRecord {
	r := orderbookRecord{
		Source:         e.Source,
		InstrumentType: int32(e.InstrumentType),
		PairBase:       e.Pair.Base,
		PairQuote:      e.Pair.Quote,
		Type:           int32(e.Type),
		UpdateID:       int64(e.Data.UpdateID),
		Timestamp:      e.Timestamp,
	}
	r.BidPrices, r.BidQuantities = splitLevels(e.Data.Bids)
	r.AskPrices, r.AskQuantities = splitLevels(e.Data.Asks)
	return r
}

func decodeOrderbook(r orderbookRecord) (models.OrderbookEntry, error) {
	e := models.OrderbookEntry{
		Source:         r.Source,
		InstrumentType: decodeEnum[models.InstrumentType](r.InstrumentType),
		Pair:           models.Pair{Base: r.PairBase, Quote: r.PairQuote},
		Type:           decodeEnum[models.OrderbookUpdateType](r.Type),
		Data:           models.OrderbookData{UpdateID: uint64(r.UpdateID)},
		Timestamp:      r.Timestamp,
	}
	var err error
	if e.Data.Bids, err = joinLevels("bids", r.BidPrices, r.BidQuantities); err != nil {
		return e, err
	}
	if e.Data.Asks, err = joinLevels("asks", r.AskPrices, r.AskQuantities); err != nil {
		return e, err
	}
	return e, nil
}

func encodeDepth(e models.DepthEntry) depthRecord {
	r := depthRecord{
		Source:         e.Source,
		InstrumentType: int32(e.InstrumentType),
		PairBase:       e.Pair.Base,
		PairQuote:      e.Pair.Quote,
		Percentage:     e.Depth.Percentage,
		Bid:            e.Depth.Bid,
		Ask:            e.Depth.Ask,
		Timestamp:      e.Timestamp,
	}
	r.ChainArm, r.Chain = chainArm(e.Chain)
	return r
}

func decodeDepth(r depthRecord) (models.DepthEntry, error) {
	e := models.DepthEntry{
		Source:         r.Source,
		InstrumentType: decodeEnum[models.InstrumentType](r.InstrumentType),
		Pair:           models.Pair{Base: r.PairBase, Quote: r.PairQuote},
		Depth:          models.DepthLevel{Percentage: r.Percentage, Bid: r.Bid, Ask: r.Ask},
		Timestamp:      r.Timestamp,
	}
	var err error
	e.Chain, err = joinChain(r.ChainArm, r.Chain)
	return e, err
}

func encodeFundingRate(e models.FundingRateEntry) fundingRateRecord {
	return fundingRateRecord{
		Source:      e.Source,
		PairBase:    e.Pair.Base,
		PairQuote:   e.Pair.Quote,
		FundingRate: e.FundingRate,
		Timestamp:   e.Timestamp,
	}
}

func decodeFundingRate(r fundingRateRecord) (models.FundingRateEntry, error) {
	return models.FundingRateEntry{
		Source:      r.Source,
		Pair:        models.Pair{Base: r.PairBase, Quote: r.PairQuote},
		FundingRate: r.FundingRate,
		Timestamp:   r.Timestamp,
	}, nil
}

func encodeTrade(e models.TradeEntry) tradeRecord {
	return tradeRecord{
		Source:         e.Source,
		InstrumentType: int32(e.InstrumentType),
		PairBase:       e.Pair.Base,
		PairQuote:      e.Pair.Quote,
		TradeID:        e.TradeID,
		BuyerAddress:   e.BuyerAddress,
		SellerAddress:  e.SellerAddress,
		Side:           int32(e.Side),
		Size:           e.Size,
		Price:          e.Price,
		Timestamp:      e.Timestamp,
	}
}

func decodeTrade(r tradeRecord) (models.TradeEntry, error) {
	return models.TradeEntry{
		Source:         r.Source,
		InstrumentType: decodeEnum[models.InstrumentType](r.InstrumentType),
		Pair:           models.Pair{Base: r.PairBase, Quote: r.PairQuote},
		TradeID:        r.TradeID,
		BuyerAddress:   r.BuyerAddress,
		SellerAddress:  r.SellerAddress,
		Side:           decodeEnum[models.TradeSide](r.Side),
		Size:           r.Size,
		Price:          r.Price,
		Timestamp:      r.Timestamp,
	}, nil
}

func encodeVolume(e models.VolumeEntry) volumeRecord {
	return volumeRecord{
		Source:         e.Source,
		InstrumentType: int32(e.InstrumentType),
		PairBase:       e.Pair.Base,
		PairQuote:      e.Pair.Quote,
		VolumeDaily:    e.VolumeDaily,
		Timestamp:      e.Timestamp,
	}
}

func decodeVolume(r volumeRecord) (models.VolumeEntry, error) {
	return models.VolumeEntry{
		Source:         r.Source,
		InstrumentType: decodeEnum[models.InstrumentType](r.InstrumentType),
		Pair:           models.Pair{Base: r.PairBase, Quote: r.PairQuote},
		VolumeDaily:    r.VolumeDaily,
		Timestamp:      r.Timestamp,
	}, nil
}

func encodeOpenInterest(e models.OpenInterestEntry) openInterestRecord {
	return openInterestRecord{
		Source:       e.Source,
		PairBase:     e.Pair.Base,
		PairQuote:    e.Pair.Quote,
		OpenInterest: e.OpenInterest,
		Timestamp:    e.Timestamp,
	}
}

func decodeOpenInterest(r openInterestRecord) (models.OpenInterestEntry, error) {
	return models.OpenInterestEntry{
		Source:       r.Source,
		Pair:         models.Pair{Base: r.PairBase, Quote: r.PairQuote},
		OpenInterest: r.OpenInterest,
		Timestamp:    r.Timestamp,
	}, nil
}

func encodePosition(e models.PositionEntry) positionRecord {
	return positionRecord{
		Source:            e.Source,
		InstrumentType:    int32(e.InstrumentType),
		PairBase:          e.Pair.Base,
		PairQuote:         e.Pair.Quote,
		Timestamp:         e.Timestamp,
		ReceivedTimestamp: e.ReceivedTimestamp,
		Side:              int32(e.Side),
		NotionalInUSD:     e.NotionalInUSD,
		Size:              e.Size,
	}
}

func decodePosition(r positionRecord) (models.PositionEntry, error) {
	return models.PositionEntry{
		Source:            r.Source,
		InstrumentType:    decodeEnum[models.InstrumentType](r.InstrumentType),
		Pair:              models.Pair{Base: r.PairBase, Quote: r.PairQuote},
		Timestamp:         r.Timestamp,
		ReceivedTimestamp: r.ReceivedTimestamp,
		Side:              decodeEnum[models.TradeSide](r.Side),
		NotionalInUSD:     r.NotionalInUSD,
		Size:              r.Size,
	}, nil
}

func encodeGlobalExposure(e models.GlobalExposureEntry) globalExposureRecord {
	return globalExposureRecord{
		Source:    e.Source,
		Timestamp: e.Timestamp,
		Asset:     e.Asset,
		Exposure:  e.Exposure,
	}
}

func decodeGlobalExposure(r globalExposureRecord) (models.GlobalExposureEntry, error) {
	return models.GlobalExposureEntry{
		Source:    r.Source,
		Timestamp: r.Timestamp,
		Asset:     r.Asset,
		Exposure:  r.Exposure,
	}, nil
}

func encodeMarket(e legacy.MarketEntry) marketRecord {
	r := marketRecord{
		Timestamp: e.Base.Timestamp,
		Source:    e.Base.Source,
		Publisher: e.Base.Publisher,
		PairID:    e.PairID,
	}
	r.PriceLow, r.PriceHigh = words(e.Price)
	r.VolumeLow, r.VolumeHigh = words(e.Volume)
	tag, ms := arm(e.ExpirationTimestampMs)
	r.ExpirationArm, r.ExpirationTimestampMs = tag, int64(ms)
	return r
}

func decodeMarket(r marketRecord) (legacy.MarketEntry, error) {
	e := legacy.MarketEntry{
		Base:   legacy.BaseEntry{Timestamp: r.Timestamp, Source: r.Source, Publisher: r.Publisher},
		PairID: r.PairID,
		Price:  fromWords(r.PriceLow, r.PriceHigh),
		Volume: fromWords(r.VolumeLow, r.VolumeHigh),
	}
	var err error
	e.ExpirationTimestampMs, err = join(r.ExpirationArm, uint64(r.ExpirationTimestampMs))
	return e, err
}

// book is the layout shared by OrderbookSnapshot and OrderbookUpdate.
type book struct {
	Base           legacy.BaseEntry
	InstrumentType models.InstrumentType
	Pair           models.Pair
	LastUpdateID   uint64
	Bids           []models.BidOrAsk
	Asks           []models.BidOrAsk
}

func encodeBook(b book) bookRecord {
	r := bookRecord{
		Timestamp:      b.Base.Timestamp,
		Source:         b.Base.Source,
		Publisher:      b.Base.Publisher,
		InstrumentType: int32(b.InstrumentType),
		PairBase:       b.Pair.Base,
		PairQuote:      b.Pair.Quote,
		LastUpdateID:   int64(b.LastUpdateID),
	}
	r.BidPrices, r.BidQuantities = splitLevels(b.Bids)
	r.AskPrices, r.AskQuantities = splitLevels(b.Asks)
	return r
}

func decodeBook(r bookRecord) (book, error) {
	b := book{
		Base:           legacy.BaseEntry{Timestamp: r.Timestamp, Source: r.Source, Publisher: r.Publisher},
		InstrumentType: decodeEnum[models.InstrumentType](r.InstrumentType),
		Pair:           models.Pair{Base: r.PairBase, Quote: r.PairQuote},
		LastUpdateID:   uint64(r.LastUpdateID),
	}
	var err error
	if b.Bids, err = joinLevels("bids", r.BidPrices, r.BidQuantities); err != nil {
		return b, err
	}
	if b.Asks, err = joinLevels("asks", r.AskPrices, r.AskQuantities); err != nil {
		return b, err
	}
	return b, nil
}

func encodeLegacyDepth(e legacy.Depth) legacyDepthRecord {
	r := legacyDepthRecord{
		Percentage:     e.Depth.Percentage,
		Bid:            e.Depth.Bid,
		Ask:            e.Depth.Ask,
		PairBase:       e.Pair.Base,
		PairQuote:      e.Pair.Quote,
		Source:         e.Source,
		InstrumentType: int32(e.InstrumentType),
	}
	r.ChainArm, r.Chain = chainArm(e.Chain)
	return r
}

func decodeLegacyDepth(r legacyDepthRecord) (legacy.Depth, error) {
	e := legacy.Depth{
		Depth:          models.DepthLevel{Percentage: r.Percentage, Bid: r.Bid, Ask: r.Ask},
		Pair:           models.Pair{Base: r.PairBase, Quote: r.PairQuote},
		Source:         r.Source,
		InstrumentType: decodeEnum[models.InstrumentType](r.InstrumentType),
	}
	var err error
	e.Chain, err = joinChain(r.ChainArm, r.Chain)
	return e, err
}
