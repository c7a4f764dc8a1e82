package borsh

import (
	"marketmodel/models"
	"marketmodel/models/legacy"
)

// Fields are written in identifier order. Each union occupies the position
// of its absent arm: one tag byte, then the payload when present.

const levelSize = 16

func writePair(w *writer, p models.Pair) {
	w.str(p.Base)
	w.str(p.Quote)
}

func readPair(r *reader) models.Pair {
	var p models.Pair
	p.Base = r.str()
	p.Quote = r.str()
	return p
}

func writeLevels(w *writer, levels []models.BidOrAsk) {
	w.length(len(levels))
	for _, l := range levels {
		w.f64(l.Price)
		w.f64(l.Quantity)
	}
}

// readLevels returns nil for an empty sequence.
func readLevels(r *reader) []models.BidOrAsk {
	n := r.length(levelSize)
	if n == 0 {
		return nil
	}
	levels := make([]models.BidOrAsk, n)
	for i := range levels {
		levels[i].Price = r.f64()
		levels[i].Quantity = r.f64()
	}
	return levels
}

func writeDepthLevel(w *writer, d models.DepthLevel) {
	w.f64(d.Percentage)
	w.f64(d.Bid)
	w.f64(d.Ask)
}

func readDepthLevel(r *reader) models.DepthLevel {
	var d models.DepthLevel
	d.Percentage = r.f64()
	d.Bid = r.f64()
	d.Ask = r.f64()
	return d
}

func writeChain(w *writer, c models.Chain) { writeEnum(w, c) }
func readChain(r *reader) models.Chain { return readEnum[models.Chain](r) }

func writeBase(w *writer, b legacy.BaseEntry) {
	w.i64(b.Timestamp)
	w.str(b.Source)
	w.str(b.Publisher)
}

func readBase(r *reader) legacy.BaseEntry {
	var b legacy.BaseEntry
	b.Timestamp = r.i64()
	b.Source = r.str()
	b.Publisher = r.str()
	return b
}

func writePriceEntry(w *writer, e models.PriceEntry) {
	w.str(e.Source)
	writeUnion(w, e.Chain, writeChain)
	writePair(w, e.Pair)
	w.i64(e.Timestamp)
	w.words(e.Price)
	w.words(e.Volume)
	writeUnion(w, e.Expiration, (*writer).i64)
}

func readPriceEntry(r *reader) models.PriceEntry {
	var e models.PriceEntry
	e.Source = r.str()
	e.Chain = readUnion(r, readChain)
	e.Pair = readPair(r)
	e.Timestamp = r.i64()
	e.Price = r.words()
	e.Volume = r.words()
	e.Expiration = readUnion(r, (*reader).i64)
	return e
}

func writeOrderbookEntry(w *writer, e models.OrderbookEntry) {
	w.str(e.Source)
	writeEnum(w, e.InstrumentType)
	writePair(w, e.Pair)
	writeEnum(w, e.Type)
	w.u64(e.Data.UpdateID)
	writeLevels(w, e.Data.Bids)
	writeLevels(w, e.Data.Asks)
	w.i64(e.Timestamp)
}

func readOrderbookEntry(r *reader) models.OrderbookEntry {
	var e models.OrderbookEntry
	e.Source = r.str()
	e.InstrumentType = readEnum[models.InstrumentType](r)
	e.Pair = readPair(r)
	e.Type = readEnum[models.OrderbookUpdateType](r)
	e.Data.UpdateID = r.u64()
	e.Data.Bids = readLevels(r)
	e.Data.Asks = readLevels(r)
	e.Timestamp = r.i64()
	return e
}

func writeDepthEntry(w *writer, e models.DepthEntry) {
	w.str(e.Source)
	writeEnum(w, e.InstrumentType)
	writePair(w, e.Pair)
	writeDepthLevel(w, e.Depth)
	writeUnion(w, e.Chain, writeChain)
	w.i64(e.Timestamp)
}

func readDepthEntry(r *reader) models.DepthEntry {
	var e models.DepthEntry
	e.Source = r.str()
	e.InstrumentType = readEnum[models.InstrumentType](r)
	e.Pair = readPair(r)
	e.Depth = readDepthLevel(r)
	e.Chain = readUnion(r, readChain)
	e.Timestamp = r.i64()
	return e
}

func writeFundingRateEntry(w *writer, e models.FundingRateEntry) {
	w.str(e.Source)
	writePair(w, e.Pair)
	w.f64(e.FundingRate)
	w.i64(e.Timestamp)
}

func readFundingRateEntry(r *reader) models.FundingRateEntry {
	var e models.FundingRateEntry
	e.Source = r.str()
	e.Pair = readPair(r)
	e.FundingRate = r.f64()
	e.Timestamp = r.i64()
	return e
}

func writeTradeEntry(w *writer, e models.TradeEntry) {
	w.str(e.Source)
	writeEnum(w, e.InstrumentType)
	writePair(w, e.Pair)
	w.str(e.TradeID)
	w.str(e.BuyerAddress)
	w.str(e.SellerAddress)
	writeEnum(w, e.Side)
	w.f64(e.Size)
	w.f64(e.Price)
	w.i64(e.Timestamp)
}

func readTradeEntry(r *reader) models.TradeEntry {
	var e models.TradeEntry
	e.Source = r.str()
	e.InstrumentType = readEnum[models.InstrumentType](r)
	e.Pair = readPair(r)
	e.TradeID = r.str()
	e.BuyerAddress = r.str()
	e.SellerAddress = r.str()
	e.Side = readEnum[models.TradeSide](r)
	e.Size = r.f64()
	e.Price = r.f64()
	e.Timestamp = r.i64()
	return e
}

func writeVolumeEntry(w *writer, e models.VolumeEntry) {
	w.str(e.Source)
	writeEnum(w, e.InstrumentType)
	writePair(w, e.Pair)
	w.f64(e.VolumeDaily)
	w.i64(e.Timestamp)
}

func readVolumeEntry(r *reader) models.VolumeEntry {
	var e models.VolumeEntry
	e.Source = r.str()
	e.InstrumentType = readEnum[models.InstrumentType](r)
	e.Pair = readPair(r)
	e.VolumeDaily = r.f64()
	e.Timestamp = r.i64()
	return e
}

func writeOpenInterestEntry(w *writer, e models.OpenInterestEntry) {
	w.str(e.Source)
	writePair(w, e.Pair)
	w.f64(e.OpenInterest)
	w.i64(e.Timestamp)
}

func readOpenInterestEntry(r *reader) models.OpenInterestEntry {
	var e models.OpenInterestEntry
	e.Source = r.str()
	e.Pair = readPair(r)
	e.OpenInterest = r.f64()
	e.Timestamp = r.i64()
	return e
}

func writePositionEntry(w *writer, e models.PositionEntry) {
	w.str(e.Source)
	writeEnum(w, e.InstrumentType)
	writePair(w, e.Pair)
	w.i64(e.Timestamp)
	w.i64(e.ReceivedTimestamp)
	writeEnum(w, e.Side)
	w.f64(e.NotionalInUSD)
	w.f64(e.Size)
}

func readPositionEntry(r *reader) models.PositionEntry {
	var e models.PositionEntry
	e.Source = r.str()
	e.InstrumentType = readEnum[models.InstrumentType](r)
	e.Pair = readPair(r)
	e.Timestamp = r.i64()
	e.ReceivedTimestamp = r.i64()
	e.Side = readEnum[models.TradeSide](r)
	e.NotionalInUSD = r.f64()
	e.Size = r.f64()
	return e
}

func writeGlobalExposureEntry(w *writer, e models.GlobalExposureEntry) {
	w.str(e.Source)
	w.i64(e.Timestamp)
	w.str(e.Asset)
	w.f64(e.Exposure)
}

func readGlobalExposureEntry(r *reader) models.GlobalExposureEntry {
	var e models.GlobalExposureEntry
	e.Source = r.str()
	e.Timestamp = r.i64()
	e.Asset = r.str()
	e.Exposure = r.f64()
	return e
}

func writeMarketEntry(w *writer, e legacy.MarketEntry) {
	writeBase(w, e.Base)
	w.str(e.PairID)
	w.words(e.Price)
	w.words(e.Volume)
	writeUnion(w, e.ExpirationTimestampMs, (*writer).u64)
}

func readMarketEntry(r *reader) legacy.MarketEntry {
	var e legacy.MarketEntry
	e.Base = readBase(r)
	e.PairID = r.str()
	e.Price = r.words()
	e.Volume = r.words()
	e.ExpirationTimestampMs = readUnion(r, (*reader).u64)
	return e
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

func writeBook(w *writer, e book) {
	writeBase(w, e.Base)
	writeEnum(w, e.InstrumentType)
	writePair(w, e.Pair)
	w.u64(e.LastUpdateID)
	writeLevels(w, e.Bids)
	writeLevels(w, e.Asks)
}

func readBook(r *reader) book {
	var e book
	e.Base = readBase(r)
	e.InstrumentType = readEnum[models.InstrumentType](r)
	e.Pair = readPair(r)
	e.LastUpdateID = r.u64()
	e.Bids = readLevels(r)
	e.Asks = readLevels(r)
	return e
}

func writeDepth(w *writer, e legacy.Depth) {
	writeDepthLevel(w, e.Depth)
	writePair(w, e.Pair)
	w.str(e.Source)
	writeEnum(w, e.InstrumentType)
	writeUnion(w, e.Chain, writeChain)
}

func readDepth(r *reader) legacy.Depth {
	var e legacy.Depth
	e.Depth = readDepthLevel(r)
	e.Pair = readPair(r)
	e.Source = r.str()
	e.InstrumentType = readEnum[models.InstrumentType](r)
	e.Chain = readUnion(r, readChain)
	return e
}
