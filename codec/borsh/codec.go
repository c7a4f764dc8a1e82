// Package borsh encodes entities in the Borsh compact binary format with
// github.com/gagliardetto/binary.
//
// Layout: fields in identifier order, little-endian integers, u32 length
// prefixes for strings and sequences, enum ordinals as u8, union arms as a
// u8 tag (0 absent, 1 present) followed by the payload, and UInt128 as the
// low word then the high word. Trailing bytes are rejected and so is NaN.
package borsh

import (
	"marketmodel/codec"
	"marketmodel/models"
	"marketmodel/models/legacy"
)

type Codec struct{}

func New() *Codec {
	return &Codec{}
}

func (c *Codec) Format() codec.Format {
	return codec.Borsh
}

func (c *Codec) Marshal(v any) ([]byte, error) {
	w := newWriter()
	switch e := codec.Indirect(v).(type) {
	case models.PriceEntry:
		writePriceEntry(w, e)
	case models.OrderbookEntry:
		writeOrderbookEntry(w, e)
	case models.DepthEntry:
		writeDepthEntry(w, e)
	case models.FundingRateEntry:
		writeFundingRateEntry(w, e)
	case models.TradeEntry:
		writeTradeEntry(w, e)
	case models.VolumeEntry:
		writeVolumeEntry(w, e)
	case models.OpenInterestEntry:
		writeOpenInterestEntry(w, e)
	case models.PositionEntry:
		writePositionEntry(w, e)
	case models.GlobalExposureEntry:
		writeGlobalExposureEntry(w, e)
	case legacy.MarketEntry:
		writeMarketEntry(w, e)
	case legacy.OrderbookSnapshot:
		writeBook(w, book(e))
	case legacy.OrderbookUpdate:
		writeBook(w, book(e))
	case legacy.Depth:
		writeDepth(w, e)
	default:
		return nil, codec.Unsupported(codec.Borsh, v)
	}
	return w.bytes()
}

func (c *Codec) Unmarshal(data []byte, v any) error {
	r := newReader(data)
	switch dst := v.(type) {
	case *models.PriceEntry:
		return decode(r, readPriceEntry, dst)
	case *models.OrderbookEntry:
		return decode(r, readOrderbookEntry, dst)
	case *models.DepthEntry:
		return decode(r, readDepthEntry, dst)
	case *models.FundingRateEntry:
		return decode(r, readFundingRateEntry, dst)
	case *models.TradeEntry:
		return decode(r, readTradeEntry, dst)
	case *models.VolumeEntry:
		return decode(r, readVolumeEntry, dst)
	case *models.OpenInterestEntry:
		return decode(r, readOpenInterestEntry, dst)
	case *models.PositionEntry:
		return decode(r, readPositionEntry, dst)
	case *models.GlobalExposureEntry:
		return decode(r, readGlobalExposureEntry, dst)
	case *legacy.MarketEntry:
		return decode(r, readMarketEntry, dst)
	case *legacy.OrderbookSnapshot:
		return decode(r, func(r *reader) legacy.OrderbookSnapshot { return legacy.OrderbookSnapshot(readBook(r)) }, dst)
	case *legacy.OrderbookUpdate:
		return decode(r, func(r *reader) legacy.OrderbookUpdate { return legacy.OrderbookUpdate(readBook(r)) }, dst)
	case *legacy.Depth:
		return decode(r, readDepth, dst)
	}
	return codec.Unsupported(codec.Borsh, v)
}

// decode reads one value and stores it only when the whole input was consumed.
func decode[E any](r *reader, read func(*reader) E, dst *E) error {
	e := read(r)
	if err := r.done(); err != nil {
		return err
	}
	*dst = e
	return nil
}
