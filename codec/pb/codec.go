// Package pb encodes entities in the protocol buffer wire format.
//
// Field identifiers are the protobuf field numbers. Integers are varints,
// doubles are fixed64, nested values and UInt128 ({1: low, 2: high}) are
// embedded messages and the void arm of a union is an empty message. Every
// field is written, including zero values, so the arm of each union is always
// explicit on the wire. Unknown fields are skipped on decode.
package pb

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
	return codec.Protobuf
}

func (c *Codec) Marshal(v any) ([]byte, error) {
	switch e := codec.Indirect(v).(type) {
	case models.PriceEntry:
		return encodePriceEntry(e), nil
	case models.OrderbookEntry:
		return encodeOrderbookEntry(e), nil
	case models.DepthEntry:
		return encodeDepthEntry(e), nil
	case models.FundingRateEntry:
		return encodeFundingRateEntry(e), nil
	case models.TradeEntry:
		return encodeTradeEntry(e), nil
	case models.VolumeEntry:
		return encodeVolumeEntry(e), nil
	case models.OpenInterestEntry:
		return encodeOpenInterestEntry(e), nil
	case models.PositionEntry:
		return encodePositionEntry(e), nil
	case models.GlobalExposureEntry:
		return encodeGlobalExposureEntry(e), nil
	case legacy.MarketEntry:
		return encodeMarketEntry(e), nil
	case legacy.OrderbookSnapshot:
		return encodeBook(book(e)), nil
	case legacy.OrderbookUpdate:
		return encodeBook(book(e)), nil
	case legacy.Depth:
		return encodeDepth(e), nil
	}
	return nil, codec.Unsupported(codec.Protobuf, v)
}

func (c *Codec) Unmarshal(data []byte, v any) error {
	var err error
	switch dst := v.(type) {
	case *models.PriceEntry:
		*dst, err = decodePriceEntry(data)
	case *models.OrderbookEntry:
		*dst, err = decodeOrderbookEntry(data)
	case *models.DepthEntry:
		*dst, err = decodeDepthEntry(data)
	case *models.FundingRateEntry:
		*dst, err = decodeFundingRateEntry(data)
	case *models.TradeEntry:
		*dst, err = decodeTradeEntry(data)
	case *models.VolumeEntry:
		*dst, err = decodeVolumeEntry(data)
	case *models.OpenInterestEntry:
		*dst, err = decodeOpenInterestEntry(data)
	case *models.PositionEntry:
		*dst, err = decodePositionEntry(data)
	case *models.GlobalExposureEntry:
		*dst, err = decodeGlobalExposureEntry(data)
	case *legacy.MarketEntry:
		*dst, err = decodeMarketEntry(data)
	case *legacy.OrderbookSnapshot:
		var b book
		b, err = decodeBook(data)
		*dst = legacy.OrderbookSnapshot(b)
	case *legacy.OrderbookUpdate:
		var b book
		b, err = decodeBook(data)
		*dst = legacy.OrderbookUpdate(b)
	case *legacy.Depth:
		*dst, err = decodeDepth(data)
	default:
		return codec.Unsupported(codec.Protobuf, v)
	}
	return err
}
