// Package jsonx encodes entities as JSON with github.com/segmentio/encoding.
//
// Keys are snake_case, enums are written by name (unknown ordinals as bare
// numbers), UInt128 values are decimal strings, and an absent union arm is
// null. NaN and infinities cannot be written.
package jsonx

import (
	"errors"
	"reflect"

	"github.com/segmentio/encoding/json"

	"marketmodel/codec"
	"marketmodel/models"
	"marketmodel/models/legacy"
	"marketmodel/xerr"
)

type Codec struct {
	indent string
}

type Option func(*Codec)

// WithIndent makes Marshal emit indented output.
func WithIndent(indent string) Option {
	return func(c *Codec) { c.indent = indent }
}

func New(opts ...Option) *Codec {
	c := &Codec{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Codec) Format() codec.Format {
	return codec.JSON
}

func (c *Codec) Marshal(v any) ([]byte, error) {
	if !supported(codec.Indirect(v)) {
		return nil, codec.Unsupported(codec.JSON, v)
	}
	var (
		data []byte
		err  error
	)
	if c.indent != "" {
		data, err = json.MarshalIndent(v, "", c.indent)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return nil, mapError(err)
	}
	return data, nil
}

func (c *Codec) Unmarshal(data []byte, v any) error {
	dst := reflect.ValueOf(v)
	if dst.Kind() != reflect.Pointer || dst.IsNil() || !supported(dst.Elem().Interface()) {
		return codec.Unsupported(codec.JSON, v)
	}
	// Decode into a fresh value so v is replaced, not merged, and is left
	// untouched on error.
	tmp := reflect.New(dst.Elem().Type())
	if err := json.Unmarshal(data, tmp.Interface()); err != nil {
		return mapError(err)
	}
	normalize(tmp.Interface())
	dst.Elem().Set(tmp.Elem())
	return nil
}

func supported(v any) bool {
	switch v.(type) {
	case models.PriceEntry, models.OrderbookEntry, models.DepthEntry, models.FundingRateEntry,
		models.TradeEntry, models.VolumeEntry, models.OpenInterestEntry, models.PositionEntry,
		models.GlobalExposureEntry,
		legacy.MarketEntry, legacy.OrderbookSnapshot, legacy.OrderbookUpdate, legacy.Depth:
		return true
	}
	return false
}

// mapError keeps codes raised by the entity types and classifies the rest.
func mapError(err error) error {
	if xerr.CodeOf(err) != 0 {
		return err
	}
	var unsupported *json.UnsupportedValueError
	if errors.As(err, &unsupported) {
		return xerr.New(xerr.RangeExceeded, "json: %v", err)
	}
	return xerr.New(xerr.MalformedPayload, "json: %v", err)
}

// normalize turns empty level lists into nil so `[]` and null decode alike.
func normalize(v any) {
	switch e := v.(type) {
	case *models.OrderbookEntry:
		e.Data.Bids = nilIfEmpty(e.Data.Bids)
		e.Data.Asks = nilIfEmpty(e.Data.Asks)
	case *legacy.OrderbookSnapshot:
		e.Bids = nilIfEmpty(e.Bids)
		e.Asks = nilIfEmpty(e.Asks)
	case *legacy.OrderbookUpdate:
		e.Bids = nilIfEmpty(e.Bids)
		e.Asks = nilIfEmpty(e.Asks)
	}
}

func nilIfEmpty(levels []models.BidOrAsk) []models.BidOrAsk {
	if len(levels) == 0 {
		return nil
	}
	return levels
}
