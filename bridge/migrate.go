package bridge

import (
	"marketmodel/codec"
	"marketmodel/models"
	"marketmodel/models/legacy"
	"marketmodel/xerr"
)

// Options supplies the values one generation carries and the other does
// not.
type Options struct {
	// Publisher is written into legacy entries.
	Publisher string
	// DepthTimestampMs stamps current DepthEntry values made from legacy
	// Depth.
	DepthTimestampMs int64
}

// Migrate converts an entity of either generation into its counterpart in
// the other one. v may be a value or a pointer; the result is a value.
// OrderbookEntry becomes a snapshot or an update according to its Type.
func Migrate(v any, opts Options) (any, error) {
	switch e := codec.Indirect(v).(type) {
	case legacy.MarketEntry:
		return MarketToPrice(e)
	case legacy.OrderbookSnapshot:
		return SnapshotToOrderbook(e)
	case legacy.OrderbookUpdate:
		return UpdateToOrderbook(e)
	case legacy.Depth:
		return DepthToEntry(e, opts.DepthTimestampMs)
	case models.PriceEntry:
		return PriceToMarket(e, opts.Publisher)
	case models.OrderbookEntry:
		if e.Type == models.Update {
			return OrderbookToUpdate(e, opts.Publisher)
		}
		return OrderbookToSnapshot(e, opts.Publisher)
	case models.DepthEntry:
		return EntryToDepth(e)
	}
	return nil, xerr.New(xerr.UnsupportedType, "bridge: no counterpart for %T", v)
}
