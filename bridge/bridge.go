// Package bridge maps the legacy entity generation onto the current one and
// back.
//
// Unit conversions are explicit per field:
//
//	legacy BaseEntry.Timestamp      unix seconds  -> Timestamp unix milliseconds
//	legacy ExpirationTimestampMs    u64 ms        -> Expiration i64 seconds, truncated toward zero
//
// Values that cannot be represented on the other side fail with
// RangeExceeded. Fields without a counterpart map to the absent union arm
// going forward and are dropped going back.
package bridge

import (
	"fmt"

	"marketmodel/models"
	"marketmodel/models/legacy"
	"marketmodel/union"
	"marketmodel/xerr"
)

// MarketToPrice converts a legacy price tick. The legacy generation has no
// chain, so the result is in the noChain arm. The publisher has no current
// destination.
func MarketToPrice(m legacy.MarketEntry) (models.PriceEntry, error) {
	pair, err := models.ParsePair(m.PairID)
	if err != nil {
		return models.PriceEntry{}, fmt.Errorf("market entry: %w", err)
	}
	ts, err := secondsToMillis("timestamp", m.Base.Timestamp)
	if err != nil {
		return models.PriceEntry{}, fmt.Errorf("market entry: %w", err)
	}
	expiration, err := union.Map(m.ExpirationTimestampMs, func(ms uint64) (int64, error) {
		return unsignedMillisToSeconds("expiration_timestamp_ms", ms)
	})
	if err != nil {
		return models.PriceEntry{}, fmt.Errorf("market entry: %w", err)
	}
	return models.PriceEntry{
		Source:     m.Base.Source,
		Chain:      union.None[models.Chain](),
		Pair:       pair,
		Timestamp:  ts,
		Price:      m.Price,
		Volume:     m.Volume,
		Expiration: expiration,
	}, nil
}

// PriceToMarket converts a current price tick into the legacy layout. The
// chain is dropped and publisher fills the field the current generation
// does not carry.
func PriceToMarket(p models.PriceEntry, publisher string) (legacy.MarketEntry, error) {
	expiration, err := union.Map(p.Expiration, func(s int64) (uint64, error) {
		return secondsToUnsignedMillis("expiration", s)
	})
	if err != nil {
		return legacy.MarketEntry{}, fmt.Errorf("price entry: %w", err)
	}
	return legacy.MarketEntry{
		Base: legacy.BaseEntry{
			Timestamp: millisToSeconds(p.Timestamp),
			Source:    p.Source,
			Publisher: publisher,
		},
		PairID:                p.Pair.String(),
		Price:                 p.Price,
		Volume:                p.Volume,
		ExpirationTimestampMs: expiration,
	}, nil
}

// SnapshotToOrderbook converts a legacy full book.
func SnapshotToOrderbook(s legacy.OrderbookSnapshot) (models.OrderbookEntry, error) {
	return toOrderbook(models.Snapshot, s.Base, s.InstrumentType, s.Pair, s.LastUpdateID, s.Bids, s.Asks)
}

// UpdateToOrderbook converts a legacy incremental book update.
func UpdateToOrderbook(u legacy.OrderbookUpdate) (models.OrderbookEntry, error) {
	return toOrderbook(models.Update, u.Base, u.InstrumentType, u.Pair, u.LastUpdateID, u.Bids, u.Asks)
}

func toOrderbook(kind models.OrderbookUpdateType, base legacy.BaseEntry, it models.InstrumentType,
	pair models.Pair, lastUpdateID uint64, bids, asks []models.BidOrAsk) (models.OrderbookEntry, error) {
	if err := models.InstrumentTypes().Check(it); err != nil {
		return models.OrderbookEntry{}, fmt.Errorf("orderbook %s: %w", kind, err)
	}
	ts, err := secondsToMillis("timestamp", base.Timestamp)
	if err != nil {
		return models.OrderbookEntry{}, fmt.Errorf("orderbook %s: %w", kind, err)
	}
	return models.OrderbookEntry{
		Source:         base.Source,
		InstrumentType: it,
		Pair:           pair,
		Type:           kind,
		Data: models.OrderbookData{
			UpdateID: lastUpdateID,
			Bids:     bids,
			Asks:     asks,
		},
		Timestamp: ts,
	}, nil
}

// OrderbookToSnapshot is the inverse of SnapshotToOrderbook. It rejects
// entries whose Type is not snapshot.
func OrderbookToSnapshot(e models.OrderbookEntry, publisher string) (legacy.OrderbookSnapshot, error) {
	base, err := fromOrderbook(models.Snapshot, e, publisher)
	if err != nil {
		return legacy.OrderbookSnapshot{}, err
	}
	return legacy.OrderbookSnapshot{
		Base:           base,
		InstrumentType: e.InstrumentType,
		Pair:           e.Pair,
		LastUpdateID:   e.Data.UpdateID,
		Bids:           e.Data.Bids,
		Asks:           e.Data.Asks,
	}, nil
}

// OrderbookToUpdate is the inverse of UpdateToOrderbook.
func OrderbookToUpdate(e models.OrderbookEntry, publisher string) (legacy.OrderbookUpdate, error) {
	base, err := fromOrderbook(models.Update, e, publisher)
	if err != nil {
		return legacy.OrderbookUpdate{}, err
	}
	return legacy.OrderbookUpdate{
		Base:           base,
		InstrumentType: e.InstrumentType,
		Pair:           e.Pair,
		LastUpdateID:   e.Data.UpdateID,
		Bids:           e.Data.Bids,
		Asks:           e.Data.Asks,
	}, nil
}

func fromOrderbook(want models.OrderbookUpdateType, e models.OrderbookEntry, publisher string) (legacy.BaseEntry, error) {
	if err := models.OrderbookUpdateTypes().Check(e.Type); err != nil {
		return legacy.BaseEntry{}, fmt.Errorf("orderbook entry: %w", err)
	}
	if e.Type != want {
		return legacy.BaseEntry{}, xerr.New(xerr.UnsupportedType, "orderbook entry of type %s cannot become a legacy %s", e.Type, want)
	}
	if err := models.InstrumentTypes().Check(e.InstrumentType); err != nil {
		return legacy.BaseEntry{}, fmt.Errorf("orderbook entry: %w", err)
	}
	return legacy.BaseEntry{
		Timestamp: millisToSeconds(e.Timestamp),
		Source:    e.Source,
		Publisher: publisher,
	}, nil
}

// DepthToEntry converts a legacy depth record. The legacy layout has no
// timestamp, so the caller supplies the one of the envelope it came in.
func DepthToEntry(d legacy.Depth, timestampMs int64) (models.DepthEntry, error) {
	if err := checkDepthEnums(d.InstrumentType, d.Chain); err != nil {
		return models.DepthEntry{}, fmt.Errorf("depth: %w", err)
	}
	return models.DepthEntry{
		Source:         d.Source,
		InstrumentType: d.InstrumentType,
		Pair:           d.Pair,
		Depth:          d.Depth,
		Chain:          d.Chain,
		Timestamp:      timestampMs,
	}, nil
}

// EntryToDepth drops the timestamp, which the legacy layout cannot carry.
func EntryToDepth(e models.DepthEntry) (legacy.Depth, error) {
	if err := checkDepthEnums(e.InstrumentType, e.Chain); err != nil {
		return legacy.Depth{}, fmt.Errorf("depth entry: %w", err)
	}
	return legacy.Depth{
		Depth:          e.Depth,
		Pair:           e.Pair,
		Source:         e.Source,
		InstrumentType: e.InstrumentType,
		Chain:          e.Chain,
	}, nil
}

func checkDepthEnums(it models.InstrumentType, chain union.Optional[models.Chain]) error {
	if err := models.InstrumentTypes().Check(it); err != nil {
		return err
	}
	if c, ok := chain.Get(); ok {
		return models.Chains().Check(c)
	}
	return nil
}
