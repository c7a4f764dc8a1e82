// Package catalog lists every encodable entity: its field table, a factory
// for decoding into it, and the published field identifier snapshot.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"marketmodel/models"
	"marketmodel/models/legacy"
	"marketmodel/schema"
)

// published is the snapshot of field identifiers that producers already
// rely on. Regenerate it with `marketmodel fieldids -out catalog/fieldids.yaml`
// after adding fields.
//
//go:embed fieldids.yaml
var published []byte

// Schema returns the live tables of both generations.
func Schema() schema.Catalog {
	return schema.Catalog{Entities: append(models.Entities(), legacy.Entities()...)}
}

// Published parses the committed snapshot.
func Published() (schema.Catalog, error) {
	return schema.LoadSnapshot(bytes.NewReader(published))
}

// Entry describes one top-level entity.
type Entry struct {
	Name       string
	Generation schema.Generation
	// New returns a pointer to a zero value, ready for Codec.Unmarshal.
	New func() any
	// NewSlice returns a pointer to a nil slice, for batch formats.
	NewSlice func() any
}

func entry[E any](name string, gen schema.Generation) Entry {
	return Entry{
		Name:       name,
		Generation: gen,
		New:        func() any { return new(E) },
		NewSlice:   func() any { return new([]E) },
	}
}

var entries = []Entry{
	entry[models.PriceEntry]("PriceEntry", schema.Current),
	entry[models.OrderbookEntry]("OrderbookEntry", schema.Current),
	entry[models.DepthEntry]("DepthEntry", schema.Current),
	entry[models.FundingRateEntry]("FundingRateEntry", schema.Current),
	entry[models.TradeEntry]("TradeEntry", schema.Current),
	entry[models.VolumeEntry]("VolumeEntry", schema.Current),
	entry[models.OpenInterestEntry]("OpenInterestEntry", schema.Current),
	entry[models.PositionEntry]("PositionEntry", schema.Current),
	entry[models.GlobalExposureEntry]("GlobalExposureEntry", schema.Current),
	entry[legacy.MarketEntry]("MarketEntry", schema.Legacy),
	entry[legacy.OrderbookSnapshot]("OrderbookSnapshot", schema.Legacy),
	entry[legacy.OrderbookUpdate]("OrderbookUpdate", schema.Legacy),
	entry[legacy.Depth]("Depth", schema.Legacy),
}

// Entries returns the top-level entities, current generation first.
func Entries() []Entry {
	return append([]Entry(nil), entries...)
}

// Names lists the top-level entity names in sorted order.
func Names() []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	sort.Strings(names)
	return names
}

// Lookup finds an entity by name, ignoring case.
func Lookup(name string) (Entry, error) {
	for _, e := range entries {
		if strings.EqualFold(e.Name, name) {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("unknown entity %q (known: %s)", name, strings.Join(Names(), ", "))
}
