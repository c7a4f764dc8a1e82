package metadata

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/reader"

	"marketmodel/codec/parq"
	"marketmodel/models"
	"marketmodel/schema"
)

func priceTable(t *testing.T) schema.Entity {
	t.Helper()
	for _, e := range models.Entities() {
		if e.Name == "PriceEntry" {
			return e
		}
	}
	t.Fatal("PriceEntry table missing")
	return schema.Entity{}
}

func TestGeneratorCreatesMetadata(t *testing.T) {
	dir := t.TempDir()
	gen, err := NewGenerator(dir, "", priceTable(t))
	require.NoError(t, err)
	_, err = uuid.Parse(gen.TableUUID())
	require.NoError(t, err)

	df := DataFile{
		Path:        filepath.Join(dir, "PriceEntry-1.parquet"),
		FileSize:    100,
		RecordCount: 10,
		Partition:   map[string]any{"entity": "PriceEntry", "format": "parquet"},
		Timestamp:   time.Unix(0, 0),
	}
	require.NoError(t, gen.AddFile(df))

	data, err := os.ReadFile(filepath.Join(dir, "metadata", "metadata.json"))
	require.NoError(t, err)
	var tm TableMetadata
	require.NoError(t, json.Unmarshal(data, &tm))
	assert.Equal(t, dir, tm.Location)
	assert.Equal(t, gen.TableUUID(), tm.TableUUID)
	assert.Len(t, tm.Snapshots, 1)
	assert.Equal(t, "PriceEntry", tm.Properties["marketmodel.entity"])

	fields := tm.Schemas[0].Fields
	require.Len(t, fields, 12)
	assert.Equal(t, SchemaField{ID: 2, Name: "chain_arm", Required: true, Type: "int", Doc: "noChain", FieldID: models.PriceNoChain}, fields[1])
	assert.Equal(t, SchemaField{ID: 8, Name: "price_high", Required: true, Type: "long", Doc: "price", FieldID: models.PricePrice}, fields[7])

	catalogDir := filepath.Join(dir, "catalog")
	require.NoError(t, gen.WriteCatalogEntry(catalogDir))
	_, err = os.Stat(filepath.Join(catalogDir, "PriceEntry.json"))
	assert.NoError(t, err)
}

func TestMetadataBeforeAnyFile(t *testing.T) {
	gen, err := NewGenerator(t.TempDir(), "s3://bucket/prices", priceTable(t))
	require.NoError(t, err)
	tm := gen.Metadata()
	assert.Equal(t, "s3://bucket/prices", tm.Location)
	assert.Zero(t, tm.CurrentSnapshotID)
	assert.Empty(t, tm.Snapshots)
}

func TestSchemaMatchesParquetFooter(t *testing.T) {
	book := models.OrderbookEntry{
		Source: "binance",
		Pair:   models.NewPair("BTC", "USD"),
		Data:   models.OrderbookData{Bids: []models.BidOrAsk{{Price: 1, Quantity: 2}}},
	}
	data, err := parq.New().Marshal(book)
	require.NoError(t, err)

	pf, err := buffer.NewBufferFile(data)
	require.NoError(t, err)
	pr, err := reader.NewParquetReader(pf, nil, 1)
	require.NoError(t, err)
	defer pr.ReadStop()
	var footer []SchemaField
	for i, el := range pr.Footer.Schema {
		if i == 0 || el.GetNumChildren() > 0 {
			continue
		}
		footer = append(footer, SchemaField{ID: el.GetFieldID(), Name: pr.SchemaHandler.Infos[i].ExName})
	}

	var table schema.Entity
	for _, e := range models.Entities() {
		if e.Name == "OrderbookEntry" {
			table = e
		}
	}
	gen, err := NewGenerator(t.TempDir(), "", table)
	require.NoError(t, err)
	var got []SchemaField
	for _, f := range gen.Metadata().Schemas[0].Fields {
		got = append(got, SchemaField{ID: f.ID, Name: f.Name})
	}
	assert.Equal(t, footer, got)

	bids := gen.Metadata().Schemas[0].Fields[6]
	assert.Equal(t, "bid_prices", bids.Name)
	assert.Equal(t, "list<double>", bids.Type)
	assert.False(t, bids.Required)
	assert.Equal(t, models.OrderbookDataField, bids.FieldID)
}

func TestUnknownTable(t *testing.T) {
	_, err := NewGenerator(t.TempDir(), "", schema.Entity{Name: "Pair"})
	assert.Error(t, err)
}
