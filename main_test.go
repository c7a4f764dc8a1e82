package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketmodel/catalog"
	"marketmodel/codec/borsh"
	"marketmodel/codec/jsonx"
	"marketmodel/codec/parq"
	"marketmodel/codec/pb"
	"marketmodel/internal/metadata"
	"marketmodel/models"
	"marketmodel/models/legacy"
	"marketmodel/schema"
	"marketmodel/uint128"
	"marketmodel/union"
)

// setup writes a config that keeps logs and exports inside a temp dir.
func setup(t *testing.T) (configPath, dir string) {
	t.Helper()
	t.Setenv("APP_ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("MARKETMODEL_FORMAT", "")
	t.Setenv("MARKETMODEL_PUBLISHER", "")

	dir = t.TempDir()
	cfg := `
codecs:
  default_format: json
catalog:
  snapshot: ""
bridge:
  publisher: TESTPUB
export:
  dir: ` + filepath.Join(dir, "export") + `
  location: s3://bucket/tables
  catalog_dir: ` + filepath.Join(dir, "catalog") + `
logging:
  level: debug
  output: ` + filepath.Join(dir, "marketmodel.log") + `
`
	configPath = filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(cfg), 0o644))
	return configPath, dir
}

func runCmd(t *testing.T, configPath string, stdin []byte, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(append([]string{"-config", configPath}, args...), bytes.NewReader(stdin), &out)
	return out.String(), err
}

func TestFormats(t *testing.T) {
	cfg, _ := setup(t)
	out, err := runCmd(t, cfg, nil, "formats")
	require.NoError(t, err)
	assert.Equal(t, "protobuf\nborsh\nparquet\njson (default)\n", out)
}

func TestUnknownCommand(t *testing.T) {
	cfg, _ := setup(t)
	_, err := runCmd(t, cfg, nil, "frobnicate")
	assert.ErrorContains(t, err, "unknown command")

	_, err = runCmd(t, cfg, nil)
	assert.Error(t, err)
}

func TestFieldIDsMatchPublished(t *testing.T) {
	cfg, dir := setup(t)
	out, err := runCmd(t, cfg, nil, "fieldids")
	require.NoError(t, err)

	got, err := schema.LoadSnapshot(strings.NewReader(out))
	require.NoError(t, err)
	want, err := catalog.Published()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	path := filepath.Join(dir, "fieldids.yaml")
	_, err = runCmd(t, cfg, nil, "fieldids", "-out", path)
	require.NoError(t, err)
	fromFile, err := schema.LoadSnapshotFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, fromFile)
}

func TestCheck(t *testing.T) {
	cfg, dir := setup(t)
	out, err := runCmd(t, cfg, nil, "check")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "ok: "))

	// A snapshot where a field was renamed must fail.
	prev := catalog.Schema().Sorted()
	prev.Entities[0].Fields[0].Name = "renamed"
	path := filepath.Join(dir, "old.yaml")
	require.NoError(t, prev.WriteSnapshotFile(path))
	_, err = runCmd(t, cfg, nil, "check", "-snapshot", path)
	assert.ErrorContains(t, err, "incompatibly")
}

func TestConvert(t *testing.T) {
	cfg, dir := setup(t)
	want := models.PriceEntry{
		Source:     "okx",
		Chain:      union.Some(models.Starknet),
		Pair:       models.NewPair("ETH", "USD"),
		Timestamp:  1_700_000_000_000,
		Price:      uint128.FromUint64(3_500_000_000),
		Expiration: union.None[int64](),
	}
	in, err := jsonx.New().Marshal(want)
	require.NoError(t, err)

	out := filepath.Join(dir, "price.borsh")
	_, err = runCmd(t, cfg, in, "convert", "-entity", "priceentry", "-to", "borsh", "-out", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var got models.PriceEntry
	require.NoError(t, borsh.New().Unmarshal(data, &got))
	assert.Equal(t, want, got)

	_, err = runCmd(t, cfg, in, "convert", "-entity", "NoSuchEntry")
	assert.Error(t, err)
	_, err = runCmd(t, cfg, []byte("{"), "convert", "-entity", "PriceEntry")
	assert.Error(t, err)
}

func TestMigrate(t *testing.T) {
	cfg, _ := setup(t)
	market := legacy.MarketEntry{
		Base:                  legacy.BaseEntry{Timestamp: 1_700_000_000, Source: "binance", Publisher: "PRAGMA"},
		PairID:                "BTC/USD",
		Price:                 uint128.FromUint64(6_500_000_000_000),
		ExpirationTimestampMs: union.Some[uint64](1_700_000_000_999),
	}
	in, err := pb.New().Marshal(market)
	require.NoError(t, err)

	out, err := runCmd(t, cfg, in, "migrate", "-entity", "MarketEntry", "-from", "protobuf")
	require.NoError(t, err)

	var got models.PriceEntry
	require.NoError(t, jsonx.New().Unmarshal([]byte(out), &got))
	assert.Equal(t, models.NewPair("BTC", "USD"), got.Pair)
	assert.Equal(t, int64(1_700_000_000_000), got.Timestamp)
	assert.Equal(t, union.Some[int64](1_700_000_000), got.Expiration)
	assert.False(t, got.Chain.IsSome())

	// The reverse direction takes the publisher from config.
	back, err := runCmd(t, cfg, []byte(out), "migrate", "-entity", "PriceEntry")
	require.NoError(t, err)
	var legacyGot legacy.MarketEntry
	require.NoError(t, jsonx.New().Unmarshal([]byte(back), &legacyGot))
	assert.Equal(t, "TESTPUB", legacyGot.Base.Publisher)
	assert.Equal(t, "BTC/USD", legacyGot.PairID)
}

func TestMigrateDepthTimestamp(t *testing.T) {
	cfg, _ := setup(t)
	depth := legacy.Depth{
		Depth:          models.DepthLevel{Percentage: 0.02, Bid: 10, Ask: 20},
		Pair:           models.NewPair("ETH", "USD"),
		Source:         "ekubo",
		InstrumentType: models.Spot,
		Chain:          union.Some(models.Starknet),
	}
	in, err := jsonx.New().Marshal(depth)
	require.NoError(t, err)

	// An explicit zero is the epoch, not "now".
	out, err := runCmd(t, cfg, in, "migrate", "-entity", "Depth", "-timestamp", "0")
	require.NoError(t, err)
	var got models.DepthEntry
	require.NoError(t, jsonx.New().Unmarshal([]byte(out), &got))
	assert.Zero(t, got.Timestamp)
	assert.Equal(t, union.Some(models.Starknet), got.Chain)

	out, err = runCmd(t, cfg, in, "migrate", "-entity", "Depth", "-timestamp", "1700000000000")
	require.NoError(t, err)
	require.NoError(t, jsonx.New().Unmarshal([]byte(out), &got))
	assert.Equal(t, int64(1_700_000_000_000), got.Timestamp)

	before := time.Now().UnixMilli()
	out, err = runCmd(t, cfg, in, "migrate", "-entity", "Depth")
	require.NoError(t, err)
	require.NoError(t, jsonx.New().Unmarshal([]byte(out), &got))
	assert.GreaterOrEqual(t, got.Timestamp, before)
}

func TestExport(t *testing.T) {
	cfg, dir := setup(t)
	entries := []models.DepthEntry{
		{
			Source:         "ekubo",
			InstrumentType: models.Spot,
			Pair:           models.NewPair("ETH", "USD"),
			Depth:          models.DepthLevel{Percentage: 0.02, Bid: 1500, Ask: 1200},
			Chain:          union.Some(models.Starknet),
			Timestamp:      1,
		},
		{
			Source:         "bybit",
			InstrumentType: models.Perp,
			Pair:           models.NewPair("BTC", "USD"),
			Depth:          models.DepthLevel{Percentage: 0.01},
			Chain:          union.None[models.Chain](),
			Timestamp:      2,
		},
	}
	var inputs []string
	for i, e := range entries {
		data, err := borsh.New().Marshal(e)
		require.NoError(t, err)
		path := filepath.Join(dir, "depth"+string(rune('a'+i))+".borsh")
		require.NoError(t, os.WriteFile(path, data, 0o644))
		inputs = append(inputs, path)
	}

	args := append([]string{"export", "-entity", "DepthEntry", "-from", "borsh"}, inputs...)
	out, err := runCmd(t, cfg, nil, args...)
	require.NoError(t, err)

	file := strings.TrimSpace(out)
	assert.True(t, strings.HasPrefix(file, filepath.Join(dir, "export", "DepthEntry", "data")))
	var got []models.DepthEntry
	require.NoError(t, parq.New().ReadFile(file, &got))
	assert.Equal(t, entries, got)

	raw, err := os.ReadFile(filepath.Join(dir, "export", "DepthEntry", "metadata", "metadata.json"))
	require.NoError(t, err)
	var tm metadata.TableMetadata
	require.NoError(t, json.Unmarshal(raw, &tm))
	assert.Equal(t, "s3://bucket/tables/DepthEntry", tm.Location)
	assert.Len(t, tm.Snapshots, 1)
	assert.Equal(t, "DepthEntry", tm.Properties["marketmodel.entity"])

	_, err = os.Stat(filepath.Join(dir, "catalog", "DepthEntry.json"))
	assert.NoError(t, err)

	_, err = runCmd(t, cfg, nil, "export", "-entity", "DepthEntry")
	assert.ErrorContains(t, err, "no input files")
}
