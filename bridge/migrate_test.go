package bridge

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketmodel/models"
	"marketmodel/models/legacy"
	"marketmodel/union"
	"marketmodel/xerr"
)

func TestMigrateBothWays(t *testing.T) {
	opts := Options{Publisher: "PRAGMA", DepthTimestampMs: 42}

	m := marketEntry()
	out, err := Migrate(&m, opts)
	require.NoError(t, err)
	price, ok := out.(models.PriceEntry)
	require.True(t, ok)

	back, err := Migrate(price, opts)
	require.NoError(t, err)
	assert.Equal(t, "PRAGMA", back.(legacy.MarketEntry).Base.Publisher)

	d := legacy.Depth{Pair: models.NewPair("ETH", "USD"), Chain: union.Some(models.Sui)}
	out, err = Migrate(d, opts)
	require.NoError(t, err)
	assert.Equal(t, int64(42), out.(models.DepthEntry).Timestamp)
}

func TestMigrateOrderbookFollowsType(t *testing.T) {
	e := models.OrderbookEntry{Type: models.Update, Timestamp: 2_000}
	out, err := Migrate(e, Options{})
	require.NoError(t, err)
	assert.IsType(t, legacy.OrderbookUpdate{}, out)

	e.Type = models.Snapshot
	out, err = Migrate(e, Options{})
	require.NoError(t, err)
	assert.IsType(t, legacy.OrderbookSnapshot{}, out)
}

func TestMigrateUnsupported(t *testing.T) {
	_, err := Migrate(models.FundingRateEntry{}, Options{})
	assert.True(t, errors.Is(err, xerr.ErrUnsupportedType))
}
