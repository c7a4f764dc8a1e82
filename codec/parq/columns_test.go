package parq

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xitongsys/parquet-go/reader"

	"marketmodel/catalog"
	"marketmodel/codec/codectest"
	"marketmodel/xerr"
)

type footerColumn struct {
	ID   int32
	Name string
}

// footerColumns reads the leaf columns back from the file footer.
func footerColumns(t *testing.T, data []byte) []footerColumn {
	t.Helper()
	pr, err := reader.NewParquetReader(newMemoryFile(data), nil, 1)
	require.NoError(t, err)
	defer pr.ReadStop()

	var out []footerColumn
	for i, el := range pr.Footer.Schema {
		if i == 0 || el.GetNumChildren() > 0 {
			continue
		}
		out = append(out, footerColumn{ID: el.GetFieldID(), Name: pr.SchemaHandler.Infos[i].ExName})
	}
	return out
}

func TestColumnsMatchFooter(t *testing.T) {
	c := New()
	for _, v := range codectest.All() {
		name := reflect.TypeOf(v).Name()
		cols, err := Columns(name)
		require.NoError(t, err, name)

		data, err := c.Marshal(v)
		require.NoError(t, err, name)

		want := make([]footerColumn, len(cols))
		for i, col := range cols {
			want[i] = footerColumn{ID: col.ID, Name: col.Name}
		}
		assert.Equal(t, want, footerColumns(t, data), name)
	}
}

func TestColumnsCoverEntityFields(t *testing.T) {
	cat := catalog.Schema()
	for _, e := range catalog.Entries() {
		cols, err := Columns(e.Name)
		require.NoError(t, err, e.Name)
		table, ok := cat.Entity(e.Name)
		require.True(t, ok, e.Name)

		seen := map[uint32]bool{}
		for i, col := range cols {
			assert.Equal(t, int32(i+1), col.ID, "%s.%s", e.Name, col.Name)
			_, ok := table.Field(col.Field)
			assert.True(t, ok, "%s.%s cut from missing field %d", e.Name, col.Name, col.Field)
			seen[uint32(col.Field)] = true
		}
		for _, f := range table.Fields {
			assert.True(t, seen[uint32(f.ID)], "%s.%s has no column", e.Name, f.Name)
		}
	}
}

func TestColumnsUnknownEntity(t *testing.T) {
	_, err := Columns("NoSuchEntry")
	assert.True(t, errors.Is(err, xerr.ErrUnsupportedType))
}
