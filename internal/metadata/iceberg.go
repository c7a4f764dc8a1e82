// Package metadata writes Iceberg-style table metadata next to exported
// parquet files so query engines can find them with their field ids.
package metadata

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/encoding/json"

	"marketmodel/codec/parq"
	"marketmodel/schema"
)

// DataFile describes a single parquet file written by an export.
type DataFile struct {
	Path        string         `json:"path"`
	FileSize    int64          `json:"file_size_in_bytes"`
	RecordCount int64          `json:"record_count"`
	Partition   map[string]any `json:"partition"`
	Timestamp   time.Time      `json:"-"`
}

// ManifestEntry mirrors the information kept in an Iceberg manifest file.
type ManifestEntry struct {
	Status   int      `json:"status"`
	DataFile DataFile `json:"data_file"`
}

// Snapshot holds minimal information required for time-travel queries.
type Snapshot struct {
	SnapshotID  int64  `json:"snapshot-id"`
	TimestampMs int64  `json:"timestamp-ms"`
	Manifest    string `json:"manifest-list"`
}

// SchemaField is one parquet column. ID is the parquet field id in the data
// files and FieldID the entity field the column is cut from.
type SchemaField struct {
	ID       int32          `json:"id"`
	Name     string         `json:"name"`
	Required bool           `json:"required"`
	Type     string         `json:"type"`
	Doc      string         `json:"doc,omitempty"`
	FieldID  schema.FieldID `json:"marketmodel-field-id"`
}

type Schema struct {
	Type     string        `json:"type"`
	SchemaID int           `json:"schema-id"`
	Fields   []SchemaField `json:"fields"`
}

// TableMetadata represents the high level Iceberg table metadata file.
type TableMetadata struct {
	FormatVersion     int               `json:"format-version"`
	TableUUID         string            `json:"table-uuid"`
	Location          string            `json:"location"`
	CurrentSchemaID   int               `json:"current-schema-id"`
	Schemas           []Schema          `json:"schemas"`
	Properties        map[string]string `json:"properties"`
	CurrentSnapshotID int64             `json:"current-snapshot-id"`
	Snapshots         []Snapshot        `json:"snapshots"`
}

// Generator incrementally builds Iceberg metadata for one entity table.
type Generator struct {
	basePath  string
	location  string
	table     schema.Entity
	layout    Schema
	tableUUID string
	snapshots []Snapshot
}

// NewGenerator returns a metadata generator rooted at basePath. location is
// the URI recorded in the metadata; it defaults to basePath. The schema lists
// the columns the parquet codec writes for table.
func NewGenerator(basePath, location string, table schema.Entity) (*Generator, error) {
	if location == "" {
		location = basePath
	}
	cols, err := parq.Columns(table.Name)
	if err != nil {
		return nil, err
	}
	s, err := tableSchema(table, cols)
	if err != nil {
		return nil, err
	}
	return &Generator{
		basePath:  basePath,
		location:  location,
		table:     table,
		layout:    s,
		tableUUID: uuid.NewString(),
	}, nil
}

func (g *Generator) TableUUID() string {
	return g.tableUUID
}

// AddFile records a newly written parquet file and updates metadata.
func (g *Generator) AddFile(df DataFile) error {
	snapID := df.Timestamp.UnixNano()
	manifestFile := fmt.Sprintf("manifest-%d.json", snapID)
	manifestPath := filepath.Join(g.basePath, "metadata", manifestFile)
	if err := os.MkdirAll(filepath.Dir(manifestPath), 0o755); err != nil {
		return err
	}
	entry := ManifestEntry{Status: 1, DataFile: df}
	b, err := json.Marshal([]ManifestEntry{entry})
	if err != nil {
		return err
	}
	if err := os.WriteFile(manifestPath, b, 0o644); err != nil {
		return err
	}
	snapshot := Snapshot{
		SnapshotID:  snapID,
		TimestampMs: df.Timestamp.UnixMilli(),
		Manifest:    manifestFile,
	}
	g.snapshots = append(g.snapshots, snapshot)
	return g.writeTableMetadata()
}

// Metadata returns the current table metadata.
func (g *Generator) Metadata() TableMetadata {
	tm := TableMetadata{
		FormatVersion: 2,
		TableUUID:     g.tableUUID,
		Location:      g.location,
		Schemas:       []Schema{g.layout},
		Properties: map[string]string{
			"marketmodel.entity":     g.table.Name,
			"marketmodel.generation": string(g.table.Generation),
		},
		Snapshots: g.snapshots,
	}
	if len(g.snapshots) > 0 {
		tm.CurrentSnapshotID = g.snapshots[len(g.snapshots)-1].SnapshotID
	}
	return tm
}

func (g *Generator) writeTableMetadata() error {
	if len(g.snapshots) == 0 {
		return nil
	}
	metaPath := filepath.Join(g.basePath, "metadata", "metadata.json")
	b, err := json.MarshalIndent(g.Metadata(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(metaPath, b, 0o644)
}

// WriteCatalogEntry creates a simple catalog entry pointing at the table metadata.
func (g *Generator) WriteCatalogEntry(catalogDir string) error {
	metaLoc := filepath.Join(g.basePath, "metadata", "metadata.json")
	entry := map[string]string{
		"name":              g.table.Name,
		"metadata_location": metaLoc,
	}
	if err := os.MkdirAll(catalogDir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(catalogDir, fmt.Sprintf("%s.json", g.table.Name))
	b, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// tableSchema lists the parquet columns in file order. Doc names the entity
// field behind each column.
func tableSchema(e schema.Entity, cols []parq.Column) (Schema, error) {
	s := Schema{Type: "struct"}
	for _, c := range cols {
		f, ok := e.Field(c.Field)
		if !ok {
			return Schema{}, fmt.Errorf("metadata: %s column %s has no field %d", e.Name, c.Name, c.Field)
		}
		s.Fields = append(s.Fields, SchemaField{
			ID:       c.ID,
			Name:     c.Name,
			Required: !c.Repeated,
			Type:     icebergType(c),
			Doc:      f.Name,
			FieldID:  c.Field,
		})
	}
	return s, nil
}

func icebergType(c parq.Column) string {
	var t string
	switch c.Type {
	case "BOOLEAN":
		t = "boolean"
	case "INT32":
		t = "int"
	case "INT64":
		t = "long"
	case "FLOAT":
		t = "float"
	case "DOUBLE":
		t = "double"
	case "BYTE_ARRAY":
		t = "string"
	default:
		t = strings.ToLower(c.Type)
	}
	if c.Repeated {
		return "list<" + t + ">"
	}
	return t
}
