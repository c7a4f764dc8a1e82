package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"

	"marketmodel/bridge"
	"marketmodel/catalog"
	"marketmodel/codec"
	"marketmodel/codec/all"
	"marketmodel/config"
	"marketmodel/internal/metadata"
	"marketmodel/logger"
	"marketmodel/schema"
)

type command struct {
	cfg    *config.Config
	log    *logger.Entry
	stdin  io.Reader
	stdout io.Writer
}

// batchWriter is implemented by codecs that write multi-row files.
type batchWriter interface {
	WriteFile(path string, entries any) error
}

func (c *command) options() all.Options {
	return all.Options{
		ParquetCompression: c.cfg.Codecs.Parquet.Compression,
		ParquetParallelism: c.cfg.Codecs.Parquet.Parallelism,
		JSONIndent:         c.cfg.Codecs.JSON.Indent,
	}
}

// codec resolves a format flag; empty means the configured default.
func (c *command) codec(name string) (codec.Codec, error) {
	f := c.cfg.Format()
	if name != "" {
		var err error
		if f, err = codec.ParseFormat(name); err != nil {
			return nil, err
		}
	}
	return all.Lookup(f, c.options())
}

func (c *command) read(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(c.stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return data, nil
}

func (c *command) write(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := c.stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// decode reads one entity of the named type from path.
func (c *command) decode(entity, format, path string) (catalog.Entry, any, error) {
	entry, err := catalog.Lookup(entity)
	if err != nil {
		return entry, nil, err
	}
	from, err := c.codec(format)
	if err != nil {
		return entry, nil, err
	}
	data, err := c.read(path)
	if err != nil {
		return entry, nil, err
	}
	v := entry.New()
	start := time.Now()
	if err := from.Unmarshal(data, v); err != nil {
		return entry, nil, fmt.Errorf("failed to decode %s as %s: %w", entry.Name, from.Format(), err)
	}
	logger.LogPerformanceEntry(c.log, "codec", "unmarshal", time.Since(start), logger.Fields{
		"format": string(from.Format()),
		"entity": entry.Name,
		"bytes":  len(data),
	})
	return entry, v, nil
}

// encode writes v to path in the given format.
func (c *command) encode(v any, format, path string) error {
	to, err := c.codec(format)
	if err != nil {
		return err
	}
	start := time.Now()
	data, err := to.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %T as %s: %w", codec.Indirect(v), to.Format(), err)
	}
	logger.LogPerformanceEntry(c.log, "codec", "marshal", time.Since(start), logger.Fields{
		"format": string(to.Format()),
		"bytes":  len(data),
	})
	return c.write(path, data)
}

func (c *command) formats(args []string) error {
	fs := flag.NewFlagSet("formats", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	for _, f := range all.Formats() {
		if f == c.cfg.Format() {
			fmt.Fprintf(c.stdout, "%s (default)\n", f)
			continue
		}
		fmt.Fprintln(c.stdout, f)
	}
	return nil
}

func (c *command) fieldIDs(args []string) error {
	fs := flag.NewFlagSet("fieldids", flag.ContinueOnError)
	out := fs.String("out", "", "Write the snapshot to this file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cat := catalog.Schema()
	if err := cat.Validate(); err != nil {
		return err
	}
	if *out == "" {
		return cat.WriteSnapshot(c.stdout)
	}
	if err := cat.WriteSnapshotFile(*out); err != nil {
		return err
	}
	c.log.WithComponent("catalog").WithFields(logger.Fields{"path": *out}).Info("field id snapshot written")
	return nil
}

func (c *command) check(args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	snapshot := fs.String("snapshot", c.cfg.Catalog.Snapshot, "Published snapshot; empty uses the embedded copy")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cur := catalog.Schema()
	if err := cur.Validate(); err != nil {
		return err
	}
	var (
		prev schema.Catalog
		err  error
	)
	if *snapshot == "" {
		prev, err = catalog.Published()
	} else {
		prev, err = schema.LoadSnapshotFile(*snapshot)
	}
	if err != nil {
		return err
	}
	if err := schema.CheckEvolution(prev, cur); err != nil {
		return fmt.Errorf("field identifiers changed incompatibly:\n%w", err)
	}

	fmt.Fprintf(c.stdout, "ok: %d entities\n", len(cur.Entities))
	return nil
}

func (c *command) convert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	entity := fs.String("entity", "", "Entity name, e.g. PriceEntry")
	from := fs.String("from", "", "Input format (default from config)")
	to := fs.String("to", "", "Output format (default from config)")
	in := fs.String("in", "-", "Input file, - for stdin")
	out := fs.String("out", "-", "Output file, - for stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	entry, v, err := c.decode(*entity, *from, *in)
	if err != nil {
		return err
	}
	if err := c.encode(v, *to, *out); err != nil {
		return err
	}
	logger.LogDataFlowEntry(c.log, *in, *out, 1, entry.Name)
	return nil
}

func (c *command) migrate(args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	entity := fs.String("entity", "", "Source entity name, e.g. MarketEntry")
	from := fs.String("from", "", "Input format (default from config)")
	to := fs.String("to", "", "Output format (default from config)")
	in := fs.String("in", "-", "Input file, - for stdin")
	out := fs.String("out", "-", "Output file, - for stdout")
	publisher := fs.String("publisher", c.cfg.Bridge.Publisher, "Publisher written into legacy entries")
	timestamp := fs.Int64("timestamp", 0, "Unix ms stamped on migrated Depth records; unset means now")
	if err := fs.Parse(args); err != nil {
		return err
	}

	entry, v, err := c.decode(*entity, *from, *in)
	if err != nil {
		return err
	}
	opts := bridge.Options{Publisher: *publisher, DepthTimestampMs: time.Now().UnixMilli()}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "timestamp" {
			opts.DepthTimestampMs = *timestamp
		}
	})
	migrated, err := bridge.Migrate(v, opts)
	if err != nil {
		return fmt.Errorf("failed to migrate %s: %w", entry.Name, err)
	}
	if err := c.encode(migrated, *to, *out); err != nil {
		return err
	}
	logger.LogDataFlowEntry(c.log, *in, *out, 1, fmt.Sprintf("%s->%T", entry.Name, migrated))
	return nil
}

func (c *command) export(args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	entity := fs.String("entity", "", "Entity name, e.g. OrderbookEntry")
	from := fs.String("from", "", "Format of the input files (default from config)")
	dir := fs.String("dir", c.cfg.Export.Dir, "Export root directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("export: no input files")
	}

	entry, err := catalog.Lookup(*entity)
	if err != nil {
		return err
	}
	table, ok := catalog.Schema().Entity(entry.Name)
	if !ok {
		return fmt.Errorf("export: no table for %s", entry.Name)
	}
	in, err := c.codec(*from)
	if err != nil {
		return err
	}
	pq, err := c.codec(string(codec.Parquet))
	if err != nil {
		return err
	}
	bw, ok := pq.(batchWriter)
	if !ok {
		return fmt.Errorf("export: %s codec cannot write files", pq.Format())
	}

	// Parquet inputs may hold many rows; every other format holds one entity.
	batch := reflect.ValueOf(entry.NewSlice()).Elem()
	for _, path := range fs.Args() {
		data, err := c.read(path)
		if err != nil {
			return err
		}
		if in.Format() == codec.Parquet {
			rows := entry.NewSlice()
			if err := in.Unmarshal(data, rows); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			batch = reflect.AppendSlice(batch, reflect.ValueOf(rows).Elem())
			continue
		}
		v := entry.New()
		if err := in.Unmarshal(data, v); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		batch = reflect.Append(batch, reflect.ValueOf(v).Elem())
	}

	tableDir := filepath.Join(*dir, entry.Name)
	if err := os.MkdirAll(filepath.Join(tableDir, "data"), 0o755); err != nil {
		return err
	}
	file := filepath.Join(tableDir, "data", fmt.Sprintf("%s-%s.parquet", entry.Name, uuid.NewString()))
	if err := bw.WriteFile(file, batch.Interface()); err != nil {
		return err
	}
	info, err := os.Stat(file)
	if err != nil {
		return err
	}

	location := c.cfg.Export.Location
	if location != "" {
		location = strings.TrimRight(location, "/") + "/" + entry.Name
	}
	gen, err := metadata.NewGenerator(tableDir, location, table)
	if err != nil {
		return err
	}
	df := metadata.DataFile{
		Path:        file,
		FileSize:    info.Size(),
		RecordCount: int64(batch.Len()),
		Partition: map[string]any{
			"entity":     entry.Name,
			"generation": string(entry.Generation),
		},
		Timestamp: time.Now(),
	}
	if err := gen.AddFile(df); err != nil {
		return fmt.Errorf("failed to write table metadata: %w", err)
	}
	if c.cfg.Export.CatalogDir != "" {
		if err := gen.WriteCatalogEntry(c.cfg.Export.CatalogDir); err != nil {
			return fmt.Errorf("failed to write catalog entry: %w", err)
		}
	}

	logger.LogDataFlowEntry(c.log, strings.Join(fs.Args(), ","), file, batch.Len(), entry.Name)
	fmt.Fprintln(c.stdout, file)
	return nil
}
