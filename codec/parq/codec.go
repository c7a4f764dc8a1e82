// Package parq encodes entities as parquet files with
// github.com/xitongsys/parquet-go.
//
// Marshal of a single entity produces a one-row file. Marshal of a slice of
// entities, and WriteFile, produce one row per entity. Column layout is
// described on the record types.
package parq

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"

	"marketmodel/codec"
	"marketmodel/models"
	"marketmodel/models/legacy"
	"marketmodel/xerr"
)

const (
	DefaultCompression = "snappy"
	DefaultParallelism = 4
)

// Codec holds immutable write options and is safe for concurrent use.
type Codec struct {
	compression parquet.CompressionCodec
	parallelism int64
}

type Option func(*Codec)

// WithCompression sets the column compression. See ParseCompression.
func WithCompression(c parquet.CompressionCodec) Option {
	return func(p *Codec) { p.compression = c }
}

// WithParallelism sets the number of goroutines parquet-go uses per file.
func WithParallelism(n int) Option {
	return func(p *Codec) {
		if n > 0 {
			p.parallelism = int64(n)
		}
	}
}

func New(opts ...Option) *Codec {
	c := &Codec{
		compression: parquet.CompressionCodec_SNAPPY,
		parallelism: DefaultParallelism,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ParseCompression maps a config name to a parquet codec.
func ParseCompression(name string) (parquet.CompressionCodec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "snappy", "":
		return parquet.CompressionCodec_SNAPPY, nil
	case "gzip":
		return parquet.CompressionCodec_GZIP, nil
	case "none", "uncompressed":
		return parquet.CompressionCodec_UNCOMPRESSED, nil
	}
	return parquet.CompressionCodec_UNCOMPRESSED, fmt.Errorf("unsupported parquet compression %q", name)
}

func (c *Codec) Format() codec.Format {
	return codec.Parquet
}

func (c *Codec) Compression() parquet.CompressionCodec {
	return c.compression
}

// Marshal accepts an entity, a pointer to one, or a slice of entities.
func (c *Codec) Marshal(v any) ([]byte, error) {
	write, ok := bindWrite(v)
	if !ok {
		return nil, codec.Unsupported(codec.Parquet, v)
	}
	var buf bytes.Buffer
	if err := write(c, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal accepts a pointer to an entity, which requires exactly one row,
// or a pointer to a slice of entities.
func (c *Codec) Unmarshal(data []byte, v any) error {
	read, ok := bindRead(v)
	if !ok {
		return codec.Unsupported(codec.Parquet, v)
	}
	return read(c, newMemoryFile(data))
}

// WriteFile writes entries to a local parquet file, replacing it.
func (c *Codec) WriteFile(path string, entries any) error {
	write, ok := bindWrite(entries)
	if !ok {
		return codec.Unsupported(codec.Parquet, entries)
	}
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	if err := write(c, fw); err != nil {
		fw.Close()
		return err
	}
	return fw.Close()
}

// ReadFile reads a local parquet file into dst.
func (c *Codec) ReadFile(path string, dst any) error {
	read, ok := bindRead(dst)
	if !ok {
		return codec.Unsupported(codec.Parquet, dst)
	}
	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		return fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer fr.Close()
	return read(c, fr)
}

type writeFunc func(c *Codec, w io.Writer) error
type readFunc func(c *Codec, pf source.ParquetFile) error

func bindWrite(v any) (writeFunc, bool) {
	switch e := codec.Indirect(v).(type) {
	case models.PriceEntry:
		return rows(prices, []models.PriceEntry{e}), true
	case []models.PriceEntry:
		return rows(prices, e), true
	case models.OrderbookEntry:
		return rows(orderbooks, []models.OrderbookEntry{e}), true
	case []models.OrderbookEntry:
		return rows(orderbooks, e), true
	case models.DepthEntry:
		return rows(depths, []models.DepthEntry{e}), true
	case []models.DepthEntry:
		return rows(depths, e), true
	case models.FundingRateEntry:
		return rows(fundingRates, []models.FundingRateEntry{e}), true
	case []models.FundingRateEntry:
		return rows(fundingRates, e), true
	case models.TradeEntry:
		return rows(trades, []models.TradeEntry{e}), true
	case []models.TradeEntry:
		return rows(trades, e), true
	case models.VolumeEntry:
		return rows(volumes, []models.VolumeEntry{e}), true
	case []models.VolumeEntry:
		return rows(volumes, e), true
	case models.OpenInterestEntry:
		return rows(openInterest, []models.OpenInterestEntry{e}), true
	case []models.OpenInterestEntry:
		return rows(openInterest, e), true
	case models.PositionEntry:
		return rows(positions, []models.PositionEntry{e}), true
	case []models.PositionEntry:
		return rows(positions, e), true
	case models.GlobalExposureEntry:
		return rows(exposures, []models.GlobalExposureEntry{e}), true
	case []models.GlobalExposureEntry:
		return rows(exposures, e), true
	case legacy.MarketEntry:
		return rows(markets, []legacy.MarketEntry{e}), true
	case []legacy.MarketEntry:
		return rows(markets, e), true
	case legacy.OrderbookSnapshot:
		return rows(snapshots, []legacy.OrderbookSnapshot{e}), true
	case []legacy.OrderbookSnapshot:
		return rows(snapshots, e), true
	case legacy.OrderbookUpdate:
		return rows(updates, []legacy.OrderbookUpdate{e}), true
	case []legacy.OrderbookUpdate:
		return rows(updates, e), true
	case legacy.Depth:
		return rows(legacyDepths, []legacy.Depth{e}), true
	case []legacy.Depth:
		return rows(legacyDepths, e), true
	}
	return nil, false
}

func bindRead(v any) (readFunc, bool) {
	switch dst := v.(type) {
	case *models.PriceEntry:
		return one(prices, dst), true
	case *[]models.PriceEntry:
		return all(prices, dst), true
	case *models.OrderbookEntry:
		return one(orderbooks, dst), true
	case *[]models.OrderbookEntry:
		return all(orderbooks, dst), true
	case *models.DepthEntry:
		return one(depths, dst), true
	case *[]models.DepthEntry:
		return all(depths, dst), true
	case *models.FundingRateEntry:
		return one(fundingRates, dst), true
	case *[]models.FundingRateEntry:
		return all(fundingRates, dst), true
	case *models.TradeEntry:
		return one(trades, dst), true
	case *[]models.TradeEntry:
		return all(trades, dst), true
	case *models.VolumeEntry:
		return one(volumes, dst), true
	case *[]models.VolumeEntry:
		return all(volumes, dst), true
	case *models.OpenInterestEntry:
		return one(openInterest, dst), true
	case *[]models.OpenInterestEntry:
		return all(openInterest, dst), true
	case *models.PositionEntry:
		return one(positions, dst), true
	case *[]models.PositionEntry:
		return all(positions, dst), true
	case *models.GlobalExposureEntry:
		return one(exposures, dst), true
	case *[]models.GlobalExposureEntry:
		return all(exposures, dst), true
	case *legacy.MarketEntry:
		return one(markets, dst), true
	case *[]legacy.MarketEntry:
		return all(markets, dst), true
	case *legacy.OrderbookSnapshot:
		return one(snapshots, dst), true
	case *[]legacy.OrderbookSnapshot:
		return all(snapshots, dst), true
	case *legacy.OrderbookUpdate:
		return one(updates, dst), true
	case *[]legacy.OrderbookUpdate:
		return all(updates, dst), true
	case *legacy.Depth:
		return one(legacyDepths, dst), true
	case *[]legacy.Depth:
		return all(legacyDepths, dst), true
	}
	return nil, false
}

func rows[E, R any](t table[E, R], entries []E) writeFunc {
	return func(c *Codec, w io.Writer) error {
		pw, err := writer.NewParquetWriterFromWriter(w, new(R), c.parallelism)
		if err != nil {
			return fmt.Errorf("failed to create parquet writer: %w", err)
		}
		pw.CompressionType = c.compression
		for _, e := range entries {
			if err := pw.Write(t.encode(e)); err != nil {
				pw.WriteStop()
				return fmt.Errorf("failed to write parquet record: %w", err)
			}
		}
		if err := pw.WriteStop(); err != nil {
			return fmt.Errorf("failed to finalize parquet writing: %w", err)
		}
		return nil
	}
}

func one[E, R any](t table[E, R], dst *E) readFunc {
	return func(c *Codec, pf source.ParquetFile) error {
		records, err := readRecords[R](c, pf)
		if err != nil {
			return err
		}
		if len(records) != 1 {
			return xerr.New(xerr.MalformedPayload, "parquet: want 1 row, file has %d", len(records))
		}
		e, err := t.decode(records[0])
		if err != nil {
			return err
		}
		*dst = e
		return nil
	}
}

func all[E, R any](t table[E, R], dst *[]E) readFunc {
	return func(c *Codec, pf source.ParquetFile) error {
		records, err := readRecords[R](c, pf)
		if err != nil {
			return err
		}
		out := make([]E, 0, len(records))
		for i, r := range records {
			e, err := t.decode(r)
			if err != nil {
				return fmt.Errorf("row %d: %w", i, err)
			}
			out = append(out, e)
		}
		*dst = out
		return nil
	}
}

// readRecords reads every row. parquet-go panics on some corrupt inputs;
// those surface as MalformedPayload.
func readRecords[R any](c *Codec, pf source.ParquetFile) (records []R, err error) {
	defer func() {
		if p := recover(); p != nil {
			records, err = nil, xerr.New(xerr.MalformedPayload, "parquet: %v", p)
		}
	}()

	pr, err := reader.NewParquetReader(pf, new(R), c.parallelism)
	if err != nil {
		return nil, xerr.New(xerr.MalformedPayload, "parquet: %v", err)
	}
	defer pr.ReadStop()

	n := int(pr.GetNumRows())
	records = make([]R, n)
	if n == 0 {
		return records, nil
	}
	if err := pr.Read(&records); err != nil {
		return nil, xerr.New(xerr.MalformedPayload, "parquet: %v", err)
	}
	return records, nil
}
