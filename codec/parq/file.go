package parq

import (
	"bytes"
	"errors"

	"github.com/xitongsys/parquet-go/source"
)

// memoryFile serves an encoded parquet file from memory. The reader opens
// one handle per column chunk, so Open returns a fresh handle on the same
// bytes.
type memoryFile struct {
	data []byte
	r    *bytes.Reader
}

func newMemoryFile(data []byte) *memoryFile {
	return &memoryFile{data: data, r: bytes.NewReader(data)}
}

func (m *memoryFile) Create(name string) (source.ParquetFile, error) {
	return nil, errors.New("parquet: memory file is read only")
}

func (m *memoryFile) Open(name string) (source.ParquetFile, error) {
	return newMemoryFile(m.data), nil
}

func (m *memoryFile) Seek(offset int64, whence int) (int64, error) {
	return m.r.Seek(offset, whence)
}

func (m *memoryFile) Read(b []byte) (int, error) {
	return m.r.Read(b)
}

func (m *memoryFile) Write(b []byte) (int, error) {
	return 0, errors.New("parquet: memory file is read only")
}

func (m *memoryFile) Close() error {
	return nil
}
