// Package codec defines the contract shared by the wire formats.
//
// Each format lives in its own package (pb, borsh, parq, jsonx) so a program
// only links the formats it imports. Package all bundles every format that
// was not excluded with a build tag.
package codec

import (
	"fmt"
	"strings"

	"marketmodel/xerr"
)

type Format string

const (
	Protobuf Format = "protobuf"
	Borsh    Format = "borsh"
	Parquet  Format = "parquet"
	JSON     Format = "json"
)

// ParseFormat accepts the format names and the usual short aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "protobuf", "proto", "pb":
		return Protobuf, nil
	case "borsh":
		return Borsh, nil
	case "parquet", "parq":
		return Parquet, nil
	case "json":
		return JSON, nil
	}
	return "", fmt.Errorf("unknown format %q", s)
}

// Codec encodes entity values. Marshal takes an entity value or pointer;
// Unmarshal takes a pointer. Entities are the current types in package models
// and the legacy types in package models/legacy. Any other type fails with
// UnsupportedType.
type Codec interface {
	Format() Format
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// Unsupported is the error every codec returns for a type it does not know.
func Unsupported(f Format, v any) error {
	return xerr.New(xerr.UnsupportedType, "%s: cannot encode %T", f, v)
}
