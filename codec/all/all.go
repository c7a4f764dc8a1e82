// Package all bundles the wire formats compiled into the binary. A format
// is left out by building with its tag: nopb, noborsh, noparquet or nojson.
package all

import (
	"fmt"

	"marketmodel/codec"
)

// Options carries the per-format settings taken from config.
type Options struct {
	ParquetCompression string
	ParquetParallelism int
	JSONIndent         string
}

type factory func(Options) (codec.Codec, error)

func factories() []factory {
	return []factory{protobufCodec, borshCodec, parquetCodec, jsonCodec}
}

// Codecs returns every compiled-in codec in a fixed order.
func Codecs(opts Options) ([]codec.Codec, error) {
	var out []codec.Codec
	for _, f := range factories() {
		c, err := f(opts)
		if err != nil {
			return nil, err
		}
		if c != nil {
			out = append(out, c)
		}
	}
	return out, nil
}

// Formats lists the compiled-in formats.
func Formats() []codec.Format {
	cs, _ := Codecs(Options{})
	formats := make([]codec.Format, 0, len(cs))
	for _, c := range cs {
		formats = append(formats, c.Format())
	}
	return formats
}

// Lookup returns the codec for f, or an error when f was not compiled in.
func Lookup(f codec.Format, opts Options) (codec.Codec, error) {
	cs, err := Codecs(opts)
	if err != nil {
		return nil, err
	}
	for _, c := range cs {
		if c.Format() == f {
			return c, nil
		}
	}
	return nil, fmt.Errorf("format %q is not built into this binary", f)
}
