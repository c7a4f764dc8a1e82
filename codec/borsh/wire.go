package borsh

import (
	"bytes"
	"math"

	bin "github.com/gagliardetto/binary"

	"marketmodel/enum"
	"marketmodel/uint128"
	"marketmodel/union"
	"marketmodel/xerr"
)

// writer keeps the first error so field sequences read straight through.
type writer struct {
	buf bytes.Buffer
	enc *bin.Encoder
	err error
}

func newWriter() *writer {
	w := &writer{}
	w.enc = bin.NewBorshEncoder(&w.buf)
	return w
}

func (w *writer) do(f func() error) {
	if w.err == nil {
		w.err = f()
	}
}

func (w *writer) u8(v uint8) { w.do(func() error { return w.enc.WriteUint8(v) }) }
func (w *writer) u64(v uint64) { w.do(func() error { return w.enc.WriteUint64(v, bin.LE) }) }
func (w *writer) i64(v int64) { w.do(func() error { return w.enc.WriteInt64(v, bin.LE) }) }
func (w *writer) f64(v float64) { w.do(func() error { return w.enc.WriteFloat64(v, bin.LE) }) }
func (w *writer) str(v string) { w.do(func() error { return w.enc.WriteString(v) }) }
func (w *writer) length(n int) { w.do(func() error { return w.enc.WriteLength(n) }) }
func (w *writer) fail(err error) { w.do(func() error { return err }) }

// words writes the low word then the high word.
func (w *writer) words(u uint128.UInt128) {
	low, high := u.Words()
	w.u64(low)
	w.u64(high)
}

func (w *writer) bytes() ([]byte, error) {
	if w.err != nil {
		if xerr.CodeOf(w.err) != 0 {
			return nil, w.err
		}
		return nil, xerr.New(xerr.RangeExceeded, "borsh: %v", w.err)
	}
	return w.buf.Bytes(), nil
}

// writeEnum stores the ordinal in one byte.
func writeEnum[E enum.Ordinal](w *writer, e E) {
	if uint32(e) > math.MaxUint8 {
		w.fail(xerr.New(xerr.RangeExceeded, "borsh: enum ordinal %d does not fit in u8", uint32(e)))
		return
	}
	w.u8(uint8(e))
}

// writeUnion writes the u8 arm tag, then the payload for the present arm.
func writeUnion[T any](w *writer, o union.Optional[T], payload func(*writer, T)) {
	tag, v := union.Split(o)
	w.u8(uint8(tag))
	if tag == union.Present {
		payload(w, v)
	}
}

// reader keeps the first error, like writer.
type reader struct {
	dec *bin.Decoder
	err error
}

func newReader(data []byte) *reader {
	return &reader{dec: bin.NewBorshDecoder(data)}
}

func (r *reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *reader) malformed(err error) {
	if err != nil {
		r.fail(xerr.New(xerr.MalformedPayload, "borsh: %v", err))
	}
}

func (r *reader) u8() uint8 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.ReadUint8()
	r.malformed(err)
	return v
}

func (r *reader) u64() uint64 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.ReadUint64(bin.LE)
	r.malformed(err)
	return v
}

func (r *reader) i64() int64 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.ReadInt64(bin.LE)
	r.malformed(err)
	return v
}

func (r *reader) f64() float64 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.ReadFloat64(bin.LE)
	r.malformed(err)
	return v
}

func (r *reader) str() string {
	if r.err != nil {
		return ""
	}
	v, err := r.dec.ReadString()
	r.malformed(err)
	return v
}

func (r *reader) words() uint128.UInt128 {
	low := r.u64()
	high := r.u64()
	return uint128.FromWords(low, high)
}

// length reads a u32 element count and rejects counts that cannot fit in
// the remaining input at elemSize bytes each.
func (r *reader) length(elemSize int) int {
	if r.err != nil {
		return 0
	}
	n, err := r.dec.ReadLength()
	if err != nil {
		r.malformed(err)
		return 0
	}
	if n*elemSize > r.dec.Remaining() {
		r.fail(xerr.New(xerr.MalformedPayload, "borsh: %d elements exceed the %d remaining bytes", n, r.dec.Remaining()))
		return 0
	}
	return n
}

// done rejects trailing bytes.
func (r *reader) done() error {
	if r.err == nil && r.dec.HasRemaining() {
		r.fail(xerr.New(xerr.MalformedPayload, "borsh: %d trailing bytes", r.dec.Remaining()))
	}
	return r.err
}

func readEnum[E enum.Ordinal](r *reader) E {
	return E(r.u8())
}

// readUnion validates the arm tag and reads the payload of the present arm.
func readUnion[T any](r *reader, payload func(*reader) T) union.Optional[T] {
	raw := r.u8()
	if r.err != nil {
		return union.None[T]()
	}
	o, err := union.JoinRaw(uint64(raw), func() (T, error) {
		v := payload(r)
		return v, r.err
	})
	if err != nil {
		r.fail(err)
	}
	return o
}
