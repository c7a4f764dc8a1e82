// Package enum holds closed enumerations whose ordinals are part of the wire
// contract.
//
// A Registry maps contiguous ordinals starting at 0 to symbolic names. Names
// are only ever appended. An ordinal past the end of the table is not an
// error: it decodes to the enum value carrying that ordinal, reports
// Known() == false and renders as unknown(N), so older readers keep working
// when a newer producer appends a member.
package enum

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/segmentio/encoding/json"

	"marketmodel/xerr"
)

// Ordinal is the underlying representation of every registered enum. It is
// as wide as a protobuf enum so any value a producer sends has a home.
type Ordinal interface {
	~uint32
}

type Registry[E Ordinal] struct {
	kind  string
	names []string
	index map[string]E
}

// New builds a registry. names[i] is the name of ordinal i. Duplicate or
// empty names are programming errors and panic at package init.
func New[E Ordinal](kind string, names ...string) *Registry[E] {
	if uint64(len(names)) > math.MaxUint32+1 {
		panic(fmt.Sprintf("enum %s: %d names exceed the ordinal range", kind, len(names)))
	}
	r := &Registry[E]{
		kind:  kind,
		names: append([]string(nil), names...),
		index: make(map[string]E, len(names)),
	}
	for i, name := range names {
		key := strings.ToLower(name)
		if key == "" {
			panic(fmt.Sprintf("enum %s: empty name at ordinal %d", kind, i))
		}
		if _, dup := r.index[key]; dup {
			panic(fmt.Sprintf("enum %s: duplicate name %q", kind, name))
		}
		r.index[key] = E(i)
	}
	return r
}

func (r *Registry[E]) Kind() string { return r.kind }

// Len is the number of known members.
func (r *Registry[E]) Len() int { return len(r.names) }

func (r *Registry[E]) Known(e E) bool {
	return int(e) < len(r.names)
}

// Name returns the symbolic name of e; ok is false for unknown ordinals.
func (r *Registry[E]) Name(e E) (name string, ok bool) {
	if !r.Known(e) {
		return "", false
	}
	return r.names[e], true
}

// String renders the name, or unknown(N) for an ordinal past the table.
func (r *Registry[E]) String(e E) string {
	if name, ok := r.Name(e); ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", uint32(e))
}

// Parse resolves a name case-insensitively. It also accepts the unknown(N)
// rendering produced by String.
func (r *Registry[E]) Parse(name string) (E, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if e, ok := r.index[key]; ok {
		return e, nil
	}
	if inner, ok := strings.CutPrefix(key, "unknown("); ok {
		if digits, ok := strings.CutSuffix(inner, ")"); ok {
			raw, err := strconv.ParseUint(digits, 10, 64)
			if err == nil {
				return r.FromWire(raw)
			}
		}
	}
	return 0, xerr.New(xerr.UnknownEnumerant, "%s: no member named %q", r.kind, name)
}

// Values lists the known members in ordinal order.
func (r *Registry[E]) Values() []E {
	out := make([]E, len(r.names))
	for i := range r.names {
		out[i] = E(i)
	}
	return out
}

// Names lists the known names in ordinal order.
func (r *Registry[E]) Names() []string {
	return append([]string(nil), r.names...)
}

// FromWire converts a decoded integer into the enum. Unknown ordinals are
// kept; only values that do not fit the enum type fail.
func (r *Registry[E]) FromWire(raw uint64) (E, error) {
	e, err := FromWire[E](raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", r.kind, err)
	}
	return e, nil
}

// Check fails with UnknownEnumerant when e is past the table. Writers and the
// version bridge use it; decoders never do.
func (r *Registry[E]) Check(e E) error {
	if r.Known(e) {
		return nil
	}
	return xerr.New(xerr.UnknownEnumerant, "%s: ordinal %d is newer than this registry (%d members)", r.kind, uint32(e), len(r.names))
}

// MarshalJSON writes known members as their name and unknown ones as the
// bare ordinal, so the value survives a trip through an older reader.
func (r *Registry[E]) MarshalJSON(e E) ([]byte, error) {
	if name, ok := r.Name(e); ok {
		return json.Marshal(name)
	}
	return []byte(strconv.FormatUint(uint64(e), 10)), nil
}

// UnmarshalJSON accepts either form written by MarshalJSON.
func (r *Registry[E]) UnmarshalJSON(data []byte) (E, error) {
	s := strings.TrimSpace(string(data))
	if strings.HasPrefix(s, `"`) {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return 0, xerr.New(xerr.MalformedPayload, "%s: %v", r.kind, err)
		}
		return r.Parse(name)
	}
	raw, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, xerr.New(xerr.MalformedPayload, "%s: cannot decode %s", r.kind, s)
	}
	return r.FromWire(raw)
}

// FromWire narrows a raw wire integer to E without consulting a registry.
func FromWire[E Ordinal](raw uint64) (E, error) {
	if raw > math.MaxUint32 {
		return 0, xerr.New(xerr.RangeExceeded, "enum ordinal %d exceeds %d", raw, uint64(math.MaxUint32))
	}
	return E(raw), nil
}
