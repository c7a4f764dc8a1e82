// Package schema describes the field tables of every entity.
//
// A field identifier is assigned once per entity and never reused. Removing a
// field moves its identifier to Reserved. Each arm of an optional field has
// its own identifier; the void arm (no<Field>) comes first and the payload
// arm immediately follows it.
package schema

import (
	"fmt"
	"strings"
)

// FieldID is the stable per-entity field number. It doubles as the protobuf
// field number, the borsh field position and the parquet column position.
type FieldID uint32

type Kind string

const (
	KindText    Kind = "text"
	KindInt64   Kind = "int64"
	KindUint64  Kind = "uint64"
	KindFloat64 Kind = "float64"
	KindUint128 Kind = "uint128"
	KindEnum    Kind = "enum"
	KindStruct  Kind = "struct"
	KindList    Kind = "list"
	KindVoid    Kind = "void"
)

func (k Kind) valid() bool {
	switch k {
	case KindText, KindInt64, KindUint64, KindFloat64, KindUint128, KindEnum, KindStruct, KindList, KindVoid:
		return true
	}
	return false
}

type Generation string

const (
	Current Generation = "current"
	Legacy  Generation = "legacy"
)

// Field is one row of an entity table. Type names the enum, struct or list
// element for those kinds. Union names the optional field an arm belongs to;
// the payload arm may carry a more specific name than the union itself
// (expiration / expirationTimestampMs).
type Field struct {
	ID    FieldID `yaml:"id"`
	Name  string  `yaml:"name"`
	Kind  Kind    `yaml:"kind"`
	Type  string  `yaml:"type,omitempty"`
	Union string  `yaml:"union,omitempty"`
}

func (f Field) String() string {
	if f.Type != "" {
		return fmt.Sprintf("%d:%s(%s<%s>)", f.ID, f.Name, f.Kind, f.Type)
	}
	return fmt.Sprintf("%d:%s(%s)", f.ID, f.Name, f.Kind)
}

type Entity struct {
	Name       string     `yaml:"name"`
	Generation Generation `yaml:"generation"`
	Fields     []Field    `yaml:"fields"`
	Reserved   []FieldID  `yaml:"reserved,omitempty"`
}

// Field looks a field up by identifier.
func (e Entity) Field(id FieldID) (Field, bool) {
	for _, f := range e.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return Field{}, false
}

// Lookup finds a field by name.
func (e Entity) Lookup(name string) (Field, bool) {
	for _, f := range e.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// MaxID is the highest identifier ever assigned, reserved ones included.
func (e Entity) MaxID() FieldID {
	var top FieldID
	for _, f := range e.Fields {
		if f.ID > top {
			top = f.ID
		}
	}
	for _, id := range e.Reserved {
		if id > top {
			top = id
		}
	}
	return top
}

// Validate checks a single table: identifiers start at 1, ascend, are unique
// and are not reserved; names are unique; union arms pair up.
func (e Entity) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("schema: entity without a name")
	}
	if e.Generation != Current && e.Generation != Legacy {
		return fmt.Errorf("schema: %s: unknown generation %q", e.Name, e.Generation)
	}
	reserved := make(map[FieldID]bool, len(e.Reserved))
	for _, id := range e.Reserved {
		reserved[id] = true
	}
	names := make(map[string]bool, len(e.Fields))
	var prev FieldID
	for i, f := range e.Fields {
		switch {
		case f.ID == 0:
			return fmt.Errorf("schema: %s.%s: field id 0 is not assignable", e.Name, f.Name)
		case f.ID <= prev:
			return fmt.Errorf("schema: %s.%s: id %d does not ascend", e.Name, f.Name, f.ID)
		case reserved[f.ID]:
			return fmt.Errorf("schema: %s.%s: id %d is reserved", e.Name, f.Name, f.ID)
		case names[f.Name]:
			return fmt.Errorf("schema: %s: duplicate field name %q", e.Name, f.Name)
		case !f.Kind.valid():
			return fmt.Errorf("schema: %s.%s: unknown kind %q", e.Name, f.Name, f.Kind)
		}
		prev = f.ID
		names[f.Name] = true

		if f.Union == "" {
			if f.Kind == KindVoid {
				return fmt.Errorf("schema: %s.%s: void field outside a union", e.Name, f.Name)
			}
			continue
		}
		if err := e.validateArm(i); err != nil {
			return err
		}
	}
	return nil
}

func (e Entity) validateArm(i int) error {
	f := e.Fields[i]
	if f.Kind == KindVoid {
		if f.Name != AbsentArmName(f.Union) {
			return fmt.Errorf("schema: %s.%s: absent arm of %q must be named %s", e.Name, f.Name, f.Union, AbsentArmName(f.Union))
		}
		if i+1 >= len(e.Fields) {
			return fmt.Errorf("schema: %s.%s: union %q has no payload arm", e.Name, f.Name, f.Union)
		}
		next := e.Fields[i+1]
		if next.Union != f.Union || next.ID != f.ID+1 || next.Kind == KindVoid {
			return fmt.Errorf("schema: %s.%s: payload arm of %q must follow as id %d", e.Name, f.Name, f.Union, f.ID+1)
		}
		return nil
	}
	if i == 0 || e.Fields[i-1].Union != f.Union || e.Fields[i-1].Kind != KindVoid {
		return fmt.Errorf("schema: %s.%s: union %q has no absent arm", e.Name, f.Name, f.Union)
	}
	return nil
}

// AbsentArmName gives the void arm name for an optional field: chain ->
// noChain.
func AbsentArmName(field string) string {
	if field == "" {
		return "no"
	}
	return "no" + strings.ToUpper(field[:1]) + field[1:]
}

// Union returns the two arms of the optional field named union.
func (e Entity) Union(union string) (absent, present Field, ok bool) {
	for i, f := range e.Fields {
		if f.Union == union && f.Kind == KindVoid && i+1 < len(e.Fields) {
			return f, e.Fields[i+1], true
		}
	}
	return Field{}, Field{}, false
}
