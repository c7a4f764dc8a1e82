package schema

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Catalog is the set of entity tables at one point in history.
type Catalog struct {
	Entities []Entity `yaml:"entities"`
}

func (c Catalog) Entity(name string) (Entity, bool) {
	for _, e := range c.Entities {
		if e.Name == name {
			return e, true
		}
	}
	return Entity{}, false
}

// Validate checks every table and that entity names are unique.
func (c Catalog) Validate() error {
	seen := make(map[string]bool, len(c.Entities))
	for _, e := range c.Entities {
		if seen[e.Name] {
			return fmt.Errorf("schema: duplicate entity %q", e.Name)
		}
		seen[e.Name] = true
		if err := e.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Sorted returns a copy ordered by generation then name, the order snapshots
// are written in.
func (c Catalog) Sorted() Catalog {
	out := Catalog{Entities: append([]Entity(nil), c.Entities...)}
	sort.SliceStable(out.Entities, func(i, j int) bool {
		a, b := out.Entities[i], out.Entities[j]
		if a.Generation != b.Generation {
			return a.Generation == Current
		}
		return a.Name < b.Name
	})
	return out
}

// WriteSnapshot serializes the catalog as YAML.
func (c Catalog) WriteSnapshot(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c.Sorted()); err != nil {
		return fmt.Errorf("failed to encode field id snapshot: %w", err)
	}
	return enc.Close()
}

func (c Catalog) WriteSnapshotFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	if err := c.WriteSnapshot(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func LoadSnapshot(r io.Reader) (Catalog, error) {
	var c Catalog
	if err := yaml.NewDecoder(r).Decode(&c); err != nil {
		return Catalog{}, fmt.Errorf("failed to parse field id snapshot: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Catalog{}, fmt.Errorf("invalid field id snapshot: %w", err)
	}
	return c, nil
}

func LoadSnapshotFile(path string) (Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to read snapshot file: %w", err)
	}
	defer f.Close()
	return LoadSnapshot(f)
}

// Violation is one illegal change between two catalogs.
type Violation struct {
	Entity string
	ID     FieldID
	Reason string
}

func (v Violation) Error() string {
	if v.ID == 0 {
		return fmt.Sprintf("%s: %s", v.Entity, v.Reason)
	}
	return fmt.Sprintf("%s field %d: %s", v.Entity, v.ID, v.Reason)
}

// CheckEvolution reports every way cur breaks the identifiers published in
// prev. Identifiers may only be added. A field that disappears must have its
// identifier reserved, a reserved identifier stays reserved, and a name keeps
// its identifier. Legacy tables accept no change at all. The result joins
// all violations, or is nil.
func CheckEvolution(prev, cur Catalog) error {
	var errs []error
	for _, old := range prev.Entities {
		now, ok := cur.Entity(old.Name)
		if !ok {
			errs = append(errs, Violation{Entity: old.Name, Reason: "entity removed"})
			continue
		}
		for _, v := range checkEntity(old, now) {
			errs = append(errs, v)
		}
	}
	return errors.Join(errs...)
}

func checkEntity(old, now Entity) []Violation {
	var out []Violation
	add := func(id FieldID, format string, args ...any) {
		out = append(out, Violation{Entity: old.Name, ID: id, Reason: fmt.Sprintf(format, args...)})
	}

	if old.Generation != now.Generation {
		add(0, "generation changed from %s to %s", old.Generation, now.Generation)
	}

	reserved := make(map[FieldID]bool, len(now.Reserved))
	for _, id := range now.Reserved {
		reserved[id] = true
	}

	for _, f := range old.Fields {
		g, ok := now.Field(f.ID)
		if !ok {
			if !reserved[f.ID] {
				add(f.ID, "%s removed without reserving its id", f.Name)
			}
			if old.Generation == Legacy {
				add(f.ID, "%s removed from a frozen legacy table", f.Name)
			}
			continue
		}
		if g.Name != f.Name {
			add(f.ID, "renamed from %s to %s", f.Name, g.Name)
		}
		if g.Kind != f.Kind || g.Type != f.Type {
			add(f.ID, "%s changed type from %s to %s", f.Name, f, g)
		}
		if g.Union != f.Union {
			add(f.ID, "%s moved from union %q to %q", f.Name, f.Union, g.Union)
		}
	}

	for _, id := range old.Reserved {
		if f, ok := now.Field(id); ok {
			add(id, "reserved id reused by %s", f.Name)
		} else if !reserved[id] {
			add(id, "reserved id no longer reserved")
		}
	}

	for _, g := range now.Fields {
		if f, ok := old.Lookup(g.Name); ok && f.ID != g.ID {
			add(g.ID, "%s renumbered from %d", g.Name, f.ID)
		}
		if _, ok := old.Field(g.ID); !ok && old.Generation == Legacy {
			add(g.ID, "%s added to a frozen legacy table", g.Name)
		}
	}
	return out
}
