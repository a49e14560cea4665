package dex

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by Catalog operations.
var (
	ErrDuplicate = errors.New("pokemon already exists")
	ErrNotFound  = errors.New("pokemon not found")
)

// Column names understood by Import.
const (
	FieldName    = "name"
	FieldType1   = "type_1"
	FieldType2   = "type_2"
	FieldHP      = "hp"
	FieldAttack  = "attack"
	FieldDefense = "defense"
	FieldSpeed   = "speed"
)

// Row is one parsed import record, keyed by column name.
type Row map[string]string

// RowError describes one import row that was skipped.
type RowError struct {
	Row  int // zero-based data row
	Line int // source line, 0 when the rows did not come from a file
	Name string
	Err  error
}

func (e RowError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("row %d, line %d (%s): %v", e.Row, e.Line, e.Name, e.Err)
	}
	return fmt.Sprintf("row %d (%s): %v", e.Row, e.Name, e.Err)
}

// ImportReport counts the rows Import stored and lists the ones it skipped.
type ImportReport struct {
	Imported int
	Failures []RowError
}

// StatUpdate lists the stats Modify should overwrite. Nil fields are left
// untouched.
type StatUpdate struct {
	HP      *int
	Attack  *int
	Defense *int
	Speed   *int
}

func (u StatUpdate) Empty() bool {
	return u.HP == nil && u.Attack == nil && u.Defense == nil && u.Speed == nil
}

// Catalog holds every known Pokemon keyed by its lower-cased name.
// It is not safe for concurrent mutation.
type Catalog struct {
	byKey map[string]*Pokemon
	order []string
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{byKey: make(map[string]*Pokemon)}
}

// Key normalizes a name into its catalog key.
func Key(name string) string { return strings.ToLower(name) }

// Import adds every row that forms a valid Pokemon. Failed rows are skipped
// and reported. A later row with the same key replaces the earlier one.
func (c *Catalog) Import(rows []Row) ImportReport {
	var rep ImportReport
	for i, row := range rows {
		name, ok := row[FieldName]
		if !ok {
			name = "Unknown"
		}
		p, err := ParsePokemon(
			name,
			row[FieldType1],
			row[FieldType2],
			orZero(row[FieldHP]),
			orZero(row[FieldAttack]),
			orZero(row[FieldDefense]),
			orZero(row[FieldSpeed]),
		)
		if err != nil {
			rep.Failures = append(rep.Failures, RowError{Row: i, Name: name, Err: err})
			continue
		}
		c.put(p)
		rep.Imported++
	}
	return rep
}

func orZero(s string) string {
	if strings.TrimSpace(s) == "" {
		return "0"
	}
	return s
}

func (c *Catalog) put(p Pokemon) {
	key := Key(p.Name)
	if existing, ok := c.byKey[key]; ok {
		*existing = p
		return
	}
	c.byKey[key] = &p
	c.order = append(c.order, key)
}

// Add stores p unless its key is taken, in which case ErrDuplicate is
// returned and the catalog is unchanged.
func (c *Catalog) Add(p Pokemon) error {
	if _, ok := c.byKey[Key(p.Name)]; ok {
		return fmt.Errorf("%q: %w", p.Name, ErrDuplicate)
	}
	c.put(p)
	return nil
}

// Delete removes the entry for name or returns ErrNotFound.
func (c *Catalog) Delete(name string) error {
	key := Key(name)
	if _, ok := c.byKey[key]; !ok {
		return fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	delete(c.byKey, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

// Modify overwrites the stats present in u. Either every field is applied
// or none is.
func (c *Catalog) Modify(name string, u StatUpdate) error {
	p, ok := c.byKey[Key(name)]
	if !ok {
		return fmt.Errorf("%q: %w", name, ErrNotFound)
	}

	fields := []struct {
		name string
		src  *int
		dst  *int
	}{
		{FieldHP, u.HP, &p.HP},
		{FieldAttack, u.Attack, &p.Attack},
		{FieldDefense, u.Defense, &p.Defense},
		{FieldSpeed, u.Speed, &p.Speed},
	}
	for _, f := range fields {
		if f.src == nil {
			continue
		}
		if err := checkStat(f.name, *f.src); err != nil {
			return err
		}
	}
	for _, f := range fields {
		if f.src != nil {
			*f.dst = *f.src
		}
	}
	return nil
}

// Get returns a copy of the entry for name.
func (c *Catalog) Get(name string) (Pokemon, bool) {
	p, ok := c.byKey[Key(name)]
	if !ok {
		return Pokemon{}, false
	}
	return *p, true
}

// List returns copies of all entries in insertion order.
func (c *Catalog) List() []Pokemon {
	out := make([]Pokemon, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, *c.byKey[k])
	}
	return out
}

func (c *Catalog) Len() int { return len(c.byKey) }
