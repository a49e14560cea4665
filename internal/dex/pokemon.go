package dex

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidStat matches every ValidationError.
var ErrInvalidStat = errors.New("invalid stat")

// ValidationError is returned when a stat cannot be used to build a Pokemon.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %q is not a valid stat: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() []error { return []error{ErrInvalidStat, e.Err} }

// Pokemon is one catalog entry.
type Pokemon struct {
	Name    string
	Type1   string
	Type2   string // optional
	HP      int
	Attack  int
	Defense int
	Speed   int
}

// NewPokemon builds a Pokemon, rejecting negative stats.
func NewPokemon(name, type1, type2 string, hp, attack, defense, speed int) (Pokemon, error) {
	stats := []struct {
		field string
		v     int
	}{
		{FieldHP, hp},
		{FieldAttack, attack},
		{FieldDefense, defense},
		{FieldSpeed, speed},
	}
	for _, s := range stats {
		if err := checkStat(s.field, s.v); err != nil {
			return Pokemon{}, err
		}
	}

	return Pokemon{
		Name:    name,
		Type1:   type1,
		Type2:   type2,
		HP:      hp,
		Attack:  attack,
		Defense: defense,
		Speed:   speed,
	}, nil
}

// ParsePokemon builds a Pokemon from raw field values, as they come out of
// an import file or a prompt.
func ParsePokemon(name, type1, type2, hp, attack, defense, speed string) (Pokemon, error) {
	var vals [4]int
	for i, raw := range []struct{ field, s string }{
		{FieldHP, hp},
		{FieldAttack, attack},
		{FieldDefense, defense},
		{FieldSpeed, speed},
	} {
		n, err := ParseStat(raw.field, raw.s)
		if err != nil {
			return Pokemon{}, err
		}
		vals[i] = n
	}
	return NewPokemon(name, type1, type2, vals[0], vals[1], vals[2], vals[3])
}

// ParseStat parses a single stat value. Surrounding whitespace is ignored.
func ParseStat(field, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &ValidationError{Field: field, Value: s, Err: err}
	}
	if err := checkStat(field, n); err != nil {
		return 0, err
	}
	return n, nil
}

func checkStat(field string, v int) error {
	if v < 0 {
		return &ValidationError{Field: field, Value: strconv.Itoa(v), Err: errors.New("must not be negative")}
	}
	return nil
}

// Total is the base stat total.
func (p Pokemon) Total() int { return p.HP + p.Attack + p.Defense + p.Speed }

func (p Pokemon) TypeString() string {
	if p.Type2 == "" {
		return p.Type1
	}
	return p.Type1 + "/" + p.Type2
}

const cardWidth = 27

// Card renders the fixed-width info card shown by the menu.
func (p Pokemon) Card() string {
	border := "+" + strings.Repeat("-", cardWidth+2) + "+"

	var b strings.Builder
	b.WriteString(border + "\n")
	fmt.Fprintf(&b, "| %s |\n", center(p.Name, cardWidth))
	b.WriteString(border + "\n")
	fmt.Fprintf(&b, "| Type: %-21s |\n", p.TypeString())
	fmt.Fprintf(&b, "| HP:      %-18d |\n", p.HP)
	fmt.Fprintf(&b, "| Attack:  %-18d |\n", p.Attack)
	fmt.Fprintf(&b, "| Defense: %-18d |\n", p.Defense)
	fmt.Fprintf(&b, "| Speed:   %-18d |\n", p.Speed)
	b.WriteString(border + "\n")
	return b.String()
}

func (p Pokemon) String() string { return p.Card() }

func center(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	left := (width - n) / 2
	right := width - n - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}
