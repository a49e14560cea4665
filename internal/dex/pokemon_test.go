package dex

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePokemon(t *testing.T) {
	p, err := ParsePokemon("Onix", "Rock", "Ground", "35", " 45", "160 ", "70")
	require.NoError(t, err)
	assert.Equal(t, Pokemon{Name: "Onix", Type1: "Rock", Type2: "Ground", HP: 35, Attack: 45, Defense: 160, Speed: 70}, p)
}

func TestParsePokemonInvalid(t *testing.T) {
	cases := map[string][4]string{
		"hp":      {"x", "1", "1", "1"},
		"attack":  {"1", "abc", "1", "1"},
		"defense": {"1", "1", "1.5", "1"},
		"speed":   {"1", "1", "1", "-3"},
	}
	for field, stats := range cases {
		t.Run(field, func(t *testing.T) {
			_, err := ParsePokemon("Bad", "Normal", "", stats[0], stats[1], stats[2], stats[3])
			require.ErrorIs(t, err, ErrInvalidStat)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, field, ve.Field)
		})
	}
}

func TestCardContainsFields(t *testing.T) {
	p, err := NewPokemon("Gengar", "Ghost", "Poison", 60, 65, 60, 110)
	require.NoError(t, err)

	card := p.Card()
	for _, want := range []string{"Gengar", "Ghost/Poison", "60", "65", "110", "Attack:", "Defense:", "Speed:"} {
		assert.Contains(t, card, want)
	}

	lines := strings.Split(strings.TrimRight(card, "\n"), "\n")
	for _, l := range lines {
		assert.Len(t, l, 31, "line %q", l)
	}
}

func TestCardSingleType(t *testing.T) {
	p, _ := NewPokemon("Rattata", "Normal", "", 30, 56, 35, 72)
	assert.Contains(t, p.Card(), "Type: Normal ")
	assert.NotContains(t, p.Card(), "/")
}

func TestTierFor(t *testing.T) {
	assert.Equal(t, TierCommon, TierFor(Pokemon{HP: 30, Attack: 56, Defense: 35, Speed: 72}))
	assert.Equal(t, TierRare, TierFor(Pokemon{HP: 100, Attack: 100, Defense: 100, Speed: 100}))
	assert.Equal(t, TierMythic, TierFor(Pokemon{HP: 200, Attack: 200, Defense: 200, Speed: 200}))
	assert.Equal(t, "Legendary", TierLegendary.String())
}

func TestReadRows(t *testing.T) {
	in := "\xef\xbb\xbfName, Type_1 ,type_2,hp,attack,defense,speed\n" +
		"Pikachu,Electric,,35,55,40,90\n" +
		"Short,Normal\n"

	rows, failed, err := ReadRows(strings.NewReader(in))
	require.NoError(t, err)
	assert.Empty(t, failed)
	require.Len(t, rows, 2)

	assert.Equal(t, "Pikachu", rows[0][FieldName])
	assert.Equal(t, "Electric", rows[0][FieldType1])
	assert.Equal(t, "90", rows[0][FieldSpeed])

	_, ok := rows[1][FieldHP]
	assert.False(t, ok)
}

func TestReadRowsEmpty(t *testing.T) {
	rows, failed, err := ReadRows(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Empty(t, failed)
}

func TestReadRowsStrayQuoteKeepsOtherRows(t *testing.T) {
	in := "name,type_1,type_2,hp,attack,defense,speed\n" +
		"Pikachu,Electric,,35,55,40,90\n" +
		"Farfetch\"d,Normal,Flying,52,90,55,60\n" +
		"Mew,Psychic,,100,100,100,100\n"

	rows, failed, err := ReadRows(strings.NewReader(in))
	require.NoError(t, err)
	assert.Empty(t, failed)
	require.Len(t, rows, 3)
	assert.Equal(t, "Pikachu", rows[0][FieldName])
	assert.Equal(t, `Farfetch"d`, rows[1][FieldName])
	assert.Equal(t, "90", rows[1][FieldAttack])
	assert.Equal(t, "Mew", rows[2][FieldName])
}

func TestLoadCatalogFromCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pokemon.csv")
	data := "name,type_1,type_2,hp,attack,defense,speed\n" +
		"Pikachu,Electric,,35,55,40,90\n" +
		"Broken,Normal,,abc,1,1,1\n" +
		"PIKACHU,Electric,,35,60,40,90\n" +
		"Vulpix,Fire,,38,41,40,65\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	c, rep, err := LoadCatalogFromCSV(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 3, rep.Imported)
	require.Len(t, rep.Failures, 1)
	assert.Equal(t, "Broken", rep.Failures[0].Name)

	assert.Equal(t, 1, rep.Failures[0].Row)
	assert.Equal(t, 3, rep.Failures[0].Line)
	assert.Contains(t, rep.Failures[0].Error(), "line 3")

	p, _ := c.Get("pikachu")
	assert.Equal(t, 60, p.Attack)
}

func TestLoadCatalogFromCSVStrayQuote(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pokemon.csv")
	data := "name,type_1,type_2,hp,attack,defense,speed\n" +
		"Pikachu,Electric,,35,55,40,90\n" +
		"Farfetch\"d,Normal,Flying,52,90,55,60\n" +
		"Mew,Psychic,,100,100,100,100\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	c, rep, err := LoadCatalogFromCSV(path)
	require.NoError(t, err)
	assert.Empty(t, rep.Failures)
	assert.Equal(t, 3, c.Len())

	p, ok := c.Get(`FARFETCH"D`)
	require.True(t, ok)
	assert.Equal(t, "Flying", p.Type2)
}

func TestLoadCatalogFromCSVMissingFile(t *testing.T) {
	_, _, err := LoadCatalogFromCSV(filepath.Join(t.TempDir(), "nope.csv"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
