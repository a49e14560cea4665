package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DogorBiGCOL/Mini-Proyecto-2/internal/dex"
)

const sampleCSV = `name,type_1,type_2,hp,attack,defense,speed
Bulbasaur,Grass,Poison,45,49,49,45
Charmander,Fire,,39,52,43,65
Squirtle,Water,,44,48,65,43
Glitch,Bird,,??,0,0,0
`

func writeCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pokemon.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))
	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	a := &app{}
	t.Cleanup(a.teardown)

	cmd := newRootCmd(a)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CATALOG_CSV", "")
	os.Unsetenv("CATALOG_CSV")
	t.Setenv("LIST_LIMIT", "")
	os.Unsetenv("LIST_LIMIT")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "pokemon.csv", cfg.CatalogCSV)
	assert.Equal(t, 20, cfg.ListLimit)
	assert.Equal(t, 1, cfg.ShardCount)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("CATALOG_CSV", "/data/dex.csv")
	t.Setenv("LIST_LIMIT", "5")
	t.Setenv("COOLDOWN_BATTLE_MAX", "30")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/data/dex.csv", cfg.CatalogCSV)
	assert.Equal(t, 5, cfg.ListLimit)
	assert.Equal(t, 30, cfg.CooldownBattleMax)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("LIST_LIMIT", "lots")
	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("LIST_LIMIT", "-1")
	_, err = LoadConfig()
	assert.Error(t, err)
}

func TestValidateBot(t *testing.T) {
	cfg := Config{CatalogCSV: "x.csv", ShardCount: 1}
	assert.EqualError(t, cfg.ValidateBot(), "config: DISCORD_TOKEN is required")

	cfg.DiscordToken = "token"
	assert.NoError(t, cfg.ValidateBot())

	cfg.ShardId = 1
	assert.Error(t, cfg.ValidateBot())
}

func TestShowCommand(t *testing.T) {
	out, err := execute(t, "", "--csv", writeCSV(t), "show", "CHARMANDER")
	require.NoError(t, err)
	assert.Contains(t, out, "Charmander")
	assert.Contains(t, out, "Fire")
}

func TestShowCommandNotFound(t *testing.T) {
	_, err := execute(t, "", "--csv", writeCSV(t), "show", "glitch")
	require.ErrorIs(t, err, dex.ErrNotFound)
}

func TestBattleCommandRecordsHistory(t *testing.T) {
	csv := writeCSV(t)
	db := filepath.Join(t.TempDir(), "history.db")

	out, err := execute(t, "", "--csv", csv, "--db", db, "battle", "bulbasaur", "charmander")
	require.NoError(t, err)
	assert.Contains(t, out, "Winner is Charmander!")

	out, err = execute(t, "7\n8\n", "--csv", csv, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Bulbasaur (49) vs Charmander (52): Charmander won")
}

func TestListCommand(t *testing.T) {
	t.Setenv("LIST_LIMIT", "1")
	out, err := execute(t, "", "--csv", writeCSV(t), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "- Bulbasaur")
	assert.NotContains(t, out, "- Squirtle")

	out, err = execute(t, "", "--csv", writeCSV(t), "list", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "- Squirtle")
	assert.NotContains(t, out, "- Glitch")
}

func TestMissingCatalogStartsEmpty(t *testing.T) {
	out, err := execute(t, "1\n8\n", "--csv", filepath.Join(t.TempDir(), "absent.csv"))
	require.NoError(t, err)
	assert.Contains(t, out, "The catalog is empty.")
}
