package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	CatalogCSV        string `env:"CATALOG_CSV" envDefault:"pokemon.csv"`
	DBPath            string `env:"DB_PATH"`
	ListLimit         int    `env:"LIST_LIMIT" envDefault:"20"`
	DiscordToken      string `env:"DISCORD_TOKEN"`
	DevGuild          string `env:"DEV_GUILD_ID"`
	ShardCount        int    `env:"SHARD_COUNT" envDefault:"1"`
	ShardId           int    `env:"SHARD_ID" envDefault:"0"`
	CooldownBattleMin int    `env:"COOLDOWN_BATTLE_MIN" envDefault:"10"`
	CooldownBattleMax int    `env:"COOLDOWN_BATTLE_MAX" envDefault:"15"`
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.CatalogCSV == "" {
		return fmt.Errorf("config: CATALOG_CSV is required")
	}
	if c.ListLimit < 0 {
		return fmt.Errorf("config: LIST_LIMIT must not be negative, got %d", c.ListLimit)
	}
	return nil
}

// ValidateBot checks the settings only the discord driver needs.
func (c *Config) ValidateBot() error {
	if c.DiscordToken == "" {
		return errors.New("config: DISCORD_TOKEN is required")
	}
	if c.ShardCount < 1 {
		return fmt.Errorf("config: SHARD_COUNT must be at least 1, got %d", c.ShardCount)
	}
	if c.ShardId < 0 || c.ShardId >= c.ShardCount {
		return fmt.Errorf("config: SHARD_ID %d out of range for %d shards", c.ShardId, c.ShardCount)
	}
	if c.CooldownBattleMin < 0 || c.CooldownBattleMax < 0 {
		return fmt.Errorf("config: battle cooldowns must not be negative")
	}
	return nil
}
