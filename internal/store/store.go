package store

import (
	"context"

	"github.com/DogorBiGCOL/Mini-Proyecto-2/internal/battle"
)

type Store interface {
	Add(ctx context.Context, r battle.Result) error
	Recent(ctx context.Context, limit int) ([]battle.Result, error)
	Wins(ctx context.Context, limit int) ([]WinCount, error)
}

type WinCount struct {
	Name string
	Wins int
}
