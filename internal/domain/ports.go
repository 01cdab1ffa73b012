package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// Cache stores JSON-serializable views. A miss is (false, nil).
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// DeskClient reads folios from a running front-desk API.
type DeskClient interface {
	ListRooms(ctx context.Context) ([]Room, error)
	GetFolio(ctx context.Context, roomID string) (Folio, error)
}

// FolioRepository is the reporting sink the exporter writes to.
type FolioRepository interface {
	UpsertRoom(ctx context.Context, r Room) error
	UpsertPurchases(ctx context.Context, ps []Purchase) error
	LogMiss(ctx context.Context, roomID string, status int, reason string) error
	GetRoomTotal(ctx context.Context, roomID string) (decimal.Decimal, error)
}
