package app

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"front_desk/internal/adapters/observability"
	"front_desk/internal/domain"
	"front_desk/internal/storage/memory"
)

// BillingService is the append-only purchase ledger.
type BillingService struct {
	*deps
	rooms *RoomService
}

// RecordPurchase charges one unit of productID to roomID. The ledger entry
// and the room accrual commit together or not at all.
func (s *BillingService) RecordPurchase(ctx context.Context, roomID, productID string) (domain.Purchase, error) {
	var p domain.Purchase
	err := s.store.Update(ctx, func(tx *memory.Tx) error {
		prod, err := tx.Products.Get(productID)
		if err != nil {
			return errors.Wrapf(domain.ErrProductNotFound, "product %q", productID)
		}
		room, err := tx.Rooms.Get(roomID)
		if err != nil {
			return err
		}
		if room.Status != domain.RoomOccupied {
			return errors.Wrapf(domain.ErrInvalidState, "room %s is %s, purchases need an occupied room", room.Number, room.Status)
		}

		p = domain.Purchase{
			ID:          s.newID(),
			RoomID:      room.ID,
			ProductID:   prod.ID,
			ProductName: prod.Name,
			Price:       prod.Price,
			Timestamp:   s.clock.Now().UTC(),
		}
		if err := tx.Purchases.Insert(p); err != nil {
			return err
		}
		return s.rooms.accrue(tx, room.ID, p.Price)
	})
	if err != nil {
		return domain.Purchase{}, err
	}
	s.changed(ctx)
	f, _ := p.Price.Float64()
	observability.ObservePurchase(f)
	log.Info().
		Str("purchase", p.ID).
		Str("room", roomID).
		Str("product", p.ProductName).
		Str("price", p.Price.StringFixed(2)).
		Msg("purchase recorded")
	return p, nil
}

// List returns ledger entries in recording order; an empty roomID lists all.
func (s *BillingService) List(ctx context.Context, roomID string) ([]domain.Purchase, error) {
	var out []domain.Purchase
	err := s.store.View(ctx, func(tx *memory.Tx) error {
		out = tx.Purchases.List(func(p domain.Purchase) bool {
			return roomID == "" || p.RoomID == roomID
		})
		return nil
	})
	return out, err
}

// Folio returns the room with its ledger entries and their recomputed total.
func (s *BillingService) Folio(ctx context.Context, roomID string) (domain.Folio, error) {
	var f domain.Folio
	err := s.store.View(ctx, func(tx *memory.Tx) error {
		r, err := tx.Rooms.Get(roomID)
		if err != nil {
			return err
		}
		f = folioOf(tx, r)
		return nil
	})
	return f, err
}

func folioOf(tx *memory.Tx, r domain.Room) domain.Folio {
	f := domain.Folio{Room: r, Total: decimal.Zero}
	f.Purchases = tx.Purchases.List(func(p domain.Purchase) bool { return p.RoomID == r.ID })
	for _, p := range f.Purchases {
		f.Total = f.Total.Add(p.Price)
	}
	return f
}
