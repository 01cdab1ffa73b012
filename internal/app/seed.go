package app

import (
	"context"

	"github.com/shopspring/decimal"

	"front_desk/internal/shared"
	"front_desk/internal/storage/memory"
)

// Seed loads the fixed start-up data set into an empty store.
func Seed(ctx context.Context, st *memory.Store) error {
	return st.Update(ctx, func(tx *memory.Tx) error {
		for _, r := range shared.SeedRooms {
			r.ExtraCharges = decimal.Zero
			if err := tx.Rooms.Insert(r); err != nil {
				return err
			}
		}
		for _, g := range shared.SeedGuests {
			if err := tx.Guests.Insert(g); err != nil {
				return err
			}
		}
		for _, p := range shared.SeedProducts {
			if err := tx.Products.Insert(p); err != nil {
				return err
			}
		}
		return nil
	})
}
