package app

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"front_desk/internal/adapters/observability"
	"front_desk/internal/domain"
	"front_desk/internal/storage/memory"
)

// RoomService owns room management, the status machine and the
// extra-charges balance.
type RoomService struct{ *deps }

func (s *RoomService) List(ctx context.Context) ([]domain.Room, error) {
	var out []domain.Room
	err := s.store.View(ctx, func(tx *memory.Tx) error {
		out = tx.Rooms.List(nil)
		return nil
	})
	return out, err
}

func (s *RoomService) Get(ctx context.Context, id string) (domain.Room, error) {
	var r domain.Room
	err := s.store.View(ctx, func(tx *memory.Tx) error {
		var err error
		r, err = tx.Rooms.Get(id)
		return err
	})
	return r, err
}

func numberTaken(tx *memory.Tx, number, exceptID string) bool {
	return len(tx.Rooms.List(func(r domain.Room) bool {
		return r.Number == number && r.ID != exceptID
	})) > 0
}

// Create adds a room in Available with a zero balance. An empty type means Simple.
func (s *RoomService) Create(ctx context.Context, number, roomType string) (domain.Room, error) {
	ve := domain.NewValidationError()
	number = strings.TrimSpace(number)
	if number == "" {
		ve.Add("number", "provide the room number")
	}
	typ := domain.RoomSimple
	if roomType != "" {
		t, ok := domain.ParseRoomType(roomType)
		if !ok {
			ve.Add("type", "use Simple, Double or Suite")
		}
		typ = t
	}
	if err := ve.Err(); err != nil {
		return domain.Room{}, err
	}

	r := domain.Room{
		ID:           s.newID(),
		Number:       number,
		Type:         typ,
		Status:       domain.RoomAvailable,
		ExtraCharges: decimal.Zero,
	}
	err := s.store.Update(ctx, func(tx *memory.Tx) error {
		if numberTaken(tx, number, "") {
			return domain.Invalid("number", "room number already in use")
		}
		return tx.Rooms.Insert(r)
	})
	if err != nil {
		return domain.Room{}, err
	}
	s.changed(ctx)
	log.Info().Str("room", r.ID).Str("number", r.Number).Msg("room created")
	return r, nil
}

// Update edits number and/or type. Status and balance have their own operations.
func (s *RoomService) Update(ctx context.Context, id string, p domain.RoomPatch) (domain.Room, error) {
	if p.Number != nil {
		n := strings.TrimSpace(*p.Number)
		if n == "" {
			return domain.Room{}, domain.Invalid("number", "provide the room number")
		}
		p.Number = &n
	}
	if p.Type != nil {
		t, ok := domain.ParseRoomType(string(*p.Type))
		if !ok {
			return domain.Room{}, domain.Invalid("type", "use Simple, Double or Suite")
		}
		p.Type = &t
	}
	var out domain.Room
	err := s.store.Update(ctx, func(tx *memory.Tx) error {
		if p.Number != nil && numberTaken(tx, *p.Number, id) {
			return domain.Invalid("number", "room number already in use")
		}
		var err error
		out, err = tx.Rooms.Update(id, func(r *domain.Room) {
			if p.Number != nil {
				r.Number = *p.Number
			}
			if p.Type != nil {
				r.Type = *p.Type
			}
		})
		return err
	})
	if err != nil {
		return domain.Room{}, err
	}
	s.changed(ctx)
	return out, nil
}

// Remove deletes the room. Guests, reservations and purchases that reference
// it are kept as they are.
func (s *RoomService) Remove(ctx context.Context, id string) error {
	if err := s.store.Update(ctx, func(tx *memory.Tx) error {
		return tx.Rooms.Remove(id)
	}); err != nil {
		return err
	}
	s.changed(ctx)
	log.Info().Str("room", id).Msg("room removed")
	return nil
}

// SetStatus moves the room to status from whatever state it is in. Every
// transition is allowed so staff can always override; repeating a call is a
// no-op. Side effects only happen when enabled in Policy.
func (s *RoomService) SetStatus(ctx context.Context, id string, status domain.RoomStatus) (domain.Room, error) {
	if !status.Valid() {
		return domain.Room{}, domain.Invalid("status", "use AVAILABLE, OCCUPIED, CLEANING or MAINTENANCE")
	}
	var from domain.RoomStatus
	var out domain.Room
	err := s.store.Update(ctx, func(tx *memory.Tx) error {
		cur, err := tx.Rooms.Get(id)
		if err != nil {
			return err
		}
		from = cur.Status
		out, err = tx.Rooms.Update(id, func(r *domain.Room) {
			r.Status = status
			if status != domain.RoomAvailable {
				return
			}
			if s.policy.ResetChargesOnAvailable {
				r.ExtraCharges = decimal.Zero
			}
			if s.policy.DetachGuestOnAvailable {
				r.CurrentGuestID = ""
			}
		})
		return err
	})
	if err != nil {
		return domain.Room{}, err
	}
	s.changed(ctx)
	observability.ObserveRoomTransition(string(from), string(status))
	log.Info().Str("room", id).Str("from", string(from)).Str("to", string(status)).Msg("room status changed")
	return out, nil
}

// accrue adds amount to the room balance inside the caller's transaction.
// Only the billing ledger calls it.
func (s *RoomService) accrue(tx *memory.Tx, roomID string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errors.Wrapf(domain.Invalid("amount", "charges cannot be negative"), "accrue to room %q", roomID)
	}
	_, err := tx.Rooms.Update(roomID, func(r *domain.Room) {
		r.ExtraCharges = r.ExtraCharges.Add(amount)
	})
	return err
}
