package app

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"

	"front_desk/internal/adapters/observability"
	"front_desk/internal/domain"
	"front_desk/internal/storage/memory"
)

// OccupancyService links guests to rooms at check-in and unlinks them at
// check-out.
type OccupancyService struct{ *deps }

// CheckIn registers a guest in roomID. With the zero Policy only the guest
// side of the link is written: the room keeps its status and CurrentGuestID,
// and several guests may share a room.
func (s *OccupancyService) CheckIn(ctx context.Context, in domain.GuestInput, roomID string) (domain.Guest, error) {
	if err := in.Validate(); err != nil {
		return domain.Guest{}, err
	}
	g := domain.Guest{
		ID:           s.newID(),
		Name:         in.Name,
		Document:     in.Document,
		Phone:        in.Phone,
		Email:        in.Email,
		CheckInDate:  in.CheckInDate,
		CheckOutDate: in.CheckOutDate,
		RoomID:       roomID,
	}

	err := s.store.Update(ctx, func(tx *memory.Tx) error {
		if _, err := tx.Rooms.Get(roomID); err != nil {
			return err
		}
		if s.policy.RejectDoubleOccupancy && len(guestsIn(tx, roomID)) > 0 {
			return errors.Wrapf(domain.ErrInvalidState, "room %q already has a guest", roomID)
		}
		if err := tx.Guests.Insert(g); err != nil {
			return err
		}
		if !s.policy.LinkGuestOnCheckIn && !s.policy.OccupyOnCheckIn {
			return nil
		}
		_, err := tx.Rooms.Update(roomID, func(r *domain.Room) {
			if s.policy.LinkGuestOnCheckIn {
				r.CurrentGuestID = g.ID
			}
			if s.policy.OccupyOnCheckIn {
				r.Status = domain.RoomOccupied
			}
		})
		return err
	})
	if err != nil {
		return domain.Guest{}, err
	}
	s.changed(ctx)
	observability.ObserveOccupancy("check_in")
	log.Info().Str("guest", g.ID).Str("room", roomID).Msg("guest checked in")
	return g, nil
}

// CheckOut removes the guest record. Room status and balance are left for
// staff to settle; with LinkGuestOnCheckIn the room's CurrentGuestID is
// cleared when it still points at this guest.
func (s *OccupancyService) CheckOut(ctx context.Context, guestID string) (domain.Guest, error) {
	var g domain.Guest
	err := s.store.Update(ctx, func(tx *memory.Tx) error {
		var err error
		if g, err = tx.Guests.Get(guestID); err != nil {
			return err
		}
		if err := tx.Guests.Remove(guestID); err != nil {
			return err
		}
		if !s.policy.LinkGuestOnCheckIn {
			return nil
		}
		r, err := tx.Rooms.Get(g.RoomID)
		if err != nil || r.CurrentGuestID != guestID {
			// room gone or relinked meanwhile; nothing to detach
			return nil
		}
		_, err = tx.Rooms.Update(r.ID, func(r *domain.Room) { r.CurrentGuestID = "" })
		return err
	})
	if err != nil {
		return domain.Guest{}, err
	}
	s.changed(ctx)
	observability.ObserveOccupancy("check_out")
	log.Info().Str("guest", guestID).Str("room", g.RoomID).Msg("guest checked out")
	return g, nil
}

func (s *OccupancyService) Get(ctx context.Context, id string) (domain.Guest, error) {
	var g domain.Guest
	err := s.store.View(ctx, func(tx *memory.Tx) error {
		var err error
		g, err = tx.Guests.Get(id)
		return err
	})
	return g, err
}

// List returns guests in registration order, filtered by a search term
// matched against name and document.
func (s *OccupancyService) List(ctx context.Context, term string) ([]domain.Guest, error) {
	var out []domain.Guest
	err := s.store.View(ctx, func(tx *memory.Tx) error {
		out = tx.Guests.List(func(g domain.Guest) bool { return g.Matches(term) })
		return nil
	})
	return out, err
}

// GuestsInRoom derives a room's occupants from Guest.RoomID.
func (s *OccupancyService) GuestsInRoom(ctx context.Context, roomID string) ([]domain.Guest, error) {
	var out []domain.Guest
	err := s.store.View(ctx, func(tx *memory.Tx) error {
		if _, err := tx.Rooms.Get(roomID); err != nil {
			return err
		}
		out = guestsIn(tx, roomID)
		return nil
	})
	return out, err
}

func guestsIn(tx *memory.Tx, roomID string) []domain.Guest {
	return tx.Guests.List(func(g domain.Guest) bool { return g.RoomID == roomID })
}
