package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"front_desk/internal/domain"
	"front_desk/internal/storage/memory"
)

// ReservationService tracks future bookings. Bookings do not look at room
// occupancy or at each other.
type ReservationService struct{ *deps }

// Create books roomID for date with status Pending.
func (s *ReservationService) Create(ctx context.Context, in domain.ReservationInput) (domain.Reservation, error) {
	if err := in.Validate(); err != nil {
		return domain.Reservation{}, err
	}
	r := domain.Reservation{
		ID:        s.newID(),
		GuestName: in.GuestName,
		Date:      in.Date,
		RoomID:    in.RoomID,
		Status:    domain.ReservationPending,
		Notes:     in.Notes,
	}
	err := s.store.Update(ctx, func(tx *memory.Tx) error {
		if _, err := tx.Rooms.Get(in.RoomID); err != nil {
			return err
		}
		return tx.Reservations.Insert(r)
	})
	if err != nil {
		return domain.Reservation{}, err
	}
	s.changed(ctx)
	log.Info().Str("reservation", r.ID).Str("room", r.RoomID).Str("date", r.Date).Msg("reservation created")
	return r, nil
}

// SetStatus moves a booking to any of the three states. Nothing confirms or
// cancels a booking on its own.
func (s *ReservationService) SetStatus(ctx context.Context, id string, status domain.ReservationStatus) (domain.Reservation, error) {
	status, ok := domain.ParseReservationStatus(string(status))
	if !ok {
		return domain.Reservation{}, domain.Invalid("status", "use Confirmed, Pending or Cancelled")
	}
	var out domain.Reservation
	err := s.store.Update(ctx, func(tx *memory.Tx) error {
		var err error
		out, err = tx.Reservations.Update(id, func(r *domain.Reservation) { r.Status = status })
		return err
	})
	if err != nil {
		return domain.Reservation{}, err
	}
	s.changed(ctx)
	log.Info().Str("reservation", id).Str("status", string(status)).Msg("reservation status changed")
	return out, nil
}

func (s *ReservationService) Get(ctx context.Context, id string) (domain.Reservation, error) {
	var r domain.Reservation
	err := s.store.View(ctx, func(tx *memory.Tx) error {
		var err error
		r, err = tx.Reservations.Get(id)
		return err
	})
	return r, err
}

func (s *ReservationService) List(ctx context.Context) ([]domain.Reservation, error) {
	var out []domain.Reservation
	err := s.store.View(ctx, func(tx *memory.Tx) error {
		out = tx.Reservations.List(nil)
		return nil
	})
	return out, err
}
