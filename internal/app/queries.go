package app

import (
	"context"

	"github.com/shopspring/decimal"

	"front_desk/internal/domain"
	"front_desk/internal/storage/memory"
)

// QueryService builds the read-only summary views.
type QueryService struct{ *deps }

// Dashboard summarizes the desk for today. The result is cached until the
// next write or the cache TTL, whichever comes first.
func (s *QueryService) Dashboard(ctx context.Context) (domain.Dashboard, error) {
	today := s.today()
	var d domain.Dashboard
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, s.dashboardKey(today, s.gen.Load()), &d); ok {
			return d, nil
		}
	}

	d = domain.Dashboard{
		Date:               today,
		ByStatus:           make(map[domain.RoomStatus]int, len(domain.RoomStatuses)),
		OutstandingCharges: decimal.Zero,
	}
	for _, st := range domain.RoomStatuses {
		d.ByStatus[st] = 0
	}
	var readAt uint64
	err := s.store.View(ctx, func(tx *memory.Tx) error {
		// writers bump gen after commit, so data read here is never older than readAt
		readAt = s.gen.Load()
		for _, r := range tx.Rooms.List(nil) {
			d.TotalRooms++
			d.ByStatus[r.Status]++
			d.OutstandingCharges = d.OutstandingCharges.Add(r.ExtraCharges)
		}
		d.GuestsInHouse = tx.Guests.Len()
		d.CheckInsToday = len(tx.Guests.List(func(g domain.Guest) bool { return g.CheckInDate == today }))
		d.OpenReservations = len(tx.Reservations.List(domain.Reservation.Open))
		return nil
	})
	if err != nil {
		return domain.Dashboard{}, err
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, s.dashboardKey(today, readAt), d, int(s.ttl.Seconds()))
	}
	return d, nil
}

// Audit recomputes every room's folio and returns those whose balance does
// not match the ledger.
func (s *QueryService) Audit(ctx context.Context) ([]domain.Folio, error) {
	var out []domain.Folio
	err := s.store.View(ctx, func(tx *memory.Tx) error {
		for _, r := range tx.Rooms.List(nil) {
			if f := folioOf(tx, r); !f.Balanced() {
				out = append(out, f)
			}
		}
		return nil
	})
	return out, err
}
