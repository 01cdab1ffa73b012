package app

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"front_desk/internal/domain"
	"front_desk/internal/storage/memory"
)

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Policy switches the side effects that staff otherwise perform by hand.
// The zero value reproduces the desk's manual workflow: no switch is on.
type Policy struct {
	// Check-in also sets Room.CurrentGuestID; check-out clears it again.
	LinkGuestOnCheckIn bool
	// Check-in also moves the room to Occupied.
	OccupyOnCheckIn bool
	// Check-in fails when another guest already references the room.
	RejectDoubleOccupancy bool
	// Entering Available zeroes the room's extra charges.
	ResetChargesOnAvailable bool
	// Entering Available clears Room.CurrentGuestID.
	DetachGuestOnAvailable bool
}

type Options struct {
	Store    *memory.Store
	Cache    domain.Cache // optional
	CacheTTL time.Duration
	Clock    Clock         // defaults to the system clock
	NewID    func() string // defaults to random UUIDs
	Location *time.Location
	Policy   Policy
}

// Desk bundles the front-desk services over one entity store.
type Desk struct {
	Rooms        *RoomService
	Occupancy    *OccupancyService
	Billing      *BillingService
	Reservations *ReservationService
	Notes        *NoteService
	Catalog      *CatalogService
	Queries      *QueryService
}

func NewDesk(o Options) *Desk {
	d := &deps{
		store:  o.Store,
		cache:  o.Cache,
		ttl:    o.CacheTTL,
		clock:  o.Clock,
		newID:  o.NewID,
		loc:    o.Location,
		policy: o.Policy,
		epoch:  uuid.NewString()[:8],
	}
	if d.clock == nil {
		d.clock = systemClock{}
	}
	if d.newID == nil {
		d.newID = uuid.NewString
	}
	if d.loc == nil {
		d.loc = time.UTC
	}
	rooms := &RoomService{d}
	return &Desk{
		Rooms:        rooms,
		Occupancy:    &OccupancyService{d},
		Billing:      &BillingService{deps: d, rooms: rooms},
		Reservations: &ReservationService{d},
		Notes:        &NoteService{d},
		Catalog:      &CatalogService{d},
		Queries:      &QueryService{d},
	}
}

type deps struct {
	store  *memory.Store
	cache  domain.Cache
	ttl    time.Duration
	clock  Clock
	newID  func() string
	loc    *time.Location
	policy Policy

	// epoch and gen stamp cached views: a view is stored under the
	// generation it was read at, so a write committed meanwhile can never
	// be shadowed by the stale copy.
	epoch string
	gen   atomic.Uint64
}

func (d *deps) now() time.Time { return d.clock.Now().In(d.loc) }

func (d *deps) today() string { return d.now().Format(domain.DateLayout) }

func (d *deps) dashboardKey(date string, gen uint64) string {
	return fmt.Sprintf("dashboard:%s:%s:%d", date, d.epoch, gen)
}

// changed moves cached views to a new generation after a committed write
// and evicts the previous one.
func (d *deps) changed(ctx context.Context) {
	prev := d.gen.Add(1) - 1
	if d.cache == nil {
		return
	}
	_ = d.cache.Del(ctx, d.dashboardKey(d.today(), prev))
}
