package app_test

import (
	"context"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"front_desk/internal/app"
	"front_desk/internal/domain"
)

type statusErr int

func (e statusErr) Error() string   { return "remote status" }
func (e statusErr) HTTPStatus() int { return int(e) }

type fakeDesk struct {
	rooms  []domain.Room
	folios map[string]domain.Folio
	errs   map[string]error
}

func (f *fakeDesk) ListRooms(ctx context.Context) ([]domain.Room, error) { return f.rooms, nil }

func (f *fakeDesk) GetFolio(ctx context.Context, roomID string) (domain.Folio, error) {
	if err, ok := f.errs[roomID]; ok {
		return domain.Folio{}, err
	}
	return f.folios[roomID], nil
}

type miss struct {
	room   string
	status int
}

type fakeFolioRepo struct {
	mu        sync.Mutex
	rooms     map[string]domain.Room
	purchases map[string]domain.Purchase
	misses    []miss
}

func newFakeFolioRepo() *fakeFolioRepo {
	return &fakeFolioRepo{rooms: map[string]domain.Room{}, purchases: map[string]domain.Purchase{}}
}

func (r *fakeFolioRepo) UpsertRoom(ctx context.Context, rm domain.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rooms[rm.ID] = rm
	return nil
}

func (r *fakeFolioRepo) UpsertPurchases(ctx context.Context, ps []domain.Purchase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range ps {
		if _, ok := r.rooms[p.RoomID]; !ok {
			return errors.Newf("room %s not exported", p.RoomID)
		}
		r.purchases[p.ID] = p
	}
	return nil
}

func (r *fakeFolioRepo) LogMiss(ctx context.Context, roomID string, status int, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.misses = append(r.misses, miss{roomID, status})
	return nil
}

func (r *fakeFolioRepo) GetRoomTotal(ctx context.Context, roomID string) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := decimal.Zero
	for _, p := range r.purchases {
		if p.RoomID == roomID {
			total = total.Add(p.Price)
		}
	}
	return total, nil
}

func folioFromDesk(t *testing.T, f fixture, roomID string) domain.Folio {
	t.Helper()
	folio, err := f.desk.Billing.Folio(context.Background(), roomID)
	require.NoError(t, err)
	return folio
}

func TestExportAll(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, app.Policy{ResetChargesOnAvailable: true})
	_, err := f.desk.Billing.RecordPurchase(ctx, "2", "p1")
	require.NoError(t, err)
	_, err = f.desk.Billing.RecordPurchase(ctx, "2", "p3")
	require.NoError(t, err)

	_, err = f.desk.Rooms.SetStatus(ctx, "4", domain.RoomOccupied)
	require.NoError(t, err)
	_, err = f.desk.Billing.RecordPurchase(ctx, "4", "p2")
	require.NoError(t, err)
	_, err = f.desk.Rooms.SetStatus(ctx, "4", domain.RoomAvailable)
	require.NoError(t, err)

	rooms, err := f.desk.Rooms.List(ctx)
	require.NoError(t, err)
	desk := &fakeDesk{
		rooms:  rooms,
		folios: map[string]domain.Folio{},
		errs: map[string]error{
			"5": errors.Wrap(statusErr(404), "get folio"),
			"6": statusErr(500),
		},
	}
	for _, r := range rooms {
		desk.folios[r.ID] = folioFromDesk(t, f, r.ID)
	}

	repo := newFakeFolioRepo()
	rep, err := app.NewExportService(desk, repo, 2).ExportAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, app.ExportReport{Exported: 4, Missed: 1, Unbalanced: 1, Failed: 1}, rep)

	total, err := repo.GetRoomTotal(ctx, "2")
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("13.50")))
	assert.ElementsMatch(t, []miss{{"5", 404}, {"4", 409}}, repo.misses)
}

func TestExportFolio_Forbidden(t *testing.T) {
	repo := newFakeFolioRepo()
	svc := app.NewExportService(&fakeDesk{errs: map[string]error{"1": statusErr(403)}}, repo, 0)

	outcome, err := svc.ExportFolio(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "miss", outcome)
	assert.Equal(t, []miss{{"1", 403}}, repo.misses)
	assert.Empty(t, repo.rooms)
}

func TestExportFolio_ReadBackMismatch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, app.Policy{})
	_, err := f.desk.Billing.RecordPurchase(ctx, "2", "p2")
	require.NoError(t, err)

	repo := newFakeFolioRepo()
	// a row left over in the sink that the desk ledger does not have
	repo.rooms["2"] = domain.Room{ID: "2"}
	repo.purchases["stale"] = domain.Purchase{ID: "stale", RoomID: "2", Price: decimal.RequireFromString("3.00")}

	desk := &fakeDesk{folios: map[string]domain.Folio{"2": folioFromDesk(t, f, "2")}}
	outcome, err := app.NewExportService(desk, repo, 1).ExportFolio(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "mismatch", outcome)
	assert.Equal(t, []miss{{"2", 409}}, repo.misses)

	delete(repo.purchases, "stale")
	repo.misses = nil
	outcome, err = app.NewExportService(desk, repo, 1).ExportFolio(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "ok", outcome)
	assert.Empty(t, repo.misses)
}
