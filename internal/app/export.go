package app

import (
	"context"
	"net/http"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"front_desk/internal/adapters/observability"
	"front_desk/internal/domain"
)

// ExportService copies room folios from a running desk into the reporting
// database. It never writes back to the desk.
type ExportService struct {
	desk    domain.DeskClient
	repo    domain.FolioRepository
	workers int
}

func NewExportService(c domain.DeskClient, r domain.FolioRepository, workers int) *ExportService {
	if workers < 1 {
		workers = 1
	}
	return &ExportService{desk: c, repo: r, workers: workers}
}

// ExportReport counts folio outcomes for one run.
type ExportReport struct {
	Exported   int
	Missed     int
	Unbalanced int
	Mismatched int
	Failed     int
}

// statusOf extracts an HTTP status from a client error, 0 if none.
func statusOf(err error) int {
	var se interface{ HTTPStatus() int }
	if errors.As(err, &se) {
		return se.HTTPStatus()
	}
	if errors.Is(err, domain.ErrNotFound) {
		return http.StatusNotFound
	}
	return 0
}

// ExportFolio copies one room's folio and reads the exported ledger total
// back. A room that disappeared or that the desk refuses to serve, and a
// total that does not match the desk's, are logged as misses and do not fail
// the run.
func (s *ExportService) ExportFolio(ctx context.Context, roomID string) (outcome string, err error) {
	defer func() { observability.ObserveExport(outcome) }()

	f, err := s.desk.GetFolio(ctx, roomID)
	if err != nil {
		switch st := statusOf(err); st {
		case http.StatusNotFound:
			_ = s.repo.LogMiss(ctx, roomID, st, "not found")
			return "miss", nil
		case http.StatusUnauthorized, http.StatusForbidden:
			_ = s.repo.LogMiss(ctx, roomID, st, "forbidden")
			return "miss", nil
		}
		return "error", errors.Wrapf(err, "fetch folio %s", roomID)
	}

	// Parent row first; purchases reference it.
	if err := s.repo.UpsertRoom(ctx, f.Room); err != nil {
		return "error", errors.Wrapf(err, "upsert room %s", roomID)
	}
	if len(f.Purchases) > 0 {
		if err := s.repo.UpsertPurchases(ctx, f.Purchases); err != nil {
			return "error", errors.Wrapf(err, "upsert purchases for room %s", roomID)
		}
	}

	exported, err := s.repo.GetRoomTotal(ctx, roomID)
	if err != nil {
		return "error", errors.Wrapf(err, "read back room %s", roomID)
	}
	if !exported.Equal(f.Total) {
		_ = s.repo.LogMiss(ctx, roomID, http.StatusConflict,
			"export mismatch: desk ledger "+f.Total.StringFixed(2)+" exported "+exported.StringFixed(2))
		return "mismatch", nil
	}

	if !f.Balanced() {
		// exported as-is; the miss row flags it for review
		_ = s.repo.LogMiss(ctx, roomID, http.StatusConflict,
			"unbalanced: room "+f.Room.ExtraCharges.StringFixed(2)+" ledger "+f.Total.StringFixed(2))
		return "unbalanced", nil
	}
	return "ok", nil
}

// ExportAll lists the desk's rooms and exports every folio with at most
// s.workers requests in flight.
func (s *ExportService) ExportAll(ctx context.Context) (ExportReport, error) {
	rooms, err := s.desk.ListRooms(ctx)
	if err != nil {
		return ExportReport{}, errors.Wrap(err, "list rooms")
	}

	var (
		mu  sync.Mutex
		rep ExportReport
		wg  sync.WaitGroup
	)
	sem := semaphore.NewWeighted(int64(s.workers))

	for _, r := range rooms {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return rep, err
		}

		wg.Add(1)
		go func(roomID string) {
			defer wg.Done()
			defer sem.Release(1)

			outcome, err := s.ExportFolio(ctx, roomID)
			mu.Lock()
			defer mu.Unlock()
			switch outcome {
			case "ok":
				rep.Exported++
			case "unbalanced":
				rep.Exported++
				rep.Unbalanced++
			case "mismatch":
				rep.Exported++
				rep.Mismatched++
			case "miss":
				rep.Missed++
			default:
				rep.Failed++
				log.Warn().Str("room", roomID).Err(err).Msg("folio export failed")
				return
			}
			log.Debug().Str("room", roomID).Str("outcome", outcome).Msg("folio exported")
		}(r.ID)
	}

	wg.Wait()
	return rep, nil
}
