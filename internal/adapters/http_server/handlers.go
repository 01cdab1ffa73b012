package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"front_desk/internal/app"
	"front_desk/internal/domain"
)

type Handlers struct{ Desk *app.Desk }

type problem struct {
	Type   string              `json:"type"`
	Title  string              `json:"title"`
	Status int                 `json:"status"`
	Detail string              `json:"detail,omitempty"`
	Fields map[string][]string `json:"fields,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/v1", func(r chi.Router) {
		r.Get("/dashboard", h.dashboard)
		r.Get("/audit", h.audit)

		r.Get("/rooms", h.listRooms)
		r.Post("/rooms", h.createRoom)
		r.Get("/rooms/{id}", h.getRoom)
		r.Patch("/rooms/{id}", h.updateRoom)
		r.Delete("/rooms/{id}", h.removeRoom)
		r.Put("/rooms/{id}/status", h.setRoomStatus)
		r.Get("/rooms/{id}/folio", h.folio)
		r.Get("/rooms/{id}/guests", h.roomGuests)

		r.Get("/guests", h.listGuests)
		r.Post("/guests", h.checkIn)
		r.Get("/guests/{id}", h.getGuest)
		r.Delete("/guests/{id}", h.checkOut)

		r.Get("/reservations", h.listReservations)
		r.Post("/reservations", h.createReservation)
		r.Get("/reservations/{id}", h.getReservation)
		r.Put("/reservations/{id}/status", h.setReservationStatus)

		r.Get("/notes", h.listNotes)
		r.Post("/notes", h.addNote)
		r.Delete("/notes/{id}", h.removeNote)

		r.Get("/products", h.listProducts)
		r.Post("/products", h.addProduct)
		r.Get("/products/{id}", h.getProduct)
		r.Delete("/products/{id}", h.removeProduct)

		r.Get("/purchases", h.listPurchases)
		r.Post("/purchases", h.recordPurchase)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	writeProblemFields(w, status, title, detail, nil)
}

func writeProblemFields(w http.ResponseWriter, status int, title, detail string, fields map[string][]string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	p := problem{Type: "about:blank", Title: title, Status: status, Detail: detail, Fields: fields}
	if err := json.NewEncoder(w).Encode(p); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps the domain error taxonomy onto HTTP statuses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		var fields map[string][]string
		if ve, ok := domain.AsValidation(err); ok {
			fields = ve.Fields()
		}
		writeProblemFields(w, http.StatusUnprocessableEntity, "Validation Failed", err.Error(), fields)
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrInvalidState):
		writeProblem(w, http.StatusConflict, "Invalid State", err.Error())
	case errors.Is(err, domain.ErrDuplicateID):
		writeProblem(w, http.StatusConflict, "Duplicate ID", err.Error())
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("unhandled error")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

// decode reads a JSON body; on failure it answers 400 and returns false.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeProblem(w, http.StatusRequestEntityTooLarge, "Body Too Large", "keep request bodies under "+strconv.FormatInt(tooLarge.Limit, 10)+" bytes")
			return false
		}
		writeProblem(w, http.StatusBadRequest, "Malformed Body", err.Error())
		return false
	}
	return true
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeView answers a read with a weak ETag, honoring If-None-Match.
func writeView(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	w.Header().Set("ETag", etag)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write body")
	}
}

// writeJSON answers a write with the resulting state.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to write body")
	}
}

func (h *Handlers) dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.Desk.Queries.Dashboard(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeView(w, r, d)
}

func (h *Handlers) audit(w http.ResponseWriter, r *http.Request) {
	out, err := h.Desk.Queries.Audit(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeView(w, r, map[string]any{"unbalanced": nonNil(out)})
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
