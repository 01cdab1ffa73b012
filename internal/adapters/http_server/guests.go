package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"front_desk/internal/domain"
)

type checkInRequest struct {
	domain.GuestInput
	RoomID string `json:"roomId"`
}

func (h *Handlers) listGuests(w http.ResponseWriter, r *http.Request) {
	gs, err := h.Desk.Occupancy.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeView(w, r, nonNil(gs))
}

func (h *Handlers) getGuest(w http.ResponseWriter, r *http.Request) {
	g, err := h.Desk.Occupancy.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeView(w, r, g)
}

func (h *Handlers) checkIn(w http.ResponseWriter, r *http.Request) {
	var req checkInRequest
	if !decode(w, r, &req) {
		return
	}
	g, err := h.Desk.Occupancy.CheckIn(r.Context(), req.GuestInput, req.RoomID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, g)
}

func (h *Handlers) checkOut(w http.ResponseWriter, r *http.Request) {
	g, err := h.Desk.Occupancy.CheckOut(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}
