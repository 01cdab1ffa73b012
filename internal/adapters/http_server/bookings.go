package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"front_desk/internal/domain"
)

type addNoteRequest struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

func (h *Handlers) listReservations(w http.ResponseWriter, r *http.Request) {
	rs, err := h.Desk.Reservations.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeView(w, r, nonNil(rs))
}

func (h *Handlers) getReservation(w http.ResponseWriter, r *http.Request) {
	res, err := h.Desk.Reservations.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeView(w, r, res)
}

func (h *Handlers) createReservation(w http.ResponseWriter, r *http.Request) {
	var req domain.ReservationInput
	if !decode(w, r, &req) {
		return
	}
	res, err := h.Desk.Reservations.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *Handlers) setReservationStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.Desk.Reservations.SetStatus(r.Context(), chi.URLParam(r, "id"), domain.ReservationStatus(req.Status))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handlers) listNotes(w http.ResponseWriter, r *http.Request) {
	ns, err := h.Desk.Notes.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeView(w, r, nonNil(ns))
}

func (h *Handlers) addNote(w http.ResponseWriter, r *http.Request) {
	var req addNoteRequest
	if !decode(w, r, &req) {
		return
	}
	n, err := h.Desk.Notes.Add(r.Context(), req.Text, req.Category)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, n)
}

func (h *Handlers) removeNote(w http.ResponseWriter, r *http.Request) {
	if err := h.Desk.Notes.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
