package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"front_desk/internal/domain"
)

type createRoomRequest struct {
	Number string `json:"number"`
	Type   string `json:"type"`
}

type updateRoomRequest struct {
	Number *string `json:"number"`
	Type   *string `json:"type"`
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handlers) listRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.Desk.Rooms.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if st := r.URL.Query().Get("status"); st != "" {
		want, ok := domain.ParseRoomStatus(st)
		if !ok {
			writeError(w, r, domain.Invalid("status", "unknown room status"))
			return
		}
		filtered := rooms[:0]
		for _, rm := range rooms {
			if rm.Status == want {
				filtered = append(filtered, rm)
			}
		}
		rooms = filtered
	}
	writeView(w, r, nonNil(rooms))
}

func (h *Handlers) getRoom(w http.ResponseWriter, r *http.Request) {
	room, err := h.Desk.Rooms.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeView(w, r, room)
}

func (h *Handlers) createRoom(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if !decode(w, r, &req) {
		return
	}
	room, err := h.Desk.Rooms.Create(r.Context(), req.Number, req.Type)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, room)
}

func (h *Handlers) updateRoom(w http.ResponseWriter, r *http.Request) {
	var req updateRoomRequest
	if !decode(w, r, &req) {
		return
	}
	patch := domain.RoomPatch{Number: req.Number}
	if req.Type != nil {
		t := domain.RoomType(*req.Type)
		patch.Type = &t
	}
	room, err := h.Desk.Rooms.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}

func (h *Handlers) removeRoom(w http.ResponseWriter, r *http.Request) {
	if err := h.Desk.Rooms.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) setRoomStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !decode(w, r, &req) {
		return
	}
	st, ok := domain.ParseRoomStatus(req.Status)
	if !ok {
		writeError(w, r, domain.Invalid("status", "use AVAILABLE, OCCUPIED, CLEANING or MAINTENANCE"))
		return
	}
	room, err := h.Desk.Rooms.SetStatus(r.Context(), chi.URLParam(r, "id"), st)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}

func (h *Handlers) folio(w http.ResponseWriter, r *http.Request) {
	f, err := h.Desk.Billing.Folio(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	f.Purchases = nonNil(f.Purchases)
	writeView(w, r, f)
}

func (h *Handlers) roomGuests(w http.ResponseWriter, r *http.Request) {
	gs, err := h.Desk.Occupancy.GuestsInRoom(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeView(w, r, nonNil(gs))
}
