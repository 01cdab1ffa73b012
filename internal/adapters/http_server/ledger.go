package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"front_desk/internal/domain"
)

type addProductRequest struct {
	Name string `json:"name"`
	// Price is accepted as a JSON number or as the text typed into the form.
	Price json.RawMessage `json:"price"`
}

type purchaseRequest struct {
	RoomID    string `json:"roomId"`
	ProductID string `json:"productId"`
}

type purchaseResponse struct {
	domain.Purchase
	Receipt string `json:"receipt"`
}

func (h *Handlers) listProducts(w http.ResponseWriter, r *http.Request) {
	ps, err := h.Desk.Catalog.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeView(w, r, nonNil(ps))
}

func (h *Handlers) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.Desk.Catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeView(w, r, p)
}

func (h *Handlers) addProduct(w http.ResponseWriter, r *http.Request) {
	var req addProductRequest
	if !decode(w, r, &req) {
		return
	}
	price := strings.Trim(strings.TrimSpace(string(req.Price)), `"`)
	p, err := h.Desk.Catalog.AddProduct(r.Context(), req.Name, price)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handlers) removeProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.Desk.Catalog.RemoveProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) listPurchases(w http.ResponseWriter, r *http.Request) {
	ps, err := h.Desk.Billing.List(r.Context(), r.URL.Query().Get("roomId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeView(w, r, nonNil(ps))
}

func (h *Handlers) recordPurchase(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if !decode(w, r, &req) {
		return
	}
	p, err := h.Desk.Billing.RecordPurchase(r.Context(), req.RoomID, req.ProductID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, purchaseResponse{Purchase: p, Receipt: domain.FormatBRL(p.Price) + " lançados no quarto"})
}
