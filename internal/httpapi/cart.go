package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	cartapp "github.com/solowear/storefront/internal/cart/app"
	cartdomain "github.com/solowear/storefront/internal/cart/domain"
)

// CartHandler serves the cart endpoints. The cart is keyed by the
// session id the page sends in the X-Session-Id header.
type CartHandler struct {
	svc *cartapp.Service
}

func NewCartHandler(svc *cartapp.Service) *CartHandler {
	return &CartHandler{svc: svc}
}

func (h *CartHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/cart", h.get)
	mux.HandleFunc("GET /api/cart/count", h.count)
	mux.HandleFunc("POST /api/cart/items", h.add)
	mux.HandleFunc("PUT /api/cart/items", h.setQuantity)
	mux.HandleFunc("DELETE /api/cart/items", h.remove)
	mux.HandleFunc("DELETE /api/cart", h.clear)
}

func sessionID(r *http.Request) (string, error) {
	sid := r.Header.Get("X-Session-Id")
	if sid == "" {
		return "", errors.New("missing X-Session-Id header")
	}
	return sid, nil
}

func (h *CartHandler) get(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "INVALID_ARGUMENT", Message: err.Error()})
		return
	}

	cart, err := h.svc.Get(r.Context(), sid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) count(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "INVALID_ARGUMENT", Message: err.Error()})
		return
	}

	count, err := h.svc.ItemCount(r.Context(), sid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}

func (h *CartHandler) add(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "INVALID_ARGUMENT", Message: err.Error()})
		return
	}

	var line cartdomain.Line
	if err := json.NewDecoder(r.Body).Decode(&line); err != nil || line.ProductID == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "INVALID_ARGUMENT", Message: "invalid cart line"})
		return
	}

	cart, err := h.svc.Add(r.Context(), sid, line)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

type quantityRequest struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
}

func (h *CartHandler) setQuantity(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "INVALID_ARGUMENT", Message: err.Error()})
		return
	}

	var req quantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "INVALID_ARGUMENT", Message: "invalid request"})
		return
	}

	key := cartdomain.Key{ProductID: req.ProductID, Size: req.Size, Color: req.Color}
	cart, err := h.svc.SetQuantity(r.Context(), sid, key, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) remove(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "INVALID_ARGUMENT", Message: err.Error()})
		return
	}

	q := r.URL.Query()
	key := cartdomain.Key{
		ProductID: q.Get("productId"),
		Size:      q.Get("size"),
		Color:     q.Get("color"),
	}
	if key.ProductID == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "INVALID_ARGUMENT", Message: "productId is required"})
		return
	}

	cart, err := h.svc.Remove(r.Context(), sid, key)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) clear(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "INVALID_ARGUMENT", Message: err.Error()})
		return
	}

	cart, err := h.svc.Clear(r.Context(), sid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}
