package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	orderapp "github.com/solowear/storefront/internal/order/app"
	orderdomain "github.com/solowear/storefront/internal/order/domain"
)

// OrdersHandler serves the admin order endpoints.
type OrdersHandler struct {
	svc *orderapp.Service
}

func NewOrdersHandler(svc *orderapp.Service) *OrdersHandler {
	return &OrdersHandler{svc: svc}
}

func (h *OrdersHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/admin/orders", h.list)
	mux.HandleFunc("GET /api/admin/orders/{id}", h.get)
	mux.HandleFunc("PUT /api/admin/orders/{id}/status", h.updateStatus)
	mux.HandleFunc("PUT /api/admin/orders/{id}/payment-status", h.updatePaymentStatus)
	mux.HandleFunc("DELETE /api/admin/orders/{id}", h.delete)
	mux.HandleFunc("GET /api/admin/dashboard", h.dashboard)
}

func (h *OrdersHandler) list(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *OrdersHandler) get(w http.ResponseWriter, r *http.Request) {
	order, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *OrdersHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "INVALID_ARGUMENT", Message: "invalid request body"})
		return
	}

	order, err := h.svc.UpdateStatus(r.Context(), r.PathValue("id"), orderdomain.Status(req.Status))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrdersHandler) updatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "INVALID_ARGUMENT", Message: "invalid request body"})
		return
	}

	order, err := h.svc.UpdatePaymentStatus(r.Context(), r.PathValue("id"), orderdomain.PaymentStatus(req.Status))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrdersHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *OrdersHandler) dashboard(w http.ResponseWriter, r *http.Request) {
	n, _ := strconv.Atoi(r.URL.Query().Get("recent"))

	stats, err := h.svc.Dashboard(r.Context(), n)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
