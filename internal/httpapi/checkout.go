package httpapi

import (
	"encoding/json"
	"net/http"

	checkoutapp "github.com/solowear/storefront/internal/checkout/app"
	orderdomain "github.com/solowear/storefront/internal/order/domain"
)

type CheckoutHandler struct {
	svc *checkoutapp.Service
}

func NewCheckoutHandler(svc *checkoutapp.Service) *CheckoutHandler {
	return &CheckoutHandler{svc: svc}
}

func (h *CheckoutHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/checkout/quote", h.quote)
	mux.HandleFunc("POST /api/checkout", h.placeOrder)
}

func (h *CheckoutHandler) quote(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "INVALID_ARGUMENT", Message: err.Error()})
		return
	}

	quote, err := h.svc.Quote(r.Context(), sid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

type placeOrderRequest struct {
	Customer      orderdomain.Customer      `json:"customer"`
	PaymentMethod orderdomain.PaymentMethod `json:"paymentMethod"`
}

func (h *CheckoutHandler) placeOrder(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "INVALID_ARGUMENT", Message: err.Error()})
		return
	}

	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "INVALID_ARGUMENT", Message: "invalid request body"})
		return
	}

	order, err := h.svc.PlaceOrder(r.Context(), sid, req.Customer, req.PaymentMethod)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}
