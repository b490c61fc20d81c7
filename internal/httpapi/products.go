package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	catalogapp "github.com/solowear/storefront/internal/catalog/app"
	catalogdomain "github.com/solowear/storefront/internal/catalog/domain"
)

// ProductsHandler serves the public catalog endpoints and the admin
// product CRUD.
type ProductsHandler struct {
	svc *catalogapp.Service
}

func NewProductsHandler(svc *catalogapp.Service) *ProductsHandler {
	return &ProductsHandler{svc: svc}
}

func (h *ProductsHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/products", h.list)
	mux.HandleFunc("GET /api/products/featured", h.featured)
	mux.HandleFunc("GET /api/products/{id}", h.get)

	mux.HandleFunc("POST /api/admin/products", h.create)
	mux.HandleFunc("PUT /api/admin/products/{id}", h.update)
	mux.HandleFunc("DELETE /api/admin/products/{id}", h.delete)
}

func (h *ProductsHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := catalogapp.Filter{
		Category: q.Get("category"),
		Sort:     q.Get("sort"),
		Sizes:    splitCSV(q.Get("sizes")),
		Colors:   splitCSV(q.Get("colors")),
	}
	if raw := q.Get("maxPrice"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MaxPrice = v
		}
	}

	products, err := h.svc.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *ProductsHandler) featured(w http.ResponseWriter, r *http.Request) {
	n, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	products, err := h.svc.Featured(r.Context(), n)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *ProductsHandler) get(w http.ResponseWriter, r *http.Request) {
	product, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *ProductsHandler) create(w http.ResponseWriter, r *http.Request) {
	var p catalogdomain.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, catalogapp.ErrInvalidInput)
		return
	}

	created, err := h.svc.Create(r.Context(), p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ProductsHandler) update(w http.ResponseWriter, r *http.Request) {
	var p catalogdomain.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, catalogapp.ErrInvalidInput)
		return
	}
	p.ID = r.PathValue("id")

	updated, err := h.svc.Update(r.Context(), p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *ProductsHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
