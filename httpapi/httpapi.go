// Package httpapi exposes the catalog service over HTTP.
//
// Routes:
//
//	POST   /products          create (201)
//	GET    /products/{id}     read (cache-aside)
//	PUT    /products/{id}     partial update, invalidates cache
//	DELETE /products/{id}     delete, invalidates cache (204)
//	GET    /health            liveness + cache availability
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fluxmart/catalog"
)

type Handler struct {
	svc *catalog.Service
	log catalog.Logger
}

// New builds the HTTP handler for svc. A nil logger disables logging.
func New(svc *catalog.Service, log catalog.Logger) http.Handler {
	if log == nil {
		log = catalog.NopLogger{}
	}
	h := &Handler{svc: svc, log: log}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /products", h.createProduct)
	mux.HandleFunc("GET /products/{id}", h.getProduct)
	mux.HandleFunc("PUT /products/{id}", h.updateProduct)
	mux.HandleFunc("DELETE /products/{id}", h.deleteProduct)
	mux.HandleFunc("GET /health", h.health)
	mux.HandleFunc("GET /{$}", h.index)

	return withCORS(mux)
}

// createRequest decodes with pointer fields so missing keys are
// distinguishable from zero values.
type createRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock_quantity"`
}

type updateRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock_quantity"`
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Name == nil || req.Description == nil || req.Price == nil || req.Stock == nil {
		writeError(w, http.StatusBadRequest, "name, description, price and stock_quantity are required")
		return
	}

	in := catalog.ProductInput{
		Name:        *req.Name,
		Description: *req.Description,
		Price:       *req.Price,
		Stock:       *req.Stock,
	}
	p, err := h.svc.Create(r.Context(), in)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	patch := catalog.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	}
	p, err := h.svc.Update(r.Context(), id, patch)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// health reports overall liveness plus cache availability. An
// unavailable cache is degraded, not down, so the status stays 200.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "healthy",
		"cache":  h.svc.CacheAvailable(r.Context()),
	})
}

func (h *Handler) index(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "product catalog API",
		"health":  "/health",
	})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *catalog.ValidationError
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		writeError(w, http.StatusNotFound, "product not found")
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Error())
	default:
		h.log.Error("request failed", catalog.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
			"err":    err,
		})
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// withCORS applies a permissive CORS policy and answers preflights.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
