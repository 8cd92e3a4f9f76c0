package product

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/frahmantamala/review-marketplace/internal/transport"
	"github.com/go-chi/chi"
)

type Handler struct {
	*transport.BaseHandler
	Service *Service
}

func NewHandler(baseHandler *transport.BaseHandler, service *Service) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var dto CreateProductDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	serial, err := h.Service.CreateProduct(r.Context(), dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, SerialResponse{Serial: serial})
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	serial, ok := h.serialParam(w, r, "serial")
	if !ok {
		return
	}

	resp, err := h.Service.GetProductBySerial(r.Context(), serial)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetProductsByCategory(w http.ResponseWriter, r *http.Request) {
	serial, ok := h.serialParam(w, r, "serial")
	if !ok {
		return
	}

	products, err := h.Service.GetProductsByCategory(r.Context(), serial)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ProductsResponse{Products: products})
}

func (h *Handler) GetProductsByBrand(w http.ResponseWriter, r *http.Request) {
	serial, ok := h.serialParam(w, r, "serial")
	if !ok {
		return
	}

	products, err := h.Service.GetProductsByBrand(r.Context(), serial)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ProductsResponse{Products: products})
}

func (h *Handler) serialParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	serial, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || serial <= 0 {
		h.WriteError(w, http.StatusBadRequest, "invalid serial")
		return 0, false
	}
	return serial, true
}
