package brand

import (
	"encoding/json"
	"net/http"

	"github.com/frahmantamala/review-marketplace/internal/transport"
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

func (h *Handler) GetBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.Service.GetAllBrands(r.Context())
	if err != nil {
		h.Logger.Error("GetBrands: failed to list brands", "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, BrandsResponse{Brands: brands})
}

func (h *Handler) CreateBrand(w http.ResponseWriter, r *http.Request) {
	var dto CreateBrandDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	serial, err := h.Service.CreateBrand(r.Context(), dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, SerialResponse{Serial: serial})
}
