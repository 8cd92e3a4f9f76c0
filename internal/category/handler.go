package category

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

func (h *Handler) GetCategoryTree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.Service.GetCategoryTree(r.Context())
	if err != nil {
		h.Logger.Error("GetCategoryTree: failed to load categories", "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, CategoryTreeResponse{Categories: tree})
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var dto CreateCategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	serial, err := h.Service.CreateCategory(r.Context(), dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, SerialResponse{Serial: serial})
}
