package market

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

func (h *Handler) GetMarkets(w http.ResponseWriter, r *http.Request) {
	markets, err := h.Service.GetAllMarkets()
	if err != nil {
		h.Logger.Error("GetMarkets: failed to list markets", "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"markets": markets})
}

func (h *Handler) CreateMarket(w http.ResponseWriter, r *http.Request) {
	var dto CreateMarketDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	serial, err := h.Service.CreateMarket(r.Context(), dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, SerialResponse{Serial: serial})
}
