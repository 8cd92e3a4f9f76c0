package review

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

func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var dto CreateReviewDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	serial, err := h.Service.CreateReview(r.Context(), dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, SerialResponse{Serial: serial})
}

func (h *Handler) GetReview(w http.ResponseWriter, r *http.Request) {
	serial, ok := h.serialParam(w, r)
	if !ok {
		return
	}

	detail, err := h.Service.GetReviewBySerial(r.Context(), serial)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, detail)
}

func (h *Handler) GetReviewsByProduct(w http.ResponseWriter, r *http.Request) {
	productSerial, err := strconv.ParseInt(chi.URLParam(r, "serial"), 10, 64)
	if err != nil || productSerial <= 0 {
		h.WriteError(w, http.StatusBadRequest, "invalid serial")
		return
	}

	reviews, svcErr := h.Service.GetReviewsByProduct(r.Context(), productSerial)
	if svcErr != nil {
		h.WriteAppError(w, svcErr)
		return
	}

	h.WriteJSON(w, http.StatusOK, ReviewsResponse{Reviews: reviews})
}

func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	serial, ok := h.serialParam(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteReview(r.Context(), serial); err != nil {
		h.WriteAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) VoteReview(w http.ResponseWriter, r *http.Request) {
	serial, ok := h.serialParam(w, r)
	if !ok {
		return
	}

	var dto VoteDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.VoteReview(r.Context(), serial, dto); err != nil {
		h.WriteAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	serial, ok := h.serialParam(w, r)
	if !ok {
		return
	}

	var dto CreateCommentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.CreateComment(r.Context(), serial, dto); err != nil {
		h.WriteAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) serialParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	serial, err := strconv.ParseInt(chi.URLParam(r, "serial"), 10, 64)
	if err != nil || serial <= 0 {
		h.WriteError(w, http.StatusBadRequest, "invalid serial")
		return 0, false
	}
	return serial, true
}
