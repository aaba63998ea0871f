package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/telugutor/backend/internal/apperr"
	"github.com/telugutor/backend/internal/review"
	"github.com/telugutor/backend/internal/sm2"
)

// ReviewHandler exposes the spaced repetition endpoints.
type ReviewHandler struct {
	service *review.Service
}

// NewReviewHandler creates the handler.
func NewReviewHandler(service *review.Service) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// GetDueItems returns the learner's current review session.
// GET /api/review/due-items?limit=N
func (h *ReviewHandler) GetDueItems(c *gin.Context) {
	limit, err := parseLimit(c, review.DefaultSessionLimit)
	if err != nil {
		RespondError(c, err)
		return
	}

	session, err := h.service.GetDueSession(c.Request.Context(), learnerID(c), limit)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, session)
}

type submitReviewRequest struct {
	ItemID  string `json:"item_id" binding:"required"`
	Quality *int   `json:"quality" binding:"required"`
}

// SubmitReview records one recall rating.
// POST /api/review/submit
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	var req submitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apperr.Validationf("%v", err))
		return
	}

	result, err := h.service.SubmitReview(c.Request.Context(), learnerID(c), req.ItemID, sm2.Quality(*req.Quality))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, result)
}

type addItemRequest struct {
	VocabID string `json:"vocab_id" binding:"required"`
}

// AddItem starts tracking a vocabulary entry.
// POST /api/review/add-item
func (h *ReviewHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apperr.Validationf("%v", err))
		return
	}

	result, err := h.service.AddItem(c.Request.Context(), learnerID(c), req.VocabID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, result)
}

func parseLimit(c *gin.Context, fallback int) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return fallback, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, apperr.Validationf("limit must be a positive integer, got %q", raw)
	}
	return limit, nil
}
