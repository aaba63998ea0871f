package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/telugutor/backend/internal/apperr"
	"github.com/telugutor/backend/internal/learner"
)

// LearnerHandler exposes the profile and dashboard endpoints.
type LearnerHandler struct {
	service *learner.Service
}

// NewLearnerHandler creates the handler.
func NewLearnerHandler(service *learner.Service) *LearnerHandler {
	return &LearnerHandler{service: service}
}

// GetProfile returns the authenticated learner's profile.
// GET /api/learner/profile
func (h *LearnerHandler) GetProfile(c *gin.Context) {
	profile, err := h.service.GetProfile(c.Request.Context(), learnerID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, profile)
}

// GetStats returns the dashboard counters.
// GET /api/learner/stats
func (h *LearnerHandler) GetStats(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context(), learnerID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, stats)
}

type practiceTimeRequest struct {
	Minutes int `json:"minutes" binding:"required"`
}

// RecordPracticeTime adds practice minutes and advances the streak.
// POST /api/learner/practice-time
func (h *LearnerHandler) RecordPracticeTime(c *gin.Context) {
	var req practiceTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apperr.Validationf("%v", err))
		return
	}

	streak, err := h.service.RecordPracticeTime(c.Request.Context(), learnerID(c), req.Minutes)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"streak_days": streak})
}
