package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/telugutor/backend/internal/apperr"
	"github.com/telugutor/backend/internal/skill"
)

// SkillHandler exposes the skill graph endpoints.
type SkillHandler struct {
	service *skill.Service
}

// NewSkillHandler creates the handler.
func NewSkillHandler(service *skill.Service) *SkillHandler {
	return &SkillHandler{service: service}
}

// GetGraph returns the concept catalog with the learner's mastery rows.
// GET /api/skill/graph
func (h *SkillHandler) GetGraph(c *gin.Context) {
	graph, err := h.service.GetGraph(c.Request.Context(), learnerID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, graph)
}

// GetConcept returns one concept.
// GET /api/skill/concept/:id
func (h *SkillHandler) GetConcept(c *gin.Context) {
	concept, err := h.service.GetConcept(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, concept)
}

type masteryUpdateRequest struct {
	ConceptID  string `json:"concept_id" binding:"required"`
	Success    *bool  `json:"success" binding:"required"`
	Difficulty int    `json:"difficulty" binding:"required"`
}

// UpdateMastery records one practice attempt.
// POST /api/skill/mastery
func (h *SkillHandler) UpdateMastery(c *gin.Context) {
	var req masteryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apperr.Validationf("%v", err))
		return
	}

	updated, err := h.service.UpdateMastery(c.Request.Context(), learnerID(c), req.ConceptID, *req.Success, req.Difficulty)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"concept_id":  updated.ConceptID,
		"new_mastery": updated.MasteryScore,
		"attempts":    updated.Attempts,
	})
}

// GetNextConcepts returns the ranked recommendation list.
// GET /api/skill/next-concepts?limit=N
func (h *SkillHandler) GetNextConcepts(c *gin.Context) {
	limit, err := parseLimit(c, skill.DefaultRecommendationLimit)
	if err != nil {
		RespondError(c, err)
		return
	}

	next, err := h.service.GetNextConcepts(c.Request.Context(), learnerID(c), limit)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, next)
}

// CheckPrerequisites reports whether the learner may start a concept.
// GET /api/skill/check-prerequisites/:id
func (h *SkillHandler) CheckPrerequisites(c *gin.Context) {
	conceptID := c.Param("id")
	met, err := h.service.CheckPrerequisites(c.Request.Context(), learnerID(c), conceptID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"concept_id":        conceptID,
		"prerequisites_met": met,
	})
}
