// Package server assembles the gin router from the injected handlers.
package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/telugutor/backend/internal/handlers"
	"github.com/telugutor/backend/internal/middleware"
)

// RouterConfig carries the handlers and middleware the router wires up.
type RouterConfig struct {
	AuthMiddleware *middleware.AuthMiddleware
	ReviewHandler  *handlers.ReviewHandler
	SkillHandler   *handlers.SkillHandler
	LearnerHandler *handlers.LearnerHandler
	CORSOrigins    []string
}

// NewRouter builds the HTTP route table.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Learner-ID"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireLearner())

	reviewGroup := api.Group("/review")
	{
		reviewGroup.GET("/due-items", cfg.ReviewHandler.GetDueItems)
		reviewGroup.POST("/submit", cfg.ReviewHandler.SubmitReview)
		reviewGroup.POST("/add-item", cfg.ReviewHandler.AddItem)
	}

	skillGroup := api.Group("/skill")
	{
		skillGroup.GET("/graph", cfg.SkillHandler.GetGraph)
		skillGroup.GET("/concept/:id", cfg.SkillHandler.GetConcept)
		skillGroup.POST("/mastery", cfg.SkillHandler.UpdateMastery)
		skillGroup.GET("/next-concepts", cfg.SkillHandler.GetNextConcepts)
		skillGroup.GET("/check-prerequisites/:id", cfg.SkillHandler.CheckPrerequisites)
	}

	learnerGroup := api.Group("/learner")
	{
		learnerGroup.GET("/profile", cfg.LearnerHandler.GetProfile)
		learnerGroup.GET("/stats", cfg.LearnerHandler.GetStats)
		learnerGroup.POST("/practice-time", cfg.LearnerHandler.RecordPracticeTime)
	}

	return router
}
