package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Aaryan658/proof-of-life/internal/handler/http/middleware"
	"github.com/Aaryan658/proof-of-life/internal/token"
)

// SetupRouter wires the full gin middleware chain and route table.
func SetupRouter(orchestrator Orchestrator, tokens *token.Service, corsOrigin string, logger *zap.Logger) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery(logger))
	router.Use(middleware.Logging(logger))
	router.Use(middleware.CORS(corsOrigin))
	router.Use(middleware.Metrics())

	router.GET("/health", Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	challengeHandler := NewChallengeHandler(orchestrator, logger)
	verifyHandler := NewVerifyHandler(orchestrator, logger)
	attackSimHandler := NewAttackSimHandler(orchestrator, logger)
	protectedHandler := NewProtectedHandler()

	api := router.Group("/api")
	{
		api.POST("/challenge", challengeHandler.GenerateChallenge)
		api.POST("/verify", verifyHandler.Verify)
		api.POST("/attack-sim", attackSimHandler.Simulate)

		protected := api.Group("/")
		protected.Use(middleware.Auth(tokens))
		{
			protected.GET("/protected", protectedHandler.Get)
		}
	}

	return router
}
