package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Aaryan658/proof-of-life/internal/apperrors"
)

// AttackSimHandler handles POST /api/attack-sim.
type AttackSimHandler struct {
	orchestrator Orchestrator
	logger       *zap.Logger
}

func NewAttackSimHandler(orchestrator Orchestrator, logger *zap.Logger) *AttackSimHandler {
	return &AttackSimHandler{orchestrator: orchestrator, logger: logger}
}

type attackSimRequest struct {
	Frames []string `json:"frames" binding:"required"`
}

type attackSimResponse struct {
	Passed          bool                 `json:"passed"`
	LivenessScore   float64              `json:"liveness_score"`
	RejectionReason string               `json:"rejection_reason"`
	StepResults     []stepResultResponse `json:"step_results"`
	Recommendation  string               `json:"recommendation"`
}

func (h *AttackSimHandler) Simulate(c *gin.Context) {
	var req attackSimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, "malformed request", "malformed_request", h.logger)
		return
	}

	result, err := h.orchestrator.AttackSim(c.Request.Context(), req.Frames)
	if err != nil {
		if appErr, ok := apperrors.As(err); ok {
			RespondWithError(c, appErr.StatusCode, appErr.Message, appErr.Code, h.logger)
			return
		}
		RespondWithError(c, http.StatusInternalServerError, "attack simulation failed", "internal_error", h.logger)
		return
	}

	verify := toVerifyResponse(result.VerificationResult)
	RespondWithData(c, attackSimResponse{
		Passed:          verify.Passed,
		LivenessScore:   verify.LivenessScore,
		RejectionReason: result.RejectionReason,
		StepResults:     verify.StepResults,
		Recommendation:  result.Recommendation,
	})
}
