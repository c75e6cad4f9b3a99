package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Aaryan658/proof-of-life/internal/apperrors"
	"github.com/Aaryan658/proof-of-life/internal/domain"
)

// VerifyHandler handles POST /api/verify.
type VerifyHandler struct {
	orchestrator Orchestrator
	logger       *zap.Logger
}

func NewVerifyHandler(orchestrator Orchestrator, logger *zap.Logger) *VerifyHandler {
	return &VerifyHandler{orchestrator: orchestrator, logger: logger}
}

type verifyRequest struct {
	ChallengeID string   `json:"challenge_id" binding:"required"`
	Frames      []string `json:"frames" binding:"required"`
}

type stepResultResponse struct {
	Step       string  `json:"step"`
	Detected   bool    `json:"detected"`
	Confidence float64 `json:"confidence"`
	FrameIdx   int     `json:"frame_idx"`
}

type verifyResponse struct {
	Passed            bool                 `json:"passed"`
	LivenessScore     float64              `json:"liveness_score"`
	StepResults       []stepResultResponse `json:"step_results"`
	FaceDetectedCount int                  `json:"face_detected_count"`
	TotalFrames       int                  `json:"total_frames"`
	TemporalValid     bool                 `json:"temporal_valid"`
	Token             string               `json:"token,omitempty"`
	TokenExpiresAt    *time.Time           `json:"token_expires_at,omitempty"`
}

func (h *VerifyHandler) Verify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, "malformed request", "malformed_request", h.logger)
		return
	}

	result, err := h.orchestrator.Verify(c.Request.Context(), req.ChallengeID, req.Frames)
	if err != nil {
		h.respondError(c, err)
		return
	}

	RespondWithData(c, toVerifyResponse(result))
}

func (h *VerifyHandler) respondError(c *gin.Context, err error) {
	if appErr, ok := apperrors.As(err); ok {
		RespondWithError(c, appErr.StatusCode, appErr.Message, appErr.Code, h.logger)
		return
	}
	RespondWithError(c, http.StatusInternalServerError, "verification failed", "internal_error", h.logger)
}

func toVerifyResponse(result domain.VerificationResult) verifyResponse {
	steps := make([]stepResultResponse, len(result.StepResults))
	for i, s := range result.StepResults {
		steps[i] = stepResultResponse{
			Step:       string(s.Step),
			Detected:   s.Detected,
			Confidence: s.Confidence,
			FrameIdx:   s.FrameIdx,
		}
	}

	resp := verifyResponse{
		Passed:            result.Passed(),
		LivenessScore:     result.LivenessScore,
		StepResults:       steps,
		FaceDetectedCount: result.FaceDetectedCount,
		TotalFrames:       result.TotalFrames,
		TemporalValid:     result.TemporalValid,
	}
	if result.Passed() {
		resp.Token = result.Token
		expiresAt := result.TokenExpiresAt
		resp.TokenExpiresAt = &expiresAt
	}
	return resp
}
