package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Aaryan658/proof-of-life/internal/domain"
)

// ChallengeHandler handles POST /api/challenge.
type ChallengeHandler struct {
	orchestrator Orchestrator
	logger       *zap.Logger
}

func NewChallengeHandler(orchestrator Orchestrator, logger *zap.Logger) *ChallengeHandler {
	return &ChallengeHandler{orchestrator: orchestrator, logger: logger}
}

type challengeResponse struct {
	ChallengeID      string    `json:"challenge_id"`
	Steps            []string  `json:"steps"`
	ExpiresAt        time.Time `json:"expires_at"`
	ExpiresInSeconds int       `json:"expires_in_seconds"`
}

// GenerateChallenge issues a new one-shot gesture challenge.
func (h *ChallengeHandler) GenerateChallenge(c *gin.Context) {
	challenge, err := h.orchestrator.GenerateChallenge(c.Request.Context())
	if err != nil {
		RespondWithError(c, http.StatusInternalServerError, "failed to generate challenge", "store_unavailable", h.logger)
		return
	}

	RespondWithData(c, challengeResponse{
		ChallengeID:      challenge.ID,
		Steps:            stepsToStrings(challenge.Steps),
		ExpiresAt:        challenge.ExpiresAt,
		ExpiresInSeconds: int(time.Until(challenge.ExpiresAt).Seconds()),
	})
}

func stepsToStrings(steps []domain.GestureTag) []string {
	out := make([]string, len(steps))
	for i, s := range steps {
		out[i] = string(s)
	}
	return out
}
