package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Aaryan658/proof-of-life/internal/apperrors"
	"github.com/Aaryan658/proof-of-life/internal/domain"
	"github.com/Aaryan658/proof-of-life/internal/orchestrator"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubOrchestrator struct {
	challenge    domain.Challenge
	challengeErr error

	verifyResult domain.VerificationResult
	verifyErr    error

	attackSimResult orchestrator.AttackSimResult
	attackSimErr    error
}

func (s *stubOrchestrator) GenerateChallenge(ctx context.Context) (domain.Challenge, error) {
	return s.challenge, s.challengeErr
}

func (s *stubOrchestrator) Verify(ctx context.Context, challengeID string, frames []string) (domain.VerificationResult, error) {
	return s.verifyResult, s.verifyErr
}

func (s *stubOrchestrator) AttackSim(ctx context.Context, frames []string) (orchestrator.AttackSimResult, error) {
	return s.attackSimResult, s.attackSimErr
}

func newTestRouter(stub *stubOrchestrator) *gin.Engine {
	router := gin.New()
	logger := zap.NewNop()

	challengeHandler := NewChallengeHandler(stub, logger)
	verifyHandler := NewVerifyHandler(stub, logger)
	attackSimHandler := NewAttackSimHandler(stub, logger)

	router.GET("/health", Health)
	router.POST("/api/challenge", challengeHandler.GenerateChallenge)
	router.POST("/api/verify", verifyHandler.Verify)
	router.POST("/api/attack-sim", attackSimHandler.Simulate)
	return router
}

func doRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealth_ReturnsOK(t *testing.T) {
	router := newTestRouter(&stubOrchestrator{})
	rec := doRequest(router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGenerateChallenge_ReturnsChallengePayload(t *testing.T) {
	now := time.Now().UTC()
	stub := &stubOrchestrator{challenge: domain.Challenge{
		ID:        "c1",
		Steps:     []domain.GestureTag{domain.GestureBlink, domain.GestureSmile},
		CreatedAt: now,
		ExpiresAt: now.Add(2 * time.Minute),
	}}
	router := newTestRouter(stub)

	rec := doRequest(router, http.MethodPost, "/api/challenge", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp challengeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "c1", resp.ChallengeID)
	assert.Equal(t, []string{"blink", "smile"}, resp.Steps)
}

func TestGenerateChallenge_StoreErrorYields500(t *testing.T) {
	stub := &stubOrchestrator{challengeErr: apperrors.ErrStoreUnavailable}
	router := newTestRouter(stub)

	rec := doRequest(router, http.MethodPost, "/api/challenge", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestVerify_PassedIncludesToken(t *testing.T) {
	stub := &stubOrchestrator{verifyResult: domain.VerificationResult{
		Outcome:           domain.OutcomePassed,
		LivenessScore:     92.5,
		FaceDetectedCount: 5,
		TotalFrames:       5,
		TemporalValid:     true,
		Token:             "signed-token",
		TokenExpiresAt:    time.Now().UTC().Add(5 * time.Minute),
	}}
	router := newTestRouter(stub)

	rec := doRequest(router, http.MethodPost, "/api/verify", verifyRequest{ChallengeID: "c1", Frames: []string{"f1", "f2", "f3", "f4", "f5"}})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp verifyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Passed)
	assert.Equal(t, "signed-token", resp.Token)
	require.NotNil(t, resp.TokenExpiresAt)
}

func TestVerify_FailedOmitsToken(t *testing.T) {
	stub := &stubOrchestrator{verifyResult: domain.VerificationResult{
		Outcome:       domain.OutcomeFailed,
		LivenessScore: 20,
		TotalFrames:   5,
	}}
	router := newTestRouter(stub)

	rec := doRequest(router, http.MethodPost, "/api/verify", verifyRequest{ChallengeID: "c1", Frames: []string{"f1", "f2", "f3", "f4", "f5"}})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp verifyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Passed)
	assert.Empty(t, resp.Token)
	assert.Nil(t, resp.TokenExpiresAt)
}

func TestVerify_ChallengeErrorMapsToConfiguredStatus(t *testing.T) {
	stub := &stubOrchestrator{verifyErr: apperrors.ErrChallengeExpired}
	router := newTestRouter(stub)

	rec := doRequest(router, http.MethodPost, "/api/verify", verifyRequest{ChallengeID: "c1", Frames: []string{"f1", "f2", "f3", "f4", "f5"}})
	assert.Equal(t, http.StatusGone, rec.Code)
}

func TestVerify_NonJSONBodyIsMalformed(t *testing.T) {
	router := newTestRouter(&stubOrchestrator{})
	req := httptest.NewRequest(http.MethodPost, "/api/verify", bytes.NewBufferString("not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAttackSim_NeverReturnsToken(t *testing.T) {
	stub := &stubOrchestrator{attackSimResult: orchestrator.AttackSimResult{
		VerificationResult: domain.VerificationResult{
			Outcome:       domain.OutcomeFailed,
			LivenessScore: 10,
		},
		RejectionReason: "no temporal variation",
		Recommendation:  "reject",
	}}
	router := newTestRouter(stub)

	rec := doRequest(router, http.MethodPost, "/api/attack-sim", attackSimRequest{Frames: []string{"f1", "f2", "f3", "f4", "f5"}})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp attackSimResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Passed)
	assert.Equal(t, "no temporal variation", resp.RejectionReason)
	assert.Equal(t, "reject", resp.Recommendation)
}
