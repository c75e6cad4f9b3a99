// Package orchestrator ties the Challenge Store, vision pipeline, Temporal
// Analyzer, Scorer, and Token Service together into the two public
// operations the HTTP layer exposes: generating a challenge and verifying a
// submitted frame sequence against one.
//
// Grounded on the teacher's service-layer pattern (auth-service's
// AuthService orchestrating repository + token concerns behind one
// façade) and spec.md §4.6/§5.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Aaryan658/proof-of-life/internal/apperrors"
	"github.com/Aaryan658/proof-of-life/internal/audit"
	"github.com/Aaryan658/proof-of-life/internal/challenge"
	"github.com/Aaryan658/proof-of-life/internal/clock"
	"github.com/Aaryan658/proof-of-life/internal/config"
	"github.com/Aaryan658/proof-of-life/internal/domain"
	"github.com/Aaryan658/proof-of-life/internal/scoring"
	"github.com/Aaryan658/proof-of-life/internal/telemetry"
	"github.com/Aaryan658/proof-of-life/internal/temporal"
	"github.com/Aaryan658/proof-of-life/internal/vision"
)

// TokenIssuer is the slice of token.Service the Orchestrator depends on, so
// tests can supply a stub without standing up a real Store.
type TokenIssuer interface {
	Issue(ctx context.Context, subject string, ttl time.Duration) (string, domain.TokenRecord, error)
}

// Orchestrator is the Verification Orchestrator of spec.md §2: the single
// entry point that turns a challenge request or a submitted frame sequence
// into a durable decision.
type Orchestrator struct {
	challenges challenge.Store
	tokens     TokenIssuer
	audit      audit.Store
	extractor  *vision.Extractor
	detectors  vision.DetectorSet
	analyzer   *temporal.Analyzer
	clock      clock.Clock
	cfg        *config.Config
	logger     *zap.Logger
}

// New wires the Orchestrator's collaborators. All are interfaces or
// injected instances so production code and tests share one constructor.
func New(
	challenges challenge.Store,
	tokens TokenIssuer,
	auditStore audit.Store,
	extractor *vision.Extractor,
	detectors vision.DetectorSet,
	analyzer *temporal.Analyzer,
	clk clock.Clock,
	cfg *config.Config,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		challenges: challenges,
		tokens:     tokens,
		audit:      auditStore,
		extractor:  extractor,
		detectors:  detectors,
		analyzer:   analyzer,
		clock:      clk,
		cfg:        cfg,
		logger:     logger,
	}
}

// GenerateChallenge samples a fresh ordered gesture sequence, persists it,
// and returns it for the client to act on, per spec.md §4.4.
func (o *Orchestrator) GenerateChallenge(ctx context.Context) (domain.Challenge, error) {
	steps, err := challenge.SampleSteps(domain.DefaultGesturePool, o.cfg.Challenge.StepCount)
	if err != nil {
		return domain.Challenge{}, fmt.Errorf("sample challenge steps: %w", err)
	}
	id, err := challenge.NewID()
	if err != nil {
		return domain.Challenge{}, fmt.Errorf("generate challenge id: %w", err)
	}

	now := o.clock.Now()
	c := domain.Challenge{
		ID:        id,
		Steps:     steps,
		CreatedAt: now,
		ExpiresAt: now.Add(o.cfg.Challenge.Expiry()),
	}
	if err := o.challenges.Create(ctx, c); err != nil {
		return domain.Challenge{}, fmt.Errorf("persist challenge: %w", err)
	}

	telemetry.ChallengesIssuedTotal.Inc()
	return c, nil
}

// Verify consumes challengeID and scores frames against its required
// gesture steps, issuing a bearer token on a passing outcome. The whole
// call is bounded by the configured verify timeout (spec.md §5).
func (o *Orchestrator) Verify(ctx context.Context, challengeID string, frames []string) (domain.VerificationResult, error) {
	ctx, cancel := context.WithTimeout(ctx, o.cfg.Verify.Timeout())
	defer cancel()

	if len(frames) < o.cfg.Verify.MinFrames {
		return domain.VerificationResult{}, apperrors.ErrTooFewFrames
	}
	if len(frames) > o.cfg.Verify.MaxFrames {
		frames = frames[:o.cfg.Verify.MaxFrames]
	}

	c, err := o.challenges.Consume(ctx, challengeID, o.clock.Now())
	if err != nil {
		return domain.VerificationResult{}, err
	}

	result := o.runPipeline(ctx, c.Steps, frames)
	if ctx.Err() == context.DeadlineExceeded {
		return domain.VerificationResult{}, apperrors.ErrTimeout
	}

	if result.Passed() {
		signed, rec, err := o.tokens.Issue(ctx, c.ID, o.cfg.JWT.Expiry())
		if err != nil {
			o.logger.Error("issue verification token", zap.String("challenge_id", c.ID), zap.Error(err))
			return domain.VerificationResult{}, fmt.Errorf("issue token: %w", err)
		}
		result.Token = signed
		result.TokenExpiresAt = rec.ExpiresAt
		telemetry.TokensIssuedTotal.Inc()
	}

	o.recordAttempt(ctx, c.ID, result)
	telemetry.LivenessScore.Observe(result.LivenessScore)
	telemetry.VerificationsTotal.WithLabelValues(string(result.Outcome)).Inc()

	return result, nil
}

// attackSimSteps is the fixed pseudo-challenge the diagnostic endpoint
// scores submitted frames against. It is synthesized in-process and never
// persisted, created, or consumable as a real Challenge, per spec.md §4.6.
var attackSimSteps = []domain.GestureTag{
	domain.GestureBlink,
	domain.GestureTurnRight,
	domain.GestureSmile,
}

// AttackSimResult extends a verification result with the diagnostic-only
// explanation fields spec.md's attack-sim response requires.
type AttackSimResult struct {
	domain.VerificationResult
	RejectionReason string
	Recommendation  string
}

// AttackSim runs the same analysis pipeline against caller-supplied frames
// without a real challenge and without ever issuing a token, regardless of
// outcome, per spec.md §4.6.
func (o *Orchestrator) AttackSim(ctx context.Context, frames []string) (AttackSimResult, error) {
	ctx, cancel := context.WithTimeout(ctx, o.cfg.Verify.Timeout())
	defer cancel()

	if len(frames) < o.cfg.Verify.MinFrames {
		return AttackSimResult{}, apperrors.ErrTooFewFrames
	}
	if len(frames) > o.cfg.Verify.MaxFrames {
		frames = frames[:o.cfg.Verify.MaxFrames]
	}

	result := o.runPipeline(ctx, attackSimSteps, frames)
	result.Token = ""
	result.TokenExpiresAt = time.Time{}

	out := AttackSimResult{
		VerificationResult: result,
		RejectionReason:    rejectionReason(result),
		Recommendation:     "reject",
	}

	o.recordAttempt(ctx, "", result)
	telemetry.VerificationsTotal.WithLabelValues("attack_sim_" + string(result.Outcome)).Inc()

	return out, nil
}

// runPipeline extracts landmarks, detects gestures, runs the Temporal
// Analyzer and Scorer, and returns a VerificationResult with no token set.
// It never returns an error: an unscoreable sequence (too many faceless or
// undecodable frames) still yields a well-formed failed result, per
// spec.md §5's "insufficient_signal surfaced as a normal response" rule.
func (o *Orchestrator) runPipeline(ctx context.Context, steps []domain.GestureTag, frames []string) domain.VerificationResult {
	analyses := o.extractor.AnalyzeSequence(ctx, frames, o.cfg.Vision.FrameWidth, o.detectors)

	faceCount := 0
	confidences := make([]float64, 0, len(analyses))
	for _, a := range analyses {
		if a.FacePresent {
			faceCount++
			confidences = append(confidences, a.LandmarkConfidence)
		}
	}

	faceless := len(analyses) - faceCount
	maxFaceless := int(o.cfg.Verify.MaxDecodeFailureRatio * float64(len(analyses)))
	if faceless > maxFaceless {
		return domain.VerificationResult{
			Outcome:           domain.OutcomeFailed,
			StepResults:       blankStepResults(steps),
			FaceDetectedCount: faceCount,
			TotalFrames:       len(analyses),
		}
	}

	temporalResult, err := o.analyzer.Analyze(analyses, steps)
	if err != nil {
		temporalResult = temporal.Result{StepResults: blankStepResults(steps)}
	}

	livenessScore, passed := scoring.Score(scoring.Input{
		StepResults:        temporalResult.StepResults,
		FaceDetectedCount:  faceCount,
		TotalFrames:        len(analyses),
		LandmarkConfidence: confidences,
	})

	outcome := domain.OutcomeFailed
	if passed {
		outcome = domain.OutcomePassed
	}

	return domain.VerificationResult{
		Outcome:           outcome,
		LivenessScore:     livenessScore,
		StepResults:       temporalResult.StepResults,
		FaceDetectedCount: faceCount,
		TotalFrames:       len(analyses),
		TemporalValid:     temporalResult.TemporalValid,
	}
}

func blankStepResults(steps []domain.GestureTag) []domain.StepResult {
	results := make([]domain.StepResult, len(steps))
	for i, step := range steps {
		results[i] = domain.StepResult{Step: step, FrameIdx: -1}
	}
	return results
}

// recordAttempt writes the audit trail entry for one verify/attack-sim
// call. Failures are logged, not propagated: the audit trail is
// observability only and never gates the caller's response (spec.md §3).
func (o *Orchestrator) recordAttempt(ctx context.Context, challengeID string, result domain.VerificationResult) {
	attempt := domain.VerificationAttempt{
		ID:            uuid.NewString(),
		ChallengeID:   challengeID,
		LivenessScore: result.LivenessScore,
		Passed:        result.Passed(),
		StepDetails:   result.StepResults,
		CreatedAt:     o.clock.Now(),
	}
	if err := o.audit.Record(ctx, attempt); err != nil {
		o.logger.Warn("record verification attempt", zap.Error(err))
	}
}

// rejectionReason explains, in order of how fundamentally the submission
// failed, why attack-sim rejected it.
func rejectionReason(r domain.VerificationResult) string {
	switch {
	case r.TotalFrames == 0:
		return "no frames submitted"
	case r.FaceDetectedCount == 0:
		return "no face detected in any submitted frame"
	case allUndetected(r.StepResults):
		return "no gesture streak detected; frames show no temporal variation"
	case !r.TemporalValid:
		return "gesture confirmations were not temporally ordered"
	case anyUndetected(r.StepResults):
		return "one or more required gestures were never confirmed"
	case r.Passed():
		return "frames passed every liveness check; attack-sim never issues a token"
	case r.FaceDetectedCount < (r.TotalFrames+1)/2:
		return "a face was detected in fewer than half of the submitted frames"
	default:
		return "liveness score below pass threshold"
	}
}

func allUndetected(results []domain.StepResult) bool {
	if len(results) == 0 {
		return false
	}
	for _, s := range results {
		if s.Detected {
			return false
		}
	}
	return true
}

func anyUndetected(results []domain.StepResult) bool {
	for _, s := range results {
		if !s.Detected {
			return true
		}
	}
	return false
}
