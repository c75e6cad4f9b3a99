package domain

import "time"

// StepResult is the outcome of matching one required gesture step against
// the submitted frame sequence.
type StepResult struct {
	Step       GestureTag
	Detected   bool
	Confidence float64
	FrameIdx   int // 0-based index of the confirming frame, -1 if undetected
}

// Outcome tags a VerificationResult as passed or failed, so callers never
// need to infer pass/fail from the presence of optional fields.
type Outcome string

const (
	OutcomePassed Outcome = "passed"
	OutcomeFailed Outcome = "failed"
)

// VerificationResult is the composite decision produced by running the
// Temporal Analyzer and Scorer over one submitted frame sequence.
type VerificationResult struct {
	Outcome            Outcome
	LivenessScore      float64
	StepResults        []StepResult
	FaceDetectedCount  int
	TotalFrames        int
	TemporalValid      bool

	// Populated only when Outcome == OutcomePassed.
	Token          string
	TokenExpiresAt time.Time
}

// Passed is a convenience accessor matching spec language ("passed").
func (r VerificationResult) Passed() bool {
	return r.Outcome == OutcomePassed
}
