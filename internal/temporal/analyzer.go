// Package temporal implements the Temporal Analyzer: it consumes the
// ordered per-frame gesture signals and the challenge's required step
// list, and decides which steps were satisfied, at which frame, and
// whether confirmations were monotonic in frame index.
//
// Grounded on original_source/backend/app/services/vision.py's
// analyze_frames loop and spec.md §4.2.
package temporal

import (
	"github.com/Aaryan658/proof-of-life/internal/domain"
)

// ErrInsufficientFrames is returned when the submitted sequence is below
// the configured minimum and matching should not be attempted at all.
var ErrInsufficientFrames = errInsufficientFrames{}

type errInsufficientFrames struct{}

func (errInsufficientFrames) Error() string { return "insufficient frames for analysis" }

// Analyzer scans a frame-analysis sequence against a challenge's required
// steps, applying the consecutive-frame streak rule.
type Analyzer struct {
	minFrames            int
	minConsecutiveFrames int
}

// NewAnalyzer builds an Analyzer with the given minimum frame count and
// streak length (spec.md default: 5 frames minimum, 2-frame streak).
func NewAnalyzer(minFrames, minConsecutiveFrames int) *Analyzer {
	return &Analyzer{minFrames: minFrames, minConsecutiveFrames: minConsecutiveFrames}
}

// Result is the Temporal Analyzer's output: per-step results plus whether
// confirmation indices were monotonically increasing.
type Result struct {
	StepResults   []domain.StepResult
	TemporalValid bool
}

// Analyze scans frames in order against steps, advancing a cursor over the
// required steps. A step confirms only once its gesture has fired on at
// least minConsecutiveFrames consecutive frames; confirmation always
// happens no earlier than the frame following the previous step's
// confirmation, because the cursor only advances forward — this is what
// guarantees monotonic confirmation indices by construction. TemporalValid
// is false when steps were required and none was confirmed (see monotonic).
func (a *Analyzer) Analyze(frames []domain.FrameAnalysis, steps []domain.GestureTag) (Result, error) {
	if len(frames) < a.minFrames {
		return Result{}, ErrInsufficientFrames
	}

	stepResults := make([]domain.StepResult, len(steps))
	for i, step := range steps {
		stepResults[i] = domain.StepResult{Step: step, FrameIdx: -1}
	}

	cursor := 0
	streak := 0
	streakMaxConfidence := 0.0

	for frameIdx, frame := range frames {
		if cursor >= len(steps) {
			break // early exit: all steps already confirmed
		}

		current := steps[cursor]
		signal, ok := frame.PerGesture[current]
		if !ok || !signal.Fired {
			streak = 0
			streakMaxConfidence = 0
			continue
		}

		streak++
		if signal.Confidence > streakMaxConfidence {
			streakMaxConfidence = signal.Confidence
		}

		if streak >= a.minConsecutiveFrames {
			stepResults[cursor] = domain.StepResult{
				Step:       current,
				Detected:   true,
				Confidence: streakMaxConfidence,
				FrameIdx:   frameIdx,
			}
			cursor++
			streak = 0
			streakMaxConfidence = 0
		}
	}

	return Result{
		StepResults:   stepResults,
		TemporalValid: monotonic(stepResults),
	}, nil
}

// monotonic reports whether every pair of consecutive detected steps has
// strictly increasing frame indices, and returns false when steps were
// required but none was detected. By construction the scanning cursor
// above can never confirm step i+1 before step i, so the ordering check
// always holds for output of Analyze; it is still computed explicitly so
// the invariant is checkable and documented rather than assumed.
func monotonic(results []domain.StepResult) bool {
	detectedCount := 0
	for i := 0; i < len(results)-1; i++ {
		if !results[i].Detected || !results[i+1].Detected {
			continue
		}
		detectedCount++
		if results[i].FrameIdx >= results[i+1].FrameIdx {
			return false
		}
	}
	if detectedCount == 0 {
		// Matches original_source: with 0 or 1 detected steps there is
		// nothing to violate ordering on; valid iff at least one step
		// detected, or vacuously true if none were required.
		for _, r := range results {
			if r.Detected {
				return true
			}
		}
		return len(results) == 0
	}
	return true
}
