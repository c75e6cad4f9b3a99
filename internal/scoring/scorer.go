// Package scoring implements the Scorer: it combines step completion,
// face-presence ratio, and average landmark confidence into the composite
// liveness score and pass/fail verdict, per spec.md §4.3.
package scoring

import (
	"math"

	"github.com/Aaryan658/proof-of-life/internal/domain"
)

const (
	stepWeight       = 60.0
	presenceWeight   = 20.0
	confidenceWeight = 20.0
	passThreshold    = 70.0
)

// Input bundles everything the Scorer needs: the step match results, how
// many of the submitted frames had a detected face, the total frame count,
// and the per-frame landmark confidences (only meaningful where a face
// was present).
type Input struct {
	StepResults        []domain.StepResult
	FaceDetectedCount  int
	TotalFrames        int
	LandmarkConfidence []float64 // one entry per frame with FacePresent == true
}

// Score computes the liveness score and pass/fail verdict for Input.
func Score(in Input) (livenessScore float64, passed bool) {
	if in.TotalFrames == 0 {
		return 0, false
	}

	detected := 0
	for _, s := range in.StepResults {
		if s.Detected {
			detected++
		}
	}

	stepScore := 0.0
	if len(in.StepResults) > 0 {
		stepScore = (float64(detected) / float64(len(in.StepResults))) * stepWeight
	}

	presenceScore := (float64(in.FaceDetectedCount) / float64(in.TotalFrames)) * presenceWeight

	confidenceScore := 0.0
	if len(in.LandmarkConfidence) > 0 {
		sum := 0.0
		for _, c := range in.LandmarkConfidence {
			sum += c
		}
		confidenceScore = (sum / float64(len(in.LandmarkConfidence))) * confidenceWeight
	}

	livenessScore = stepScore + presenceScore + confidenceScore
	if livenessScore > 100 {
		livenessScore = 100
	}
	if livenessScore < 0 {
		livenessScore = 0
	}
	livenessScore = math.Round(livenessScore*10) / 10

	allDetected := detected == len(in.StepResults)
	requiredPresence := int(math.Ceil(0.5 * float64(in.TotalFrames)))
	passed = allDetected && in.FaceDetectedCount >= requiredPresence && livenessScore >= passThreshold

	return livenessScore, passed
}
