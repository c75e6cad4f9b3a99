package vision

import (
	"github.com/Aaryan658/proof-of-life/internal/config"
	"github.com/Aaryan658/proof-of-life/internal/domain"
)

// Detector is a pure function mapping one frame's landmarks to a
// (fired, confidence) signal for a single gesture class. Every detector is
// total: given no face (nil/short landmarks) it returns (false, 0).
type Detector interface {
	Detect(landmarks domain.Landmarks) domain.GestureSignal
}

// DetectorSet maps each supported gesture tag to the capability that
// detects it, turning a misspelled tag into a compile-time error instead
// of a silent no-op at dispatch time.
type DetectorSet map[domain.GestureTag]Detector

// NewDetectorSet builds the default detector set from vision thresholds.
func NewDetectorSet(cfg config.VisionConfig) DetectorSet {
	return DetectorSet{
		domain.GestureBlink:     blinkDetector{earThreshold: cfg.EARThreshold},
		domain.GestureSmile:     smileDetector{marThreshold: cfg.MARThreshold},
		domain.GestureTurnLeft:  headTurnDetector{threshold: cfg.HeadTurnThreshold, direction: -1},
		domain.GestureTurnRight: headTurnDetector{threshold: cfg.HeadTurnThreshold, direction: 1},
	}
}

func sufficient(landmarks domain.Landmarks) bool {
	return len(landmarks) >= MinLandmarkCount
}

// blinkDetector fires on a low Eye Aspect Ratio (EAR), per spec.md §4.1.
type blinkDetector struct {
	earThreshold float64
}

func (d blinkDetector) Detect(lm domain.Landmarks) domain.GestureSignal {
	if !sufficient(lm) {
		return domain.GestureSignal{}
	}
	ear := eyeAspectRatio(lm)
	fired := ear < d.earThreshold
	confidence := clamp01((d.earThreshold - ear) / d.earThreshold)
	return domain.GestureSignal{Fired: fired, Confidence: confidence}
}

func eyeAspectRatio(lm domain.Landmarks) float64 {
	earFor := func(p1, p2, p3, p4, p5, p6 int) float64 {
		horizontal := euclidean(lm[p1], lm[p4])
		if horizontal < 1e-6 {
			return 0.3 // matches original_source's fallback for a degenerate eye box
		}
		vertical1 := euclidean(lm[p2], lm[p6])
		vertical2 := euclidean(lm[p3], lm[p5])
		return (vertical1 + vertical2) / (2.0 * horizontal)
	}
	right := earFor(rightEyeP1, rightEyeP2, rightEyeP3, rightEyeP4, rightEyeP5, rightEyeP6)
	left := earFor(leftEyeP1, leftEyeP2, leftEyeP3, leftEyeP4, leftEyeP5, leftEyeP6)
	// spec.md defines the blink rule over min(EAR_left, EAR_right); take the
	// minimum so either eye closing fires the gesture.
	if right < left {
		return right
	}
	return left
}

// smileDetector fires on a high Mouth Aspect Ratio (MAR), per spec.md §4.1.
type smileDetector struct {
	marThreshold float64
}

func (d smileDetector) Detect(lm domain.Landmarks) domain.GestureSignal {
	if !sufficient(lm) {
		return domain.GestureSignal{}
	}
	mar := mouthAspectRatio(lm)
	fired := mar > d.marThreshold
	confidence := clamp01((mar - d.marThreshold) / d.marThreshold)
	return domain.GestureSignal{Fired: fired, Confidence: confidence}
}

func mouthAspectRatio(lm domain.Landmarks) float64 {
	horizontal := euclidean(lm[leftMouth], lm[rightMouth])
	if horizontal < 1e-6 {
		return 0
	}
	vertical := euclidean(lm[upperOuterLip], lm[lowerOuterLip])
	return vertical / horizontal
}

// headTurnDetector fires when the nose offset crosses threshold in the
// configured direction (+1 = right, -1 = left), per spec.md §4.1.
type headTurnDetector struct {
	threshold float64
	direction float64
}

func (d headTurnDetector) Detect(lm domain.Landmarks) domain.GestureSignal {
	if !sufficient(lm) {
		return domain.GestureSignal{}
	}
	r := noseOffsetRatio(lm)
	var fired bool
	if d.direction > 0 {
		fired = r > d.threshold
	} else {
		fired = r < -d.threshold
	}
	confidence := clamp01((abs(r) - d.threshold) / d.threshold)
	return domain.GestureSignal{Fired: fired, Confidence: confidence}
}

func noseOffsetRatio(lm domain.Landmarks) float64 {
	faceWidth := lm[rightFace].X - lm[leftFace].X
	if faceWidth < 1e-6 {
		return 0
	}
	faceCenterX := (lm[leftFace].X + lm[rightFace].X) / 2.0
	return (lm[noseTip].X - faceCenterX) / faceWidth
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
