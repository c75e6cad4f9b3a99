package vision

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"sync"

	"github.com/Aaryan658/proof-of-life/internal/domain"
)

// Model is the external face-mesh model's interface: given one decoded
// image, run face detection plus dense landmark extraction, and return the
// landmarks and a per-frame detection confidence, or found=false if no
// face was detected. This is the seam spec.md §2 calls out as an external
// collaborator — only the interface and the landmark indices used by the
// detectors in this package are specified; the model implementation
// itself (e.g. a MediaPipe or dlib binding) is assumed available and
// plugged in at startup.
type Model interface {
	Detect(img image.Image) (landmarks domain.Landmarks, confidence float64, found bool, err error)
}

// Extractor owns a Model for the process lifetime and bounds concurrent
// extractions with a fixed worker pool, per spec.md §5 and §9 ("scoped
// resource release" — acquired once at service start, not per request).
type Extractor struct {
	model   Model
	workers chan struct{}
}

// NewExtractor acquires model for the lifetime of the returned Extractor.
// workers bounds concurrent Detect calls; a value <= 0 defaults to
// runtime.NumCPU().
func NewExtractor(model Model, workers int) *Extractor {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Extractor{
		model:   model,
		workers: make(chan struct{}, workers),
	}
}

// Close releases the underlying model, if it supports shutdown.
func (e *Extractor) Close() error {
	if closer, ok := e.model.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

// AnalyzeFrame decodes, extracts, and runs every detector in detectors
// against a single raw frame, at frameIndex within the submitted sequence.
// A decode or no-face outcome yields FacePresent=false rather than an
// error the caller must special-case.
func (e *Extractor) AnalyzeFrame(ctx context.Context, raw string, frameIndex int, frameWidth int, detectors DetectorSet) domain.FrameAnalysis {
	select {
	case e.workers <- struct{}{}:
		defer func() { <-e.workers }()
	case <-ctx.Done():
		return domain.FrameAnalysis{FrameIndex: frameIndex, PerGesture: map[domain.GestureTag]domain.GestureSignal{}}
	}

	analysis := domain.FrameAnalysis{
		FrameIndex: frameIndex,
		PerGesture: map[domain.GestureTag]domain.GestureSignal{},
	}

	decoded, err := DecodeFrame(raw, frameWidth)
	if err != nil {
		return analysis
	}

	landmarks, confidence, found, err := e.model.Detect(decoded.Image)
	if err != nil || !found {
		return analysis
	}

	analysis.FacePresent = true
	analysis.LandmarkConfidence = confidence
	for tag, detector := range detectors {
		analysis.PerGesture[tag] = detector.Detect(landmarks)
	}
	return analysis
}

// AnalyzeSequence runs AnalyzeFrame over every frame concurrently, bounded
// by the Extractor's worker pool, and restores submission order before
// returning — per spec.md §5 ("ordering is restored before the Temporal
// Analyzer runs").
func (e *Extractor) AnalyzeSequence(ctx context.Context, frames []string, frameWidth int, detectors DetectorSet) []domain.FrameAnalysis {
	results := make([]domain.FrameAnalysis, len(frames))
	var wg sync.WaitGroup
	wg.Add(len(frames))
	for i, raw := range frames {
		i, raw := i, raw
		go func() {
			defer wg.Done()
			results[i] = e.AnalyzeFrame(ctx, raw, i, frameWidth, detectors)
		}()
	}
	wg.Wait()
	return results
}

// ErrModelUnavailable is returned by a Model implementation that has no
// backing face-mesh runtime wired in (e.g. a deployment that has not yet
// integrated one).
var ErrModelUnavailable = fmt.Errorf("face-mesh model unavailable")
