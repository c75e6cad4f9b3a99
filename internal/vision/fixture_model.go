package vision

import (
	"image"
	"sync"

	"github.com/Aaryan658/proof-of-life/internal/domain"
)

// FixtureFrame is one canned Model.Detect response.
type FixtureFrame struct {
	Landmarks  domain.Landmarks
	Confidence float64
	Found      bool
}

// FixtureModel is a deterministic Model driven by a canned sequence of
// responses, used by tests that need to control exactly what landmarks
// come back without a real face-mesh runtime wired in. Production code
// supplies a real Model adapter instead.
//
// Detect is called once per decoded frame image, in whatever order the
// Extractor's worker pool happens to schedule them; FixtureModel hands
// out responses strictly in call order, so callers that need a specific
// frame-to-response mapping under AnalyzeSequence's concurrency should
// drive decode-free scenarios through the Temporal Analyzer directly with
// canned []domain.FrameAnalysis instead of through this model.
type FixtureModel struct {
	mu     sync.Mutex
	Frames []FixtureFrame
	next   int
}

func (f *FixtureModel) Detect(img image.Image) (domain.Landmarks, float64, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.next >= len(f.Frames) {
		return nil, 0, false, nil
	}
	fr := f.Frames[f.next]
	f.next++
	return fr.Landmarks, fr.Confidence, fr.Found, nil
}
