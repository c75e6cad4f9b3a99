package vision

import (
	"image"

	"github.com/Aaryan658/proof-of-life/internal/domain"
)

// UnavailableModel is a Model that has no backing face-mesh runtime wired
// in. Every Detect call returns ErrModelUnavailable. The Extractor treats a
// Detect error like a frame with no face, so with this model every frame
// is analyzed as faceless and every verification fails; the error itself
// does not reach the caller.
//
// Swap this out at startup for a real adapter (MediaPipe, dlib, or a
// remote inference call) implementing the same Model interface.
type UnavailableModel struct{}

func (UnavailableModel) Detect(img image.Image) (domain.Landmarks, float64, bool, error) {
	return nil, 0, false, ErrModelUnavailable
}
