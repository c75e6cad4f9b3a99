package vision

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"
)

// DecodedFrame is a decoded, optionally downscaled pixel buffer ready for
// landmark extraction. Isolating base64/data-URL decoding here — rather
// than inline in the analysis path — keeps malformed-input handling
// trivial to fuzz-test independently of the rest of the pipeline.
type DecodedFrame struct {
	Image image.Image
}

// DecodeFrame decodes one submitted frame, which may be a bare base64
// JPEG payload or a "data:image/jpeg;base64,<payload>" data URL, per
// spec.md §6. A decode failure returns a nil frame and a non-nil error;
// callers treat that as face_present=false rather than aborting the
// request, per spec.md §4.6.
func DecodeFrame(raw string, targetWidth int) (*DecodedFrame, error) {
	payload := raw
	if idx := strings.Index(raw, ","); idx != -1 && strings.HasPrefix(raw, "data:") {
		payload = raw[idx+1:]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// Some clients send unpadded base64; retry without padding before giving up.
		data, err = base64.RawStdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("decode base64 frame: %w", err)
		}
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image frame: %w", err)
	}

	if targetWidth > 0 {
		img = downscale(img, targetWidth)
	}
	return &DecodedFrame{Image: img}, nil
}

// downscale resizes img so its width does not exceed targetWidth, using
// nearest-neighbor sampling. This mirrors original_source's "downscale for
// speed" step; the extractor only needs coarse landmark positions, not
// pixel-perfect resampling.
func downscale(img image.Image, targetWidth int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= targetWidth || w == 0 {
		return img
	}
	scale := float64(targetWidth) / float64(w)
	newW := targetWidth
	newH := int(float64(h) * scale)
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	for y := 0; y < newH; y++ {
		srcY := bounds.Min.Y + int(float64(y)/scale)
		for x := 0; x < newW; x++ {
			srcX := bounds.Min.X + int(float64(x)/scale)
			dst.Set(x, y, img.At(srcX, srcY))
		}
	}
	return dst
}
