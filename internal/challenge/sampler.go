package challenge

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/Aaryan658/proof-of-life/internal/domain"
)

// SampleSteps draws count distinct gesture tags from pool using a
// cryptographically secure RNG, in sampling order, per spec.md §4.4.
func SampleSteps(pool []domain.GestureTag, count int) ([]domain.GestureTag, error) {
	if count > len(pool) {
		return nil, fmt.Errorf("requested %d steps but pool only has %d gestures", count, len(pool))
	}

	remaining := append([]domain.GestureTag(nil), pool...)
	steps := make([]domain.GestureTag, 0, count)
	for i := 0; i < count; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(remaining))))
		if err != nil {
			return nil, fmt.Errorf("sample challenge step: %w", err)
		}
		idx := n.Int64()
		steps = append(steps, remaining[idx])
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}
	return steps, nil
}

// NewID generates an unguessable challenge id: 16 random bytes (128 bits),
// hex-encoded, comfortably exceeding spec.md's 122-bit floor.
func NewID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate challenge id: %w", err)
	}
	return fmt.Sprintf("%x", buf), nil
}
