package domain

import "time"

// Challenge is a randomly generated, one-shot, time-bounded instruction to
// perform an ordered sequence of facial gestures. It is immutable after
// creation except for Used, which transitions false->true exactly once.
type Challenge struct {
	ID        string
	Steps     []GestureTag
	CreatedAt time.Time
	ExpiresAt time.Time
	Used      bool
}

// Expired reports whether the challenge's response window has closed as of now.
func (c Challenge) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}
