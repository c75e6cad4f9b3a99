package domain

import "time"

// TokenRecord is the persisted metadata for an issued bearer token. The raw
// token string is never stored; Hash is the only durable reference to it.
type TokenRecord struct {
	Hash      string
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Revoked   bool
}

// VerificationAttempt is an append-only audit record of one verify or
// attack-sim call. It is written for observability only and never
// consulted by the verification logic itself.
type VerificationAttempt struct {
	ID            string
	ChallengeID   string // empty for attack-sim attempts
	LivenessScore float64
	Passed        bool
	StepDetails   []StepResult
	CreatedAt     time.Time
}
