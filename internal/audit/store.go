// Package audit persists VerificationAttempt records: an append-only,
// read-never-by-the-pipeline audit trail of each verify/attack-sim call,
// supplementing spec.md's core with the teacher's telemetry-minded style
// and grounded in original_source's VerificationAttempt ORM model.
package audit

import (
	"context"

	"github.com/Aaryan658/proof-of-life/internal/domain"
)

// Store records verification attempts for operational audit.
type Store interface {
	Record(ctx context.Context, attempt domain.VerificationAttempt) error
}
