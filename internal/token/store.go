// Package token implements the Token Service: issuance, validation, and
// revocation of short-lived bearer tokens, per spec.md §4.5.
package token

import (
	"context"

	"github.com/Aaryan658/proof-of-life/internal/domain"
)

// Store persists TokenRecords, keyed by hash of the raw token string. The
// raw string itself is never passed to Store.
type Store interface {
	Save(ctx context.Context, rec domain.TokenRecord) error
	FindByHash(ctx context.Context, hash string) (domain.TokenRecord, error)
	Revoke(ctx context.Context, hash string) error
}
