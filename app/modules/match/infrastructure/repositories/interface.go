package matchdb

import (
	"context"

	matchdomain "github.com/Black-And-White-Club/scoreline-bot/app/modules/match/domain"
)

// Repository defines read access to the match document.
//
// Error semantics:
//   - ErrDocumentMissing: the document does not exist
//   - ErrMalformedDocument: the document exists but cannot be decoded
//   - other errors: infrastructure failures
type Repository interface {
	ListAll(ctx context.Context) ([]matchdomain.Match, error)
}
