package matchdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	matchdomain "github.com/Black-And-White-Club/scoreline-bot/app/modules/match/domain"
)

type document struct {
	Matches *[]matchdomain.Match `json:"matches"`
}

// JSONRepository reads matches from a wrapped JSON document on disk. The file
// is re-read on every call so edits show up without a restart.
type JSONRepository struct {
	path string
}

func NewJSONRepository(path string) *JSONRepository {
	return &JSONRepository{path: path}
}

func (r *JSONRepository) ListAll(ctx context.Context) ([]matchdomain.Match, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDocumentMissing, r.path)
		}
		return nil, fmt.Errorf("failed to read match document: %w", err)
	}

	return Decode(data)
}

// Decode parses a match document.
func Decode(data []byte) ([]matchdomain.Match, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if doc.Matches == nil {
		return nil, fmt.Errorf("%w: missing \"matches\" array", ErrMalformedDocument)
	}
	return *doc.Matches, nil
}
