package predictiondb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	predictiondomain "github.com/Black-And-White-Club/scoreline-bot/app/modules/prediction/domain"
)

// JSONRepository stores predictions as a flat, 2-space indented JSON array.
// Appends are serialized and written through a temp file and rename, so a
// reader never sees a half-written document.
type JSONRepository struct {
	path string
	mu   sync.Mutex
}

func NewJSONRepository(path string) *JSONRepository {
	return &JSONRepository{path: path}
}

func (r *JSONRepository) ListAll(ctx context.Context) ([]predictiondomain.Prediction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.read()
}

func (r *JSONRepository) Append(ctx context.Context, p predictiondomain.Prediction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	preds, err := r.read()
	if err != nil {
		return err
	}
	preds = append(preds, p)
	return r.write(preds)
}

func (r *JSONRepository) read() ([]predictiondomain.Prediction, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []predictiondomain.Prediction{}, nil
		}
		return nil, fmt.Errorf("failed to read prediction document: %w", err)
	}

	var preds []predictiondomain.Prediction
	if err := json.Unmarshal(data, &preds); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	if preds == nil {
		preds = []predictiondomain.Prediction{}
	}
	return preds, nil
}

func (r *JSONRepository) write(preds []predictiondomain.Prediction) error {
	data, err := json.MarshalIndent(preds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode predictions: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create prediction directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".predictions-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write predictions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("failed to replace prediction document: %w", err)
	}
	return nil
}
