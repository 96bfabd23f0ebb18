package predictiondb

import (
	"context"
	"sync"

	predictiondomain "github.com/Black-And-White-Club/scoreline-bot/app/modules/prediction/domain"
)

// FakeRepository is a programmable Repository. Without funcs it behaves as an
// in-memory store.
type FakeRepository struct {
	ListAllFunc func(ctx context.Context) ([]predictiondomain.Prediction, error)
	AppendFunc  func(ctx context.Context, p predictiondomain.Prediction) error

	mu     sync.Mutex
	stored []predictiondomain.Prediction
	trace  []string
}

func (f *FakeRepository) ListAll(ctx context.Context) ([]predictiondomain.Prediction, error) {
	f.record("ListAll")
	if f.ListAllFunc != nil {
		return f.ListAllFunc(ctx)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]predictiondomain.Prediction, len(f.stored))
	copy(out, f.stored)
	return out, nil
}

func (f *FakeRepository) Append(ctx context.Context, p predictiondomain.Prediction) error {
	f.record("Append")
	if f.AppendFunc != nil {
		return f.AppendFunc(ctx, p)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stored = append(f.stored, p)
	return nil
}

// Stored returns what the in-memory mode has accepted so far.
func (f *FakeRepository) Stored() []predictiondomain.Prediction {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]predictiondomain.Prediction, len(f.stored))
	copy(out, f.stored)
	return out
}

func (f *FakeRepository) record(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, op)
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeRepository) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.trace...)
}
