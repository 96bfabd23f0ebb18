package matchdb

import (
	"context"

	matchdomain "github.com/Black-And-White-Club/scoreline-bot/app/modules/match/domain"
)

// FakeRepository is a programmable Repository for tests in other packages.
type FakeRepository struct {
	ListAllFunc func(ctx context.Context) ([]matchdomain.Match, error)
	trace       []string
}

func (f *FakeRepository) ListAll(ctx context.Context) ([]matchdomain.Match, error) {
	f.trace = append(f.trace, "ListAll")
	if f.ListAllFunc != nil {
		return f.ListAllFunc(ctx)
	}
	return nil, nil
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeRepository) Trace() []string {
	return append([]string(nil), f.trace...)
}

// Static returns a FakeRepository serving a fixed list.
func Static(matches ...matchdomain.Match) *FakeRepository {
	return &FakeRepository{
		ListAllFunc: func(context.Context) ([]matchdomain.Match, error) {
			out := make([]matchdomain.Match, len(matches))
			copy(out, matches)
			return out, nil
		},
	}
}
