package chathandlers

import (
	"context"

	chatservice "github.com/Black-And-White-Club/scoreline-bot/app/modules/chat/application"
	"github.com/Black-And-White-Club/scoreline-bot/internal/observability"
)

type FakeDispatcher struct {
	trace        []chatservice.Inbound
	DispatchFunc func(ctx context.Context, in chatservice.Inbound) chatservice.Response
}

func (f *FakeDispatcher) Dispatch(ctx context.Context, in chatservice.Inbound) chatservice.Response {
	f.trace = append(f.trace, in)
	if f.DispatchFunc != nil {
		return f.DispatchFunc(ctx, in)
	}
	return chatservice.Response{}
}

type FakeMetrics struct {
	observability.NoOpMetrics
	rateLimited int
}

func (f *FakeMetrics) RecordRateLimited() { f.rateLimited++ }

var _ Dispatcher = (*FakeDispatcher)(nil)
