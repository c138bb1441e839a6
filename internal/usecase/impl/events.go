package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "donorhub/internal/delivery/context"
	"donorhub/internal/domain/entity"
	"donorhub/internal/domain/service"
)

// eventEmitter publishes account events on a best-effort basis: a failed
// publish is logged and never changes the outcome of the operation.
type eventEmitter struct {
	publisher service.EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

func newEventEmitter(publisher service.EventPublisher, logger *slog.Logger) *eventEmitter {
	return &eventEmitter{publisher: publisher, logger: logger, now: time.Now}
}

func (e *eventEmitter) emit(ctx context.Context, eventType service.AccountEventType, user *entity.User) {
	if e.publisher == nil || user == nil {
		return
	}

	event := &service.AccountEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		Type:       eventType,
		UserID:     user.ID.String(),
		Email:      user.Email,
		Role:       user.Role.String(),
		OccurredAt: e.now().UTC(),
	}

	if err := e.publisher.PublishAccountEvent(ctx, event); err != nil {
		deliverycontext.GetLoggerOrDefault(ctx, e.logger).Warn("Failed to publish account event",
			slog.String("event_type", string(eventType)),
			slog.String("user_id", event.UserID),
			slog.Any("error", err),
		)
	}
}
