package service

import (
	"context"
	"time"

	"github.com/Skotchmaster/pharmacy/internal/models"
	"github.com/Skotchmaster/pharmacy/pkg/logging"
	"github.com/Skotchmaster/pharmacy/pkg/metrics"
	"github.com/Skotchmaster/pharmacy/pkg/mykafka"
)

type Publisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

type Indexer interface {
	Upsert(ctx context.Context, m *models.Medicine) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query string, from, size int) (int64, []models.Medicine, error)
}

// publish never fails the caller; a nil publisher turns events off.
func publish(ctx context.Context, pub Publisher, topic, typ, key string, payload any) {
	if pub == nil {
		return
	}
	ev := mykafka.Event{
		Type:       typ,
		EntityID:   key,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
	if err := pub.PublishEvent(ctx, topic, key, ev); err != nil {
		metrics.RecordPublishFailure(topic)
		logging.FromContext(ctx).Warn("publish_event_failed", "topic", topic, "type", typ, "error", err)
	}
}
