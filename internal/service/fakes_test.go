package service

import (
	"context"
	"errors"
	"sync"

	"github.com/Skotchmaster/pharmacy/internal/models"
	"github.com/Skotchmaster/pharmacy/pkg/mykafka"
)

type recordedEvent struct {
	Topic string
	Key   string
	Type  string
}

type fakePublisher struct {
	mu     sync.Mutex
	events []recordedEvent
	err    error
}

func (f *fakePublisher) PublishEvent(_ context.Context, topic, key string, event any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ev, _ := event.(mykafka.Event)
	f.events = append(f.events, recordedEvent{Topic: topic, Key: key, Type: ev.Type})
	return f.err
}

func (f *fakePublisher) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Type)
	}
	return out
}

type fakeIndex struct {
	docs      map[string]models.Medicine
	searchErr error
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{docs: map[string]models.Medicine{}}
}

func (f *fakeIndex) Upsert(_ context.Context, m *models.Medicine) error {
	f.docs[m.ID.String()] = *m
	return nil
}

func (f *fakeIndex) Delete(_ context.Context, id string) error {
	delete(f.docs, id)
	return nil
}

func (f *fakeIndex) Search(_ context.Context, _ string, _, _ int) (int64, []models.Medicine, error) {
	if f.searchErr != nil {
		return 0, nil, f.searchErr
	}
	out := make([]models.Medicine, 0, len(f.docs))
	for _, m := range f.docs {
		out = append(out, m)
	}
	return int64(len(out)), out, nil
}

var errBrokerDown = errors.New("broker down")
