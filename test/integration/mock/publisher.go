package mock

import (
	"context"
	"sync"

	"github.com/arquitetura-app/backend/internal/domain/entity"
)

// Publisher records timeline events instead of sending them to a broker.
type Publisher struct {
	mu     sync.Mutex
	events []*entity.TimelineEvent
}

func NewPublisher() *Publisher {
	return &Publisher{}
}

func (p *Publisher) Publish(_ context.Context, event *entity.TimelineEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

// Types returns the type of every published event, oldest first.
func (p *Publisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.events))
	for i, e := range p.events {
		types[i] = e.Type
	}
	return types
}

func (p *Publisher) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}
