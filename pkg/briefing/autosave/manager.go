package autosave

import (
	"context"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/rafasilcos/arcflowapp-sub007/internal/pkg/logger"
	"github.com/rafasilcos/arcflowapp-sub007/pkg/kvstore"
)

// Manager hands out one pipeline per active briefing instance. Each pipeline
// owns its own timer handle, so sessions never share debounce state.
type Manager struct {
	remote    kvstore.Store
	backups   BackupStore
	window    time.Duration
	log       logger.ILogger
	publisher message.Publisher
	topic     string
	newTimer  TimerFactory

	mu        sync.Mutex
	pipelines map[uuid.UUID]*Pipeline
}

func NewManager(
	remote kvstore.Store,
	backups BackupStore,
	window time.Duration,
	log logger.ILogger,
	opts ...ManagerOption,
) *Manager {
	m := &Manager{
		remote:    remote,
		backups:   backups,
		window:    window,
		log:       log,
		newTimer:  StdTimerFactory,
		pipelines: make(map[uuid.UUID]*Pipeline),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

type ManagerOption func(*Manager)

func WithManagerPublisher(pub message.Publisher, topic string) ManagerOption {
	return func(m *Manager) {
		m.publisher = pub
		m.topic = topic
	}
}

func WithManagerTimerFactory(f TimerFactory) ManagerOption {
	return func(m *Manager) { m.newTimer = f }
}

// Open starts (or returns) the pipeline for a briefing instance, seeding it
// from the reconciled answer tiers.
func (m *Manager) Open(ctx context.Context, briefingID uuid.UUID, mode Mode) (*Pipeline, SeedSource, error) {
	m.mu.Lock()
	if p, ok := m.pipelines[briefingID]; ok {
		m.mu.Unlock()
		return p, SeedRemote, nil
	}
	m.mu.Unlock()

	seed, source, err := Seed(ctx, m.remote, m.backups, briefingID)
	if err != nil {
		return nil, source, err
	}

	opts := []Option{WithTimerFactory(m.newTimer)}
	if m.publisher != nil {
		opts = append(opts, WithPublisher(m.publisher, m.topic))
	}
	p := NewPipeline(briefingID, mode, m.remote, m.backups, m.window, m.log, seed, opts...)

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.pipelines[briefingID]; ok {
		return existing, SeedRemote, nil
	}
	m.pipelines[briefingID] = p
	return p, source, nil
}

// Get returns the active pipeline for an instance, if any.
func (m *Manager) Get(briefingID uuid.UUID) (*Pipeline, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.pipelines[briefingID]
	return p, ok
}

// Close interrupts the instance's pipeline and removes it from the registry.
func (m *Manager) Close(ctx context.Context, briefingID uuid.UUID) {
	m.mu.Lock()
	p, ok := m.pipelines[briefingID]
	delete(m.pipelines, briefingID)
	m.mu.Unlock()
	if ok {
		p.Interrupt(ctx)
	}
}

// Shutdown interrupts every active pipeline. Called once before the hosting
// process tears down.
func (m *Manager) Shutdown(ctx context.Context) {
	m.mu.Lock()
	active := make([]*Pipeline, 0, len(m.pipelines))
	for _, p := range m.pipelines {
		active = append(active, p)
	}
	m.pipelines = make(map[uuid.UUID]*Pipeline)
	m.mu.Unlock()

	for _, p := range active {
		p.Interrupt(ctx)
	}
}
