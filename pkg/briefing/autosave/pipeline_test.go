package autosave

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafasilcos/arcflowapp-sub007/internal/entity"
	"github.com/rafasilcos/arcflowapp-sub007/internal/pkg/logger"
	"github.com/rafasilcos/arcflowapp-sub007/internal/repository/memory"
	"github.com/rafasilcos/arcflowapp-sub007/pkg/kvstore"
)

// manualTimer lets tests fire or cancel the debounce window by hand.
type manualTimer struct {
	mu      sync.Mutex
	fn      func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	was := !t.stopped
	t.stopped = true
	return was
}

func (t *manualTimer) fire() {
	t.mu.Lock()
	stopped := t.stopped
	t.stopped = true
	t.mu.Unlock()
	if !stopped {
		t.fn()
	}
}

type manualScheduler struct {
	mu     sync.Mutex
	timers []*manualTimer
}

func (s *manualScheduler) factory(_ time.Duration, f func()) Timer {
	t := &manualTimer{fn: f}
	s.mu.Lock()
	s.timers = append(s.timers, t)
	s.mu.Unlock()
	return t
}

func (s *manualScheduler) latest() *manualTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.timers) == 0 {
		return nil
	}
	return s.timers[len(s.timers)-1]
}

func (s *manualScheduler) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// failingStore refuses writes until unlocked.
type failingStore struct {
	*kvstore.MemoryStore
	mu      sync.Mutex
	failing bool
}

func newFailingStore() *failingStore {
	return &failingStore{MemoryStore: kvstore.NewMemoryStore(), failing: true}
}

func (s *failingStore) setFailing(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing = v
}

func (s *failingStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	failing := s.failing
	s.mu.Unlock()
	if failing {
		return errors.New("remote unavailable")
	}
	return s.MemoryStore.Set(ctx, key, value)
}

// hookedStore runs a callback once, just before the next remote write lands.
type hookedStore struct {
	*kvstore.MemoryStore
	onSet func()
}

func (s *hookedStore) Set(ctx context.Context, key string, value []byte) error {
	if hook := s.onSet; hook != nil {
		s.onSet = nil
		hook()
	}
	return s.MemoryStore.Set(ctx, key, value)
}

// capturePublisher records announced flush messages.
type capturePublisher struct {
	mu       sync.Mutex
	messages []*message.Message
}

func (p *capturePublisher) Publish(_ string, msgs ...*message.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, msgs...)
	return nil
}

func (p *capturePublisher) Close() error { return nil }

func (p *capturePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.messages)
}

func remoteAnswers(t *testing.T, store kvstore.Store, briefingID uuid.UUID) entity.AnswerStore {
	t.Helper()
	payload, err := store.Get(context.Background(), kvstore.AnswersKey(briefingID))
	require.NoError(t, err)
	if payload == nil {
		return nil
	}
	var answers entity.AnswerStore
	require.NoError(t, json.Unmarshal(payload, &answers))
	return answers
}

func TestZeroLossOnInterruption(t *testing.T) {
	// N mutations inside an open debounce window, remote dead the whole
	// time: the snapshot taken at mutation N must hold all N answers.
	briefingID := uuid.New()
	remote := newFailingStore()
	backups := memory.NewBackupRepository()
	sched := &manualScheduler{}

	p := NewPipeline(briefingID, ModeEdit, remote, backups, 2*time.Second,
		logger.NewNopLogger(), nil, WithTimerFactory(sched.factory))

	const n = 7
	for i := 0; i < n; i++ {
		p.OnAnswer(context.Background(), fmt.Sprintf("Q%d", i), entity.StringAnswer("resposta"))
	}

	p.Interrupt(context.Background())

	snapshot, ok := backups.Get(briefingID)
	require.True(t, ok, "interrupt must leave a snapshot when the remote write fails")
	assert.Len(t, snapshot.Answers, n)
	assert.Equal(t, entity.SnapshotOnInterrupt, snapshot.Reason)
	assert.Nil(t, remoteAnswers(t, remote, briefingID))
}

func TestDebounceWindowResetsOnMutation(t *testing.T) {
	briefingID := uuid.New()
	backups := memory.NewBackupRepository()
	sched := &manualScheduler{}

	p := NewPipeline(briefingID, ModeEdit, kvstore.NewMemoryStore(), backups,
		2*time.Second, logger.NewNopLogger(), nil, WithTimerFactory(sched.factory))

	p.OnAnswer(context.Background(), "Q1", entity.StringAnswer("a"))
	first := sched.latest()
	p.OnAnswer(context.Background(), "Q2", entity.StringAnswer("b"))

	assert.Equal(t, 2, sched.count(), "each mutation opens a fresh window")
	assert.True(t, first.stopped, "the pending window is canceled, not raced")
}

func TestDebouncedFlushCommitsFullStore(t *testing.T) {
	briefingID := uuid.New()
	remote := kvstore.NewMemoryStore()
	backups := memory.NewBackupRepository()
	sched := &manualScheduler{}
	pub := &capturePublisher{}

	p := NewPipeline(briefingID, ModeEdit, remote, backups, 2*time.Second,
		logger.NewNopLogger(), nil,
		WithTimerFactory(sched.factory),
		WithPublisher(pub, "briefing.flushed"))

	p.OnAnswer(context.Background(), "Q1", entity.StringAnswer("a"))
	p.OnAnswer(context.Background(), "Q2", entity.NumberAnswer(42))
	p.OnAnswer(context.Background(), "Q3", entity.ListAnswer([]string{"x", "y"}))

	// Before the window fires: snapshot exists, remote is empty.
	_, ok := backups.Get(briefingID)
	assert.True(t, ok)
	assert.Nil(t, remoteAnswers(t, remote, briefingID))

	sched.latest().fire()

	got := remoteAnswers(t, remote, briefingID)
	require.Len(t, got, 3)
	assert.True(t, got["Q2"].Matches("42"))

	_, ok = backups.Get(briefingID)
	assert.False(t, ok, "stale snapshot is discarded after a confirmed commit")
	assert.Equal(t, 1, pub.count())
}

func TestSnapshotSurvivesMutationDuringFlush(t *testing.T) {
	// A mutation that lands while the debounced commit is on the wire is not
	// part of the committed payload. Its snapshot is the only durable copy,
	// so the post-commit cleanup must leave it alone.
	briefingID := uuid.New()
	backups := memory.NewBackupRepository()
	sched := &manualScheduler{}
	remote := &hookedStore{MemoryStore: kvstore.NewMemoryStore()}

	p := NewPipeline(briefingID, ModeEdit, remote, backups, 2*time.Second,
		logger.NewNopLogger(), nil, WithTimerFactory(sched.factory))

	p.OnAnswer(context.Background(), "Q1", entity.StringAnswer("a"))

	remote.onSet = func() {
		p.OnAnswer(context.Background(), "Q2", entity.StringAnswer("b"))
	}
	sched.latest().fire()

	assert.Len(t, remoteAnswers(t, remote, briefingID), 1, "the in-flight commit predates Q2")

	snapshot, ok := backups.Get(briefingID)
	require.True(t, ok, "the snapshot holding the mid-flight mutation must survive")
	assert.Len(t, snapshot.Answers, 2)

	// The reopened window commits Q2 and only then discards the snapshot.
	sched.latest().fire()
	assert.Len(t, remoteAnswers(t, remote, briefingID), 2)
	_, ok = backups.Get(briefingID)
	assert.False(t, ok)
}

func TestCreationModeWritesImmediately(t *testing.T) {
	briefingID := uuid.New()
	remote := kvstore.NewMemoryStore()
	backups := memory.NewBackupRepository()
	sched := &manualScheduler{}

	p := NewPipeline(briefingID, ModeCreation, remote, backups, 2*time.Second,
		logger.NewNopLogger(), nil, WithTimerFactory(sched.factory))

	p.OnAnswer(context.Background(), "Q1", entity.StringAnswer("a"))

	assert.Equal(t, 0, sched.count(), "creation mode never opens a debounce window")
	assert.Len(t, remoteAnswers(t, remote, briefingID), 1)
}

func TestCreationModeRetriesOnNextMutation(t *testing.T) {
	briefingID := uuid.New()
	remote := newFailingStore()
	backups := memory.NewBackupRepository()

	p := NewPipeline(briefingID, ModeCreation, remote, backups, 2*time.Second,
		logger.NewNopLogger(), nil)

	p.OnAnswer(context.Background(), "Q1", entity.StringAnswer("a"))
	assert.Nil(t, remoteAnswers(t, remote, briefingID))

	snapshot, ok := backups.Get(briefingID)
	require.True(t, ok, "failed write keeps the snapshot as the durable record")
	assert.Len(t, snapshot.Answers, 1)

	remote.setFailing(false)
	p.OnAnswer(context.Background(), "Q2", entity.StringAnswer("b"))

	// The retry carries the earlier mutation along.
	assert.Len(t, remoteAnswers(t, remote, briefingID), 2)
}

func TestMutationsAfterInterruptAreIgnored(t *testing.T) {
	briefingID := uuid.New()
	remote := kvstore.NewMemoryStore()
	backups := memory.NewBackupRepository()

	p := NewPipeline(briefingID, ModeEdit, remote, backups, 2*time.Second,
		logger.NewNopLogger(), nil)
	p.OnAnswer(context.Background(), "Q1", entity.StringAnswer("a"))
	p.Interrupt(context.Background())
	p.OnAnswer(context.Background(), "Q2", entity.StringAnswer("b"))

	assert.Len(t, remoteAnswers(t, remote, briefingID), 1)
}
