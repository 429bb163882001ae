package autosave

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/rafasilcos/arcflowapp-sub007/internal/entity"
	"github.com/rafasilcos/arcflowapp-sub007/internal/pkg/logger"
	"github.com/rafasilcos/arcflowapp-sub007/pkg/kvstore"
)

// Mode selects the write path for answer mutations.
type Mode int

const (
	// ModeCreation writes remotely on every mutation: the instance has no
	// remote record yet, so each keystroke is worth a round trip.
	ModeCreation Mode = iota
	// ModeEdit coalesces rapid mutations behind a debounce window and
	// commits the full accumulated store once the window closes.
	ModeEdit
)

// BackupStore is the synchronous local tier holding the canonical crash
// recovery snapshot for each briefing instance.
type BackupStore interface {
	Save(snapshot *entity.BackupSnapshot)
	Get(briefingID uuid.UUID) (*entity.BackupSnapshot, bool)
	Delete(briefingID uuid.UUID)
}

// FlushedMessage is published on the in-process bus after a successful remote
// commit so downstream consumers (events, progress push, completion mail) can
// react without sitting on the write path.
type FlushedMessage struct {
	BriefingId  uuid.UUID `json:"briefing_id"`
	AnswerCount int       `json:"answer_count"`
	FlushedAt   time.Time `json:"flushed_at"`
}

// Pipeline owns the persistence path for one briefing instance. Every answer
// mutation lands in the local snapshot before any network attempt, so an
// in-flight debounce window never leaves the system without a durable copy.
// The timer handle lives here, not in ambient scope: concurrent sessions in
// the same process cannot cancel each other's windows.
type Pipeline struct {
	briefingID uuid.UUID
	mode       Mode
	remote     kvstore.Store
	backups    BackupStore
	publisher  message.Publisher
	topic      string
	window     time.Duration
	newTimer   TimerFactory
	log        logger.ILogger

	mu      sync.Mutex
	answers entity.AnswerStore
	rev     uint64
	timer   Timer
	closed  bool
}

type Option func(*Pipeline)

// WithTimerFactory replaces the timer scheduling, used by tests to fire the
// debounce window by hand.
func WithTimerFactory(f TimerFactory) Option {
	return func(p *Pipeline) { p.newTimer = f }
}

// WithPublisher attaches the in-process bus flushed commits are announced on.
func WithPublisher(pub message.Publisher, topic string) Option {
	return func(p *Pipeline) {
		p.publisher = pub
		p.topic = topic
	}
}

func NewPipeline(
	briefingID uuid.UUID,
	mode Mode,
	remote kvstore.Store,
	backups BackupStore,
	window time.Duration,
	log logger.ILogger,
	seed entity.AnswerStore,
	opts ...Option,
) *Pipeline {
	p := &Pipeline{
		briefingID: briefingID,
		mode:       mode,
		remote:     remote,
		backups:    backups,
		window:     window,
		newTimer:   StdTimerFactory,
		log:        log,
		answers:    seed.Clone(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Answers returns a copy of the accumulated store.
func (p *Pipeline) Answers() entity.AnswerStore {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.answers.Clone()
}

// OnAnswer records a single mutation. The local snapshot write is synchronous
// and unconditional; the remote path depends on the mode. Transient remote
// failures are logged and retried on the next mutation, never surfaced.
func (p *Pipeline) OnAnswer(ctx context.Context, questionID string, value entity.AnswerValue) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.answers[questionID] = value
	p.rev++
	snapshot := entity.NewBackupSnapshot(p.briefingID, p.answers, entity.SnapshotOnMutation)
	p.mu.Unlock()

	p.backups.Save(snapshot)

	switch p.mode {
	case ModeCreation:
		if err := p.commit(ctx); err != nil {
			p.log.Warn("Autosave", "Immediate commit failed, snapshot retained", map[string]interface{}{
				"briefing_id": p.briefingID.String(),
				"error":       err.Error(),
			})
		}
	case ModeEdit:
		p.resetWindow()
	}
}

// resetWindow cancels any pending window and opens a fresh one. The new
// mutation cancels the pending timer rather than racing it.
func (p *Pipeline) resetWindow() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timer != nil {
		p.timer.Stop()
	}
	p.timer = p.newTimer(p.window, func() {
		if err := p.Flush(context.Background()); err != nil {
			p.log.Warn("Autosave", "Debounced commit failed, snapshot retained", map[string]interface{}{
				"briefing_id": p.briefingID.String(),
				"error":       err.Error(),
			})
		}
	})
}

// Flush commits the full accumulated store in one remote write. A pre-flush
// snapshot is taken immediately before the network call; on success the
// snapshot is discarded, unless a mutation landed mid-flight and wrote a
// newer one, and the flush is announced on the bus.
func (p *Pipeline) Flush(ctx context.Context) error {
	p.mu.Lock()
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	snapshot := entity.NewBackupSnapshot(p.briefingID, p.answers, entity.SnapshotPreFlush)
	payload, err := json.Marshal(p.answers)
	rev := p.rev
	p.mu.Unlock()
	if err != nil {
		return err
	}

	p.backups.Save(snapshot)

	if err := p.remote.Set(ctx, kvstore.AnswersKey(p.briefingID), payload); err != nil {
		return err
	}

	p.discardSnapshot(rev)
	p.announce(len(snapshot.Answers))
	return nil
}

// discardSnapshot drops the local snapshot after a confirmed commit. When a
// mutation arrived while the commit was on the wire, the stored snapshot is
// the only durable copy of that mutation and has to survive until its own
// window commits.
func (p *Pipeline) discardSnapshot(committedRev uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.rev != committedRev {
		return
	}
	p.backups.Delete(p.briefingID)
}

func (p *Pipeline) commit(ctx context.Context) error {
	p.mu.Lock()
	payload, err := json.Marshal(p.answers)
	p.mu.Unlock()
	if err != nil {
		return err
	}
	return p.remote.Set(ctx, kvstore.AnswersKey(p.briefingID), payload)
}

func (p *Pipeline) announce(answerCount int) {
	if p.publisher == nil {
		return
	}
	body, err := json.Marshal(FlushedMessage{
		BriefingId:  p.briefingID,
		AnswerCount: answerCount,
		FlushedAt:   time.Now(),
	})
	if err != nil {
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), body)
	if err := p.publisher.Publish(p.topic, msg); err != nil {
		p.log.Warn("Autosave", "Failed to announce flush", map[string]interface{}{
			"briefing_id": p.briefingID.String(),
			"error":       err.Error(),
		})
	}
}

// Interrupt is the page-unload/termination path: cancel the pending window,
// take a final snapshot, then attempt one best-effort remote flush that
// bypasses the debounce entirely. It never returns an error; the snapshot is
// the durable record if the network is gone.
func (p *Pipeline) Interrupt(ctx context.Context) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	snapshot := entity.NewBackupSnapshot(p.briefingID, p.answers, entity.SnapshotOnInterrupt)
	payload, marshalErr := json.Marshal(p.answers)
	rev := p.rev
	p.mu.Unlock()

	p.backups.Save(snapshot)

	err := marshalErr
	if err == nil {
		err = p.remote.Set(ctx, kvstore.AnswersKey(p.briefingID), payload)
	}
	if err != nil {
		p.log.Warn("Autosave", "Interrupt flush failed, snapshot is the durable copy", map[string]interface{}{
			"briefing_id": p.briefingID.String(),
			"error":       err.Error(),
		})
		return
	}
	p.discardSnapshot(rev)
	p.announce(len(snapshot.Answers))
}
