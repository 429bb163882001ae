package autosave

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafasilcos/arcflowapp-sub007/internal/entity"
	"github.com/rafasilcos/arcflowapp-sub007/internal/pkg/logger"
	"github.com/rafasilcos/arcflowapp-sub007/internal/repository/memory"
	"github.com/rafasilcos/arcflowapp-sub007/pkg/kvstore"
)

func seedRemote(t *testing.T, store kvstore.Store, briefingID uuid.UUID, answers entity.AnswerStore) {
	t.Helper()
	payload, err := json.Marshal(answers)
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), kvstore.AnswersKey(briefingID), payload))
}

func TestSeedSnapshotWinsWhenLarger(t *testing.T) {
	briefingID := uuid.New()
	remote := kvstore.NewMemoryStore()
	backups := memory.NewBackupRepository()

	seedRemote(t, remote, briefingID, entity.AnswerStore{
		"Q1": entity.StringAnswer("a"),
	})
	backups.Save(entity.NewBackupSnapshot(briefingID, entity.AnswerStore{
		"Q1": entity.StringAnswer("a"),
		"Q2": entity.StringAnswer("b"),
		"Q3": entity.StringAnswer("c"),
	}, entity.SnapshotOnInterrupt))

	answers, source, err := Seed(context.Background(), remote, backups, briefingID)
	require.NoError(t, err)
	assert.Equal(t, SeedSnapshot, source)
	assert.Len(t, answers, 3)
}

func TestSeedRemoteWinsWhenEqualOrLarger(t *testing.T) {
	briefingID := uuid.New()
	remote := kvstore.NewMemoryStore()
	backups := memory.NewBackupRepository()

	seedRemote(t, remote, briefingID, entity.AnswerStore{
		"Q1": entity.StringAnswer("remote"),
		"Q2": entity.StringAnswer("remote"),
	})
	backups.Save(entity.NewBackupSnapshot(briefingID, entity.AnswerStore{
		"Q1": entity.StringAnswer("local"),
		"Q2": entity.StringAnswer("local"),
	}, entity.SnapshotOnMutation))

	answers, source, err := Seed(context.Background(), remote, backups, briefingID)
	require.NoError(t, err)
	assert.Equal(t, SeedRemote, source)
	assert.True(t, answers["Q1"].Matches("remote"))
}

func TestSeedEmptyWhenNothingStored(t *testing.T) {
	answers, source, err := Seed(context.Background(), kvstore.NewMemoryStore(),
		memory.NewBackupRepository(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, SeedEmpty, source)
	assert.Empty(t, answers)
}

func TestSeedFallsBackToSnapshotOnRemoteFailure(t *testing.T) {
	briefingID := uuid.New()
	remote := newFailingStore() // Get also unavailable
	backups := memory.NewBackupRepository()
	backups.Save(entity.NewBackupSnapshot(briefingID, entity.AnswerStore{
		"Q1": entity.StringAnswer("a"),
	}, entity.SnapshotOnMutation))

	answers, source, err := Seed(context.Background(), remote, backups, briefingID)
	require.NoError(t, err)
	assert.Equal(t, SeedSnapshot, source)
	assert.Len(t, answers, 1)
}

func TestManagerIsolatesTimersPerInstance(t *testing.T) {
	remote := kvstore.NewMemoryStore()
	backups := memory.NewBackupRepository()
	sched := &manualScheduler{}

	m := NewManager(remote, backups, 2*time.Second, logger.NewNopLogger(),
		WithManagerTimerFactory(sched.factory))

	idA, idB := uuid.New(), uuid.New()
	pa, _, err := m.Open(context.Background(), idA, ModeEdit)
	require.NoError(t, err)
	pb, _, err := m.Open(context.Background(), idB, ModeEdit)
	require.NoError(t, err)

	pa.OnAnswer(context.Background(), "Q1", entity.StringAnswer("a"))
	timerA := sched.latest()
	pb.OnAnswer(context.Background(), "Q1", entity.StringAnswer("b"))

	// B's mutation must not cancel A's pending window.
	assert.False(t, timerA.stopped)

	// Firing A's window flushes A only.
	timerA.fire()
	assert.NotNil(t, remoteAnswers(t, remote, idA))
	assert.Nil(t, remoteAnswers(t, remote, idB))
}

func TestSeedRejectsCorruptRemote(t *testing.T) {
	briefingID := uuid.New()
	remote := kvstore.NewMemoryStore()
	require.NoError(t, remote.Set(context.Background(),
		kvstore.AnswersKey(briefingID), []byte("{not json")))

	_, _, err := Seed(context.Background(), remote, memory.NewBackupRepository(), briefingID)
	assert.Error(t, err)
}
