package entity

import (
	"time"

	"github.com/google/uuid"
)

// SnapshotSchemaVersion is bumped whenever the snapshot layout changes so
// recovery can refuse records it no longer understands.
const SnapshotSchemaVersion = 1

// SnapshotReason records which moment produced a backup snapshot.
type SnapshotReason string

const (
	SnapshotOnMutation  SnapshotReason = "mutation"
	SnapshotPreFlush    SnapshotReason = "preflush"
	SnapshotOnInterrupt SnapshotReason = "interrupt"
)

// BackupSnapshot is the disposable local copy of the full answer store taken
// synchronously before any remote write is attempted. There is exactly one
// canonical snapshot per briefing instance; each write supersedes the last.
type BackupSnapshot struct {
	SchemaVersion int            `json:"schemaVersion"`
	BriefingId    uuid.UUID      `json:"briefingId"`
	Answers       AnswerStore    `json:"respostas"`
	Reason        SnapshotReason `json:"motivo"`
	TakenAt       time.Time      `json:"capturadoEm"`
}

func NewBackupSnapshot(briefingID uuid.UUID, answers AnswerStore, reason SnapshotReason) *BackupSnapshot {
	return &BackupSnapshot{
		SchemaVersion: SnapshotSchemaVersion,
		BriefingId:    briefingID,
		Answers:       answers.Clone(),
		Reason:        reason,
		TakenAt:       time.Now(),
	}
}
