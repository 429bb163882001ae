package autosave

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/rafasilcos/arcflowapp-sub007/internal/entity"
	"github.com/rafasilcos/arcflowapp-sub007/pkg/kvstore"
)

// SeedSource tells which tier won the load-time reconciliation.
type SeedSource string

const (
	SeedRemote   SeedSource = "remote"
	SeedSnapshot SeedSource = "snapshot"
	SeedEmpty    SeedSource = "empty"
)

// Seed loads the answers a session should start from. Best-effort
// reconciliation: if the remote record is missing or holds fewer answers than
// the latest local snapshot, the snapshot wins. Ordering conflicts between
// concurrent editors are out of scope here.
func Seed(ctx context.Context, remote kvstore.Store, backups BackupStore, briefingID uuid.UUID) (entity.AnswerStore, SeedSource, error) {
	var remoteAnswers entity.AnswerStore

	payload, err := remote.Get(ctx, kvstore.AnswersKey(briefingID))
	if err != nil {
		// Transient remote failure: fall back to the snapshot outright.
		if snapshot, ok := backups.Get(briefingID); ok {
			return snapshot.Answers.Clone(), SeedSnapshot, nil
		}
		return entity.AnswerStore{}, SeedEmpty, nil
	}
	if payload != nil {
		if err := json.Unmarshal(payload, &remoteAnswers); err != nil {
			return nil, "", fmt.Errorf("corrupt remote answer record for %s: %w", briefingID, err)
		}
	}

	snapshot, hasSnapshot := backups.Get(briefingID)
	if hasSnapshot && len(snapshot.Answers) > len(remoteAnswers) {
		return snapshot.Answers.Clone(), SeedSnapshot, nil
	}
	if remoteAnswers == nil {
		return entity.AnswerStore{}, SeedEmpty, nil
	}
	return remoteAnswers.Clone(), SeedRemote, nil
}
