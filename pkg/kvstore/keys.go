package kvstore

import (
	"fmt"

	"github.com/google/uuid"
)

// Key builders for the two scopes the engine persists under. Overlay keys are
// derived deterministically from the owning (cliente, projeto, briefing)
// triple so the defensive local copy and the remote record always agree.

func AnswersKey(briefingID uuid.UUID) string {
	return fmt.Sprintf("briefing:%s:respostas", briefingID)
}

func OverlayKey(clienteID, projetoID, briefingID uuid.UUID) string {
	return fmt.Sprintf("briefing:%s:%s:%s:estrutura", clienteID, projetoID, briefingID)
}

func SnapshotKey(briefingID uuid.UUID) string {
	return fmt.Sprintf("briefing:%s:backup", briefingID)
}
