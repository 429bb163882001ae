package overlay

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/rafasilcos/arcflowapp-sub007/internal/entity"
	"github.com/rafasilcos/arcflowapp-sub007/internal/pkg/logger"
	"github.com/rafasilcos/arcflowapp-sub007/pkg/kvstore"
)

// Store persists personalization overlays across two tiers: the remote
// key-value store and a defensive local copy under the same deterministic
// key. Reads prefer remote and fall back to the local tier when the remote
// is unavailable or has no record.
type Store struct {
	remote kvstore.Store
	local  kvstore.Store
	log    logger.ILogger
}

func NewStore(remote, local kvstore.Store, log logger.ILogger) *Store {
	return &Store{remote: remote, local: local, log: log}
}

// Get loads the overlay for a briefing instance. A structurally invalid
// overlay (no sections) is treated as absent. Returns (nil, nil) when no
// usable overlay exists.
func (s *Store) Get(ctx context.Context, clienteID, projetoID, briefingID uuid.UUID) (*entity.Overlay, error) {
	key := kvstore.OverlayKey(clienteID, projetoID, briefingID)

	payload, err := s.remote.Get(ctx, key)
	if err != nil {
		s.log.Warn("Overlay", "Remote lookup failed, trying local tier", map[string]interface{}{
			"briefing_id": briefingID.String(),
			"error":       err.Error(),
		})
		payload, _ = s.local.Get(ctx, key)
	}
	if payload == nil {
		// A commit whose remote write failed may still exist locally.
		payload, _ = s.local.Get(ctx, key)
	}
	if payload == nil {
		return nil, nil
	}

	var o entity.Overlay
	if err := json.Unmarshal(payload, &o); err != nil {
		s.log.Warn("Overlay", "Malformed overlay record, falling through to catalog", map[string]interface{}{
			"briefing_id": briefingID.String(),
			"error":       err.Error(),
		})
		return nil, nil
	}
	if !o.Valid() {
		s.log.Warn("Overlay", "Overlay has no sections, treated as absent", map[string]interface{}{
			"briefing_id": briefingID.String(),
		})
		return nil, nil
	}
	return &o, nil
}

// Save writes the overlay to both tiers. The local write happens first and
// unconditionally; the remote write may fail, in which case the local copy
// keeps the commit recoverable. A stale optimistic version is detected and
// logged but not rejected: last write wins.
func (s *Store) Save(ctx context.Context, o *entity.Overlay) error {
	payload, err := json.Marshal(o)
	if err != nil {
		return err
	}
	key := kvstore.OverlayKey(o.ClienteId, o.ProjetoId, o.BriefingId)

	if existing, _ := s.Get(ctx, o.ClienteId, o.ProjetoId, o.BriefingId); existing != nil && existing.Version >= o.Version {
		s.log.Warn("Overlay", "Concurrent personalization detected, last write wins", map[string]interface{}{
			"briefing_id":    o.BriefingId.String(),
			"stored_version": existing.Version,
			"commit_version": o.Version,
		})
	}

	if err := s.local.Set(ctx, key, payload); err != nil {
		s.log.Warn("Overlay", "Local tier write failed", map[string]interface{}{
			"briefing_id": o.BriefingId.String(),
			"error":       err.Error(),
		})
	}
	return s.remote.Set(ctx, key, payload)
}

// Delete clears the overlay from both tiers, reverting resolution to the
// catalog template.
func (s *Store) Delete(ctx context.Context, clienteID, projetoID, briefingID uuid.UUID) error {
	key := kvstore.OverlayKey(clienteID, projetoID, briefingID)
	if err := s.local.Delete(ctx, key); err != nil {
		s.log.Warn("Overlay", "Local tier delete failed", map[string]interface{}{
			"briefing_id": briefingID.String(),
			"error":       err.Error(),
		})
	}
	return s.remote.Delete(ctx, key)
}
