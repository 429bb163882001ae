package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/rafasilcos/arcflowapp-sub007/internal/entity"
)

// BackupRepository is the client-local synchronous tier for crash-recovery
// snapshots. One canonical record per briefing instance; every write
// supersedes the previous snapshot.
type BackupRepository struct {
	cache *cache.Cache
}

func NewBackupRepository() *BackupRepository {
	// Snapshots are disposable: keep them for a day at most, purge hourly.
	c := cache.New(24*time.Hour, 1*time.Hour)
	return &BackupRepository{
		cache: c,
	}
}

func (r *BackupRepository) Save(snapshot *entity.BackupSnapshot) {
	r.cache.Set(snapshot.BriefingId.String(), snapshot, cache.DefaultExpiration)
}

func (r *BackupRepository) Get(briefingID uuid.UUID) (*entity.BackupSnapshot, bool) {
	if x, found := r.cache.Get(briefingID.String()); found {
		snapshot := x.(*entity.BackupSnapshot)
		if snapshot.SchemaVersion != entity.SnapshotSchemaVersion {
			return nil, false
		}
		return snapshot, true
	}
	return nil, false
}

func (r *BackupRepository) Delete(briefingID uuid.UUID) {
	r.cache.Delete(briefingID.String())
}
