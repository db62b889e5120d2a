package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/ssp-overtime-api/internal/models"
	"github.com/noah-isme/ssp-overtime-api/pkg/errors"
)

// snapshotKey holds the single latest reconciled snapshot.
const snapshotKey = "overtime:snapshot:latest"

// SnapshotStore keeps the most recent snapshot in Redis so a restarted
// process can serve known data before its first portal fetch.
type SnapshotStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSnapshotStore constructs the store. A non-positive TTL falls back to
// one hour.
func NewSnapshotStore(client *redis.Client, ttl time.Duration) *SnapshotStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SnapshotStore{client: client, ttl: ttl}
}

// Save overwrites the stored snapshot.
func (s *SnapshotStore) Save(ctx context.Context, snapshot *models.AttendanceSnapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := s.client.Set(ctx, snapshotKey, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("store snapshot: %w", err)
	}
	return nil
}

// Load returns the stored snapshot, or the cache-miss error when none exists.
func (s *SnapshotStore) Load(ctx context.Context) (*models.AttendanceSnapshot, error) {
	payload, err := s.client.Get(ctx, snapshotKey).Bytes()
	if err == redis.Nil {
		return nil, errors.Clone(errors.ErrCacheMiss, "")
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	var snapshot models.AttendanceSnapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &snapshot, nil
}

// Clear removes the stored snapshot.
func (s *SnapshotStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, snapshotKey).Err(); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	return nil
}
