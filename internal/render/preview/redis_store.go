package preview

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/foliocraft/foliocraft-backend/internal/render/domain"
)

const (
	blobKeyPrefix  = "preview:blob:"  // hash per blob: preview:blob:{id}
	ownerKeyPrefix = "preview:owner:" // set of blob ids: preview:owner:{owner_id}
	defaultBlobTTL = 24 * time.Hour
)

// RedisStore shares published previews between API replicas. Every key gets
// a safety TTL so blobs whose owners never release them do not pile up.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = defaultBlobTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Put(ctx context.Context, blob *domain.Blob) error {
	key := blobKey(blob.ID)

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key,
		"owner_id", blob.OwnerID,
		"content_type", blob.ContentType,
		"created_at", blob.CreatedAt.UTC().Format(time.RFC3339Nano),
		"content", blob.Content,
	)
	pipe.Expire(ctx, key, s.ttl)
	if blob.OwnerID != "" {
		ownerKey := ownerKey(blob.OwnerID)
		pipe.SAdd(ctx, ownerKey, blob.ID)
		pipe.Expire(ctx, ownerKey, s.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store preview: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*domain.Blob, error) {
	fields, err := s.client.HGetAll(ctx, blobKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get preview: %w", err)
	}
	if len(fields) == 0 {
		return nil, domain.ErrPreviewNotFound
	}

	createdAt, _ := time.Parse(time.RFC3339Nano, fields["created_at"])
	return &domain.Blob{
		ID:          id,
		OwnerID:     fields["owner_id"],
		ContentType: fields["content_type"],
		Content:     []byte(fields["content"]),
		CreatedAt:   createdAt,
	}, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	key := blobKey(id)

	owner, err := s.client.HGet(ctx, key, "owner_id").Result()
	if err == redis.Nil {
		return domain.ErrPreviewNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get preview: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	if owner != "" {
		pipe.SRem(ctx, ownerKey(owner), id)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete preview: %w", err)
	}
	return nil
}

// ListByOwner returns ids of live previews published by ownerID.
func (s *RedisStore) ListByOwner(ctx context.Context, ownerID string) ([]string, error) {
	ids, err := s.client.SMembers(ctx, ownerKey(ownerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list previews for owner: %w", err)
	}
	return ids, nil
}

func blobKey(id string) string {
	return blobKeyPrefix + id
}

func ownerKey(ownerID string) string {
	return ownerKeyPrefix + ownerID
}
