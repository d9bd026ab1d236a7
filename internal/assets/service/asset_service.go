package service

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/foliocraft/foliocraft-backend/internal/assets/domain"
)

// Host is implemented by storage.S3Host.
type Host interface {
	URL(key string) string
	KeyFromURL(u string) (string, error)
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
}

// Queue is implemented by repository.PendingDeletionRepository.
type Queue interface {
	Enqueue(ctx context.Context, url, lastErr string) error
	Due(ctx context.Context, maxAttempts, limit int) ([]domain.PendingDeletion, error)
	Remove(ctx context.Context, url string) error
}

const (
	MaxDeleteAttempts = 10
	sweepBatch        = 100
)

type AssetService struct {
	host    Host
	queue   Queue
	maxSize int64
	logger  *zap.Logger
}

func NewAssetService(host Host, queue Queue, maxSize int64, logger *zap.Logger) *AssetService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssetService{host: host, queue: queue, maxSize: maxSize, logger: logger}
}

func userPrefix(userID string) string {
	return "users/" + userID + "/"
}

// Upload stores an image for userID. The type is sniffed from the content;
// the client's declared type is ignored.
func (s *AssetService) Upload(ctx context.Context, userID string, body io.Reader, size int64) (*domain.Upload, error) {
	if size <= 0 {
		return nil, domain.ErrEmpty
	}
	if size > s.maxSize {
		return nil, domain.ErrTooLarge
	}

	br := bufio.NewReaderSize(body, 512)
	head, err := br.Peek(512)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	contentType := http.DetectContentType(head)
	ext, ok := domain.AllowedTypes[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, contentType)
	}

	key := userPrefix(userID) + uuid.NewString() + ext
	if err := s.host.Put(ctx, key, io.LimitReader(br, size), size, contentType); err != nil {
		return nil, err
	}
	s.logger.Info("asset uploaded", zap.String("user_id", userID), zap.String("key", key), zap.Int64("size", size))
	return &domain.Upload{URL: s.host.URL(key), Key: key, ContentType: contentType, Size: size}, nil
}

// Delete removes an asset owned by userID. A failing delete is queued for
// the janitor and reported as queued rather than as an error.
func (s *AssetService) Delete(ctx context.Context, userID, url string) (queued bool, err error) {
	key, err := s.host.KeyFromURL(url)
	if err != nil {
		return false, err
	}
	if !strings.HasPrefix(key, userPrefix(userID)) {
		return false, domain.ErrForbidden
	}

	if err := s.host.Delete(ctx, key); err != nil {
		s.logger.Warn("asset delete failed, queued", zap.String("url", url), zap.Error(err))
		if qerr := s.queue.Enqueue(ctx, url, err.Error()); qerr != nil {
			return false, errors.Join(err, qerr)
		}
		return true, nil
	}
	return false, nil
}

// SweepPending retries queued deletes once. It returns how many succeeded.
func (s *AssetService) SweepPending(ctx context.Context) (int, error) {
	due, err := s.queue.Due(ctx, MaxDeleteAttempts, sweepBatch)
	if err != nil {
		return 0, err
	}

	done := 0
	for _, p := range due {
		if ctx.Err() != nil {
			return done, ctx.Err()
		}
		key, err := s.host.KeyFromURL(p.URL)
		if err == nil {
			err = s.host.Delete(ctx, key)
		}
		if errors.Is(err, domain.ErrForeignURL) {
			s.logger.Warn("dropping pending delete for foreign url", zap.String("url", p.URL))
			err = nil
		}
		if err != nil {
			s.logger.Warn("pending delete failed", zap.String("url", p.URL), zap.Int("attempts", p.Attempts+1), zap.Error(err))
			if qerr := s.queue.Enqueue(ctx, p.URL, err.Error()); qerr != nil {
				return done, qerr
			}
			continue
		}
		if err := s.queue.Remove(ctx, p.URL); err != nil {
			return done, err
		}
		done++
	}
	return done, nil
}
