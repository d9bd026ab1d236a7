package bootstrap

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/foliocraft/foliocraft-backend/config"
	"github.com/foliocraft/foliocraft-backend/internal/render"
	"github.com/foliocraft/foliocraft-backend/internal/render/document"
	"github.com/foliocraft/foliocraft-backend/internal/render/preview"
	"github.com/foliocraft/foliocraft-backend/internal/render/validator"
	"github.com/foliocraft/foliocraft-backend/internal/render/wrapper"
)

// NewEngine assembles the render pipeline. A "redis" preview store with a nil
// rdb falls back to memory and says so.
func NewEngine(cfg *config.Config, rdb *redis.Client, logger *zap.Logger) *render.Engine {
	gen := document.New(document.WithWrapper(wrapper.ForStrategy(cfg.Render.WrapStrategy)))

	var store preview.Store
	storeName := "memory"
	switch {
	case cfg.Render.PreviewStore == "redis" && rdb != nil:
		store = preview.NewRedisStore(rdb, cfg.Render.PreviewTTL)
		storeName = "redis"
	case cfg.Render.PreviewStore == "redis":
		logger.Warn("redis preview store requested without a redis client, previews stay in process memory")
		fallthrough
	default:
		store = preview.NewMemoryStore(cfg.Render.PreviewTTL)
	}

	logger.Info("render engine ready",
		zap.String("wrap_strategy", cfg.Render.WrapStrategy),
		zap.String("preview_store", storeName))

	return render.NewEngine(validator.New(), gen, preview.NewPublisher(store, gen, cfg.Server.PublicBaseURL), logger)
}
