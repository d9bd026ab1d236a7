package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	DB        string    `json:"db,omitempty"`
	Redis     string    `json:"redis,omitempty"`
}

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	serviceName string
	version     string
	db          Pinger
	rdb         redis.UniversalClient
}

func NewHealthHandler(serviceName, version string, db *pgxpool.Pool, rdb redis.UniversalClient) *HealthHandler {
	h := &HealthHandler{serviceName: serviceName, version: version, rdb: rdb}
	if db != nil {
		h.db = db
	}
	return h
}

// HealthCheck reports "degraded" with 503 when a configured dependency does
// not answer within a second.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
	defer cancel()

	dbStatus := "disabled"
	if h.db != nil {
		dbStatus = status(h.db.Ping(ctx))
	}
	redisStatus := "disabled"
	if h.rdb != nil {
		redisStatus = status(h.rdb.Ping(ctx).Err())
	}

	overall, code := "healthy", http.StatusOK
	if dbStatus == "down" || redisStatus == "down" {
		overall, code = "degraded", http.StatusServiceUnavailable
	}

	c.JSON(code, HealthResponse{
		Status:    overall,
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		DB:        dbStatus,
		Redis:     redisStatus,
	})
}

func status(err error) string {
	if err != nil {
		return "down"
	}
	return "up"
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
