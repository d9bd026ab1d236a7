package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foliocraft/foliocraft-backend/internal/assets/domain"
	"github.com/foliocraft/foliocraft-backend/internal/assets/service"
	"github.com/foliocraft/foliocraft-backend/internal/auth"
)

type Handler struct {
	svc     *service.AssetService
	maxSize int64
}

func New(svc *service.AssetService, maxSize int64) *Handler {
	return &Handler{svc: svc, maxSize: maxSize}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.upload)
	rg.DELETE("", h.delete)
}

// upload expects a multipart form with the image in "file".
func (h *Handler) upload(c *gin.Context) {
	// leave room for the multipart envelope
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxSize+64<<10)

	fh, err := c.FormFile("file")
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeError(c, domain.ErrTooLarge)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "file is required"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "unreadable file"})
		return
	}
	defer f.Close()

	up, err := h.svc.Upload(c.Request.Context(), auth.UserDBID(c), f, fh.Size)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "asset": up})
}

func (h *Handler) delete(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "url is required"})
		return
	}

	queued, err := h.svc.Delete(c.Request.Context(), auth.UserDBID(c), url)
	if err != nil {
		writeError(c, err)
		return
	}
	if queued {
		c.JSON(http.StatusAccepted, gin.H{"ok": true, "queued": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "queued": false})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrUnsupportedType), errors.Is(err, domain.ErrEmpty):
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrForeignURL):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "asset storage unavailable"})
	}
}
