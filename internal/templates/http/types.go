package http

import (
	"github.com/foliocraft/foliocraft-backend/internal/render"
	"github.com/foliocraft/foliocraft-backend/internal/templates/service"
)

// Handler bundles the dependencies for template HTTP endpoints.
type Handler struct {
	svc    *service.TemplateService
	engine *render.Engine
}

func New(svc *service.TemplateService, engine *render.Engine) *Handler {
	return &Handler{svc: svc, engine: engine}
}

type createReq struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	ThumbnailURL  string `json:"thumbnail_url"`
	ComponentCode string `json:"component_code"`
}

type updateReq struct {
	Name          *string `json:"name,omitempty"`
	Description   *string `json:"description,omitempty"`
	Category      *string `json:"category,omitempty"`
	ThumbnailURL  *string `json:"thumbnail_url,omitempty"`
	ComponentCode *string `json:"component_code,omitempty"`
	IsActive      *bool   `json:"is_active,omitempty"`
}

type previewReq struct {
	Customizations map[string]string `json:"customizations"`
}
