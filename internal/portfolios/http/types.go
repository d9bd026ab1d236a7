package http

import (
	"github.com/foliocraft/foliocraft-backend/internal/portfolios/service"
)

// Handler bundles the dependencies for portfolio HTTP endpoints.
type Handler struct {
	svc *service.PortfolioService
}

func New(svc *service.PortfolioService) *Handler {
	return &Handler{svc: svc}
}

type createReq struct {
	TemplateID string `json:"template_id"`
	Slug       string `json:"slug"`
	Title      string `json:"title"`
}

type updateReq struct {
	TemplateID  *string `json:"template_id,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Title       *string `json:"title,omitempty"`
	IsPublished *bool   `json:"is_published,omitempty"`
}

type customizationsReq struct {
	Customizations map[string]string `json:"customizations"`
}
