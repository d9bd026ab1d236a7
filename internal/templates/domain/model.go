package domain

import "time"

// Template is an admin-authored portfolio layout. ComponentCode is the
// component source handed to the render engine.
type Template struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	ThumbnailURL  string    `json:"thumbnail_url"`
	ComponentCode string    `json:"component_code,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CreateTemplateRequest struct {
	Name          string
	Description   string
	Category      string
	ThumbnailURL  string
	ComponentCode string
	CreatedBy     string
}

// UpdateTemplateRequest leaves nil fields unchanged.
type UpdateTemplateRequest struct {
	Name          *string
	Description   *string
	Category      *string
	ThumbnailURL  *string
	ComponentCode *string
	IsActive      *bool
}

type ListFilter struct {
	Category    string
	IncludeCode bool
	ActiveOnly  bool
}
