package domain

import "time"

// Portfolio is a user's published page: one template plus customizations,
// addressed publicly by Slug.
type Portfolio struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	TemplateID  string    `json:"template_id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreatePortfolioRequest struct {
	UserID     string
	TemplateID string
	Slug       string
	Title      string
}

// UpdatePortfolioRequest leaves nil fields unchanged.
type UpdatePortfolioRequest struct {
	TemplateID  *string
	Slug        *string
	Title       *string
	IsPublished *bool
}

// Customizations maps a template field name to its value for one
// (portfolio, template) pair.
type Customizations map[string]string
