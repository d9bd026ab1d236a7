package domain

import "time"

// RenderContext is the input of one render or preview request. It is built
// fresh per request and never mutated by the engine.
type RenderContext struct {
	ComponentCode  string            `json:"component_code"`
	Customizations map[string]string `json:"customizations"`
}

// ValidationResult reports every denylist or structural rule that matched.
type ValidationResult struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

// Blob is a published preview document.
type Blob struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id,omitempty"`
	ContentType string    `json:"content_type"`
	Content     []byte    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

// Handle references a published Blob. URL is what callers embed in an iframe.
type Handle struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

const HTMLContentType = "text/html; charset=utf-8"
