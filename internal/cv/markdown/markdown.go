// Package markdown turns user-written Markdown into HTML that is safe to
// embed in a page.
package markdown

import (
	"bytes"
	"html/template"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func New() *Renderer {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)

	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
		policy: policy,
	}
}

// HTML renders src. Raw HTML in the source is dropped by goldmark and
// anything that survives conversion is filtered through the UGC policy.
func (r *Renderer) HTML(src string) (template.HTML, error) {
	if src == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes())), nil
}

var (
	defaultOnce sync.Once
	defaultR    *Renderer
)

// Default returns a shared Renderer; goldmark and bluemonday are safe for
// concurrent use once built.
func Default() *Renderer {
	defaultOnce.Do(func() { defaultR = New() })
	return defaultR
}
