// Package document renders a CV as a standalone printable HTML page.
package document

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/foliocraft/foliocraft-backend/internal/cv/domain"
	"github.com/foliocraft/foliocraft-backend/internal/cv/markdown"
)

//go:embed cv.html.tmpl
var cvTemplate string

type Renderer struct {
	tmpl *template.Template
}

func New(md *markdown.Renderer) *Renderer {
	funcs := template.FuncMap{
		"markdown":  md.HTML,
		"monthYear": monthYear,
		"period":    period,
	}
	return &Renderer{tmpl: template.Must(template.New("cv").Funcs(funcs).Parse(cvTemplate))}
}

// Render writes the whole CV. A missing profile renders an empty header.
func (r *Renderer) Render(cv *domain.CV) ([]byte, error) {
	data := *cv
	if data.Profile == nil {
		data.Profile = &domain.Profile{}
	}
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, &data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func monthYear(d *domain.Date) string {
	if d == nil {
		return ""
	}
	return d.Format("Jan 2006")
}

func period(start, end *domain.Date, current bool) string {
	from, to := monthYear(start), monthYear(end)
	if current {
		to = "Present"
	}
	switch {
	case from == "" && to == "":
		return ""
	case from == "":
		return to
	case to == "":
		return from
	}
	return from + " - " + to
}
