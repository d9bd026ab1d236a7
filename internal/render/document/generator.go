// Package document assembles the self-contained HTML page that mounts a
// wrapped template component.
package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/foliocraft/foliocraft-backend/internal/render/domain"
	"github.com/foliocraft/foliocraft-backend/internal/render/wrapper"
)

const (
	// DataGlobal is the window property holding the customization map.
	DataGlobal = "__PORTFOLIO_DATA__"
	RootID     = "root"

	ReactURL    = "https://unpkg.com/react@18.2.0/umd/react.production.min.js"
	ReactDOMURL = "https://unpkg.com/react-dom@18.2.0/umd/react-dom.production.min.js"
	BabelURL    = "https://unpkg.com/@babel/standalone@7.23.5/babel.min.js"
)

const baseStyles = `*, *::before, *::after { box-sizing: border-box; }
      html, body { margin: 0; padding: 0; }
      body {
        font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
        line-height: 1.5;
        -webkit-font-smoothing: antialiased;
      }
      img { max-width: 100%; display: block; }`

var scriptEscaper = strings.NewReplacer(
	"<", `\u003c`,
	">", `\u003e`,
	"&", `\u0026`,
)

// EscapeCustomizations serialises the map as a JSON object literal that can
// sit inside a <script> element without closing it. Keys come out sorted, so
// equal maps always give equal output.
func EscapeCustomizations(c map[string]string) (string, error) {
	if c == nil {
		c = map[string]string{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(c); err != nil {
		return "", fmt.Errorf("encode customizations: %w", err)
	}

	return scriptEscaper.Replace(strings.TrimSuffix(buf.String(), "\n")), nil
}

type Generator struct {
	wrapper wrapper.Wrapper
	title   string
}

type Option func(*Generator)

func WithWrapper(w wrapper.Wrapper) Option {
	return func(g *Generator) { g.wrapper = w }
}

func WithTitle(title string) Option {
	return func(g *Generator) { g.title = title }
}

func New(opts ...Option) *Generator {
	g := &Generator{wrapper: wrapper.Regex{}, title: "Portfolio"}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate does not validate rc.ComponentCode; callers run the validator first.
func (g *Generator) Generate(rc domain.RenderContext) (string, error) {
	data, err := EscapeCustomizations(rc.Customizations)
	if err != nil {
		return "", err
	}
	wrapped := g.wrapper.Wrap(rc.ComponentCode)

	var b strings.Builder
	b.Grow(len(wrapped) + len(data) + 1536)

	fmt.Fprintf(&b, `<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="UTF-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1.0" />
    <title>%s</title>
    <style>
      %s
    </style>
    <script crossorigin src="%s"></script>
    <script crossorigin src="%s"></script>
    <script src="%s"></script>
  </head>
  <body>
    <div id="%s"></div>
    <script>
      window.%s = %s;
    </script>
    <script type="text/babel" data-presets="react">
%s

const __portfolioRoot = ReactDOM.createRoot(document.getElementById("%s"));
__portfolioRoot.render(<PortfolioComponent customizations={window.%s} />);
    </script>
  </body>
</html>
`,
		htmlTitle(g.title), baseStyles, ReactURL, ReactDOMURL, BabelURL,
		RootID, DataGlobal, data, wrapped, RootID, DataGlobal)

	return b.String(), nil
}

var titleEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func htmlTitle(s string) string {
	return titleEscaper.Replace(s)
}
