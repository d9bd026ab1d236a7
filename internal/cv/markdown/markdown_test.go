package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTML(t *testing.T) {
	r := Default()

	out, err := r.HTML("Built **fast** services\n\n- Go\n- ~~Java~~")
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, "<strong>fast</strong>")
	assert.Contains(t, s, "<li>Go</li>")
	assert.Contains(t, s, "<del>Java</del>")
}

func TestHTML_StripsDangerousMarkup(t *testing.T) {
	r := New()

	out, err := r.HTML("hi <script>alert(1)</script> [x](javascript:alert(1)) <img src=x onerror=alert(1)>")
	require.NoError(t, err)
	s := string(out)
	assert.NotContains(t, s, "<script")
	assert.NotContains(t, s, "javascript:")
	assert.NotContains(t, s, "onerror")
}

func TestHTML_Links(t *testing.T) {
	out, err := New().HTML("[site](https://example.com)")
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(out), `rel="nofollow noopener"`) || strings.Contains(string(out), `rel="nofollow"`))
	assert.Contains(t, string(out), `href="https://example.com"`)
}

func TestHTML_Empty(t *testing.T) {
	out, err := New().HTML("")
	require.NoError(t, err)
	assert.Empty(t, out)
}
