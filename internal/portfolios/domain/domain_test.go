package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidSlug(t *testing.T) {
	for _, s := range []string{"jane", "jane-doe", "a1-b2-c3"} {
		assert.True(t, ValidSlug(s), s)
	}
	for _, s := range []string{"", "ab", "Jane", "jane--doe", "-jane", "jane-", "jane_doe", strings.Repeat("a", 65)} {
		assert.False(t, ValidSlug(s), s)
	}
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "jane-doe-s-portfolio", Slugify("  Jane Doe's Portfolio!! "))
	assert.Equal(t, "", Slugify("***"))
	assert.LessOrEqual(t, len(Slugify(strings.Repeat("ab ", 60))), MaxSlugLen-6)
}

func TestSuffixedSlug(t *testing.T) {
	s, err := SuffixedSlug("jane")
	require.NoError(t, err)
	assert.Regexp(t, `^jane-\d{5}$`, s)
	assert.True(t, ValidSlug(s))

	s, err = SuffixedSlug("")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(s, "portfolio-"))
}

func TestCustomizationsValidate(t *testing.T) {
	assert.NoError(t, Customizations{"title": "Hi", "hero.color": "#fff", "_x": ""}.Validate())
	assert.NoError(t, Customizations(nil).Validate())

	assert.ErrorIs(t, Customizations{"bad key": "x"}.Validate(), ErrInvalidCustomizations)
	assert.ErrorIs(t, Customizations{"1st": "x"}.Validate(), ErrInvalidCustomizations)
	assert.ErrorIs(t, Customizations{"k": strings.Repeat("x", MaxFieldValueLen+1)}.Validate(), ErrInvalidCustomizations)
	assert.ErrorIs(t, Customizations{"k": string([]byte{0xff, 0xfe})}.Validate(), ErrInvalidCustomizations)
}
