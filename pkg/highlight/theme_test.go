package highlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTheme(t *testing.T) {
	for _, name := range ThemeNames() {
		theme, err := ParseTheme(name)
		require.NoError(t, err)
		assert.Equal(t, name, theme.String())
	}

	_, err := ParseTheme("does-not-exist")
	assert.Error(t, err)
}

func TestThemeStyle(t *testing.T) {
	for _, name := range ThemeNames() {
		theme, err := ParseTheme(name)
		require.NoError(t, err)
		assert.NotNil(t, theme.Style())
	}
}

func TestThemeBackgroundColor(t *testing.T) {
	bg := ThemeSolarizedDark.BackgroundColor()
	assert.NotEmpty(t, bg)
	assert.Equal(t, byte('#'), bg[0])
}
