package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultStyles(t *testing.T) {
	styles := DefaultStyles()
	for _, name := range StyleNames {
		_, ok := styles[name]
		assert.True(t, ok, "missing style %s", name)
	}
	assert.True(t, styles.Get("Success").GetBold())
	assert.Equal(t, 3, styles.Get("Item").GetMarginLeft())
}

func TestLoadStyles(t *testing.T) {
	data := []byte(`
colors:
  red:
    light: "#ff0000"
    dark: "#aa0000"
styles:
  Error:
    bold: true
    foreground: red
  Loose:
    foreground: missing
`)
	styles, err := LoadStyles(data)
	require.NoError(t, err)

	assert.Equal(t, lipgloss.AdaptiveColor{Light: "#ff0000", Dark: "#aa0000"}, styles.Get("Error").GetForeground())
	assert.Equal(t, lipgloss.NoColor{}, styles.Get("Loose").GetForeground(), "unknown colors are ignored")

	_, err = LoadStyles([]byte("styles: [unclosed"))
	assert.Error(t, err)
}

func TestGetMissingStyle(t *testing.T) {
	assert.Equal(t, "plain", Styles{}.Get("Nope").Render("plain"))
}
