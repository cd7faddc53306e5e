package tui

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/owl-run/internal/core"
)

func TestRenderPlainTerminal(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColor(0, 0, "OWL", core.ColorBrightYellow)
	s.SetColor(5, 1, '▲', core.ColorBrightCyan)

	// A renderer writing to a non-terminal emits no escape sequences.
	r := NewScreenRenderer(lipgloss.NewRenderer(io.Discard))
	out := r.Render(s)
	assert.Equal(t, s.String(), out)
	assert.Equal(t, 2, len(strings.Split(out, "\n")))
}

func TestRenderUnknownColorFallsBack(t *testing.T) {
	s := core.NewScreen(3, 1)
	s.SetColor(0, 0, 'x', core.Color(250))
	r := NewScreenRenderer(lipgloss.NewRenderer(io.Discard))
	assert.Equal(t, "x  ", r.Render(s))
}

func TestPaletteCoversEveryColor(t *testing.T) {
	for c := core.ColorRed; c <= core.ColorBrown; c++ {
		_, ok := palette[c]
		assert.True(t, ok, "color %d has no palette entry", c)
	}
	assert.Equal(t, "130", palette[core.ColorBrown])
}
