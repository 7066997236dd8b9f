// Package terminal hosts pocketvault in a text terminal: the status bar is a
// single styled line and palettes render as color swatches.
package terminal

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/pocketvault/pocketvault/pkg/pocketvault/theme"
)

const (
	lightGlyph = "#FFFFFF"
	darkGlyph  = "#0B0B12"
)

// StatusBar draws a one-line bar to out each time its style changes.
type StatusBar struct {
	mu       sync.Mutex
	out      io.Writer
	renderer *lipgloss.Renderer
	title    string
	width    int
	style    theme.StatusBarStyle
}

var _ theme.StatusBar = (*StatusBar)(nil)

// NewStatusBar returns a bar writing to out. Color support is detected from
// out, so redirected output stays plain text.
func NewStatusBar(out io.Writer, title string, width int) *StatusBar {
	return &StatusBar{
		out:      out,
		renderer: lipgloss.NewRenderer(out),
		title:    title,
		width:    width,
	}
}

func (b *StatusBar) SetStyle(style theme.StatusBarStyle) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.style = style
	fmt.Fprintln(b.out, b.renderLocked())
}

// Style returns the last style applied, or "" before the first SetStyle.
func (b *StatusBar) Style() theme.StatusBarStyle {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.style
}

func (b *StatusBar) renderLocked() string {
	fg, bg := lightGlyph, darkGlyph
	if b.style == theme.StatusBarDarkContent {
		fg, bg = darkGlyph, lightGlyph
	}

	s := b.renderer.NewStyle().
		Foreground(lipgloss.Color(fg)).
		Background(lipgloss.Color(bg)).
		Bold(true).
		PaddingLeft(1).
		PaddingRight(1)
	if b.width > 0 {
		s = s.Width(b.width)
	}
	return s.Render(b.title)
}

// RenderPalette renders one swatch line per color role of t.
func RenderPalette(r *lipgloss.Renderer, t theme.Theme) string {
	var sb strings.Builder
	for _, role := range t.Colors.Roles() {
		swatch := r.NewStyle().Background(lipgloss.Color(role.Hex)).Render("    ")
		label := r.NewStyle().Foreground(lipgloss.Color(t.Colors.TextSecondary)).Render(fmt.Sprintf("%-14s %s", role.Name, role.Hex))
		sb.WriteString(swatch)
		sb.WriteString(" ")
		sb.WriteString(label)
		sb.WriteString("\n")
	}
	return sb.String()
}
