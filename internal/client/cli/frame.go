package cli

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/farmily/farmily/internal/client/models"
	"golang.org/x/term"
)

const defaultWidth = 80

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

func hasDarkBackground() bool {
	return lipgloss.HasDarkBackground()
}

type palette struct {
	accent lipgloss.Style
	text   lipgloss.Style
	muted  lipgloss.Style
	danger lipgloss.Style
	border lipgloss.Color
}

var (
	darkPalette = palette{
		accent: lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1")).Bold(true),
		text:   lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4")),
		muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c")),
		danger: lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8")),
		border: lipgloss.Color("#89b4fa"),
	}
	lightPalette = palette{
		accent: lipgloss.NewStyle().Foreground(lipgloss.Color("#40a02b")).Bold(true),
		text:   lipgloss.NewStyle().Foreground(lipgloss.Color("#4c4f69")),
		muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("#8c8fa1")),
		danger: lipgloss.NewStyle().Foreground(lipgloss.Color("#d20f39")),
		border: lipgloss.Color("#1e66f5"),
	}
)

// paletteFor maps the theme preference to colours. ThemeSystem follows the
// terminal background.
func paletteFor(theme models.Theme, hasDark func() bool) palette {
	switch theme {
	case models.ThemeDark:
		return darkPalette
	case models.ThemeLight:
		return lightPalette
	default:
		if hasDark() {
			return darkPalette
		}
		return lightPalette
	}
}

func (a *App) palette() palette {
	return paletteFor(a.themes.Current(), a.hasDark)
}

// renderContentFrame draws the remote content URL in a box spanning width
// columns.
func renderContentFrame(url string, width int, p palette) string {
	if width < 20 {
		width = 20
	}

	body := strings.Join([]string{
		p.accent.Render("Farmily"),
		"",
		p.text.Render(url),
		"",
		p.muted.Render("type exit to quit"),
	}, "\n")

	// Width covers content and padding; the border adds one column per side.
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.border).
		Padding(1, 2).
		Width(width - 2).
		Render(body)
}
