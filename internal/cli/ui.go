package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // headings, cursor
	colorGreen  = lipgloss.Color("35")  // success, drawn edges
	colorYellow = lipgloss.Color("220") // marked source node
	colorRed    = lipgloss.Color("167") // errors
	colorBlue   = lipgloss.Color("75")  // links, commands
	colorWhite  = lipgloss.Color("255") // values
	colorGray   = lipgloss.Color("245") // secondary text
	colorDim    = lipgloss.Color("240") // muted text, borders
)

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleLink      = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
)

const iconArrow = "→"

// =============================================================================
// printer - styled status lines
// =============================================================================

// printer writes the one-line status messages commands print on success.
// Logging goes through the logger; a printer is for results.
type printer struct {
	w io.Writer
}

func newPrinter(w io.Writer) printer { return printer{w: w} }

func (p printer) status(icon string, color lipgloss.Color, format string, args ...any) {
	fmt.Fprintln(p.w, lipgloss.NewStyle().Foreground(color).Render(icon)+" "+fmt.Sprintf(format, args...))
}

func (p printer) success(format string, args ...any) { p.status("✓", colorGreen, format, args...) }
func (p printer) failure(format string, args ...any) { p.status("✗", colorRed, format, args...) }
func (p printer) info(format string, args ...any)    { p.status("›", colorGray, format, args...) }

// detail prints an indented muted line under the previous status.
func (p printer) detail(format string, args ...any) {
	fmt.Fprintln(p.w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// file prints a written output path.
func (p printer) file(path string) {
	fmt.Fprintln(p.w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// stats prints diagram counts and whether every artifact came from the
// cache, e.g. "10 nodes · 11 edges · cached".
func (p printer) stats(nodes, edges int, cached bool) {
	status := lipgloss.NewStyle().Foreground(colorGray).Render("fresh")
	if cached {
		status = lipgloss.NewStyle().Foreground(colorGreen).Render("cached")
	}
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d nodes", nodes)),
		StyleDim.Render(fmt.Sprintf("%d edges", edges)),
		status,
	}
	fmt.Fprintln(p.w, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

// nextStep suggests a follow-up command.
func (p printer) nextStep(description, cmd string) {
	fmt.Fprintln(p.w, StyleDim.Render(description+":")+" "+lipgloss.NewStyle().Foreground(colorBlue).Render(cmd))
}
