package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	depsio "github.com/matzehuels/gitdeps/pkg/io"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - library names
	colorGreen  = lipgloss.Color("35")  // Green - success, present
	colorYellow = lipgloss.Color("220") // Amber - warnings, missing
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - source URLs
	colorWhite  = lipgloss.Color("255") // Bright white - paths
	colorGray   = lipgloss.Color("245") // Gray - labels
	colorDim    = lipgloss.Color("240") // Dim gray - refs, details
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for headings in the interactive browser.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for library names.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleLink for source URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// StyleDim for refs and detail lines.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for paths.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning text.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleLabel       = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	stylePresent     = lipgloss.NewStyle().Foreground(colorGreen)
	styleMissing     = lipgloss.NewStyle().Foreground(colorYellow)
)

const (
	iconArrow   = "→"
	iconPresent = "present"
	iconMissing = "missing"
)

// status is the leading icon of a console line.
type status struct {
	icon  string
	style lipgloss.Style
}

var (
	statusSuccess = status{"✓", lipgloss.NewStyle().Foreground(colorGreen)}
	statusError   = status{"✗", lipgloss.NewStyle().Foreground(colorRed)}
	statusWarning = status{"!", lipgloss.NewStyle().Foreground(colorYellow)}
	statusInfo    = status{"›", lipgloss.NewStyle().Foreground(colorGray)}
)

// =============================================================================
// Status Output
// =============================================================================

func printStatus(w io.Writer, s status, msg string) {
	fmt.Fprintln(w, s.style.Render(s.icon)+" "+msg)
}

func printSuccess(w io.Writer, format string, args ...any) {
	printStatus(w, statusSuccess, fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	printStatus(w, statusError, fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	printStatus(w, statusWarning, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(w io.Writer, format string, args ...any) {
	printStatus(w, statusInfo, fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line under a status line.
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a path that was written or cloned.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printKeyValue prints a value behind a fixed-width label.
func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintln(w, styleLabel.Render(key)+" "+StyleValue.Render(value))
}

// =============================================================================
// Libraries
// =============================================================================

// presence renders whether a library directory exists.
func presence(present bool) string {
	if present {
		return stylePresent.Render(iconPresent)
	}
	return styleMissing.Render(iconMissing)
}

// printLibrary prints one library as "name  url [ref] → path  status".
func printLibrary(w io.Writer, lib depsio.Library) {
	fmt.Fprintf(w, "%s  %s %s %s %s  %s\n",
		StyleHighlight.Render(lib.Name),
		StyleLink.Render(lib.URL),
		StyleDim.Render("["+lib.Ref+"]"),
		StyleDim.Render(iconArrow),
		StyleValue.Render(lib.Path),
		presence(lib.Present),
	)
}

// statCount is one entry for printStats.
type statCount struct {
	n     int
	label string
}

// printStats prints counts on a single line, skipping zero values.
func printStats(w io.Writer, counts ...statCount) {
	var parts []string
	for _, c := range counts {
		if c.n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", c.n, c.label))
		}
	}
	if len(parts) == 0 {
		return
	}
	fmt.Fprintln(w, "  "+StyleDim.Render(strings.Join(parts, " · ")))
}
