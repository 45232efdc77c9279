// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/pyprov/pyprov/internal/doctor"
	"github.com/pyprov/pyprov/internal/provision"

	"github.com/charmbracelet/lipgloss"
)

// Color palette shared by all CLI output. Tuned for dark terminal backgrounds.
const (
	// ColorPrimary is purple, for titles and headers.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray, for subtitles and de-emphasized content.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorSuccess is green, for completed steps and passing checks.
	ColorSuccess = lipgloss.Color("#10B981")

	// ColorError is red, for failures.
	ColorError = lipgloss.Color("#EF4444")

	// ColorWarning is amber, for skipped steps and warnings.
	ColorWarning = lipgloss.Color("#F59E0B")

	// ColorHighlight is blue, for commands the user should type.
	ColorHighlight = lipgloss.Color("#3B82F6")

	// ColorVerbose is light gray, for supplementary details.
	ColorVerbose = lipgloss.Color("#9CA3AF")
)

var (
	// TitleStyle is for primary headers and section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle is for secondary headers and descriptions.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// SuccessStyle is for success messages and positive indicators.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// ErrorStyle is for error messages and failure indicators.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// WarningStyle is for warning messages and caution indicators.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// CmdStyle is for shell commands and config keys.
	CmdStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)

	// VerboseStyle is for verbose output and supplementary information.
	VerboseStyle = lipgloss.NewStyle().
			Foreground(ColorVerbose)

	// hintStyle is for the fix suggested under a failed check.
	hintStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true).
			PaddingLeft(4)
)

// stepMarker renders the status glyph of a provisioning step.
func stepMarker(s provision.StepStatus) string {
	switch s {
	case provision.StatusSucceeded:
		return SuccessStyle.Render("✓")
	case provision.StatusSkipped:
		return WarningStyle.Render("•")
	default:
		return ErrorStyle.Render("✗")
	}
}

// severityMarker renders the status glyph of a doctor check.
func severityMarker(s doctor.Severity) string {
	switch s {
	case doctor.SeverityOK:
		return SuccessStyle.Render("✓")
	case doctor.SeverityWarn:
		return WarningStyle.Render("!")
	default:
		return ErrorStyle.Render("✗")
	}
}
