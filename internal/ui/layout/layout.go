package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/pytutor/internal/ui/theme"
)

// Width is the width every block is rendered at.
const Width = 72

// RenderHeader renders the banner shown above the main menu.
func RenderHeader(title string, streak, badges int) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("PyTutor")

	center := lipgloss.NewStyle().
		Foreground(theme.Text).
		Render(title)

	right := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Render(fmt.Sprintf("★ %d day", streak)) +
		"   " +
		lipgloss.NewStyle().
			Foreground(theme.Accent).
			Render(fmt.Sprintf("◆ %d", badges))

	leftLen := lipgloss.Width(left)
	centerLen := lipgloss.Width(center)
	rightLen := lipgloss.Width(right)

	innerWidth := Width - 6 // border and padding

	leftGap := (innerWidth-centerLen)/2 - leftLen
	if leftGap < 1 {
		leftGap = 1
	}

	rightGap := innerWidth - leftLen - leftGap - centerLen - rightLen
	if rightGap < 1 {
		rightGap = 1
	}

	content := left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right
	return theme.Header.Width(Width).Render(content)
}

// RenderSection renders a section title with a rule beneath it.
func RenderSection(title string) string {
	rule := lipgloss.NewStyle().
		Foreground(theme.Border).
		Render(strings.Repeat("─", Width))
	return theme.Title.Render(title) + "\n" + rule
}

// RenderCard wraps content in a bordered card.
func RenderCard(content string) string {
	return theme.Card.Width(Width).Render(content)
}

// RenderError renders a one-line error message.
func RenderError(msg string) string {
	return theme.Incorrect.Render("✗ " + msg)
}

// RenderSuccess renders a one-line confirmation.
func RenderSuccess(msg string) string {
	return theme.Correct.Render("✓ " + msg)
}
