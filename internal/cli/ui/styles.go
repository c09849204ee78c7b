package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	Primary   = lipgloss.Color("#60A5FA") // blue accent from the webapp
	Secondary = lipgloss.Color("#A78BFA") // violet
	Success   = lipgloss.Color("#10B981") // emerald
	Error     = lipgloss.Color("#EF4444") // red
	Muted     = lipgloss.Color("#6B7280") // gray
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	PartnerStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	SelfStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	SystemStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)
)

// Spinner style
var SpinnerStyle = lipgloss.NewStyle().Foreground(Primary)

// PrintError writes a styled error line.
func PrintError(message string) {
	fmt.Printf("%s %s\n", ErrorStyle.Render("✗"), message)
}

// PrintSuccess writes a styled success line.
func PrintSuccess(message string) {
	fmt.Printf("%s %s\n", SuccessStyle.Render("✓"), message)
}

// PrintSystem writes a muted status line.
func PrintSystem(message string) {
	fmt.Println(SystemStyle.Render(message))
}

// PrintPartnerChat renders an incoming chat line.
func PrintPartnerChat(from, text string) {
	fmt.Printf("%s %s\n", PartnerStyle.Render(from+":"), text)
}

// PrintSelfChat renders an outgoing chat line.
func PrintSelfChat(text string) {
	fmt.Printf("%s %s\n", SelfStyle.Render("you:"), text)
}
