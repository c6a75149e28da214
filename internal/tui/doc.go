// Package tui renders the portfolio page in a terminal.
//
// It drives the same skill and project components as the web front end.
// Bubble Tea's Update loop is the single place state changes, and the
// animation continuations arrive as tea.Tick messages:
//
//	m := tui.New(tui.Options{Portfolio: p, Skills: view, Projects: gallery, Downloads: store})
//	if err := tui.Run(m); err != nil {
//	    // handle
//	}
//
// # Keys
//
//   - tab switches focus between skills and projects
//   - a opens the add input; enter submits it, esc clears it or closes it
//   - enter edits the selected skill; enter commits, esc cancels
//   - d deletes the selected skill after its exit animation
//   - s cycles the project sort mode (none, earliest, latest)
//   - r records a resume download
//   - q quits
//
// # Dependencies
//
// Uses the Charm libraries:
//   - github.com/charmbracelet/bubbletea - TUI framework
//   - github.com/charmbracelet/bubbles - text input
//   - github.com/charmbracelet/lipgloss - Styling
package tui
