package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FFFF"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#777777"))
	borderedView = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#555555")).
			Padding(1)
)

// ModelView renders the TUI model's view as a string.
func ModelView(m model) string {
	switch m.ActiveView {
	case ViewQuitting:
		return quittingView()
	case ViewLibDetail:
		return libDetailView(m)
	default:
		return libListView(m)
	}
}

func quittingView() string {
	return "Goodbye!\n"
}

func libListView(m model) string {
	parts := []string{borderedView.Render(m.list.View())}
	if m.err != nil {
		parts = append(parts, errorStyle.Render("Reload failed: "+m.err.Error()))
	}
	parts = append(parts, subtleStyle.Render("enter: details  r: reload  /: filter  q: quit"))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func libDetailView(m model) string {
	lr := m.Selected
	if lr == nil {
		return libListView(m)
	}
	width := max(m.width-6, 20)

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s (%s)\n", headerStyle.Render("Library:"), lr.Lib, lr.Family)
	if d := lr.Duration(); d > 0 {
		fmt.Fprintf(&b, "%s %s\n", headerStyle.Render("Took:"), d)
	}
	b.WriteString("\n")

	for _, fam := range lr.Families() {
		b.WriteString(headerStyle.Render("Depends on "+fam+":") + "\n")
		b.WriteString(wrapText(strings.Join(lr.Deps[fam], " "), width) + "\n")
		if names := lr.Unregistered[fam]; len(names) > 0 {
			b.WriteString(warnStyle.Render(wrapText("not registered: "+strings.Join(names, " "), width)) + "\n")
		}
	}
	if len(lr.Unknown) > 0 {
		b.WriteString(warnStyle.Render("Unknown libraries:") + "\n")
		b.WriteString(wrapText(strings.Join(lr.Unknown, " "), width) + "\n")
	}

	details := borderedView.Render(strings.TrimRight(b.String(), "\n"))
	files := headerStyle.Render(fmt.Sprintf("Rewritten files (%d):", len(lr.Files)))
	help := subtleStyle.Render("esc: back  q: quit")
	return lipgloss.JoinVertical(lipgloss.Left, details, files, m.files.View(), help)
}
