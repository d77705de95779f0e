// Package tui is an interactive viewer for cleaning reports.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"hdrtidy/internal/report"
)

// wrapText wraps input text to lines no longer than maxWidth display cells.
// It wraps on word boundaries to avoid breaking words when possible.
func wrapText(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return s
	}

	var lines []string
	for _, paragraph := range strings.Split(s, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		var line strings.Builder
		lineWidth := 0
		for _, word := range words {
			wordWidth := runewidth.StringWidth(word)
			if lineWidth > 0 && lineWidth+1+wordWidth > maxWidth {
				lines = append(lines, line.String())
				line.Reset()
				lineWidth = 0
			}
			if lineWidth > 0 {
				line.WriteByte(' ')
				lineWidth++
			}
			line.WriteString(word)
			lineWidth += wordWidth
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// truncate shortens s to maxWidth display cells, keeping its tail, which for
// a path is the part worth reading.
func truncate(s string, maxWidth int) string {
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	rs := []rune(s)
	width := 1 // the ellipsis
	i := len(rs)
	for i > 0 {
		w := runewidth.RuneWidth(rs[i-1])
		if width+w > maxWidth {
			break
		}
		width += w
		i--
	}
	return "…" + string(rs[i:])
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

// Init initializes the TUI model and returns any initial commands to run.
func (m model) Init() tea.Cmd {
	return nil
}

// Run loads the report from store and launches the review TUI.
func Run(store report.Store) error {
	r, err := store.Load()
	if err != nil {
		return fmt.Errorf("loading report: %w", err)
	}
	p := tea.NewProgram(&teaModelAdapter{InitialModel(r, store, 24)}, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// teaModelAdapter adapts our model to the tea.Model interface using Update and ModelView.
type teaModelAdapter struct {
	m model
}

func (a *teaModelAdapter) Init() tea.Cmd {
	return a.m.Init()
}

func (a *teaModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m2, cmd := Update(a.m, msg)
	a.m = m2
	return a, cmd
}

func (a *teaModelAdapter) View() string {
	return ModelView(a.m)
}
