package tui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"hdrtidy/internal/report"
)

// Message types for Bubbletea update loop
type reportLoadedMsg struct{ report *report.Report }
type errMsg struct{ err error }

// reloadCmd reads the report again from its store.
func reloadCmd(store report.Store) tea.Cmd {
	return func() tea.Msg {
		r, err := store.Load()
		if err != nil {
			return errMsg{err}
		}
		return reportLoadedMsg{r}
	}
}

// Update handles all Bubbletea update logic for the TUI model.
func Update(m model, msg tea.Msg) (model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return HandleKeyMsg(m, msg)
	case reportLoadedMsg:
		m.report = msg.report
		m.err = nil
		m.list = initList(libItems(msg.report), listTitle(msg.report), m.height)
		m.list.SetWidth(m.width)
		m.Selected = nil
		m.ActiveView = ViewLibList
		return m, nil
	case errMsg:
		m.err = msg.err
		return m, nil
	case tea.WindowSizeMsg:
		return handleWindowResize(m, msg)
	default:
		if m.ActiveView == ViewLibList {
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func HandleKeyMsg(m model, msg tea.KeyMsg) (model, tea.Cmd) {
	k := msg.String()

	switch m.ActiveView {
	case ViewQuitting:
		return m, nil

	case ViewLibDetail:
		switch k {
		case "ctrl+c", "q":
			m.ActiveView = ViewQuitting
			return m, tea.Quit
		case "esc", "backspace":
			m.ActiveView = ViewLibList
			m.Selected = nil
			return m, nil
		default:
			var cmd tea.Cmd
			m.files, cmd = m.files.Update(msg)
			return m, cmd
		}

	case ViewLibList:
		// While filtering, every key belongs to the filter input.
		if m.list.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			return m, cmd
		}
		switch k {
		case "ctrl+c", "q":
			m.ActiveView = ViewQuitting
			return m, tea.Quit
		case "enter":
			if item, ok := m.list.SelectedItem().(LibItem); ok {
				lr := item.Report
				m.Selected = &lr
				m.files = initFileTable(lr.Files, m.width, m.height)
				m.ActiveView = ViewLibDetail
			}
			return m, nil
		case "r":
			if m.store != nil {
				return m, reloadCmd(m.store)
			}
			return m, nil
		default:
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func handleWindowResize(m model, msg tea.WindowSizeMsg) (model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.list.SetSize(msg.Width, max(msg.Height-4, 5))
	if m.Selected != nil {
		m.files = initFileTable(m.Selected.Files, m.width, m.height)
	}
	return m, nil
}
