package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"

	"hdrtidy/internal/report"
)

// View is the screen the TUI is currently showing.
type View int

const (
	ViewLibList View = iota
	ViewLibDetail
	ViewQuitting
)

// LibItem is a library shown in the list.
type LibItem struct {
	Report report.LibReport
}

func (i LibItem) Title() string {
	return fmt.Sprintf("%s (%s)", i.Report.Lib, i.Report.Family)
}

func (i LibItem) Description() string {
	return fmt.Sprintf("%d files, %d includes flattened, %d deps, %d unknown",
		len(i.Report.Files), i.Report.Rewrites(), i.Report.DepCount(), len(i.Report.Unknown))
}

func (i LibItem) FilterValue() string { return i.Report.Lib }

// model is the Bubbletea model for the review TUI.
type model struct {
	list       list.Model
	files      table.Model
	ActiveView View
	Selected   *report.LibReport

	store  report.Store
	report *report.Report
	err    error

	height int // Track terminal height for dynamic resizing
	width  int // Track terminal width for dynamic resizing
}

// InitialModel creates the TUI model for a loaded report.
func InitialModel(r *report.Report, store report.Store, height int) model {
	m := model{
		store:  store,
		report: r,
		height: height,
		width:  defaultWidth,
	}
	m.list = initList(libItems(r), listTitle(r), height)
	m.files = initFileTable(nil, m.width, height)
	return m
}

const defaultWidth = 80

func libItems(r *report.Report) []list.Item {
	if r == nil {
		return nil
	}
	items := make([]list.Item, len(r.Libs))
	for i, lr := range r.Libs {
		items[i] = LibItem{Report: lr}
	}
	return items
}

func listTitle(r *report.Report) string {
	if r == nil || r.Root == "" {
		return "hdrtidy report"
	}
	title := "hdrtidy: " + r.Root
	if r.DryRun {
		title += " (dry run)"
	}
	return title
}

func initList(items []list.Item, title string, height int) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), defaultWidth, max(height-4, 5))
	l.Title = title
	return l
}

func initFileTable(files []report.FileReport, width, height int) table.Model {
	columns := []table.Column{
		{Title: "File", Width: max(width-24, 20)},
		{Title: "Lines", Width: 16},
	}
	rows := make([]table.Row, 0, len(files))
	for _, f := range files {
		rows = append(rows, table.Row{truncate(f.Path, max(width-24, 20)), joinInts(f.Lines)})
	}
	return table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(height/2, 5)),
	)
}
