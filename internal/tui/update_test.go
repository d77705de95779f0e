package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hdrtidy/internal/report"
)

func sampleReport() *report.Report {
	return &report.Report{
		Root: "/src",
		Libs: []report.LibReport{
			{
				Lib:     "Tracker",
				Family:  "detection",
				Deps:    map[string][]string{"detection": {"Zone"}, "xstream": {"Stream"}},
				Unknown: []string{"boost"},
				Files: []report.FileReport{
					{Path: "/src/detection/libs/Tracker/Tracker.cpp", Lines: []int{1, 2}},
					{Path: "/src/detection/inc/Tracker/Tracker.h", Lines: []int{3}},
				},
				Unregistered: map[string][]string{"xstream": {"Stream"}},
			},
			{Lib: "Zone", Family: "detection"},
		},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInitialModelListsLibraries(t *testing.T) {
	m := InitialModel(sampleReport(), nil, 30)
	assert.Equal(t, ViewLibList, m.ActiveView)
	items := m.list.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Tracker (detection)", items[0].(LibItem).Title())
	assert.Equal(t, "2 files, 3 includes flattened, 2 deps, 1 unknown", items[0].(LibItem).Description())
	assert.Equal(t, "Zone", items[1].(LibItem).FilterValue())
}

func TestEnterShowsDetail(t *testing.T) {
	m := InitialModel(sampleReport(), nil, 30)

	m, cmd := Update(m, key("enter"))
	assert.Nil(t, cmd)
	assert.Equal(t, ViewLibDetail, m.ActiveView)
	require.NotNil(t, m.Selected)
	assert.Equal(t, "Tracker", m.Selected.Lib)
	assert.Len(t, m.files.Rows(), 2)

	out := ModelView(m)
	assert.Contains(t, out, "Tracker (detection)")
	assert.Contains(t, out, "Depends on xstream:")
	assert.Contains(t, out, "not registered: Stream")
	assert.Contains(t, out, "boost")
}

func TestEscReturnsToList(t *testing.T) {
	m := InitialModel(sampleReport(), nil, 30)
	m, _ = Update(m, key("enter"))
	m, _ = Update(m, key("esc"))
	assert.Equal(t, ViewLibList, m.ActiveView)
	assert.Nil(t, m.Selected)
}

func TestQuit(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c"} {
		t.Run(k, func(t *testing.T) {
			m := InitialModel(sampleReport(), nil, 30)
			m, cmd := Update(m, key(k))
			assert.Equal(t, ViewQuitting, m.ActiveView)
			require.NotNil(t, cmd)
			assert.Equal(t, tea.QuitMsg{}, cmd())
			assert.Equal(t, "Goodbye!\n", ModelView(m))
		})
	}
}

func TestQuitFromDetail(t *testing.T) {
	m := InitialModel(sampleReport(), nil, 30)
	m, _ = Update(m, key("enter"))
	m, cmd := Update(m, key("q"))
	assert.Equal(t, ViewQuitting, m.ActiveView)
	assert.NotNil(t, cmd)
}

func TestReload(t *testing.T) {
	store := report.NewMemoryStore()
	require.NoError(t, store.Save(&report.Report{Libs: []report.LibReport{{Lib: "Alarm", Family: "detection"}}}))

	m := InitialModel(sampleReport(), store, 30)
	m, cmd := Update(m, key("r"))
	require.NotNil(t, cmd)

	m, _ = Update(m, cmd())
	items := m.list.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Alarm", items[0].(LibItem).Report.Lib)
}

func TestReloadError(t *testing.T) {
	m := InitialModel(sampleReport(), nil, 30)
	m, _ = Update(m, errMsg{errors.New("disk gone")})
	assert.Contains(t, ModelView(m), "Reload failed: disk gone")
	assert.Len(t, m.list.Items(), 2)
}

func TestWindowResize(t *testing.T) {
	m := InitialModel(sampleReport(), nil, 30)
	m, _ = Update(m, key("enter"))
	m, cmd := Update(m, tea.WindowSizeMsg{Width: 120, Height: 50})
	assert.Nil(t, cmd)
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 50, m.height)
	assert.Len(t, m.files.Rows(), 2)
}
