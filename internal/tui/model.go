package tui

import (
	"docspell/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// item is one row of the findings list. Line is -1 for a file header.
type item struct {
	File int
	Line int
}

// AppModel holds the TUI state.
type AppModel struct {
	// Data
	Result  model.RunResult
	Loading bool
	Err     error
	run     func() (model.RunResult, error)

	// UI State
	Items       []item
	SelectedIdx int
	WindowSize  tea.WindowSizeMsg
	ShowClean   bool // List files without findings too

	// Word filter
	InputMode   bool
	InputBuffer textinput.Model
	Filter      string

	// Components
	DetailsViewport viewport.Model
}

// InitialModel returns the initial state. run performs the check; it is
// invoked once from Init.
func InitialModel(run func() (model.RunResult, error)) AppModel {
	ti := textinput.New()
	ti.Placeholder = "Word..."
	ti.CharLimit = 50
	ti.Width = 20

	return AppModel{
		Loading:         true,
		run:             run,
		InputBuffer:     ti,
		DetailsViewport: viewport.New(40, 10),
	}
}

// Init starts the check in the background.
func (m AppModel) Init() tea.Cmd {
	run := m.run
	return func() tea.Msg {
		res, err := run()
		if err != nil {
			return MsgError(err)
		}
		return MsgRunReady(res)
	}
}
