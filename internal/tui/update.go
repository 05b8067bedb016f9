package tui

import (
	"strings"

	"docspell/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// MsgRunReady indicates that the check has completed.
type MsgRunReady model.RunResult

// MsgError indicates the check failed.
type MsgError error

// Update handles events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		m.DetailsViewport.Width = msg.Width/2 - 4
		m.DetailsViewport.Height = msg.Height - 8 // minus title/footer/borders
		m.refreshDetails()
		return m, nil

	case MsgRunReady:
		m.Loading = false
		m.Result = model.RunResult(msg)
		m.rebuildItems()
		return m, nil

	case MsgError:
		m.Err = msg
		m.Loading = false
		return m, nil

	case tea.KeyMsg:
		if m.InputMode {
			switch msg.Type {
			case tea.KeyEnter:
				m.InputMode = false
				m.InputBuffer.Blur()
				m.Filter = strings.TrimSpace(m.InputBuffer.Value())
				m.rebuildItems()
				return m, nil
			case tea.KeyEsc:
				m.InputMode = false
				m.InputBuffer.Blur()
				m.InputBuffer.SetValue("")
				m.Filter = ""
				m.rebuildItems()
				return m, nil
			}
			m.InputBuffer, cmd = m.InputBuffer.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			if m.Filter != "" {
				m.InputBuffer.SetValue("")
				m.Filter = ""
				m.rebuildItems()
			}
		case "up", "k":
			if m.SelectedIdx > 0 {
				m.SelectedIdx--
				m.refreshDetails()
			}
		case "down", "j":
			if m.SelectedIdx < len(m.Items)-1 {
				m.SelectedIdx++
				m.refreshDetails()
			}
		case "c":
			m.ShowClean = !m.ShowClean
			m.rebuildItems()
		case "/":
			m.InputMode = true
			m.InputBuffer.Focus()
			m.InputBuffer.SetValue(m.Filter)
			return m, textinput.Blink
		case "pgup", "pgdown":
			m.DetailsViewport, cmd = m.DetailsViewport.Update(msg)
			return m, cmd
		}
	}

	return m, cmd
}

// rebuildItems recomputes the visible rows from Result, ShowClean and Filter.
func (m *AppModel) rebuildItems() {
	term := strings.ToLower(m.Filter)
	var items []item
	for fi, fr := range m.Result.Files {
		var rows []item
		for li, lr := range fr.Lines {
			if term != "" && !hasWord(lr.Words, term) {
				continue
			}
			rows = append(rows, item{File: fi, Line: li})
		}
		if len(rows) == 0 && !(fr.Clean() && m.ShowClean && term == "") {
			continue
		}
		items = append(items, item{File: fi, Line: -1})
		items = append(items, rows...)
	}
	m.Items = items

	if m.SelectedIdx >= len(m.Items) {
		m.SelectedIdx = max(len(m.Items)-1, 0)
	}
	m.refreshDetails()
}

func hasWord(words []model.Word, term string) bool {
	for _, w := range words {
		if strings.Contains(strings.ToLower(string(w)), term) {
			return true
		}
	}
	return false
}

// selected returns the file and line report under the cursor. The line
// report is nil on a file header.
func (m AppModel) selected() (*model.FileReport, *model.LineReport) {
	if m.SelectedIdx >= len(m.Items) {
		return nil, nil
	}
	it := m.Items[m.SelectedIdx]
	fr := &m.Result.Files[it.File]
	if it.Line < 0 {
		return fr, nil
	}
	return fr, &fr.Lines[it.Line]
}

func (m *AppModel) refreshDetails() {
	m.DetailsViewport.SetContent(m.renderDetails())
	m.DetailsViewport.GotoTop()
}
