// Package tui renders the todo list in the terminal. All list state lives in
// the state.Store; the model only tracks the cursor and the inline add input,
// and re-reads the store after every mutation completes.
package tui

import (
	"context"
	"fmt"
	"strings"

	"todo_webapp/internal/client/state"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// syncMsg tells the model a store operation finished and the view is stale.
type syncMsg struct{}

type Model struct {
	store *state.Store

	cursor int
	adding bool
	ti     textinput.Model
	busy   bool
}

func New(store *state.Store) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "What needs doing?"
	ti.CharLimit = 255

	return Model{store: store, ti: ti}
}

func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		m.store.Load(context.Background())
		return syncMsg{}
	}
}

func (m Model) addCmd(text string) tea.Cmd {
	return func() tea.Msg {
		m.store.Add(context.Background(), text)
		return syncMsg{}
	}
}

func (m Model) toggleCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		m.store.Toggle(context.Background(), id)
		return syncMsg{}
	}
}

func (m Model) removeCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		m.store.Remove(context.Background(), id)
		return syncMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.adding {
		return m.updateAdding(msg)
	}

	switch msg := msg.(type) {
	case syncMsg:
		m.busy = false
		if n := len(m.store.Todos()); m.cursor >= n && n > 0 {
			m.cursor = n - 1
		}
		return m, nil

	case tea.KeyMsg:
		todos := m.store.Todos()
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(todos)-1 {
				m.cursor++
			}
		case " ", "enter":
			if !m.busy && m.cursor < len(todos) {
				m.busy = true
				return m, m.toggleCmd(todos[m.cursor].ID)
			}
		case "d":
			if !m.busy && m.cursor < len(todos) {
				m.busy = true
				return m, m.removeCmd(todos[m.cursor].ID)
			}
		case "a":
			m.adding = true
			m.ti.SetValue("")
			return m, m.ti.Focus()
		case "r":
			m.busy = true
			return m, m.loadCmd()
		}
	}
	return m, nil
}

func (m Model) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch x := msg.(type) {
	case syncMsg:
		m.busy = false
		return m, nil
	case tea.KeyMsg:
		switch x.String() {
		case "enter":
			text := strings.TrimSpace(m.ti.Value())
			m.adding = false
			m.ti.Blur()
			if text == "" {
				return m, nil
			}
			m.busy = true
			return m, m.addCmd(text)
		case "esc":
			m.adding = false
			m.ti.Blur()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	todos := m.store.Todos()

	done := 0
	for _, t := range todos {
		if t.Completed {
			done++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s   %s %d  %s %d  %s %d\n\n",
		titleStyle.Render("Todos"),
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), len(todos)-done,
		accentStyle.Render("Total"), len(todos),
	)

	if m.store.Loading() {
		b.WriteString(mutedStyle.Render("loading...") + "\n")
	}

	if len(todos) == 0 && !m.store.Loading() {
		b.WriteString(mutedStyle.Render("nothing here, press a to add") + "\n")
	}

	for i, t := range todos {
		box := mutedStyle.Render(boxUnchecked)
		text := t.Text
		if t.Completed {
			box = successStyle.Render(boxChecked)
			text = doneStyle.Render(text)
		}
		prefix := "  "
		if i == m.cursor {
			prefix = selectedStyle.Render("> ")
		}
		fmt.Fprintf(&b, "%s%s %s\n", prefix, box, text)
	}

	if m.adding {
		b.WriteString("\n" + m.ti.View() + "\n")
	}

	if errMsg := m.store.Err(); errMsg != "" {
		b.WriteString("\n" + errorStyle.Render("✖ "+errMsg) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("space toggle • a add • d delete • r refresh • q quit") + "\n")
	return b.String()
}
