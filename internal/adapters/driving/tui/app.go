// Package tui implements the interactive configuration browser.
package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/maildeck/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/maildeck/internal/core/domain"
	"github.com/custodia-labs/maildeck/internal/core/ports/driving"
)

// Key constants for key handling.
const (
	keyUp    = "up"
	keyDown  = "down"
	keyEnter = "enter"
	keyEsc   = "esc"
)

// App is the configuration browser model.
type App struct {
	styles *styles.Styles
	config driving.ConfigService

	keys     []string
	selected int

	editing bool
	input   textinput.Model

	status string
	err    error

	width  int
	height int
}

// NewApp creates the configuration browser over the given ports.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil || ports.Config == nil {
		return nil, errors.New("config service is required")
	}

	input := textinput.New()
	input.Placeholder = "new value"
	input.CharLimit = 512

	return &App{
		styles: styles.DefaultStyles(),
		config: ports.Config,
		keys:   ports.Config.Keys(),
		input:  input,
	}, nil
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil
	case tea.KeyMsg:
		if a.editing {
			return a.updateEditing(msg)
		}
		return a.updateBrowsing(msg)
	}
	return a, nil
}

func (a *App) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case keyUp, "k":
		if a.selected > 0 {
			a.selected--
		}
	case keyDown, "j":
		if a.selected < len(a.keys)-1 {
			a.selected++
		}
	case keyEnter:
		if entry, ok := a.selectedEntry(); ok {
			a.editing = true
			a.status = ""
			a.err = nil
			a.input.SetValue(entry.Display())
			a.input.Focus()
			return a, textinput.Blink
		}
	case "d":
		a.deleteSelected()
	case "r":
		a.refresh()
	}
	return a, nil
}

func (a *App) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		a.editing = false
		a.input.Blur()
		return a, nil
	case keyEnter:
		a.editing = false
		a.input.Blur()
		a.saveSelected(a.input.Value())
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("Maildeck Configuration"))
	b.WriteString("\n\n")

	if len(a.keys) == 0 {
		b.WriteString(a.styles.Muted.Render("  no configuration entries"))
		b.WriteString("\n")
	}

	for i, key := range a.keys {
		entry, _ := a.config.Get(key)
		line := fmt.Sprintf("%-24s %-8s %s", key, entry.Kind(), entry.Display())
		if i == a.selected {
			b.WriteString(a.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(a.styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if a.editing {
		b.WriteString("\n")
		b.WriteString(a.styles.Normal.Render("New value: "))
		b.WriteString(a.input.View())
		b.WriteString("\n")
	}

	if a.err != nil {
		b.WriteString("\n")
		b.WriteString(a.styles.Error.Render(a.err.Error()))
		b.WriteString("\n")
	} else if a.status != "" {
		b.WriteString("\n")
		b.WriteString(a.styles.Success.Render(a.status))
		b.WriteString("\n")
	}

	b.WriteString(a.styles.Help.Render("enter edit · d delete · r refresh · q quit"))
	return b.String()
}

// selectedEntry returns the entry under the cursor.
func (a *App) selectedEntry() (domain.Entry, bool) {
	if a.selected < 0 || a.selected >= len(a.keys) {
		return domain.Entry{}, false
	}
	entry, err := a.config.Get(a.keys[a.selected])
	if err != nil {
		return domain.Entry{}, false
	}
	return entry, true
}

// saveSelected stores the edited value, keeping the entry's kind.
func (a *App) saveSelected(raw string) {
	entry, ok := a.selectedEntry()
	if !ok {
		return
	}
	key := a.keys[a.selected]

	value, err := coerceInput(entry.Kind(), raw)
	if err != nil {
		a.err = err
		return
	}

	if err := a.config.Set(key, value, true); err != nil {
		a.err = err
		return
	}
	a.err = nil
	a.status = fmt.Sprintf("saved %s", key)
}

// deleteSelected removes the entry under the cursor.
func (a *App) deleteSelected() {
	if a.selected < 0 || a.selected >= len(a.keys) {
		return
	}
	key := a.keys[a.selected]

	if err := a.config.Delete(key, true); err != nil {
		a.err = err
		return
	}
	a.err = nil
	a.status = fmt.Sprintf("removed %s", key)
	a.refresh()
}

// refresh re-reads the key set and clamps the cursor.
func (a *App) refresh() {
	a.keys = a.config.Keys()
	if a.selected >= len(a.keys) {
		a.selected = len(a.keys) - 1
	}
	if a.selected < 0 {
		a.selected = 0
	}
}

// coerceInput parses the edited text according to the entry's kind so
// editing never silently changes an entry's type.
func coerceInput(kind domain.Kind, raw string) (any, error) {
	switch kind {
	case domain.KindInteger:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("not an integer: %q", raw)
		}
		return n, nil
	case domain.KindList:
		parts := strings.Split(raw, ",")
		items := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				items = append(items, trimmed)
			}
		}
		return items, nil
	default:
		return raw, nil
	}
}
