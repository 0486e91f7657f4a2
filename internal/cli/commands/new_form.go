package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/leapstack-labs/newsroom/pkg/news"
)

// errFormCanceled reports that the user backed out of the prompt.
var errFormCanceled = errors.New("entry creation canceled")

var (
	formTitleStyle    = lipgloss.NewStyle().Bold(true)
	formCursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("81"))
	formSelectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true)
	formHelpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

const (
	formPhaseSection = iota
	formPhaseDescription
)

// entryForm is the interactive prompt behind `newsroom new` when no
// message is given at a terminal: pick a section, then type the entry.
type entryForm struct {
	issue    int
	sections []news.Section
	cursor   int
	input    textinput.Model
	phase    int
	done     bool
	canceled bool
}

func newEntryForm(sections []news.Section, start, issue int) entryForm {
	ti := textinput.New()
	ti.Placeholder = "Describe the change from the user's point of view"
	ti.CharLimit = 500
	ti.Width = 72

	return entryForm{
		issue:    issue,
		sections: sections,
		cursor:   start,
		input:    ti,
	}
}

func (f entryForm) Init() tea.Cmd {
	return nil
}

func (f entryForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			f.canceled = true
			return f, tea.Quit

		case tea.KeyUp:
			if f.phase == formPhaseSection && f.cursor > 0 {
				f.cursor--
			}
			return f, nil

		case tea.KeyDown:
			if f.phase == formPhaseSection && f.cursor < len(f.sections)-1 {
				f.cursor++
			}
			return f, nil

		case tea.KeyEnter:
			if f.phase == formPhaseSection {
				f.phase = formPhaseDescription
				f.input.Focus()
				return f, textinput.Blink
			}
			if strings.TrimSpace(f.input.Value()) != "" {
				f.done = true
				return f, tea.Quit
			}
			return f, nil
		}
	}

	if f.phase == formPhaseDescription {
		var cmd tea.Cmd
		f.input, cmd = f.input.Update(msg)
		return f, cmd
	}
	return f, nil
}

func (f entryForm) View() string {
	var b strings.Builder

	b.WriteString(formTitleStyle.Render(fmt.Sprintf("News entry for issue #%d", f.issue)))
	b.WriteString("\n\n")

	if f.phase == formPhaseSection {
		b.WriteString("Section:\n")
		for i, s := range f.sections {
			if i == f.cursor {
				b.WriteString(formCursorStyle.Render("> ") + formSelectedStyle.Render(s.Title))
			} else {
				b.WriteString("  " + s.Title)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n" + formHelpStyle.Render("↑/↓ to move, enter to select, esc to cancel") + "\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("Section: %s\n\n", formSelectedStyle.Render(f.sections[f.cursor].Title)))
	b.WriteString("Description:\n")
	b.WriteString(f.input.View())
	b.WriteString("\n\n" + formHelpStyle.Render("enter to create, esc to cancel") + "\n")
	return b.String()
}

// runEntryForm runs the prompt and returns the chosen section and text.
func runEntryForm(sections []news.Section, start, issue int) (news.Section, string, error) {
	prog := tea.NewProgram(newEntryForm(sections, start, issue))
	final, err := prog.Run()
	if err != nil {
		return news.Section{}, "", fmt.Errorf("prompt failed: %w", err)
	}

	form, ok := final.(entryForm)
	if !ok || form.canceled || !form.done {
		return news.Section{}, "", errFormCanceled
	}
	return form.sections[form.cursor], strings.TrimSpace(form.input.Value()), nil
}
