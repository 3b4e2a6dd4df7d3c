package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/arithtrainer/internal/ui/theme"
)

// numberRunes are the characters a decimal answer can contain.
const numberRunes = "0123456789.-+eE"

// TextInput wraps bubbles/textinput with app styling.
type TextInput struct {
	Model      textinput.Model
	NumberOnly bool
	MaxWidth   int
	submitted  bool
	valid      bool
}

// NewTextInput creates a new styled text input.
func NewTextInput(placeholder string, numberOnly bool, maxWidth int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()

	if maxWidth > 0 {
		ti.CharLimit = maxWidth
	}

	return TextInput{
		Model:      ti,
		NumberOnly: numberOnly,
		MaxWidth:   maxWidth,
	}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages. With NumberOnly set, printable keys that cannot
// appear in a decimal number are dropped.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		key := kmsg.String()
		if t.NumberOnly && len(key) == 1 && !strings.ContainsAny(key, numberRunes) {
			return t, nil
		}
		if len(key) == 1 {
			t.submitted = false
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input, followed by a check or cross after Submit.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.submitted {
		if t.valid {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// Submit marks the input as submitted with a validation result.
func (t *TextInput) Submit(valid bool) {
	t.submitted = true
	t.valid = valid
}

// Clear empties the field and keeps the last submit mark.
func (t *TextInput) Clear() {
	t.Model.SetValue("")
}
