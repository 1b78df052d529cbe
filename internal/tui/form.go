package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type field struct {
	label  string
	secret bool
	value  string
}

// form is a column of text inputs with one focused at a time.
type form struct {
	labels []string
	inputs []textinput.Model
	focus  int
}

func newForm(fields ...field) form {
	f := form{
		labels: make([]string, len(fields)),
		inputs: make([]textinput.Model, len(fields)),
	}

	for i, fd := range fields {
		in := textinput.New()
		in.Placeholder = fd.label
		in.CharLimit = 120
		in.SetValue(fd.value)
		in.Cursor.SetMode(cursor.CursorStatic)

		if fd.secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}

		f.labels[i] = fd.label
		f.inputs[i] = in
	}

	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}

	return f
}

func (f form) next() form {
	if len(f.inputs) == 0 {
		return f
	}

	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % len(f.inputs)
	f.inputs[f.focus].Focus()

	return f
}

func (f form) update(msg tea.Msg) (form, tea.Cmd) {
	if len(f.inputs) == 0 {
		return f, nil
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)

	return f, cmd
}

func (f form) values() []string {
	out := make([]string, len(f.inputs))
	for i, in := range f.inputs {
		out[i] = strings.TrimSpace(in.Value())
	}

	return out
}

func (f form) view(s Styles) string {
	var b strings.Builder

	for i, in := range f.inputs {
		label := s.Muted.Render(f.labels[i])
		if i == f.focus {
			label = s.Accent.Render(f.labels[i])
		}

		b.WriteString(label + "\n" + in.View() + "\n\n")
	}

	return b.String()
}
