package components

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Picker cycles through a fixed list of options with left/right
type Picker struct {
	options []string
	labels  []string
	idx     int
	focused bool
}

// NewPicker creates a picker over options. labels, if given, are shown in
// place of the raw option values.
func NewPicker(options []string, labels []string) Picker {
	if len(labels) != len(options) {
		labels = options
	}
	return Picker{options: options, labels: labels}
}

func (p *Picker) Focus() { p.focused = true }

func (p *Picker) Blur() { p.focused = false }

func (p Picker) Focused() bool { return p.focused }

// Value returns the selected option, or "" when nothing is selected
func (p Picker) Value() string {
	if p.idx < 0 || p.idx >= len(p.options) {
		return ""
	}
	return p.options[p.idx]
}

// SetValue selects the option equal to v. Values not in the list clear the
// selection.
func (p *Picker) SetValue(v string) {
	for i, o := range p.options {
		if o == v {
			p.idx = i
			return
		}
	}
	p.idx = -1
}

func (p *Picker) Next() {
	if len(p.options) == 0 {
		return
	}
	p.idx = (p.idx + 1) % len(p.options)
}

func (p *Picker) Prev() {
	if len(p.options) == 0 {
		return
	}
	if p.idx <= 0 {
		p.idx = len(p.options) - 1
		return
	}
	p.idx--
}

// Update handles left/right while focused. changed reports whether the
// selection moved.
func (p Picker) Update(msg tea.Msg) (Picker, bool) {
	if !p.focused {
		return p, false
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "right", "l", " ":
			p.Next()
			return p, true
		case "left", "h":
			p.Prev()
			return p, true
		}
	}
	return p, false
}

func (p Picker) View() string {
	label := "—"
	if p.idx >= 0 && p.idx < len(p.labels) {
		label = p.labels[p.idx]
	}
	if !p.focused {
		return lipgloss.NewStyle().Foreground(TextDim).Render(fmt.Sprintf("  %s  ", label))
	}
	return lipgloss.NewStyle().Background(Primary).Foreground(Text).Render(fmt.Sprintf("◀ %s ▶", label))
}
