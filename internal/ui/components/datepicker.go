package components

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// MinYear is the earliest year the picker scrolls to
const MinYear = 1900

// DatePickerField represents which part of the date is focused
type DatePickerField int

const (
	FieldMonth DatePickerField = iota
	FieldDay
	FieldYear
)

var monthNames = []string{"", "Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// DatePicker is a scrollable month/day/year picker. It can be cleared, in
// which case Value returns the zero time.
type DatePicker struct {
	year       int
	month      int // 1-12
	day        int // 1-31
	set        bool
	focused    bool
	focusField DatePickerField
	loc        *time.Location
}

// NewDatePicker creates a picker on the given day
func NewDatePicker(t time.Time) DatePicker {
	d := DatePicker{focusField: FieldDay, loc: t.Location()}
	d.SetDate(t)
	return d
}

func (d *DatePicker) Focus() { d.focused = true }

func (d *DatePicker) Blur() { d.focused = false }

func (d DatePicker) Focused() bool { return d.focused }

// SetDate moves the picker to t. A zero time clears it.
func (d *DatePicker) SetDate(t time.Time) {
	if t.IsZero() {
		d.set = false
		return
	}
	d.year, d.month, d.day = t.Year(), int(t.Month()), t.Day()
	d.loc = t.Location()
	d.set = true
}

// Value returns the picked day at midnight, or the zero time when cleared
func (d DatePicker) Value() time.Time {
	if !d.set {
		return time.Time{}
	}
	loc := d.loc
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.year, time.Month(d.month), d.day, 0, 0, 0, 0, loc)
}

// ValueString returns the date as YYYY-MM-DD, or "" when cleared
func (d DatePicker) ValueString() string {
	if !d.set {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
}

func (d DatePicker) daysInMonth() int {
	return time.Date(d.year, time.Month(d.month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (d *DatePicker) clampDay() {
	if maxDay := d.daysInMonth(); d.day > maxDay {
		d.day = maxDay
	}
	if d.day < 1 {
		d.day = 1
	}
}

// Update handles key messages while focused. changed reports whether the
// value moved.
func (d DatePicker) Update(msg tea.Msg) (DatePicker, bool) {
	if !d.focused {
		return d, false
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, false
	}

	switch key.String() {
	case "up", "k", "+":
		d.step(1)
		return d, true
	case "down", "j", "-":
		d.step(-1)
		return d, true
	case "left", "h":
		d.focusField = (d.focusField + 2) % 3
	case "right", "l":
		d.focusField = (d.focusField + 1) % 3
	case "backspace", "delete":
		d.set = false
		return d, true
	}
	return d, false
}

// step moves the focused part by delta. A cleared picker comes back on today.
func (d *DatePicker) step(delta int) {
	if !d.set {
		d.SetDate(time.Now())
		return
	}

	switch d.focusField {
	case FieldYear:
		d.year += delta
		if d.year < MinYear {
			d.year = MinYear
		}
	case FieldMonth:
		d.month += delta
		if d.month > 12 {
			d.month = 1
			d.year++
		}
		if d.month < 1 {
			if d.year == MinYear {
				d.month = 1
			} else {
				d.month = 12
				d.year--
			}
		}
	case FieldDay:
		d.day += delta
		if d.day > d.daysInMonth() {
			d.day = 1
		}
		if d.day < 1 {
			d.day = d.daysInMonth()
		}
		return
	}
	d.clampDay()
}

func (d DatePicker) View() string {
	normalStyle := lipgloss.NewStyle().Foreground(Text)
	focusedStyle := lipgloss.NewStyle().Foreground(Text).Background(Primary).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(Muted)

	if !d.set {
		return dimStyle.Italic(true).Render("no date")
	}

	parts := []string{monthNames[d.month], fmt.Sprintf("%2d", d.day), fmt.Sprintf("%d", d.year)}
	for i := range parts {
		switch {
		case !d.focused:
			parts[i] = dimStyle.Render(parts[i])
		case DatePickerField(i) == d.focusField:
			parts[i] = focusedStyle.Render(parts[i])
		default:
			parts[i] = normalStyle.Render(parts[i])
		}
	}

	// "Jan 15, 2025"
	return parts[0] + " " + parts[1] + normalStyle.Render(", ") + parts[2]
}
