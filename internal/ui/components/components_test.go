package components

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestDatePickerDayWraps(t *testing.T) {
	d := NewDatePicker(time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC))
	d.Focus()

	d, changed := d.Update(key("up"))
	if !changed || d.ValueString() != "2026-02-01" {
		t.Fatalf("day did not wrap: %s", d.ValueString())
	}
	d, _ = d.Update(key("down"))
	if d.ValueString() != "2026-02-28" {
		t.Fatalf("day did not wrap back: %s", d.ValueString())
	}
}

func TestDatePickerMonthClampsDay(t *testing.T) {
	d := NewDatePicker(time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC))
	d.Focus()
	d, _ = d.Update(key("left")) // day -> month

	d, _ = d.Update(key("up"))
	if d.ValueString() != "2026-02-28" {
		t.Fatalf("month step did not clamp day: %s", d.ValueString())
	}
}

func TestDatePickerYearFloor(t *testing.T) {
	d := NewDatePicker(time.Date(1900, time.March, 1, 0, 0, 0, 0, time.UTC))
	d.Focus()
	d, _ = d.Update(key("right")) // day -> year

	d, _ = d.Update(key("down"))
	if d.ValueString() != "1900-03-01" {
		t.Fatalf("year went below floor: %s", d.ValueString())
	}
}

func TestDatePickerClear(t *testing.T) {
	d := NewDatePicker(time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC))
	d.Focus()

	d, _ = d.Update(key("backspace"))
	if !d.Value().IsZero() || d.ValueString() != "" {
		t.Fatalf("expected cleared picker, got %s", d.ValueString())
	}
	if d.View() == "" {
		t.Fatalf("cleared view should say so")
	}

	d, _ = d.Update(key("up"))
	if d.Value().IsZero() {
		t.Fatalf("stepping a cleared picker should restore a date")
	}
}

func TestDatePickerIgnoresKeysWhenBlurred(t *testing.T) {
	d := NewDatePicker(time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC))
	if _, changed := d.Update(key("up")); changed {
		t.Fatalf("blurred picker changed")
	}
}

func TestPickerCycles(t *testing.T) {
	p := NewPicker([]string{"15", "30", "45"}, []string{"15 min", "30 min", "45 min"})
	p.SetValue("45")
	p.Focus()

	p, changed := p.Update(key("right"))
	if !changed || p.Value() != "15" {
		t.Fatalf("expected wrap to 15, got %q", p.Value())
	}
	p, _ = p.Update(key("left"))
	if p.Value() != "45" {
		t.Fatalf("expected wrap back to 45, got %q", p.Value())
	}

	p.SetValue("90")
	if p.Value() != "" {
		t.Fatalf("unknown value should clear, got %q", p.Value())
	}
	p.Next()
	if p.Value() != "15" {
		t.Fatalf("Next from cleared = %q", p.Value())
	}
}

func TestConfettiRunsOut(t *testing.T) {
	c := NewConfetti(1, 40, 10, 30, 42)
	if c.Visible() == 0 {
		t.Fatalf("expected particles on the first frame")
	}

	var cmd tea.Cmd
	for i := 0; i < confettiFrames; i++ {
		c, cmd = c.Update(ConfettiTickMsg{ID: 1})
	}
	if !c.Done() || cmd != nil {
		t.Fatalf("animation should stop after %d frames", confettiFrames)
	}

	before := c
	c, _ = c.Update(ConfettiTickMsg{ID: 1})
	if c.frame != before.frame {
		t.Fatalf("finished animation kept stepping")
	}
}

func TestConfettiIgnoresOtherBursts(t *testing.T) {
	c := NewConfetti(2, 40, 10, 5, 7)
	c, cmd := c.Update(ConfettiTickMsg{ID: 1})
	if c.frame != 0 || cmd != nil {
		t.Fatalf("stepped on a tick for another burst")
	}
}

func TestConfettiDeterministic(t *testing.T) {
	a := NewConfetti(1, 30, 8, 12, 99).Step().Step()
	b := NewConfetti(1, 30, 8, 12, 99).Step().Step()
	if a.View() != b.View() {
		t.Fatalf("same seed produced different frames")
	}
}
