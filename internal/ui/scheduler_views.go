package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"meetsched/internal/i18n"
	"meetsched/internal/meeting"
	"meetsched/internal/ui/components"
)

func tOr(id, fallback string, data ...map[string]any) string {
	return i18n.TOr(id, fallback, data...)
}

// errorText localizes a validation message by its code, falling back to
// the message the validator produced
func errorText(fe meeting.FieldError) string {
	field := fe.Field
	if strings.HasPrefix(field, string(meeting.FieldParticipants)+".") {
		field = string(meeting.FieldParticipants)
	}
	return tOr("validation."+field+"."+fe.Code, fe.Message)
}

func (m *SchedulerApp) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(components.Primary).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(tOr("form.heading", "Schedule a meeting")))
	b.WriteString("\n\n")

	if m.flow.Phase() == meeting.PhaseConfirmed {
		b.WriteString(m.renderConfirmed())
	} else {
		b.WriteString(m.renderForm())
	}

	b.WriteString("\n\n")
	if m.status != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(components.Secondary).Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.renderHelpBar())

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m *SchedulerApp) renderForm() string {
	var content strings.Builder
	errs := m.flow.Errors()

	line := func(r row, label, value string) {
		content.WriteString(m.renderLabel(r, label))
		content.WriteString(value)
		if fe, ok := errs[errorKey(r)]; ok {
			content.WriteString("\n")
			content.WriteString(lipgloss.NewStyle().Width(13).Render(""))
			content.WriteString(lipgloss.NewStyle().Foreground(components.Danger).Render(errorText(fe)))
		}
		content.WriteString("\n")
	}

	hint := func(r row, text string) string {
		if m.focused() == r {
			return lipgloss.NewStyle().Foreground(components.Muted).Render("  " + text)
		}
		return ""
	}

	line(row{kind: rowTitle}, tOr("form.field.title", "Title"), m.title.View())
	line(row{kind: rowDescription}, tOr("form.field.description", "Description"), m.description.View())
	line(row{kind: rowDate}, tOr("form.field.date", "Date"), m.date.View()+hint(row{kind: rowDate}, "↑↓←→ ⌫"))
	line(row{kind: rowDuration}, tOr("form.field.duration", "Duration"), m.duration.View())
	line(row{kind: rowTimezone}, tOr("form.field.timezone", "Timezone"), m.timezone.View())
	line(row{kind: rowPriority}, tOr("form.field.priority", "Priority"), m.priority.View())
	line(row{kind: rowTheme}, tOr("form.field.theme", "Theme"), m.renderThemeSwatch()+" "+m.theme.View())
	line(row{kind: rowTemplate}, tOr("form.field.template", "Template"), m.template.View()+hint(row{kind: rowTemplate}, "enter: "+tOr("help.apply", "apply")))

	content.WriteString("\n")
	for i := range m.participants {
		label := ""
		if i == 0 {
			label = tOr("form.field.participants", "Participants")
		}
		r := row{kind: rowParticipant, index: i}
		line(r, label, m.participants[i].View()+hint(r, "ctrl+d: "+tOr("help.remove", "remove")))
	}
	addLabel := ""
	if len(m.participants) == 0 {
		addLabel = tOr("form.field.participants", "Participants")
	}
	line(row{kind: rowAddParticipant}, addLabel, m.renderAction(row{kind: rowAddParticipant}, "+ "+tOr("form.add_participant", "Add participant")))

	content.WriteString("\n")
	costStyle := lipgloss.NewStyle().Foreground(components.Success).Bold(true)
	content.WriteString(lipgloss.NewStyle().Width(13).Foreground(components.Muted).Render(tOr("form.field.cost", "Est. cost")))
	content.WriteString(costStyle.Render(meeting.FormatCost(m.flow.Draft().Cost(m.opts.HourlyRate))))

	if s := m.renderSuggestions(); s != "" {
		content.WriteString("\n\n")
		content.WriteString(s)
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(components.Primary).
		Padding(1, 2).
		Width(64)

	var b strings.Builder
	b.WriteString(boxStyle.Render(content.String()))
	b.WriteString("\n\n")
	b.WriteString(m.renderButtons())
	return b.String()
}

func (m *SchedulerApp) renderLabel(r row, label string) string {
	labelStyle := lipgloss.NewStyle().Width(13).Foreground(components.Muted)
	if m.focused() == r {
		return labelStyle.Foreground(components.Primary).Bold(true).Render(label)
	}
	return labelStyle.Render(label)
}

func (m *SchedulerApp) renderAction(r row, text string) string {
	if m.focused() == r {
		return lipgloss.NewStyle().Background(components.Primary).Foreground(components.Text).Render(text)
	}
	return lipgloss.NewStyle().Foreground(components.Secondary).Render(text)
}

func (m *SchedulerApp) renderThemeSwatch() string {
	accent, ok := components.ThemeAccents[m.flow.Draft().ThemeColor]
	if !ok {
		return " "
	}
	return lipgloss.NewStyle().Foreground(accent[0]).Render("●")
}

func (m *SchedulerApp) renderSuggestions() string {
	var b strings.Builder
	headStyle := lipgloss.NewStyle().Bold(true).Foreground(components.Text)

	switch m.flow.Phase() {
	case meeting.PhaseAwaitingSuggestions:
		m.spinner.Style = components.SpinnerStyle()
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(lipgloss.NewStyle().Foreground(components.Muted).Render(tOr("suggest.loading", "Finding available times...")))

	case meeting.PhaseFailed:
		errStyle := lipgloss.NewStyle().Foreground(components.Danger)
		b.WriteString(errStyle.Render(tOr("suggest.failed", "Couldn't fetch times, try again.")))
		if err := m.flow.Err(); err != nil {
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().Foreground(components.Muted).Render(err.Error()))
		}

	case meeting.PhaseSuggestionsShown:
		labels := m.flow.Suggestions()
		if len(labels) == 0 {
			b.WriteString(lipgloss.NewStyle().Foreground(components.Muted).Italic(true).Render(tOr("suggest.none", "No times available. Adjust the details and submit again.")))
			break
		}
		b.WriteString(headStyle.Render(tOr("suggest.heading", "Suggested times")))
		for i, label := range labels {
			b.WriteString("\n")
			r := row{kind: rowSuggestion, index: i}
			mark := "○ "
			if label == m.flow.Selected() {
				mark = "● "
			}
			prefix := "  "
			style := lipgloss.NewStyle().Foreground(components.Text)
			if m.focused() == r {
				prefix = lipgloss.NewStyle().Foreground(components.Primary).Render("▸ ")
				style = style.Bold(true)
			}
			b.WriteString(prefix + style.Render(mark+label))
		}
	}
	return b.String()
}

func (m *SchedulerApp) renderButtons() string {
	selectedBtn := lipgloss.NewStyle().
		Bold(true).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 2)
	unselectedBtn := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(components.Muted).
		Padding(0, 2).
		Foreground(components.Muted)

	label := tOr("form.find_times", "Find times")
	if m.flow.Phase() == meeting.PhaseSuggestionsShown && m.flow.Selected() != "" {
		label = tOr("form.schedule", "Schedule meeting")
	}

	var submitBtn, resetBtn string
	switch {
	case m.flow.Phase() == meeting.PhaseAwaitingSuggestions:
		submitBtn = unselectedBtn.Faint(true).Render(label)
	case m.focused().kind == rowSubmit:
		submitBtn = selectedBtn.BorderForeground(components.Primary).Background(components.Primary).Foreground(lipgloss.Color("#FFFFFF")).Render(label)
	default:
		submitBtn = unselectedBtn.Render(label)
	}
	if m.focused().kind == rowReset {
		resetBtn = selectedBtn.BorderForeground(components.Muted).Background(components.Muted).Foreground(lipgloss.Color("#FFFFFF")).Render(tOr("form.reset", "Reset"))
	} else {
		resetBtn = unselectedBtn.Render(tOr("form.reset", "Reset"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, submitBtn, "  ", resetBtn)
}

func (m *SchedulerApp) renderConfirmed() string {
	rec, _ := m.flow.Record()

	var b strings.Builder
	if m.celebrate {
		b.WriteString(m.confetti.View())
		b.WriteString("\n")
	}

	var content strings.Builder
	labelStyle := lipgloss.NewStyle().Foreground(components.Muted).Width(13)
	valueStyle := lipgloss.NewStyle().Foreground(components.Text)

	content.WriteString(lipgloss.NewStyle().Bold(true).Foreground(components.Success).Render("🎉 " + tOr("confirm.heading", "Meeting scheduled!")))
	content.WriteString("\n\n")

	fields := []struct{ label, value string }{
		{tOr("form.field.title", "Title"), rec.Title},
		{tOr("form.field.date", "Date"), rec.Date},
		{tOr("form.field.time", "Time"), rec.Time},
		{tOr("form.field.duration", "Duration"), rec.Duration + " min"},
		{tOr("form.field.timezone", "Timezone"), rec.Timezone},
		{tOr("form.field.priority", "Priority"), string(rec.Priority)},
		{tOr("form.field.participants", "Participants"), strings.Join(rec.Participants, ", ")},
	}
	for _, f := range fields {
		content.WriteString(labelStyle.Render(f.label))
		content.WriteString(valueStyle.Render(f.value))
		content.WriteString("\n")
	}
	if rec.Description != "" {
		content.WriteString(labelStyle.Render(tOr("form.field.description", "Description")))
		content.WriteString(valueStyle.Render(rec.Description))
		content.WriteString("\n")
	}

	if m.emitErr != nil {
		content.WriteString("\n")
		content.WriteString(lipgloss.NewStyle().Foreground(components.Danger).Render(fmt.Sprintf("%s: %v", tOr("common.error", "Error"), m.emitErr)))
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(components.Success).
		Padding(1, 2).
		Width(64)
	b.WriteString(boxStyle.Render(content.String()))
	return b.String()
}

func (m *SchedulerApp) renderHelpBar() string {
	helpStyle := lipgloss.NewStyle().Foreground(components.Muted)
	keyStyle := lipgloss.NewStyle().Bold(true).Foreground(components.Secondary)

	help := []string{
		keyStyle.Render("tab") + " " + tOr("help.next", "next"),
		keyStyle.Render("←/→") + " " + tOr("help.change", "change"),
		keyStyle.Render("enter") + " " + tOr("help.select", "select"),
		keyStyle.Render("ctrl+s") + " " + tOr("help.submit", "submit"),
		keyStyle.Render("ctrl+r") + " " + tOr("help.reset", "reset"),
		keyStyle.Render("esc") + " " + tOr("help.quit", "quit"),
	}
	return helpStyle.Render(strings.Join(help, "  "))
}
