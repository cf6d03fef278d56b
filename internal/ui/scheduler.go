package ui

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"meetsched/internal/meeting"
	"meetsched/internal/sink"
	"meetsched/internal/ui/components"
)

// Suggester fetches suggested times for a request
type Suggester interface {
	Suggest(ctx context.Context, req meeting.Request) ([]string, error)
}

// Options configure a SchedulerApp
type Options struct {
	Suggester  Suggester
	Sink       sink.Sink
	HourlyRate float64
	DarkMode   bool
	Now        func() time.Time
}

type rowKind int

const (
	rowTitle rowKind = iota
	rowDescription
	rowDate
	rowDuration
	rowTimezone
	rowPriority
	rowTheme
	rowTemplate
	rowParticipant
	rowAddParticipant
	rowSuggestion
	rowSubmit
	rowReset
)

// row is one focusable line of the form. index is used by participant and
// suggestion rows.
type row struct {
	kind  rowKind
	index int
}

// Messages
type suggestionsMsg struct {
	gen    uint64
	labels []string
}

type suggestionsErrMsg struct {
	gen uint64
	err error
}

type recordEmittedMsg struct {
	err error
}

// SchedulerApp is the meeting form TUI model
type SchedulerApp struct {
	opts  Options
	flow  *meeting.Flow
	width int

	title        textinput.Model
	description  textinput.Model
	date         components.DatePicker
	duration     components.Picker
	timezone     components.Picker
	priority     components.Picker
	theme        components.Picker
	template     components.Picker
	participants []textinput.Model

	focusIdx   int
	spinner    spinner.Model
	confetti   components.Confetti
	celebrate  bool
	bursts     int
	status     string
	emitErr    error
	cancelSent context.CancelFunc
}

// NewSchedulerApp creates the form with a default draft
func NewSchedulerApp(opts Options) *SchedulerApp {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.HourlyRate == 0 {
		opts.HourlyRate = meeting.DefaultHourlyRate
	}

	s := spinner.New()
	s.Spinner = spinner.Dot

	m := &SchedulerApp{
		opts:    opts,
		flow:    meeting.NewFlow(opts.Now),
		spinner: s,
	}
	m.loadDraft()
	return m
}

// Flow exposes the underlying state machine
func (m *SchedulerApp) Flow() *meeting.Flow {
	return m.flow
}

// loadDraft rebuilds every input from the flow's draft
func (m *SchedulerApp) loadDraft() {
	d := m.flow.Draft()
	components.ApplyTheme(d.ThemeColor, m.opts.DarkMode)

	m.title = textinput.New()
	m.title.Placeholder = "Meeting title"
	m.title.CharLimit = 120
	m.title.SetValue(d.Title)

	m.description = textinput.New()
	m.description.Placeholder = "Description (optional)"
	m.description.CharLimit = 500
	m.description.SetValue(d.Description)

	m.date = components.NewDatePicker(d.Date)

	durations := make([]string, len(meeting.Durations))
	durationLabels := make([]string, len(meeting.Durations))
	for i, v := range meeting.Durations {
		durations[i] = strconv.Itoa(v)
		durationLabels[i] = strconv.Itoa(v) + " min"
	}
	m.duration = components.NewPicker(durations, durationLabels)

	m.timezone = components.NewPicker(meeting.Timezones, nil)

	priorities := make([]string, len(meeting.Priorities))
	for i, p := range meeting.Priorities {
		priorities[i] = string(p)
	}
	m.priority = components.NewPicker(priorities, nil)

	m.theme = components.NewPicker(meeting.ThemeColors, nil)

	names := make([]string, len(meeting.Templates))
	labels := make([]string, len(meeting.Templates))
	for i, t := range meeting.Templates {
		names[i] = t.Name
		labels[i] = t.Label
	}
	m.template = components.NewPicker(names, labels)

	m.syncChoices()
	m.rebuildParticipants()
	m.focusIdx = 0
	m.updateFocus()
}

// syncChoices moves the pickers to the draft's current values
func (m *SchedulerApp) syncChoices() {
	d := m.flow.Draft()
	m.duration.SetValue(strconv.Itoa(d.Duration))
	m.timezone.SetValue(d.Timezone)
	m.priority.SetValue(string(d.Priority))
	m.theme.SetValue(d.ThemeColor)
}

func (m *SchedulerApp) rebuildParticipants() {
	d := m.flow.Draft()
	m.participants = make([]textinput.Model, len(d.Participants))
	for i, p := range d.Participants {
		ti := textinput.New()
		ti.Placeholder = "name@example.com"
		ti.CharLimit = 254
		ti.SetValue(p)
		m.participants[i] = ti
	}
}

// rows lists the focusable lines in display order
func (m *SchedulerApp) rows() []row {
	rows := []row{
		{kind: rowTitle}, {kind: rowDescription}, {kind: rowDate},
		{kind: rowDuration}, {kind: rowTimezone}, {kind: rowPriority},
		{kind: rowTheme}, {kind: rowTemplate},
	}
	for i := range m.participants {
		rows = append(rows, row{kind: rowParticipant, index: i})
	}
	rows = append(rows, row{kind: rowAddParticipant})
	if m.flow.Phase() == meeting.PhaseSuggestionsShown {
		for i := range m.flow.Suggestions() {
			rows = append(rows, row{kind: rowSuggestion, index: i})
		}
	}
	return append(rows, row{kind: rowSubmit}, row{kind: rowReset})
}

func (m *SchedulerApp) focused() row {
	rows := m.rows()
	if m.focusIdx < 0 || m.focusIdx >= len(rows) {
		return rows[len(rows)-2]
	}
	return rows[m.focusIdx]
}

func (m *SchedulerApp) focusRow(kind rowKind, index int) {
	for i, r := range m.rows() {
		if r.kind == kind && r.index == index {
			m.focusIdx = i
			break
		}
	}
	m.updateFocus()
}

func (m *SchedulerApp) moveFocus(delta int) {
	n := len(m.rows())
	m.focusIdx = ((m.focusIdx+delta)%n + n) % n
	m.updateFocus()
}

func (m *SchedulerApp) updateFocus() {
	m.title.Blur()
	m.description.Blur()
	m.date.Blur()
	m.duration.Blur()
	m.timezone.Blur()
	m.priority.Blur()
	m.theme.Blur()
	m.template.Blur()
	for i := range m.participants {
		m.participants[i].Blur()
	}

	r := m.focused()
	switch r.kind {
	case rowTitle:
		m.title.Focus()
	case rowDescription:
		m.description.Focus()
	case rowDate:
		m.date.Focus()
	case rowDuration:
		m.duration.Focus()
	case rowTimezone:
		m.timezone.Focus()
	case rowPriority:
		m.priority.Focus()
	case rowTheme:
		m.theme.Focus()
	case rowTemplate:
		m.template.Focus()
	case rowParticipant:
		m.participants[r.index].Focus()
	}
}

func (m *SchedulerApp) Init() tea.Cmd {
	return textinput.Blink
}

func (m *SchedulerApp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if m.flow.Phase() != meeting.PhaseAwaitingSuggestions {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case suggestionsMsg:
		// Responses for superseded requests are dropped by the flow
		if m.flow.Resolve(msg.gen, msg.labels) {
			m.status = ""
			if len(msg.labels) > 0 {
				m.focusRow(rowSuggestion, 0)
			}
		}
		return m, nil

	case suggestionsErrMsg:
		m.flow.Fail(msg.gen, msg.err)
		return m, nil

	case recordEmittedMsg:
		m.emitErr = msg.err
		return m, nil

	case components.ConfettiTickMsg:
		var cmd tea.Cmd
		m.confetti, cmd = m.confetti.Update(msg)
		if m.confetti.Done() {
			m.celebrate = false
		}
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *SchedulerApp) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.stopPending()
		return m, tea.Quit
	case key.Matches(msg, keys.Submit):
		return m.submit()
	case key.Matches(msg, keys.Reset):
		return m.reset()
	case key.Matches(msg, keys.Next):
		m.moveFocus(1)
		return m, nil
	case key.Matches(msg, keys.Prev):
		m.moveFocus(-1)
		return m, nil
	}

	if m.flow.Phase() == meeting.PhaseConfirmed {
		return m, nil
	}

	r := m.focused()

	switch msg.String() {
	case "enter":
		return m.activate(r)
	case "up":
		if r.kind != rowDate {
			m.moveFocus(-1)
			return m, nil
		}
	case "down":
		if r.kind != rowDate {
			m.moveFocus(1)
			return m, nil
		}
	case "ctrl+d":
		if r.kind == rowParticipant {
			m.removeParticipant(r.index)
			return m, nil
		}
	}

	return m.updateFocused(r, msg)
}

// updateFocused forwards a key to the focused input and copies the result
// into the draft
func (m *SchedulerApp) updateFocused(r row, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.flow.Draft()
	var cmd tea.Cmd
	var changed bool

	switch r.kind {
	case rowTitle:
		m.title, cmd = m.title.Update(msg)
		d.Title = m.title.Value()
	case rowDescription:
		m.description, cmd = m.description.Update(msg)
		d.Description = m.description.Value()
	case rowParticipant:
		m.participants[r.index], cmd = m.participants[r.index].Update(msg)
		d.SetParticipant(r.index, m.participants[r.index].Value())
	case rowDate:
		if m.date, changed = m.date.Update(msg); changed {
			d.Date = m.date.Value()
		}
	case rowDuration:
		if m.duration, changed = m.duration.Update(msg); changed {
			_ = d.Set(meeting.FieldDuration, m.duration.Value())
		}
	case rowTimezone:
		if m.timezone, changed = m.timezone.Update(msg); changed {
			d.Timezone = m.timezone.Value()
		}
	case rowPriority:
		if m.priority, changed = m.priority.Update(msg); changed {
			d.Priority = meeting.Priority(m.priority.Value())
		}
	case rowTheme:
		if m.theme, changed = m.theme.Update(msg); changed {
			d.ThemeColor = m.theme.Value()
			components.ApplyTheme(d.ThemeColor, m.opts.DarkMode)
		}
	case rowTemplate:
		m.template, _ = m.template.Update(msg)
	case rowSuggestion:
		switch msg.String() {
		case " ":
			return m.activate(r)
		}
	}
	return m, cmd
}

// activate handles enter on the focused row
func (m *SchedulerApp) activate(r row) (tea.Model, tea.Cmd) {
	switch r.kind {
	case rowTemplate:
		if err := m.flow.Draft().ApplyTemplate(m.template.Value()); err != nil {
			m.status = err.Error()
			return m, nil
		}
		t, _ := meeting.FindTemplate(m.template.Value())
		m.description.SetValue(m.flow.Draft().Description)
		m.syncChoices()
		m.status = tOr("status.template_applied", "Applied template: "+t.Label, map[string]any{"Name": t.Label})
		return m, nil
	case rowAddParticipant:
		m.flow.Draft().AddParticipant()
		m.rebuildParticipants()
		m.focusRow(rowParticipant, len(m.participants)-1)
		return m, nil
	case rowSuggestion:
		labels := m.flow.Suggestions()
		if r.index < len(labels) {
			_ = m.flow.Select(labels[r.index])
			m.focusRow(rowSubmit, 0)
		}
		return m, nil
	case rowSubmit:
		return m.submit()
	case rowReset:
		return m.reset()
	}
	m.moveFocus(1)
	return m, nil
}

func (m *SchedulerApp) removeParticipant(i int) {
	m.flow.Draft().RemoveParticipant(i)
	m.rebuildParticipants()
	if len(m.participants) == 0 {
		m.focusRow(rowAddParticipant, 0)
		return
	}
	if i >= len(m.participants) {
		i = len(m.participants) - 1
	}
	m.focusRow(rowParticipant, i)
}

func (m *SchedulerApp) submit() (tea.Model, tea.Cmd) {
	// Submit stays disabled while a request is in flight
	if m.flow.Phase() == meeting.PhaseAwaitingSuggestions {
		return m, nil
	}

	step, err := m.flow.Submit()
	if errors.Is(err, meeting.ErrConfirmed) {
		m.status = tOr("status.already_scheduled", "Already scheduled. Press ctrl+r to plan another meeting.")
		return m, nil
	}
	m.status = ""

	switch step.Kind {
	case meeting.StepRequest:
		return m, tea.Batch(m.spinner.Tick, m.fetchSuggestions(step.Request))
	case meeting.StepConfirmed:
		return m, tea.Batch(m.startCelebration(), m.emit(step.Record))
	case meeting.StepInvalid:
		m.focusFirstError(step.Errors)
	}
	return m, nil
}

// focusFirstError moves focus to the first row with a validation message
func (m *SchedulerApp) focusFirstError(errs meeting.Errors) {
	for _, r := range m.rows() {
		if errs.Get(errorKey(r)) != "" {
			m.focusRow(r.kind, r.index)
			return
		}
	}
}

// errorKey maps a row to its key in meeting.Errors
func errorKey(r row) string {
	switch r.kind {
	case rowTitle:
		return string(meeting.FieldTitle)
	case rowDate:
		return string(meeting.FieldDate)
	case rowDuration:
		return string(meeting.FieldDuration)
	case rowTimezone:
		return string(meeting.FieldTimezone)
	case rowPriority:
		return string(meeting.FieldPriority)
	case rowTheme:
		return string(meeting.FieldThemeColor)
	case rowParticipant:
		return meeting.ParticipantKey(r.index)
	case rowAddParticipant:
		return string(meeting.FieldParticipants)
	}
	return ""
}

func (m *SchedulerApp) reset() (tea.Model, tea.Cmd) {
	m.stopPending()
	m.flow.Reset()
	m.celebrate = false
	m.status = ""
	m.emitErr = nil
	m.loadDraft()
	return m, nil
}

// stopPending cancels an outstanding suggestion request
func (m *SchedulerApp) stopPending() {
	if m.cancelSent != nil {
		m.cancelSent()
		m.cancelSent = nil
	}
}

func (m *SchedulerApp) fetchSuggestions(req meeting.Request) tea.Cmd {
	m.stopPending()
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelSent = cancel
	suggester := m.opts.Suggester

	return func() tea.Msg {
		defer cancel()
		if suggester == nil {
			return suggestionsErrMsg{gen: req.Generation, err: errors.New("no suggestion service configured")}
		}
		labels, err := suggester.Suggest(ctx, req)
		if err != nil {
			log.Printf("suggestion request %d failed: %v", req.Generation, err)
			return suggestionsErrMsg{gen: req.Generation, err: err}
		}
		log.Printf("suggestion request %d returned %d times", req.Generation, len(labels))
		return suggestionsMsg{gen: req.Generation, labels: labels}
	}
}

func (m *SchedulerApp) startCelebration() tea.Cmd {
	m.bursts++
	width := m.width - 4
	if width <= 0 || width > 56 {
		width = 56
	}
	m.confetti = components.NewConfetti(m.bursts, width, 8, 48, uint64(m.opts.Now().UnixNano()))
	m.celebrate = true
	return m.confetti.Tick()
}

func (m *SchedulerApp) emit(rec meeting.Record) tea.Cmd {
	out := m.opts.Sink
	return func() tea.Msg {
		if out == nil {
			return recordEmittedMsg{}
		}
		return recordEmittedMsg{err: out.Emit(rec)}
	}
}

// Key bindings
var keys = struct {
	Quit   key.Binding
	Submit key.Binding
	Reset  key.Binding
	Next   key.Binding
	Prev   key.Binding
}{
	Quit:   key.NewBinding(key.WithKeys("esc", "ctrl+c")),
	Submit: key.NewBinding(key.WithKeys("ctrl+s")),
	Reset:  key.NewBinding(key.WithKeys("ctrl+r")),
	Next:   key.NewBinding(key.WithKeys("tab")),
	Prev:   key.NewBinding(key.WithKeys("shift+tab")),
}
