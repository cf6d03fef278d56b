package meeting

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire and flag format for meeting dates
const DateLayout = "2006-01-02"

// Priority of a meeting
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Field names used for Set and as keys in Errors
type Field string

const (
	FieldTitle        Field = "title"
	FieldDescription  Field = "description"
	FieldDate         Field = "date"
	FieldDuration     Field = "duration"
	FieldParticipants Field = "participants"
	FieldTimezone     Field = "timezone"
	FieldPriority     Field = "priority"
	FieldThemeColor   Field = "themeColor"
)

// Durations lists the selectable meeting lengths in minutes
var Durations = []int{15, 30, 45, 60}

// Timezones lists the selectable timezone labels
var Timezones = []string{
	"UTC",
	"America/New_York",
	"America/Chicago",
	"America/Denver",
	"America/Los_Angeles",
	"Europe/London",
	"Europe/Paris",
	"Europe/Berlin",
	"Asia/Kolkata",
	"Asia/Singapore",
	"Asia/Tokyo",
	"Australia/Sydney",
}

// Priorities lists the selectable priorities, lowest first
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// ThemeColors lists the selectable theme color names
var ThemeColors = []string{"blue", "green", "purple", "orange", "pink"}

const (
	DefaultTimezone   = "UTC"
	DefaultPriority   = PriorityMedium
	DefaultThemeColor = "blue"
	DefaultDuration   = 30
)

// Draft is the in-progress, unsaved meeting form state
type Draft struct {
	Title        string    `json:"title" validate:"min=2"`
	Description  string    `json:"description,omitempty"`
	Date         time.Time `json:"date" validate:"required,notpast,notbefore1900"`
	Duration     int       `json:"duration" validate:"required,oneof=15 30 45 60"`
	Participants []string  `json:"participants" validate:"min=1,dive,email"`
	Timezone     string    `json:"timezone" validate:"required,timezone_label"`
	Priority     Priority  `json:"priority" validate:"required,oneof=low medium high"`
	ThemeColor   string    `json:"themeColor" validate:"required,theme_color"`
}

// NewDraft creates a draft with the form defaults. The date starts on today
// and the participant list holds one empty entry ready for input.
func NewDraft(today time.Time) Draft {
	y, m, d := today.Date()
	return Draft{
		Date:         time.Date(y, m, d, 0, 0, 0, 0, today.Location()),
		Duration:     DefaultDuration,
		Participants: []string{""},
		Timezone:     DefaultTimezone,
		Priority:     DefaultPriority,
		ThemeColor:   DefaultThemeColor,
	}
}

// Set assigns a field from its string form. Parse failures are returned as
// errors; range and format rules are left to Validate.
func (d *Draft) Set(field Field, value string) error {
	switch field {
	case FieldTitle:
		d.Title = value
	case FieldDescription:
		d.Description = value
	case FieldDate:
		if value == "" {
			d.Date = time.Time{}
			return nil
		}
		t, err := time.ParseInLocation(DateLayout, value, time.Local)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", value, err)
		}
		d.Date = t
	case FieldDuration:
		if value == "" {
			d.Duration = 0
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value, err)
		}
		d.Duration = n
	case FieldParticipants:
		d.Participants = nil
		for _, p := range strings.Split(value, ",") {
			if p = strings.TrimSpace(p); p != "" {
				d.Participants = append(d.Participants, p)
			}
		}
	case FieldTimezone:
		d.Timezone = value
	case FieldPriority:
		d.Priority = Priority(value)
	case FieldThemeColor:
		d.ThemeColor = value
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}

// AddParticipant appends an empty participant entry
func (d *Draft) AddParticipant() {
	d.Participants = append(d.Participants, "")
}

// SetParticipant replaces the participant entry at index i
func (d *Draft) SetParticipant(i int, value string) {
	if i < 0 || i >= len(d.Participants) {
		return
	}
	d.Participants[i] = value
}

// RemoveParticipant deletes the entry at index i. The list may become empty.
func (d *Draft) RemoveParticipant(i int) {
	if i < 0 || i >= len(d.Participants) {
		return
	}
	d.Participants = append(d.Participants[:i], d.Participants[i+1:]...)
}

// DateString returns the date as YYYY-MM-DD, or "" when unset
func (d Draft) DateString() string {
	if d.Date.IsZero() {
		return ""
	}
	return d.Date.Format(DateLayout)
}

// Clone returns a copy that shares no slices with d
func (d Draft) Clone() Draft {
	c := d
	c.Participants = append([]string(nil), d.Participants...)
	return c
}
