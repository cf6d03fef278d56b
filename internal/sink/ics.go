package sink

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"meetsched/internal/meeting"
)

const productID = "-//meetsched//meetsched//EN"

// labelLayouts are the time label formats recognized when building events
var labelLayouts = []string{"3:04 PM", "3:04PM", "3 PM", "15:04"}

// ICS writes each record as an iCalendar document with a single event
type ICS struct {
	W   io.Writer
	Now func() time.Time
}

func (s ICS) Emit(rec meeting.Record) error {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	cal, err := Calendar(rec, now())
	if err != nil {
		return err
	}
	if err := ical.NewEncoder(s.W).Encode(cal); err != nil {
		return fmt.Errorf("encode calendar: %w", err)
	}
	return nil
}

// Calendar converts a record to a VCALENDAR. The time label is read in the
// record's timezone; a label in no known format produces an all-day event.
func Calendar(rec meeting.Record, stamp time.Time) (*ical.Calendar, error) {
	loc, err := time.LoadLocation(rec.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", rec.Timezone, err)
	}
	day, err := time.ParseInLocation(meeting.DateLayout, rec.Date, loc)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", rec.Date, err)
	}
	minutes, err := strconv.Atoi(rec.Duration)
	if err != nil {
		return nil, fmt.Errorf("parse duration %q: %w", rec.Duration, err)
	}

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, rec.ID)
	event.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
	event.Props.SetText(ical.PropSummary, rec.Title)
	if rec.Description != "" {
		event.Props.SetText(ical.PropDescription, rec.Description)
	}

	if clock, ok := parseLabel(rec.Time); ok {
		start := time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, loc)
		event.Props.SetDateTime(ical.PropDateTimeStart, start)
		event.Props.SetDateTime(ical.PropDateTimeEnd, start.Add(time.Duration(minutes)*time.Minute))
	} else {
		event.Props.SetDate(ical.PropDateTimeStart, day)
		event.Props.SetDate(ical.PropDateTimeEnd, day.AddDate(0, 0, 1))
		event.Props.SetText(ical.PropComment, "Suggested time: "+rec.Time)
	}

	event.Props.SetText(ical.PropPriority, icalPriority(rec.Priority))
	event.Props.SetText(ical.PropCategories, rec.ThemeColor)

	for _, p := range rec.Participants {
		attendee := ical.NewProp(ical.PropAttendee)
		attendee.Value = "mailto:" + p
		event.Props.Add(attendee)
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)
	cal.Children = append(cal.Children, event.Component)
	return cal, nil
}

func parseLabel(label string) (time.Time, bool) {
	label = strings.TrimSpace(strings.ToUpper(label))
	for _, layout := range labelLayouts {
		if t, err := time.Parse(layout, label); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// icalPriority maps to RFC 5545 PRIORITY: 1 highest, 9 lowest
func icalPriority(p meeting.Priority) string {
	switch p {
	case meeting.PriorityHigh:
		return "1"
	case meeting.PriorityLow:
		return "9"
	default:
		return "5"
	}
}
