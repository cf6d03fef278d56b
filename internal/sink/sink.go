package sink

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"meetsched/internal/meeting"
	"meetsched/internal/notify"
)

// Sink receives scheduled meetings
type Sink interface {
	Emit(rec meeting.Record) error
}

// Log writes each record as one "meeting scheduled" log line
type Log struct {
	Logger *log.Logger
}

func (s Log) Emit(rec meeting.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	logger := s.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf("meeting scheduled: %s", data)
	return nil
}

// JSON writes each record as an indented JSON document
type JSON struct {
	W io.Writer
}

func (s JSON) Emit(rec meeting.Record) error {
	enc := json.NewEncoder(s.W)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}

// Notify raises a desktop notification for each record
type Notify struct {
	Send func(title, message string) error
}

func (s Notify) Emit(rec meeting.Record) error {
	send := s.Send
	if send == nil {
		send = notify.Send
	}
	msg := fmt.Sprintf("%s on %s at %s (%s)", rec.Title, rec.Date, rec.Time, rec.Timezone)
	return send("Meeting scheduled", msg)
}

// Multi fans a record out to several sinks, attempting all of them
type Multi []Sink

func (m Multi) Emit(rec meeting.Record) error {
	var errs []error
	for _, s := range m {
		if err := s.Emit(rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Output names accepted by New
const (
	OutputLog  = "log"
	OutputJSON = "json"
	OutputICS  = "ics"
)

// New builds the sink for an output name. Records go to logger for "log" and
// to w for "json" and "ics". withNotify adds a desktop notification.
func New(output string, w io.Writer, logger *log.Logger, withNotify bool) (Sink, error) {
	var primary Sink
	switch output {
	case "", OutputLog:
		primary = Log{Logger: logger}
	case OutputJSON:
		primary = JSON{W: w}
	case OutputICS:
		primary = ICS{W: w}
	default:
		return nil, fmt.Errorf("unknown output %q (want log, json or ics)", output)
	}

	if !withNotify {
		return primary, nil
	}
	return Multi{primary, Notify{}}, nil
}
