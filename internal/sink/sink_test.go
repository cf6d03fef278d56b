package sink

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"testing"

	"meetsched/internal/meeting"
)

func testRecord() meeting.Record {
	return meeting.Record{
		ID:           "7a4c0b2e-3f7d-4a59-9b57-0d2b6c0f1e11",
		Title:        "Design review",
		Description:  "Brief alignment meeting",
		Date:         "2026-11-02",
		Duration:     "45",
		Participants: []string{"a@b.com", "c@d.com"},
		Timezone:     "Europe/Paris",
		Priority:     meeting.PriorityHigh,
		ThemeColor:   "green",
		Time:         "2:00 PM",
	}
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	s := Log{Logger: log.New(&buf, "", 0)}

	if err := s.Emit(testRecord()); err != nil {
		t.Fatalf("Emit error: %v", err)
	}
	line := buf.String()
	if !strings.HasPrefix(line, "meeting scheduled: {") || !strings.Contains(line, `"time":"2:00 PM"`) {
		t.Fatalf("unexpected log line: %q", line)
	}
}

func TestJSONSink(t *testing.T) {
	var buf bytes.Buffer
	if err := (JSON{W: &buf}).Emit(testRecord()); err != nil {
		t.Fatalf("Emit error: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	for _, key := range []string{"id", "title", "description", "date", "duration", "participants", "timezone", "priority", "themeColor", "time"} {
		if _, ok := got[key]; !ok {
			t.Fatalf("missing key %q in %s", key, buf.String())
		}
	}
	if got["duration"] != "45" {
		t.Fatalf("duration should be a string, got %#v", got["duration"])
	}
}

func TestJSONSinkOmitsEmptyDescription(t *testing.T) {
	rec := testRecord()
	rec.Description = ""

	var buf bytes.Buffer
	_ = (JSON{W: &buf}).Emit(rec)
	if strings.Contains(buf.String(), "description") {
		t.Fatalf("empty description should be omitted: %s", buf.String())
	}
}

func TestNotifySink(t *testing.T) {
	var gotTitle, gotMsg string
	s := Notify{Send: func(title, message string) error {
		gotTitle, gotMsg = title, message
		return nil
	}}

	if err := s.Emit(testRecord()); err != nil {
		t.Fatalf("Emit error: %v", err)
	}
	if gotTitle != "Meeting scheduled" || gotMsg != "Design review on 2026-11-02 at 2:00 PM (Europe/Paris)" {
		t.Fatalf("got %q / %q", gotTitle, gotMsg)
	}
}

type failingSink struct{ err error }

func (f failingSink) Emit(meeting.Record) error { return f.err }

func TestMultiAttemptsAll(t *testing.T) {
	var buf bytes.Buffer
	boom := errors.New("boom")
	m := Multi{failingSink{boom}, JSON{W: &buf}}

	err := m.Emit(testRecord())
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("second sink was skipped")
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		output  string
		notify  bool
		want    string
		wantErr bool
	}{
		{output: "", want: "sink.Log"},
		{output: "log", want: "sink.Log"},
		{output: "json", want: "sink.JSON"},
		{output: "ics", want: "sink.ICS"},
		{output: "json", notify: true, want: "sink.Multi"},
		{output: "yaml", wantErr: true},
	}

	for _, test := range tests {
		s, err := New(test.output, &bytes.Buffer{}, nil, test.notify)
		if test.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error", test.output)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: New error: %v", test.output, err)
		}
		if got := typeName(s); got != test.want {
			t.Fatalf("%q: got %s, want %s", test.output, got, test.want)
		}
	}
}

func typeName(s Sink) string {
	switch s.(type) {
	case Log:
		return "sink.Log"
	case JSON:
		return "sink.JSON"
	case ICS:
		return "sink.ICS"
	case Multi:
		return "sink.Multi"
	}
	return "unknown"
}
