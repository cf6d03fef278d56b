package meeting

import (
	"testing"
	"time"
)

var testNow = time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)

func validDraft() Draft {
	d := NewDraft(testNow)
	d.Title = "Planning"
	d.Participants = []string{"a@b.com"}
	return d
}

func TestValidateDefaultsNeedTitleAndParticipant(t *testing.T) {
	errs := NewDraft(testNow).Validate(testNow)

	if errs.Get("title") != "Meeting title must be at least 2 characters." {
		t.Fatalf("title message = %q", errs.Get("title"))
	}
	if errs.Get(ParticipantKey(0)) != "Please enter a valid email address" {
		t.Fatalf("participant message = %q", errs.Get(ParticipantKey(0)))
	}
	if _, ok := errs["date"]; ok {
		t.Fatalf("default date should be valid, got %q", errs.Get("date"))
	}
}

func TestValidateValidDraft(t *testing.T) {
	if errs := validDraft().Validate(testNow); !errs.OK() {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *Draft)
		key     string
		code    string
		message string
	}{
		{
			name:    "title_one_char",
			mutate:  func(d *Draft) { d.Title = "A" },
			key:     "title",
			code:    CodeTooShort,
			message: "Meeting title must be at least 2 characters.",
		},
		{
			name:    "title_multibyte_one_rune",
			mutate:  func(d *Draft) { d.Title = "é" },
			key:     "title",
			code:    CodeTooShort,
			message: "Meeting title must be at least 2 characters.",
		},
		{
			name:    "date_missing",
			mutate:  func(d *Draft) { d.Date = time.Time{} },
			key:     "date",
			code:    CodeRequired,
			message: "A date is required.",
		},
		{
			name:    "date_yesterday",
			mutate:  func(d *Draft) { d.Date = testNow.AddDate(0, 0, -1) },
			key:     "date",
			code:    CodeInPast,
			message: "Date cannot be in the past.",
		},
		{
			name:    "date_1899",
			mutate:  func(d *Draft) { d.Date = time.Date(1899, 12, 31, 0, 0, 0, 0, time.UTC) },
			key:     "date",
			code:    CodeInPast,
			message: "Date cannot be in the past.",
		},
		{
			name:    "duration_missing",
			mutate:  func(d *Draft) { d.Duration = 0 },
			key:     "duration",
			code:    CodeRequired,
			message: "Please select meeting duration",
		},
		{
			name:    "duration_not_offered",
			mutate:  func(d *Draft) { d.Duration = 20 },
			key:     "duration",
			code:    CodeRequired,
			message: "Please select meeting duration",
		},
		{
			name:    "participants_empty",
			mutate:  func(d *Draft) { d.Participants = []string{} },
			key:     "participants",
			code:    CodeNoneGiven,
			message: "At least one participant is required",
		},
		{
			name:    "participants_nil",
			mutate:  func(d *Draft) { d.Participants = nil },
			key:     "participants",
			code:    CodeNoneGiven,
			message: "At least one participant is required",
		},
		{
			name:    "participant_not_email",
			mutate:  func(d *Draft) { d.Participants = []string{"not-an-email"} },
			key:     ParticipantKey(0),
			code:    CodeInvalidEmail,
			message: "Please enter a valid email address",
		},
		{
			name:    "second_participant_bad",
			mutate:  func(d *Draft) { d.Participants = []string{"a@b.com", "nope"} },
			key:     ParticipantKey(1),
			code:    CodeInvalidEmail,
			message: "Please enter a valid email address",
		},
		{
			name:    "timezone_missing",
			mutate:  func(d *Draft) { d.Timezone = "" },
			key:     "timezone",
			code:    CodeRequired,
			message: "Please select a timezone",
		},
		{
			name:    "timezone_unknown",
			mutate:  func(d *Draft) { d.Timezone = "Mars/Olympus" },
			key:     "timezone",
			code:    CodeRequired,
			message: "Please select a timezone",
		},
		{
			name:   "priority_unknown",
			mutate: func(d *Draft) { d.Priority = "urgent" },
			key:    "priority",
			code:   CodeInvalid,
		},
		{
			name:   "theme_unknown",
			mutate: func(d *Draft) { d.ThemeColor = "teal" },
			key:    "themeColor",
			code:   CodeInvalid,
		},
	}

	for _, test := range tests {
		d := validDraft()
		test.mutate(&d)
		errs := d.Validate(testNow)

		fe, ok := errs[test.key]
		if !ok {
			t.Fatalf("%s: expected error on %q, got %v", test.name, test.key, errs)
		}
		if fe.Code != test.code {
			t.Fatalf("%s: code = %q, want %q", test.name, fe.Code, test.code)
		}
		if test.message != "" && fe.Message != test.message {
			t.Fatalf("%s: message = %q, want %q", test.name, fe.Message, test.message)
		}
		if len(errs) != 1 {
			t.Fatalf("%s: expected a single error, got %v", test.name, errs)
		}
	}
}

func TestValidateTitleBoundary(t *testing.T) {
	d := validDraft()
	d.Title = "Hi"
	if errs := d.Validate(testNow); !errs.OK() {
		t.Fatalf("two-character title should pass, got %v", errs)
	}
}

func TestValidateToday(t *testing.T) {
	d := validDraft()
	d.Date = time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	if errs := d.Validate(testNow); !errs.OK() {
		t.Fatalf("today should be accepted, got %v", errs)
	}
}

func TestValidatorTooEarlyWhenClockIsOld(t *testing.T) {
	old := time.Date(1850, time.June, 1, 0, 0, 0, 0, time.UTC)
	v := NewValidator(func() time.Time { return old })

	d := validDraft()
	d.Date = time.Date(1860, time.June, 1, 0, 0, 0, 0, time.UTC)

	errs := v.Validate(d)
	if errs["date"].Code != CodeTooEarly {
		t.Fatalf("expected too_early, got %v", errs)
	}
}
