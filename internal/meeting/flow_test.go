package meeting

import (
	"errors"
	"testing"
	"time"
)

func newTestFlow() *Flow {
	f := NewFlow(func() time.Time { return testNow })
	d := f.Draft()
	d.Title = "Design review"
	d.SetParticipant(0, "a@b.com")
	return f
}

func TestFlowInvalidSubmitStaysEditing(t *testing.T) {
	f := NewFlow(func() time.Time { return testNow })
	f.Draft().Title = "Design review"
	f.Draft().Participants = nil

	step, err := f.Submit()
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if step.Kind != StepInvalid {
		t.Fatalf("expected StepInvalid, got %v", step.Kind)
	}
	if step.Errors.Get("participants") != "At least one participant is required" {
		t.Fatalf("participants message = %q", step.Errors.Get("participants"))
	}
	if f.Phase() != PhaseEditing || f.Generation() != 0 {
		t.Fatalf("invalid submit advanced flow: phase=%v gen=%d", f.Phase(), f.Generation())
	}
}

func TestFlowSuggestSelectConfirm(t *testing.T) {
	f := newTestFlow()
	want := f.Draft().Clone()

	step, err := f.Submit()
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if step.Kind != StepRequest || f.Phase() != PhaseAwaitingSuggestions {
		t.Fatalf("expected request, got kind=%v phase=%v", step.Kind, f.Phase())
	}
	if step.Request.Duration != 30 || step.Request.Timezone != "UTC" || step.Request.Participants[0] != "a@b.com" {
		t.Fatalf("unexpected request: %+v", step.Request)
	}

	if !f.Resolve(step.Request.Generation, []string{"10:00 AM", "2:00 PM"}) {
		t.Fatalf("Resolve rejected current generation")
	}
	if f.Phase() != PhaseSuggestionsShown || len(f.Suggestions()) != 2 {
		t.Fatalf("phase=%v suggestions=%q", f.Phase(), f.Suggestions())
	}

	if err := f.Select("10:00 AM"); err != nil {
		t.Fatalf("Select error: %v", err)
	}
	if err := f.Select("2:00 PM"); err != nil {
		t.Fatalf("Select error: %v", err)
	}
	if f.Selected() != "2:00 PM" {
		t.Fatalf("selected = %q", f.Selected())
	}

	step, err = f.Submit()
	if err != nil {
		t.Fatalf("second Submit error: %v", err)
	}
	if step.Kind != StepConfirmed || f.Phase() != PhaseConfirmed {
		t.Fatalf("expected confirmation, got kind=%v phase=%v", step.Kind, f.Phase())
	}

	rec := step.Record
	if rec.Time != "2:00 PM" {
		t.Fatalf("time = %q", rec.Time)
	}
	if rec.Title != want.Title || rec.Date != want.DateString() || rec.Duration != "30" ||
		rec.Timezone != want.Timezone || rec.Priority != want.Priority || rec.ThemeColor != want.ThemeColor ||
		len(rec.Participants) != 1 || rec.Participants[0] != "a@b.com" {
		t.Fatalf("record does not match draft: %+v", rec)
	}
	if rec.ID == "" {
		t.Fatalf("record has no id")
	}

	if _, err := f.Submit(); !errors.Is(err, ErrConfirmed) {
		t.Fatalf("expected ErrConfirmed, got %v", err)
	}
	if got, ok := f.Record(); !ok || got.ID != rec.ID {
		t.Fatalf("Record() = %+v, %v", got, ok)
	}
}

func TestFlowResubmitWithoutSelectionRequestsAgain(t *testing.T) {
	f := newTestFlow()

	step, _ := f.Submit()
	f.Resolve(step.Request.Generation, []string{"9:00 AM"})

	step, err := f.Submit()
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if step.Kind != StepRequest || step.Request.Generation != 2 {
		t.Fatalf("expected a second request, got %+v", step)
	}
	if f.Phase() != PhaseAwaitingSuggestions {
		t.Fatalf("phase = %v", f.Phase())
	}
}

func TestFlowEmptySuggestionsStillShown(t *testing.T) {
	f := newTestFlow()
	step, _ := f.Submit()

	if !f.Resolve(step.Request.Generation, nil) {
		t.Fatalf("Resolve rejected")
	}
	if f.Phase() != PhaseSuggestionsShown || len(f.Suggestions()) != 0 {
		t.Fatalf("phase=%v suggestions=%q", f.Phase(), f.Suggestions())
	}
	if err := f.SelectIndex(0); !errors.Is(err, ErrUnknownSuggestion) {
		t.Fatalf("expected ErrUnknownSuggestion, got %v", err)
	}
}

func TestFlowStaleResponsesDiscarded(t *testing.T) {
	f := newTestFlow()

	first, _ := f.Submit()
	second, _ := f.Submit()

	if f.Resolve(first.Request.Generation, []string{"old"}) {
		t.Fatalf("stale response accepted")
	}
	if f.Fail(first.Request.Generation, errors.New("late failure")) {
		t.Fatalf("stale failure accepted")
	}
	if f.Phase() != PhaseAwaitingSuggestions {
		t.Fatalf("stale response changed phase to %v", f.Phase())
	}
	if !f.Resolve(second.Request.Generation, []string{"new"}) {
		t.Fatalf("current response rejected")
	}
	if f.Suggestions()[0] != "new" {
		t.Fatalf("suggestions = %q", f.Suggestions())
	}
}

func TestFlowFailureThenRetry(t *testing.T) {
	f := newTestFlow()
	step, _ := f.Submit()

	boom := errors.New("connection refused")
	if !f.Fail(step.Request.Generation, boom) {
		t.Fatalf("Fail rejected current generation")
	}
	if f.Phase() != PhaseFailed || !errors.Is(f.Err(), boom) || len(f.Suggestions()) != 0 {
		t.Fatalf("phase=%v err=%v suggestions=%q", f.Phase(), f.Err(), f.Suggestions())
	}
	if err := f.Select("x"); !errors.Is(err, ErrNotShown) {
		t.Fatalf("expected ErrNotShown, got %v", err)
	}

	step, err := f.Submit()
	if err != nil || step.Kind != StepRequest {
		t.Fatalf("retry: step=%+v err=%v", step, err)
	}
	if f.Err() != nil {
		t.Fatalf("retry should clear the error")
	}
}

func TestFlowSelectValidation(t *testing.T) {
	f := newTestFlow()
	if err := f.Select("10:00 AM"); !errors.Is(err, ErrNotShown) {
		t.Fatalf("expected ErrNotShown before suggestions, got %v", err)
	}

	step, _ := f.Submit()
	f.Resolve(step.Request.Generation, []string{"10:00 AM"})
	if err := f.Select("11:00 AM"); !errors.Is(err, ErrUnknownSuggestion) {
		t.Fatalf("expected ErrUnknownSuggestion, got %v", err)
	}
	if err := f.SelectIndex(0); err != nil || f.Selected() != "10:00 AM" {
		t.Fatalf("SelectIndex: err=%v selected=%q", err, f.Selected())
	}
}

func TestFlowSelectionDoesNotTouchDraft(t *testing.T) {
	f := newTestFlow()
	before := f.Draft().Clone()

	step, _ := f.Submit()
	f.Resolve(step.Request.Generation, []string{"10:00 AM"})
	_ = f.Select("10:00 AM")

	after := *f.Draft()
	if after.Title != before.Title || after.Duration != before.Duration || after.Participants[0] != before.Participants[0] {
		t.Fatalf("draft changed by selection: %+v", after)
	}
}

func TestFlowInvalidEditWhileShownBlocksConfirm(t *testing.T) {
	f := newTestFlow()
	step, _ := f.Submit()
	f.Resolve(step.Request.Generation, []string{"10:00 AM"})
	_ = f.Select("10:00 AM")

	f.Draft().Title = "x"
	step, err := f.Submit()
	if err != nil || step.Kind != StepInvalid {
		t.Fatalf("expected StepInvalid, got %+v err=%v", step, err)
	}
	if f.Phase() != PhaseSuggestionsShown || f.Selected() != "10:00 AM" {
		t.Fatalf("invalid submit lost state: phase=%v selected=%q", f.Phase(), f.Selected())
	}
}

func TestFlowReset(t *testing.T) {
	f := newTestFlow()
	step, _ := f.Submit()
	f.Resolve(step.Request.Generation, []string{"10:00 AM"})
	_ = f.Select("10:00 AM")
	_, _ = f.Submit()

	f.Reset()
	if f.Phase() != PhaseEditing || f.Selected() != "" || len(f.Suggestions()) != 0 {
		t.Fatalf("reset left state: phase=%v selected=%q", f.Phase(), f.Selected())
	}
	if f.Draft().Title != "" || f.Draft().Timezone != "UTC" {
		t.Fatalf("reset draft not default: %+v", f.Draft())
	}
	if _, ok := f.Record(); ok {
		t.Fatalf("record survived reset")
	}

	g := newTestFlow()
	step, _ = g.Submit()
	g.Reset()
	if g.Resolve(step.Request.Generation, []string{"late"}) {
		t.Fatalf("response for a request issued before Reset was accepted")
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseSuggestionsShown.String() != "suggestions_shown" || Phase(42).String() != "phase(42)" {
		t.Fatalf("unexpected phase strings")
	}
}
