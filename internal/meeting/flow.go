package meeting

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

var (
	// ErrConfirmed is returned by Submit once the meeting has been scheduled
	ErrConfirmed = errors.New("meeting already scheduled, reset to start over")
	// ErrNotShown is returned by Select when no suggestions are on display
	ErrNotShown = errors.New("no suggestions to choose from")
	// ErrUnknownSuggestion is returned by Select for labels outside the set
	ErrUnknownSuggestion = errors.New("not one of the suggested times")
	// ErrNoSelection is returned when no suggested time can be chosen
	ErrNoSelection = errors.New("no suggested time selected")
)

// Phase is a stage of the two-step submission flow
type Phase int

const (
	PhaseEditing Phase = iota
	PhaseAwaitingSuggestions
	PhaseSuggestionsShown
	PhaseFailed
	PhaseConfirmed
)

func (p Phase) String() string {
	switch p {
	case PhaseEditing:
		return "editing"
	case PhaseAwaitingSuggestions:
		return "awaiting_suggestions"
	case PhaseSuggestionsShown:
		return "suggestions_shown"
	case PhaseFailed:
		return "failed"
	case PhaseConfirmed:
		return "confirmed"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// StepKind says what a Submit call asks of the caller
type StepKind int

const (
	// StepInvalid means validation failed; Step.Errors holds the messages
	StepInvalid StepKind = iota
	// StepRequest means the caller should fetch suggestions for Step.Request
	StepRequest
	// StepConfirmed means the meeting is scheduled; emit Step.Record
	StepConfirmed
)

// Request is one suggestion fetch. Generation identifies it so that a
// superseded response can be discarded.
type Request struct {
	Generation   uint64
	Participants []string
	Duration     int
	Timezone     string
}

// Step is the outcome of Submit
type Step struct {
	Kind    StepKind
	Errors  Errors
	Request Request
	Record  Record
}

// Flow owns a draft and drives it through
// Editing -> AwaitingSuggestions -> SuggestionsShown -> Confirmed,
// with Failed as the recoverable error state of a fetch.
type Flow struct {
	draft     Draft
	validator *Validator
	now       func() time.Time

	phase       Phase
	generation  uint64
	suggestions []string
	selected    string
	errs        Errors
	err         error
	record      *Record
}

// NewFlow starts a flow in Editing with a default draft
func NewFlow(now func() time.Time) *Flow {
	if now == nil {
		now = time.Now
	}
	f := &Flow{
		validator: NewValidator(now),
		now:       now,
	}
	f.draft = NewDraft(now())
	f.errs = Errors{}
	return f
}

// Draft returns the live draft for editing
func (f *Flow) Draft() *Draft { return &f.draft }

func (f *Flow) Phase() Phase { return f.phase }

// Suggestions returns the current suggestion set
func (f *Flow) Suggestions() []string { return f.suggestions }

// Selected returns the chosen time label, or "" when none is chosen
func (f *Flow) Selected() string { return f.selected }

// Errors returns the field errors from the last Submit
func (f *Flow) Errors() Errors { return f.errs }

// Err returns the fetch error while in Failed
func (f *Flow) Err() error { return f.err }

// Generation returns the id of the latest issued request
func (f *Flow) Generation() uint64 { return f.generation }

// Record returns the emitted record once Confirmed
func (f *Flow) Record() (Record, bool) {
	if f.record == nil {
		return Record{}, false
	}
	return *f.record, true
}

// Validate checks the draft without changing phase
func (f *Flow) Validate() Errors {
	return f.validator.Validate(f.draft)
}

// Submit validates the draft and advances the flow. With a time selected it
// confirms; otherwise it issues a new suggestion request, superseding any
// request still in flight.
func (f *Flow) Submit() (Step, error) {
	if f.phase == PhaseConfirmed {
		return Step{}, ErrConfirmed
	}

	f.errs = f.validator.Validate(f.draft)
	if !f.errs.OK() {
		return Step{Kind: StepInvalid, Errors: f.errs}, nil
	}

	if f.phase == PhaseSuggestionsShown && f.selected != "" {
		rec := NewRecord(f.draft, f.selected)
		f.record = &rec
		f.phase = PhaseConfirmed
		return Step{Kind: StepConfirmed, Record: rec}, nil
	}

	f.generation++
	f.phase = PhaseAwaitingSuggestions
	f.selected = ""
	f.err = nil
	return Step{
		Kind: StepRequest,
		Request: Request{
			Generation:   f.generation,
			Participants: append([]string(nil), f.draft.Participants...),
			Duration:     f.draft.Duration,
			Timezone:     f.draft.Timezone,
		},
	}, nil
}

// Resolve installs the suggestions returned for request gen. Responses for
// superseded requests are dropped and Resolve returns false.
func (f *Flow) Resolve(gen uint64, labels []string) bool {
	if gen != f.generation || f.phase != PhaseAwaitingSuggestions {
		return false
	}
	f.suggestions = append([]string(nil), labels...)
	f.selected = ""
	f.phase = PhaseSuggestionsShown
	return true
}

// Fail records a fetch failure for request gen and moves to Failed.
// Submitting again retries.
func (f *Flow) Fail(gen uint64, err error) bool {
	if gen != f.generation || f.phase != PhaseAwaitingSuggestions {
		return false
	}
	f.suggestions = nil
	f.selected = ""
	f.err = err
	f.phase = PhaseFailed
	return true
}

// Select chooses one label from the displayed suggestions, replacing any
// earlier choice
func (f *Flow) Select(label string) error {
	if f.phase != PhaseSuggestionsShown {
		return ErrNotShown
	}
	if !slices.Contains(f.suggestions, label) {
		return fmt.Errorf("%w: %q", ErrUnknownSuggestion, label)
	}
	f.selected = label
	return nil
}

// SelectIndex chooses the suggestion at index i
func (f *Flow) SelectIndex(i int) error {
	if f.phase != PhaseSuggestionsShown {
		return ErrNotShown
	}
	if i < 0 || i >= len(f.suggestions) {
		return fmt.Errorf("%w: index %d", ErrUnknownSuggestion, i)
	}
	f.selected = f.suggestions[i]
	return nil
}

// Reset discards the draft and returns to Editing. Requests still in flight
// are invalidated.
func (f *Flow) Reset() {
	f.draft = NewDraft(f.now())
	f.phase = PhaseEditing
	f.generation++
	f.suggestions = nil
	f.selected = ""
	f.errs = Errors{}
	f.err = nil
	f.record = nil
}
