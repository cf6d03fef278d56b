package meeting

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Error codes reported in FieldError.Code
const (
	CodeTooShort     = "too_short"
	CodeRequired     = "required"
	CodeInPast       = "in_past"
	CodeTooEarly     = "too_early"
	CodeInvalid      = "invalid"
	CodeInvalidEmail = "invalid_email"
	CodeNoneGiven    = "none_given"
)

// Earliest is the lowest date the form accepts
var Earliest = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// FieldError is a human-readable validation failure for one field
type FieldError struct {
	Field   string
	Code    string
	Message string
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Errors maps a field key to its failure. Participant entries use keys of
// the form "participants.N".
type Errors map[string]FieldError

// OK reports whether validation passed
func (e Errors) OK() bool {
	return len(e) == 0
}

// Get returns the message for a field key, or "" when the field is valid
func (e Errors) Get(key string) string {
	if fe, ok := e[key]; ok {
		return fe.Message
	}
	return ""
}

// ParticipantKey returns the Errors key for participant entry i
func ParticipantKey(i int) string {
	return string(FieldParticipants) + "." + strconv.Itoa(i)
}

// Error joins all messages in key order
func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, e[k].Error())
	}
	return strings.Join(parts, "; ")
}

// Validator checks drafts against the form schema
type Validator struct {
	v   *validator.Validate
	now func() time.Time
}

// NewValidator builds a validator whose past-date rule is relative to now()
func NewValidator(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	val := &Validator{v: validator.New(), now: now}

	val.v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	mustRegister(val.v, "notpast", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		if !ok {
			return false
		}
		y, m, d := val.now().Date()
		today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		ty, tm, td := t.Date()
		return !time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC).Before(today)
	})
	mustRegister(val.v, "notbefore1900", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		if !ok {
			return false
		}
		ty, tm, td := t.Date()
		return !time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC).Before(Earliest)
	})
	mustRegister(val.v, "timezone_label", func(fl validator.FieldLevel) bool {
		return slices.Contains(Timezones, fl.Field().String())
	})
	mustRegister(val.v, "theme_color", func(fl validator.FieldLevel) bool {
		return slices.Contains(ThemeColors, fl.Field().String())
	})

	return val
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s: %v", tag, err))
	}
}

// Validate runs every rule and returns the failures keyed by field
func (val *Validator) Validate(d Draft) Errors {
	errs := Errors{}

	err := val.v.Struct(d)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs[string(FieldTitle)] = FieldError{Field: string(FieldTitle), Code: CodeInvalid, Message: err.Error()}
		return errs
	}

	for _, fe := range verrs {
		key, out := describe(fe)
		if _, seen := errs[key]; !seen {
			errs[key] = out
		}
	}
	return errs
}

// Validate checks d against the schema with the past-date rule relative to now
func (d Draft) Validate(now time.Time) Errors {
	return NewValidator(func() time.Time { return now }).Validate(d)
}

func describe(fe validator.FieldError) (string, FieldError) {
	name := fe.Field()

	if strings.HasPrefix(name, string(FieldParticipants)+"[") {
		idx := strings.TrimSuffix(strings.TrimPrefix(name, string(FieldParticipants)+"["), "]")
		key := string(FieldParticipants) + "." + idx
		return key, FieldError{Field: key, Code: CodeInvalidEmail, Message: "Please enter a valid email address"}
	}

	field := Field(name)
	out := FieldError{Field: name, Code: CodeInvalid}

	switch field {
	case FieldTitle:
		out.Code = CodeTooShort
		out.Message = "Meeting title must be at least 2 characters."
	case FieldDate:
		switch fe.Tag() {
		case "required":
			out.Code = CodeRequired
			out.Message = "A date is required."
		case "notpast":
			out.Code = CodeInPast
			out.Message = "Date cannot be in the past."
		default:
			out.Code = CodeTooEarly
			out.Message = "Date cannot be before 1900-01-01."
		}
	case FieldDuration:
		out.Code = CodeRequired
		out.Message = "Please select meeting duration"
	case FieldParticipants:
		out.Code = CodeNoneGiven
		out.Message = "At least one participant is required"
	case FieldTimezone:
		out.Code = CodeRequired
		out.Message = "Please select a timezone"
	default:
		out.Message = fmt.Sprintf("Invalid value for %s", name)
	}
	return name, out
}
