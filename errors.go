/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package drecord

import (
	"errors"
	"fmt"
	"sort"

	"dirpx.dev/drecord/apis"
	"dirpx.dev/drecord/kind"
	"dirpx.dev/drecord/reason"
)

// Error is the failure returned by Parse.
//
// It carries:
//   - Kind: which of the four failure kinds happened (required);
//   - Reason: optional finer-grained marker, e.g. "record.age.range";
//   - Message: human-oriented description;
//   - Field: the input field at fault ("name", "age"), empty for whole-input faults;
//   - Details: small key/value payload for logs and API bodies;
//   - Cause: wrapped underlying error, a *strconv.NumError for invalid ages.
//
// WithX helpers return a shallow copy, so Error values can be shared.
type Error struct {
	Kind    kind.Kind
	Reason  reason.Reason
	Message string
	Field   string

	// Details is treated as immutable: WithDetail/WithDetails always copy it.
	Details map[string]any

	Cause error
}

var (
	_ apis.KindedError   = (*Error)(nil)
	_ apis.ReasonedError = (*Error)(nil)
	_ apis.DetailedError = (*Error)(nil)
)

// Sentinels for errors.Is. Each matches every *Error of the same kind,
// whatever its reason, message or cause.
var (
	ErrEmpty           = &Error{Kind: kind.Empty, Message: "input is empty"}
	ErrWrongFieldCount = &Error{Kind: kind.WrongFieldCount, Message: "wrong number of fields"}
	ErrMissingName     = &Error{Kind: kind.MissingName, Message: "name field is empty"}
	ErrInvalidAge      = &Error{Kind: kind.InvalidAge, Message: "age is not a non-negative integer"}
)

// E builds a new Error and applies opts in order.
//
//	return drecord.E(kind.InvalidAge, "age is negative",
//	    drecord.WithReasonOption(reason.AgeSyntax),
//	    drecord.WithFieldOption(drecord.FieldAge),
//	)
func E(k kind.Kind, msg string, opts ...Option) *Error {
	e := &Error{Kind: k, Message: msg}
	for _, opt := range opts {
		e = opt(e)
	}
	return e
}

// KindOf returns the kind of the first *Error in err's chain, or kind.Unset.
func KindOf(err error) kind.Kind {
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e.Kind
	}
	return kind.Unset
}

// Error implements the error interface as
//
//	<kind>: <message>
//
// or, when a reason is present,
//
//	<kind>:<reason>: <message>
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Reason != reason.Empty {
		return fmt.Sprintf("%s:%s: %s", e.Kind, e.Reason, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause for errors.Is / errors.As.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is reports whether target is an *Error of the same kind. A target with a
// reason additionally requires the same reason.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	if e.Kind != t.Kind {
		return false
	}
	return t.Reason == reason.Empty || t.Reason == e.Reason
}

// FailureKind implements apis.KindedError.
func (e *Error) FailureKind() string { return string(e.Kind) }

// FailureReason implements apis.ReasonedError.
func (e *Error) FailureReason() string { return string(e.Reason) }

// FailureDetails implements apis.DetailedError. An error that names a field
// yields one violation for it; Details values are rendered with %v and keys
// are sorted so the output is stable.
func (e *Error) FailureDetails() []apis.FieldViolation {
	if e == nil || e.Field == "" {
		return nil
	}
	v := apis.FieldViolation{
		Field:       e.Field,
		Reason:      string(e.Reason),
		Description: e.Message,
	}
	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		v.Info = make(map[string]string, len(keys))
		for _, k := range keys {
			v.Info[k] = fmt.Sprint(e.Details[k])
		}
	}
	return []apis.FieldViolation{v}
}

// WithReason returns a copy of e with the given Reason set.
func (e *Error) WithReason(r reason.Reason) *Error {
	cp := *e
	cp.Reason = r
	return &cp
}

// WithMessage returns a copy of e with a replaced human message.
func (e *Error) WithMessage(msg string) *Error {
	cp := *e
	cp.Message = msg
	return &cp
}

// WithField returns a copy of e pointing at the named input field.
func (e *Error) WithField(field string) *Error {
	cp := *e
	cp.Field = field
	return &cp
}

// WithDetail returns a copy of e with one extra key/value in Details.
func (e *Error) WithDetail(k string, v any) *Error {
	cp := *e
	if len(cp.Details) == 0 {
		cp.Details = map[string]any{k: v}
		return &cp
	}
	m := make(map[string]any, len(cp.Details)+1)
	for k0, v0 := range cp.Details {
		m[k0] = v0
	}
	m[k] = v
	cp.Details = m
	return &cp
}

// WithDetails returns a copy of e with kv merged into Details; kv wins on
// key conflicts.
func (e *Error) WithDetails(kv map[string]any) *Error {
	if len(kv) == 0 {
		return e
	}
	cp := *e
	m := make(map[string]any, len(cp.Details)+len(kv))
	for k0, v0 := range cp.Details {
		m[k0] = v0
	}
	for k, v := range kv {
		m[k] = v
	}
	cp.Details = m
	return &cp
}

// WithCause returns a copy of e wrapping err. A nil err returns e unchanged.
func (e *Error) WithCause(err error) *Error {
	if err == nil {
		return e
	}
	cp := *e
	cp.Cause = err
	return &cp
}
