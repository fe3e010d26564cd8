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
	"strings"
	"testing"

	"dirpx.dev/drecord/apis"
	"dirpx.dev/drecord/kind"
	"dirpx.dev/drecord/reason"
	"github.com/google/go-cmp/cmp"
)

func TestError_Basics(t *testing.T) {
	e := E(kind.InvalidAge, "age is negative",
		WithReasonOption(reason.AgeSyntax),
		WithFieldOption(FieldAge),
		WithDetailOption("age", "-1"),
	)

	if e.Kind != kind.InvalidAge {
		t.Fatal("kind mismatch")
	}
	if e.Reason != reason.AgeSyntax {
		t.Fatal("reason must be set")
	}
	if e.Details["age"] != "-1" {
		t.Fatal("detail missing")
	}

	want := "invalid_age:record.age.syntax: age is negative"
	if got := e.Error(); got != want {
		t.Fatalf("Error() = %q; want %q", got, want)
	}
	if got := E(kind.Empty, "input is empty").Error(); got != "empty: input is empty" {
		t.Fatalf("Error() without reason = %q", got)
	}

	var nilErr *Error
	if nilErr.Error() != "<nil>" || nilErr.Unwrap() != nil {
		t.Fatal("nil receiver must be safe")
	}
}

func TestError_Immutability_CopyOnWrite(t *testing.T) {
	e1 := E(kind.InvalidAge, "bad").WithDetail("k1", 1)
	e2 := e1.WithDetail("k2", 2)

	if len(e1.Details) != 1 || len(e2.Details) != 2 {
		t.Fatal("details size mismatch")
	}
	if _, ok := e1.Details["k2"]; ok {
		t.Fatal("original mutated")
	}

	e3 := e1.WithReason(reason.AgeRange).WithField(FieldAge).WithMessage("other")
	if e1.Reason != reason.Empty || e1.Field != "" || e1.Message != "bad" {
		t.Fatal("WithX mutated the receiver")
	}
	if e3.Reason != reason.AgeRange || e3.Field != FieldAge || e3.Message != "other" {
		t.Fatalf("WithX chain lost data: %+v", e3)
	}
}

func TestError_WithCause_Unwrap(t *testing.T) {
	root := errors.New("root")
	e := E(kind.InvalidAge, "x").WithCause(root)
	if !errors.Is(e, root) {
		t.Fatal("errors.Is failed")
	}
	if errors.Unwrap(e) != root {
		t.Fatal("Unwrap failed")
	}
	if e.WithCause(nil) != e {
		t.Fatal("WithCause(nil) must return the receiver")
	}
}

func TestError_WithDetails_Merge(t *testing.T) {
	e := E(kind.InvalidAge, "x").WithDetails(map[string]any{"a": 1})
	e2 := e.WithDetails(map[string]any{"b": 2, "a": 3})
	if e.Details["a"] != 1 {
		t.Fatal("original mutated")
	}
	if e2.Details["a"] != 3 || e2.Details["b"] != 2 {
		t.Fatal("merge failed")
	}
	if e.WithDetails(nil) != e {
		t.Fatal("WithDetails(nil) must return the receiver")
	}
}

func TestError_Is(t *testing.T) {
	e := E(kind.InvalidAge, "x", WithReasonOption(reason.AgeRange))

	tests := []struct {
		name   string
		target error
		want   bool
	}{
		{"sentinel same kind", ErrInvalidAge, true},
		{"sentinel other kind", ErrMissingName, false},
		{"same kind same reason", &Error{Kind: kind.InvalidAge, Reason: reason.AgeRange}, true},
		{"same kind other reason", &Error{Kind: kind.InvalidAge, Reason: reason.AgeSyntax}, false},
		{"not an *Error", errors.New("invalid_age"), false},
		{"nil *Error", (*Error)(nil), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(e, tt.target); got != tt.want {
				t.Fatalf("errors.Is(%v, %v) = %v; want %v", e, tt.target, got, tt.want)
			}
		})
	}

	wrapped := fmt.Errorf("load user: %w", e)
	if !errors.Is(wrapped, ErrInvalidAge) {
		t.Fatal("sentinel must match through fmt.Errorf wrapping")
	}
}

func TestKindOf(t *testing.T) {
	if got := KindOf(nil); got != kind.Unset {
		t.Fatalf("KindOf(nil) = %q", got)
	}
	if got := KindOf(errors.New("plain")); got != kind.Unset {
		t.Fatalf("KindOf(plain) = %q", got)
	}
	err := fmt.Errorf("outer: %w", E(kind.MissingName, "x"))
	if got := KindOf(err); got != kind.MissingName {
		t.Fatalf("KindOf(wrapped) = %q; want %q", got, kind.MissingName)
	}
}

func TestError_FailureDetails(t *testing.T) {
	if ds := E(kind.Empty, "input is empty").FailureDetails(); ds != nil {
		t.Fatalf("whole-input failure returned details: %v", ds)
	}

	e := E(kind.InvalidAge, "bad age",
		WithReasonOption(reason.AgeSyntax),
		WithFieldOption(FieldAge),
		WithDetailsOption(map[string]any{"age": "x", "attempt": 2}),
	)
	want := []apis.FieldViolation{{
		Field:       "age",
		Reason:      "record.age.syntax",
		Description: "bad age",
		Info:        map[string]string{"age": "x", "attempt": "2"},
	}}
	if diff := cmp.Diff(want, e.FailureDetails()); diff != "" {
		t.Fatalf("FailureDetails() mismatch (-want +got):\n%s", diff)
	}

	if e.FailureKind() != "invalid_age" || e.FailureReason() != "record.age.syntax" {
		t.Fatal("FailureKind/FailureReason mismatch")
	}
}

func TestOptions(t *testing.T) {
	cause := errors.New("boom")
	e := E(kind.WrongFieldCount, "x",
		WithReasonOption(reason.FieldCount),
		WithDetailOption("fields", 3),
		WithCauseOption(cause),
	)
	if e.Reason != reason.FieldCount || e.Details["fields"] != 3 || e.Cause != cause {
		t.Fatalf("options not applied: %+v", e)
	}
	if !strings.HasPrefix(e.Error(), "wrong_field_count:record.fields.count:") {
		t.Fatalf("Error() = %q", e.Error())
	}
}
