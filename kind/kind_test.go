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

package kind

import (
	"encoding"
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trim spaces", "  empty  ", "empty"},
		{"to lower", "InVaLiD_AgE", "invalid_age"},
		{"dash to underscore", "missing-name", "missing_name"},
		{"inner space", "wrong field count", "wrong_field_count"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_Known(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"empty", Empty},
		{"WRONG-FIELD-COUNT", WrongFieldCount},
		{" missing_name ", MissingName},
		{"Invalid Age", InvalidAge},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"empty", "", ErrKindInvalid},
		{"too short", "ab", ErrKindInvalid},
		{"starts with digit", "1empty", ErrKindInvalid},
		{"punctuation", "invalid.age", ErrKindInvalid},
		{"well formed but unknown", "not_found", ErrKindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Parse(%q) error = %v, want %v", tt.in, err, tt.want)
			}
			if got != Unset {
				t.Fatalf("Parse(%q) on error must return Unset, got %q", tt.in, got)
			}
		})
	}
}

func TestKnown_OrderAndCopy(t *testing.T) {
	got := Known()
	want := []Kind{Empty, WrongFieldCount, MissingName, InvalidAge}
	if len(got) != len(want) {
		t.Fatalf("Known() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Known()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	got[0] = "mutated"
	if Known()[0] != Empty {
		t.Fatal("Known() must return a copy")
	}
}

func TestValidate(t *testing.T) {
	for _, k := range Known() {
		if err := Validate(k); err != nil {
			t.Fatalf("Validate(%q) unexpected error: %v", k, err)
		}
		if !IsKnown(k) {
			t.Fatalf("IsKnown(%q) = false", k)
		}
	}
	for _, k := range []Kind{Unset, "Empty", "missing-name", "internal"} {
		if err := Validate(k); err == nil {
			t.Fatalf("Validate(%q) expected error", k)
		}
	}
}

func TestMustParse(t *testing.T) {
	if MustParse("invalid_age") != InvalidAge {
		t.Fatal("MustParse(valid) mismatch")
	}
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("MustParse should panic on unknown kind")
		}
	}()
	_ = MustParse("bogus_kind")
}

func TestKind_Text(t *testing.T) {
	text, err := MissingName.MarshalText()
	if err != nil || string(text) != "missing_name" {
		t.Fatalf("MarshalText() = %q, %v", text, err)
	}
	if _, err := Kind("bogus_kind").MarshalText(); err == nil {
		t.Fatal("MarshalText() on unknown kind must fail")
	}

	var k Kind
	if err := k.UnmarshalText([]byte("  Wrong-Field-Count \n")); err != nil {
		t.Fatalf("UnmarshalText() unexpected error: %v", err)
	}
	if k != WrongFieldCount {
		t.Fatalf("UnmarshalText() = %q, want %q", k, WrongFieldCount)
	}
	var bad Kind
	if err := bad.UnmarshalText([]byte("!@#")); err == nil {
		t.Fatal("UnmarshalText() expected error")
	}

	var _ encoding.TextMarshaler = Empty
	var _ encoding.TextUnmarshaler = (*Kind)(nil)
}

func TestRegexAndLengthAreConsistent(t *testing.T) {
	for _, k := range Known() {
		if n := len(k); n < MinLength || n > MaxLength {
			t.Fatalf("kind %q has len=%d outside %d..%d", k, n, MinLength, MaxLength)
		}
		if !kindRe.MatchString(string(k)) {
			t.Fatalf("kind %q does not match %s", k, kindFmt)
		}
	}
}
