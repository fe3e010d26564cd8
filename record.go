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

// Package drecord parses "name,age" text into an immutable Record.
//
// A parse either yields a Record or fails with an *Error whose Kind is one of
// the four kinds in dirpx.dev/drecord/kind:
//
//	r, err := drecord.Parse("John,32")
//	switch {
//	case err == nil:
//	    fmt.Println(r.Name(), r.Age())
//	case errors.Is(err, drecord.ErrInvalidAge):
//	    var ne *strconv.NumError
//	    _ = errors.As(err, &ne) // the numeric parse failure
//	}
//
// Parse is pure and total: it never panics, holds no state and is safe for
// concurrent use.
package drecord

import (
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"dirpx.dev/drecord/kind"
	"dirpx.dev/drecord/reason"
)

// Separator splits the name field from the age field.
const Separator = ","

// Field names used in failures that point at one field.
const (
	FieldName = "name"
	FieldAge  = "age"
)

// ErrZeroRecord is returned when marshaling a Record that did not come from
// a successful parse.
var ErrZeroRecord = errors.New("drecord: zero record")

var (
	_ encoding.TextMarshaler   = Record{}
	_ encoding.TextUnmarshaler = (*Record)(nil)
	_ json.Marshaler           = Record{}
	_ json.Unmarshaler         = (*Record)(nil)
)

// Record is a parsed person record: a non-empty name and a non-negative age.
//
// The fields are unexported so that a non-zero Record can only come out of a
// successful parse. Records are values: compare them with ==.
type Record struct {
	name string
	age  uint
}

// Parse converts input into a Record.
//
// Checks run in this order and the first failing one wins:
//
//  1. zero-length input: kind.Empty;
//  2. not exactly two ','-separated fields (empty fields count): kind.WrongFieldCount;
//  3. empty name field: kind.MissingName;
//  4. age field not base-10 digits fitting a uint: kind.InvalidAge.
//
// Because the name is checked first, input with both faults (",", ",one")
// reports kind.MissingName. No whitespace is trimmed and no sign is accepted.
// The returned error is always an *Error.
func Parse(input string) (Record, error) {
	if len(input) == 0 {
		return Record{}, E(kind.Empty, "input is empty",
			WithReasonOption(reason.InputEmpty),
		)
	}

	if n := strings.Count(input, Separator) + 1; n != 2 {
		return Record{}, E(kind.WrongFieldCount, fmt.Sprintf("want 2 comma-separated fields, got %d", n),
			WithReasonOption(reason.FieldCount),
			WithDetailOption("fields", n),
		)
	}
	name, ageText, _ := strings.Cut(input, Separator)

	if name == "" {
		return Record{}, E(kind.MissingName, "name field is empty",
			WithReasonOption(reason.NameEmpty),
			WithFieldOption(FieldName),
		)
	}

	age, err := strconv.ParseUint(ageText, 10, 0)
	if err != nil {
		return Record{}, invalidAge(ageText, err)
	}
	return Record{name: name, age: uint(age)}, nil
}

// MustParse is like Parse but panics on failure. Use it for inputs known at
// compile time.
func MustParse(input string) Record {
	r, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return r
}

// invalidAge wraps the numeric parse failure. The reason tells an empty age
// field, bad digits and overflow apart; the cause keeps the full detail.
func invalidAge(text string, err error) *Error {
	r := reason.AgeSyntax
	switch {
	case text == "":
		r = reason.AgeEmpty
	case errors.Is(err, strconv.ErrRange):
		r = reason.AgeRange
	}
	return E(kind.InvalidAge, fmt.Sprintf("age %q is not a non-negative integer", text),
		WithReasonOption(r),
		WithFieldOption(FieldAge),
		WithDetailOption(FieldAge, text),
		WithCauseOption(err),
	)
}

// Name returns the record's name. It is never empty for a parsed record.
func (r Record) Name() string { return r.name }

// Age returns the record's age.
func (r Record) Age() uint { return r.age }

// IsZero reports whether r is the zero Record, i.e. not the result of a
// successful parse.
func (r Record) IsZero() bool { return r == Record{} }

// String renders the record in the form Parse accepts: "name,age".
func (r Record) String() string {
	return r.name + Separator + strconv.FormatUint(uint64(r.age), 10)
}

// MarshalText implements encoding.TextMarshaler using the String form.
func (r Record) MarshalText() ([]byte, error) {
	if r.IsZero() {
		return nil, ErrZeroRecord
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler by running Parse on the
// exact text. On failure r is left unchanged.
func (r *Record) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

type recordJSON struct {
	Name string `json:"name"`
	Age  uint   `json:"age"`
}

// MarshalJSON renders the record as {"name":...,"age":...}.
func (r Record) MarshalJSON() ([]byte, error) {
	if r.IsZero() {
		return nil, ErrZeroRecord
	}
	return json.Marshal(recordJSON{Name: r.name, Age: r.age})
}

// UnmarshalJSON accepts either the object form produced by MarshalJSON or a
// JSON string in "name,age" form. Both go through Parse, so a decoded Record
// obeys the same rules as a parsed one: an object without "age" fails with
// kind.InvalidAge. JSON null leaves r unchanged.
func (r *Record) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return r.UnmarshalText([]byte(s))
	}
	var w struct {
		Name string `json:"name"`
		Age  *uint  `json:"age"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("drecord: decode record: %w", err)
	}
	// A missing age becomes an empty age field, which Parse rejects.
	ageText := ""
	if w.Age != nil {
		ageText = strconv.FormatUint(uint64(*w.Age), 10)
	}
	return r.UnmarshalText([]byte(w.Name + Separator + ageText))
}
