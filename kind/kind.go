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
	"bytes"
	"encoding"
	"errors"
	"regexp"
	"strings"
)

// Kind is the canonical, validated representation of a failure kind.
//
// It is a separate type (not just string) so that callers can tell a
// normalized kind apart from raw user input, e.g. a key read from a YAML
// policy file.
type Kind string

// MinLength and MaxLength bound the length of a well-formed kind.
const (
	MinLength = 3
	MaxLength = 64
)

// kindFmt is the lexical form of a kind. The {2,63} quantifier is tied to
// MinLength / MaxLength: one leading letter plus 2..63 more characters.
const kindFmt = `^[a-z][a-z0-9_]{2,63}$`

var kindRe = regexp.MustCompile(kindFmt)

var (
	// ErrKindInvalid is returned when a value is not lexically a kind.
	ErrKindInvalid = errors.New("drecord: invalid kind")

	// ErrKindUnknown is returned when a value is well-formed but does not
	// name one of the known kinds.
	ErrKindUnknown = errors.New("drecord: unknown kind")
)

var (
	_ encoding.TextMarshaler   = (*Kind)(nil)
	_ encoding.TextUnmarshaler = (*Kind)(nil)
)

// Unset is the zero-value kind. It never describes a real failure.
var Unset Kind = ""

// Parse normalizes s and checks that it names a known kind.
func Parse(s string) (Kind, error) {
	s = Normalize(s)
	if err := validate(s); err != nil {
		return Unset, err
	}
	return Kind(s), nil
}

// MustParse is the panic-on-error variant of Parse.
func MustParse(s string) Kind {
	k, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return k
}

// Normalize brings s closer to the canonical form without guaranteeing
// validity:
//
//   - trims surrounding spaces;
//   - lowercases the value;
//   - replaces '-' and inner spaces with '_'.
//
// This lets configuration files say "Invalid-Age" or "missing name".
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

// Validate reports whether k is one of the known kinds.
func Validate(k Kind) error {
	return validate(string(k))
}

// IsKnown is the boolean form of Validate.
func IsKnown(k Kind) bool {
	return Validate(k) == nil
}

// String returns the canonical string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// MarshalText implements encoding.TextMarshaler. Unknown kinds do not marshal.
func (k Kind) MarshalText() ([]byte, error) {
	if err := Validate(k); err != nil {
		return nil, err
	}
	return []byte(k), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func validate(s string) error {
	if !kindRe.MatchString(s) {
		return ErrKindInvalid
	}
	for _, k := range known {
		if string(k) == s {
			return nil
		}
	}
	return ErrKindUnknown
}
