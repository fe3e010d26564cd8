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

// The four failure kinds, in the order the parser checks for them.
const (
	// Empty means the input string had zero length. Nothing else about the
	// input is inspected.
	Empty Kind = "empty"

	// WrongFieldCount means splitting the input on ',' did not yield exactly
	// two fields. This covers a missing comma ("John") as well as extra ones
	// ("John,32," or "John,32,man").
	WrongFieldCount Kind = "wrong_field_count"

	// MissingName means the first field was empty (",1").
	MissingName Kind = "missing_name"

	// InvalidAge means the second field was not a base-10 non-negative
	// integer that fits the record's age width. The failure carries the
	// numeric parse error as its cause.
	InvalidAge Kind = "invalid_age"
)

var known = [...]Kind{Empty, WrongFieldCount, MissingName, InvalidAge}

// Known returns the known kinds in check order. The slice is a fresh copy.
func Known() []Kind {
	out := make([]Kind, len(known))
	copy(out, known[:])
	return out
}
