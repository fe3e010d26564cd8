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

package apis

// KindedError is a failure classified into one of the record failure kinds
// ("empty", "wrong_field_count", "missing_name", "invalid_age").
//
// Adapters treat an unknown or empty kind as an internal error.
type KindedError interface {
	error

	// FailureKind returns the canonical kind string.
	FailureKind() string
}

// ReasonedError is a failure that refines its kind with a dotted reason,
// e.g. "record.age.range".
//
// The reason may be empty; callers can always fall back to the kind.
type ReasonedError interface {
	error

	// FailureReason returns the reason, or "" when there is none.
	FailureReason() string
}

// DetailedError is a failure that can point at the offending input fields.
type DetailedError interface {
	error

	// FailureDetails returns per-field violations. The slice belongs to the
	// caller. May return nil.
	FailureDetails() []FieldViolation
}
