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

// FieldViolation describes what is wrong with one input field. It is a view
// type: small, transport-friendly and safe to marshal.
type FieldViolation struct {
	// Field is the logical field name, e.g. "name" or "age".
	Field string `json:"field"`

	// Reason is the dotted failure reason for this field, if any.
	Reason string `json:"reason,omitempty"`

	// Description is a human-friendly explanation.
	Description string `json:"description,omitempty"`

	// Info carries extra values (for example the rejected age text).
	Info map[string]string `json:"info,omitempty"`
}

// FailureView is the serializable shape of a parse failure that is safe to
// print or send to a client.
type FailureView struct {
	// Kind is the canonical failure kind.
	Kind string `json:"kind"`

	// Reason is the optional dotted refinement.
	Reason string `json:"reason,omitempty"`

	// Message is the human-friendly message.
	Message string `json:"message,omitempty"`

	// Violations lists the offending fields, if the failure names any.
	Violations []FieldViolation `json:"violations,omitempty"`
}
