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

package reason

// Reasons reported by the record parser. Every reason lives under "record"
// and the second segment names the part of the input at fault.
const (
	// InputEmpty refines kind.Empty.
	InputEmpty Reason = "record.input.empty"

	// FieldCount refines kind.WrongFieldCount.
	FieldCount Reason = "record.fields.count"

	// NameEmpty refines kind.MissingName.
	NameEmpty Reason = "record.name.empty"

	// AgeEmpty refines kind.InvalidAge when the age field has no text at all
	// ("John,").
	AgeEmpty Reason = "record.age.empty"

	// AgeSyntax refines kind.InvalidAge when the age text is not made of
	// decimal digits only ("John,twenty", "John,-1", "John, 32").
	AgeSyntax Reason = "record.age.syntax"

	// AgeRange refines kind.InvalidAge when the digits overflow the age width.
	AgeRange Reason = "record.age.range"
)

// Age is the common prefix of every age reason.
const Age Reason = "record.age"
