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

// Package reason defines an optional refinement for record parse failures.
//
// Where a kind answers "what went wrong?" (empty, missing_name, ...), a
// reason answers "where exactly, and why?":
//
//   - "record.input.empty"
//   - "record.age.syntax"
//   - "record.age.range"
//
// The zero value ("") is allowed and means no refinement is provided.
// Reasons are dotted so that status mappers can attach rules to a prefix
// such as "record.age" and have them apply to every age reason.
package reason
