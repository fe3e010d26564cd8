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

// Package kind defines the closed set of failure kinds a record parse may
// report.
//
// A kind is the top-level, machine-readable classification of a parse
// failure. There are exactly four of them, listed in the order the parser
// checks for them:
//
//   - "empty"             - the input had zero length;
//   - "wrong_field_count" - the input did not split into exactly two fields;
//   - "missing_name"      - the name field was empty;
//   - "invalid_age"       - the age field was not a non-negative integer.
//
// Kinds share the lexical rules of error codes (lowercase, underscore
// separated, 3..64 characters) so they can be used verbatim as JSON values,
// map keys in configuration files and lookup keys in status mappers.
package kind
