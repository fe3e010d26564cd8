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

// Package mapper resolves record failure kinds (dirpx.dev/drecord/kind) and
// optional reasons (dirpx.dev/drecord/reason) into HTTP and gRPC statuses.
//
// # Resolution model
//
// A Mapper resolves each transport in the following order:
//
//  1. exact override for the kind;
//  2. per-kind longest-prefix match on the reason;
//  3. per-kind default (library or user-adjusted);
//  4. global fallback (500 / codes.Internal).
//
// Prefix rules respect segment boundaries: "record.age" matches
// "record.age.range" but never "record.ages".
//
// # Library defaults
//
//	empty              400  InvalidArgument
//	wrong_field_count  400  InvalidArgument
//	missing_name       422  InvalidArgument
//	invalid_age        422  InvalidArgument
//	invalid_age + "record.age.range" (gRPC prefix)  OutOfRange
//
// # Building a mapper
//
//	m, err := mapper.New(
//	    mapper.WithHTTPDefault(kind.MissingName, http.StatusBadRequest),
//	    mapper.WithGRPCPrefix(kind.InvalidAge, "record.age.empty", int(codes.FailedPrecondition)),
//	)
//
// The same adjustments can be read from YAML with LoadConfig.
//
// # Immutability
//
// New copies every input. A Mapper never observes later changes to caller
// maps and is safe to share across goroutines.
package mapper
