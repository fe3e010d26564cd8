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

import (
	"dirpx.dev/drecord/kind"
	"dirpx.dev/drecord/reason"
	"google.golang.org/grpc/codes"
)

// Mapper is an immutable, concurrency-safe set of rules that resolve a
// failure kind (and optionally a reason) into HTTP and gRPC statuses.
type Mapper interface {
	// HTTPStatus returns the HTTP status for k and r. Without a
	// reason-specific rule the kind-level rule applies.
	HTTPStatus(k kind.Kind, r reason.Reason) int

	// GRPCStatus returns the gRPC code for k and r, with the same fallback.
	GRPCStatus(k kind.Kind, r reason.Reason) codes.Code

	// Status resolves both transports in one call.
	Status(k kind.Kind, r reason.Reason) Status

	// Explain returns a human-readable trace of which rules matched.
	Explain(k kind.Kind, r reason.Reason) string
}

// Status is a resolved pair of transport statuses for one failure.
type Status struct {
	HTTP int        // net/http status code.
	GRPC codes.Code // gRPC status code.
}
