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

package mapper

import (
	"net/http"

	"dirpx.dev/drecord/kind"
	"dirpx.dev/drecord/reason"
	"google.golang.org/grpc/codes"
)

// defaultHTTP maps every kind to a client error. Whole-input faults are
// plain 400s; a well-formed input with a bad field value is 422.
var defaultHTTP = map[kind.Kind]int{
	kind.Empty:           http.StatusBadRequest,
	kind.WrongFieldCount: http.StatusBadRequest,
	kind.MissingName:     http.StatusUnprocessableEntity,
	kind.InvalidAge:      http.StatusUnprocessableEntity,
}

// defaultGRPC maps every kind to InvalidArgument: the input is wrong no
// matter the state of the system.
var defaultGRPC = map[kind.Kind]codes.Code{
	kind.Empty:           codes.InvalidArgument,
	kind.WrongFieldCount: codes.InvalidArgument,
	kind.MissingName:     codes.InvalidArgument,
	kind.InvalidAge:      codes.InvalidArgument,
}

// defaultGRPCPrefixes refine the gRPC defaults by reason. An age that is
// syntactically fine but too large is OutOfRange.
var defaultGRPCPrefixes = map[kind.Kind][]prefixRule{
	kind.InvalidAge: {{prefix: string(reason.AgeRange), val: int(codes.OutOfRange)}},
}
