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

// Package adapter converts parse failures into the apis view types.
package adapter

import (
	"dirpx.dev/drecord"
	"dirpx.dev/drecord/apis"
)

// ToDescriptor flattens e together with its resolved transport statuses.
// The descriptor is meant for structured logs and traces.
func ToDescriptor(e *drecord.Error, st apis.Status) apis.FailureDescriptor {
	if e == nil {
		return apis.FailureDescriptor{}
	}
	return apis.FailureDescriptor{
		Kind:       string(e.Kind),
		Reason:     string(e.Reason),
		Message:    e.Message,
		HTTPStatus: st.HTTP,
		GRPCCode:   int(st.GRPC),
	}
}

// ToView converts e into the public FailureView. Nothing is redacted: the
// view exposes exactly what the error carries, including the rejected age
// text when present.
func ToView(e *drecord.Error) apis.FailureView {
	if e == nil {
		return apis.FailureView{}
	}
	v := apis.FailureView{
		Kind:    string(e.Kind),
		Reason:  string(e.Reason),
		Message: e.Message,
	}
	if ds := e.FailureDetails(); len(ds) > 0 {
		v.Violations = ds
	}
	return v
}
