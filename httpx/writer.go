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

// Package httpx exposes the record parser over HTTP.
//
// Failures are written as the protojson form of a google.rpc.Status, the
// same document gRPC clients receive, with the HTTP status taken from an
// apis.Mapper.
package httpx

import (
	"net/http"

	"dirpx.dev/drecord"
	"dirpx.dev/drecord/apis"
	"dirpx.dev/drecord/grpcx"
	"dirpx.dev/drecord/mapper"
	"google.golang.org/protobuf/encoding/protojson"
)

// HeaderRequestID carries the correlation id in requests and responses.
const HeaderRequestID = "X-Request-Id"

// Meta carries request-scoped data the HTTP layer adds on top of a failure.
type Meta struct {
	CorrelationID string
	Tags          map[string]string
}

// Writer turns a *drecord.Error into an HTTP response.
type Writer struct {
	// Mapper resolves statuses. Nil means mapper.Default().
	Mapper apis.Mapper
}

// Write sends e with the mapped HTTP status and a google.rpc.Status JSON
// body. Nothing is redacted. A nil e writes nothing.
func (w Writer) Write(rw http.ResponseWriter, e *drecord.Error, meta Meta) {
	if e == nil {
		return
	}
	m := w.Mapper
	if m == nil {
		m = mapper.Default()
	}

	st := grpcx.ToStatus(e, m, grpcx.Extras{CorrelationID: meta.CorrelationID, Tags: meta.Tags})

	// Any-packed details resolve through the global proto registry.
	b, err := protojson.Marshal(st.Proto())
	if err != nil {
		http.Error(rw, e.Error(), m.HTTPStatus(e.Kind, e.Reason))
		return
	}

	rw.Header().Set("Content-Type", "application/json")
	if meta.CorrelationID != "" {
		rw.Header().Set(HeaderRequestID, meta.CorrelationID)
	}
	rw.WriteHeader(m.HTTPStatus(e.Kind, e.Reason))
	_, _ = rw.Write(b)
}
