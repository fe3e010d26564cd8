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

package httpx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dirpx.dev/drecord"
	"dirpx.dev/drecord/grpcx"
	"dirpx.dev/drecord/kind"
	"dirpx.dev/drecord/mapper"
	"dirpx.dev/drecord/reason"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	spb "google.golang.org/genproto/googleapis/rpc/status"
	"google.golang.org/grpc/codes"
	gstatus "google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func post(h http.Handler, body string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeFailure(t *testing.T, rec *httptest.ResponseRecorder) (*gstatus.Status, *drecord.Error) {
	t.Helper()
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var p spb.Status
	require.NoError(t, protojson.Unmarshal(rec.Body.Bytes(), &p))
	st := gstatus.FromProto(&p)
	e, ok := grpcx.FromStatus(st.Err())
	require.True(t, ok, "body should carry a drecord ErrorInfo")
	return st, e
}

func errorInfo(t *testing.T, st *gstatus.Status) *errdetails.ErrorInfo {
	t.Helper()
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok {
			return info
		}
	}
	t.Fatal("no ErrorInfo in status details")
	return nil
}

func TestHandler_Success(t *testing.T) {
	rec := post(NewHandler(nil, nil), "John,32", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"name":"John","age":32}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(HeaderRequestID))
}

func TestHandler_Failures(t *testing.T) {
	tests := []struct {
		body       string
		wantStatus int
		wantCode   codes.Code
		wantKind   kind.Kind
		wantReason reason.Reason
	}{
		{"", http.StatusBadRequest, codes.InvalidArgument, kind.Empty, reason.InputEmpty},
		{"John", http.StatusBadRequest, codes.InvalidArgument, kind.WrongFieldCount, reason.FieldCount},
		{"John,32,", http.StatusBadRequest, codes.InvalidArgument, kind.WrongFieldCount, reason.FieldCount},
		{",1", http.StatusUnprocessableEntity, codes.InvalidArgument, kind.MissingName, reason.NameEmpty},
		{"John,twenty", http.StatusUnprocessableEntity, codes.InvalidArgument, kind.InvalidAge, reason.AgeSyntax},
		{"John,32\n", http.StatusUnprocessableEntity, codes.InvalidArgument, kind.InvalidAge, reason.AgeSyntax},
		{"John,99999999999999999999", http.StatusUnprocessableEntity, codes.OutOfRange, kind.InvalidAge, reason.AgeRange},
	}
	h := NewHandler(nil, nil)
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			rec := post(h, tt.body, nil)
			assert.Equal(t, tt.wantStatus, rec.Code)

			st, e := decodeFailure(t, rec)
			assert.Equal(t, tt.wantCode, st.Code())
			assert.Equal(t, tt.wantKind, e.Kind)
			assert.Equal(t, tt.wantReason, e.Reason)
		})
	}
}

func TestHandler_RequestIDEchoed(t *testing.T) {
	rec := post(NewHandler(nil, nil), "John", map[string]string{HeaderRequestID: "req-42"})

	assert.Equal(t, "req-42", rec.Header().Get(HeaderRequestID))
	st, _ := decodeFailure(t, rec)
	assert.Equal(t, "req-42", errorInfo(t, st).GetMetadata()[grpcx.MetaCorrelationID])
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	NewHandler(nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
}

func TestHandler_BodyTooLarge(t *testing.T) {
	h := NewHandler(nil, nil)
	h.MaxBodyBytes = 8

	rec := post(h, "Johnathan,32", nil)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	rec = post(h, "John,32", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_CustomMapper(t *testing.T) {
	m := mapper.MustNew(mapper.WithHTTPOverride(kind.MissingName, http.StatusBadRequest))
	rec := post(NewHandler(m, nil), ",1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_LogsRejections(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := NewHandler(nil, zap.New(core))

	post(h, "John,x", map[string]string{HeaderRequestID: "req-7"})

	entries := logs.FilterMessage("record rejected").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-7", fields["request_id"])
	assert.Equal(t, "invalid_age", fields["kind"])
	assert.Equal(t, "record.age.syntax", fields["reason"])
	assert.EqualValues(t, http.StatusUnprocessableEntity, fields["http_status"])
}

func TestWriter_NilErrorWritesNothing(t *testing.T) {
	rec := httptest.NewRecorder()
	Writer{}.Write(rec, nil, Meta{})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, rec.Body.Len())
}

func TestWriter_Tags(t *testing.T) {
	_, err := drecord.Parse("")
	var e *drecord.Error
	require.True(t, errors.As(err, &e))

	rec := httptest.NewRecorder()
	Writer{}.Write(rec, e, Meta{Tags: map[string]string{"client": "curl"}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	st, _ := decodeFailure(t, rec)
	assert.Equal(t, "curl", errorInfo(t, st).GetMetadata()["tag.client"])
}
