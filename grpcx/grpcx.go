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

// Package grpcx carries record parse failures over gRPC.
//
// A failure travels as a status whose code comes from an apis.Mapper and
// whose details hold a google.rpc.ErrorInfo (kind, reason, metadata) and,
// when the failure names a field, a google.rpc.BadRequest. FromStatus turns
// such a status back into a *drecord.Error on the client side.
package grpcx

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"dirpx.dev/drecord"
	"dirpx.dev/drecord/apis"
	"dirpx.dev/drecord/kind"
	"dirpx.dev/drecord/mapper"
	"dirpx.dev/drecord/reason"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	gstatus "google.golang.org/grpc/status"
)

// Domain identifies drecord failures in google.rpc.ErrorInfo.
const Domain = "drecord.dirpx.dev"

// ErrorInfo metadata keys.
const (
	MetaReason        = "reason"
	MetaField         = "field"
	MetaCorrelationID = "correlation_id"
	metaDetailPrefix  = "detail."
	metaTagPrefix     = "tag."
)

// Extras holds optional request-scoped data to embed in the status.
type Extras struct {
	// CorrelationID is a request id or idempotency key.
	CorrelationID string

	// Tags are flat key/value annotations.
	Tags map[string]string
}

// MetaFn extracts Extras from the request context and the failure.
type MetaFn func(ctx context.Context, e *drecord.Error) Extras

// ToStatus converts e into a gRPC status. A nil m uses the library defaults.
// If the details cannot be attached the bare status is returned. A nil e
// yields an OK status.
func ToStatus(e *drecord.Error, m apis.Mapper, ex Extras) *gstatus.Status {
	if e == nil {
		return gstatus.New(codes.OK, "")
	}
	if m == nil {
		m = mapper.Default()
	}
	base := gstatus.New(m.GRPCStatus(e.Kind, e.Reason), e.Message)

	info := &errdetails.ErrorInfo{
		Reason:   strings.ToUpper(string(e.Kind)),
		Domain:   Domain,
		Metadata: metadata(e, ex),
	}

	var (
		with *gstatus.Status
		err  error
	)
	if br := badRequest(e); br != nil {
		with, err = base.WithDetails(info, br)
	} else {
		with, err = base.WithDetails(info)
	}
	if err != nil {
		return base
	}
	return with
}

// FromStatus rebuilds a *drecord.Error from an error produced by ToStatus.
// It reports false for nil errors, non-status errors and statuses that carry
// no drecord ErrorInfo.
func FromStatus(err error) (*drecord.Error, bool) {
	if err == nil {
		return nil, false
	}
	st, ok := gstatus.FromError(err)
	if !ok {
		return nil, false
	}
	for _, d := range st.Details() {
		info, ok := d.(*errdetails.ErrorInfo)
		if !ok || info.GetDomain() != Domain {
			continue
		}
		k, kerr := kind.Parse(info.GetReason())
		if kerr != nil {
			return nil, false
		}
		md := info.GetMetadata()
		r, rerr := reason.Parse(md[MetaReason])
		if rerr != nil {
			r = reason.Empty
		}
		e := drecord.E(k, st.Message(),
			drecord.WithReasonOption(r),
			drecord.WithFieldOption(md[MetaField]),
		)
		for key, v := range md {
			if name, ok := strings.CutPrefix(key, metaDetailPrefix); ok {
				e = e.WithDetail(name, v)
			}
		}
		return e, true
	}
	return nil, false
}

// UnaryServerInterceptor converts *drecord.Error failures returned by
// handlers (directly or wrapped) into statuses built by ToStatus. Other
// errors pass through unchanged. metaFn may be nil.
func UnaryServerInterceptor(m apis.Mapper, metaFn MetaFn) grpc.UnaryServerInterceptor {
	if metaFn == nil {
		metaFn = func(context.Context, *drecord.Error) Extras { return Extras{} }
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		var de *drecord.Error
		if !errors.As(err, &de) || de == nil {
			return nil, err
		}
		return nil, ToStatus(de, m, metaFn(ctx, de)).Err()
	}
}

// UnaryClientInterceptor turns drecord statuses received by the client back
// into *drecord.Error so callers can use errors.Is with the drecord sentinels.
func UnaryClientInterceptor() grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		err := invoker(ctx, method, req, reply, cc, opts...)
		if e, ok := FromStatus(err); ok {
			return e
		}
		return err
	}
}

func metadata(e *drecord.Error, ex Extras) map[string]string {
	md := make(map[string]string, 3+len(e.Details)+len(ex.Tags))
	if e.Reason != reason.Empty {
		md[MetaReason] = string(e.Reason)
	}
	if e.Field != "" {
		md[MetaField] = e.Field
	}
	if ex.CorrelationID != "" {
		md[MetaCorrelationID] = ex.CorrelationID
	}
	for k, v := range e.Details {
		md[metaDetailPrefix+k] = fmt.Sprint(v)
	}
	for k, v := range ex.Tags {
		md[metaTagPrefix+k] = v
	}
	return md
}

func badRequest(e *drecord.Error) *errdetails.BadRequest {
	vs := e.FailureDetails()
	if len(vs) == 0 {
		return nil
	}
	sort.Slice(vs, func(i, j int) bool { return vs[i].Field < vs[j].Field })
	br := &errdetails.BadRequest{}
	for _, v := range vs {
		br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{
			Field:       v.Field,
			Description: v.Description,
		})
	}
	return br
}
