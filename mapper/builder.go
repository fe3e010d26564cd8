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
	"fmt"
	"net/http"

	"dirpx.dev/drecord/kind"
	"google.golang.org/grpc/codes"
)

type prefixRule struct {
	// prefix is the raw dotted reason prefix; it is normalized in New.
	prefix string
	// val is the transport status. gRPC codes are kept as int until New.
	val int
}

type builder struct {
	httpDefaults map[kind.Kind]int
	grpcDefaults map[kind.Kind]int

	httpOverride map[kind.Kind]int
	grpcOverride map[kind.Kind]int

	httpPrefixes map[kind.Kind][]prefixRule
	grpcPrefixes map[kind.Kind][]prefixRule

	fallbackHTTP int
	fallbackGRPC codes.Code
}

func newBuilder() *builder {
	b := &builder{
		httpDefaults: make(map[kind.Kind]int, len(defaultHTTP)),
		grpcDefaults: make(map[kind.Kind]int, len(defaultGRPC)),
		httpOverride: make(map[kind.Kind]int),
		grpcOverride: make(map[kind.Kind]int),
		httpPrefixes: make(map[kind.Kind][]prefixRule),
		grpcPrefixes: make(map[kind.Kind][]prefixRule, len(defaultGRPCPrefixes)),

		fallbackHTTP: http.StatusInternalServerError,
		fallbackGRPC: codes.Internal,
	}
	for k, v := range defaultHTTP {
		b.httpDefaults[k] = v
	}
	for k, v := range defaultGRPC {
		b.grpcDefaults[k] = int(v)
	}
	for k, rules := range defaultGRPCPrefixes {
		b.grpcPrefixes[k] = append([]prefixRule(nil), rules...)
	}
	return b
}

// kinds returns every kind any option mentioned, for validation in New.
func (b *builder) kinds() []kind.Kind {
	seen := make(map[kind.Kind]struct{})
	var out []kind.Kind
	add := func(k kind.Kind) {
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}
	for _, m := range []map[kind.Kind]int{b.httpDefaults, b.grpcDefaults, b.httpOverride, b.grpcOverride} {
		for k := range m {
			add(k)
		}
	}
	for _, m := range []map[kind.Kind][]prefixRule{b.httpPrefixes, b.grpcPrefixes} {
		for k := range m {
			add(k)
		}
	}
	return out
}

// checkStatuses rejects HTTP statuses outside [100, 599] and gRPC codes
// beyond codes.Unauthenticated.
func (b *builder) checkStatuses() error {
	httpOK := func(v int) bool { return v >= 100 && v <= 599 }
	grpcOK := func(v int) bool { return v >= int(codes.OK) && v <= int(codes.Unauthenticated) }

	check := func(transport, tier string, k kind.Kind, v int, ok func(int) bool) error {
		if ok(v) {
			return nil
		}
		return fmt.Errorf("mapper: %s %s for kind %q: %d: %w", transport, tier, k, v, ErrInvalidStatus)
	}

	for k, v := range b.httpDefaults {
		if err := check("HTTP", "default", k, v, httpOK); err != nil {
			return err
		}
	}
	for k, v := range b.httpOverride {
		if err := check("HTTP", "override", k, v, httpOK); err != nil {
			return err
		}
	}
	for k, rules := range b.httpPrefixes {
		for _, r := range rules {
			if err := check("HTTP", "prefix "+r.prefix, k, r.val, httpOK); err != nil {
				return err
			}
		}
	}
	for k, v := range b.grpcDefaults {
		if err := check("gRPC", "default", k, v, grpcOK); err != nil {
			return err
		}
	}
	for k, v := range b.grpcOverride {
		if err := check("gRPC", "override", k, v, grpcOK); err != nil {
			return err
		}
	}
	for k, rules := range b.grpcPrefixes {
		for _, r := range rules {
			if err := check("gRPC", "prefix "+r.prefix, k, r.val, grpcOK); err != nil {
				return err
			}
		}
	}
	return nil
}
