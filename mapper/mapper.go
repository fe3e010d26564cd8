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
	"errors"
	"fmt"
	"strings"
	"sync"

	"dirpx.dev/drecord/apis"
	"dirpx.dev/drecord/kind"
	"dirpx.dev/drecord/reason"
	"google.golang.org/grpc/codes"
)

var (
	// ErrInvalidPrefix is returned by New for an empty reason prefix.
	ErrInvalidPrefix = errors.New("mapper: invalid reason prefix")

	// ErrInvalidStatus is returned by New for an HTTP status outside
	// [100, 599] or an unknown gRPC code.
	ErrInvalidStatus = errors.New("mapper: invalid status")
)

// New constructs an immutable apis.Mapper snapshot.
//
//  1. Seed a builder with the library defaults.
//  2. Apply opts in order.
//  3. Check that every kind mentioned is known.
//  4. Check every HTTP status and gRPC code.
//  5. Normalize and validate every reason prefix.
//  6. Freeze all tables into fresh maps.
//
// Errors wrap kind.ErrKindInvalid, kind.ErrKindUnknown, ErrInvalidStatus,
// ErrInvalidPrefix or the reason package's validation errors.
func New(opts ...Option) (apis.Mapper, error) {
	b := newBuilder()
	for _, opt := range opts {
		opt(b)
	}

	for _, k := range b.kinds() {
		if err := kind.Validate(k); err != nil {
			return nil, fmt.Errorf("mapper: kind %q: %w", k, err)
		}
	}
	if err := b.checkStatuses(); err != nil {
		return nil, err
	}

	httpPrefix, err := compilePrefixes(b.httpPrefixes, "HTTP", func(v int) int { return v })
	if err != nil {
		return nil, err
	}
	grpcPrefix, err := compilePrefixes(b.grpcPrefixes, "gRPC", func(v int) codes.Code { return codes.Code(v) })
	if err != nil {
		return nil, err
	}

	return &mapper{
		httpDefault:  freeze(b.httpDefaults, func(v int) int { return v }),
		grpcDefault:  freeze(b.grpcDefaults, func(v int) codes.Code { return codes.Code(v) }),
		httpOverride: freeze(b.httpOverride, func(v int) int { return v }),
		grpcOverride: freeze(b.grpcOverride, func(v int) codes.Code { return codes.Code(v) }),
		httpPrefix:   httpPrefix,
		grpcPrefix:   grpcPrefix,
		fallbackHTTP: b.fallbackHTTP,
		fallbackGRPC: b.fallbackGRPC,
	}, nil
}

// MustNew is the panic-on-error variant of New.
func MustNew(opts ...Option) apis.Mapper {
	m, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// Default returns a shared mapper holding only the library defaults.
var Default = sync.OnceValue(func() apis.Mapper { return MustNew() })

// mapper is the immutable implementation behind apis.Mapper. Lookups cost
// one map access per tier plus at most one per reason segment.
type mapper struct {
	httpDefault map[kind.Kind]int
	grpcDefault map[kind.Kind]codes.Code

	httpOverride map[kind.Kind]int
	grpcOverride map[kind.Kind]codes.Code

	// per-kind prefix tables keyed by normalized reason prefix.
	httpPrefix map[kind.Kind]map[reason.Reason]int
	grpcPrefix map[kind.Kind]map[reason.Reason]codes.Code

	fallbackHTTP int
	fallbackGRPC codes.Code
}

// HTTPStatus resolves the HTTP status for k and r. It never returns 0.
func (m *mapper) HTTPStatus(k kind.Kind, r reason.Reason) int {
	v, _, _ := resolve(k, r, m.httpOverride, m.httpPrefix, m.httpDefault, m.fallbackHTTP)
	return v
}

// GRPCStatus resolves the gRPC code for k and r.
func (m *mapper) GRPCStatus(k kind.Kind, r reason.Reason) codes.Code {
	v, _, _ := resolve(k, r, m.grpcOverride, m.grpcPrefix, m.grpcDefault, m.fallbackGRPC)
	return v
}

// Status resolves both transports from the same inputs.
func (m *mapper) Status(k kind.Kind, r reason.Reason) apis.Status {
	return apis.Status{
		HTTP: m.HTTPStatus(k, r),
		GRPC: m.GRPCStatus(k, r),
	}
}

// Explain renders which tier decided each transport:
//
//	kind="invalid_age" reason="record.age.range"
//	http: source=default -> 422
//	grpc: source=prefix pattern="record.age.range" -> OutOfRange(11)
//
// source is one of override, prefix, default or fallback. The output is for
// people and golden tests, not for machine parsing.
func (m *mapper) Explain(k kind.Kind, r reason.Reason) string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "kind=%q reason=%q\n", k, r)

	hv, hsrc, hpat := resolve(k, r, m.httpOverride, m.httpPrefix, m.httpDefault, m.fallbackHTTP)
	_, _ = fmt.Fprintf(&b, "http: %s -> %d\n", describe(hsrc, hpat), hv)

	gv, gsrc, gpat := resolve(k, r, m.grpcOverride, m.grpcPrefix, m.grpcDefault, m.fallbackGRPC)
	_, _ = fmt.Fprintf(&b, "grpc: %s -> %s(%d)", describe(gsrc, gpat), gv.String(), int(gv))

	return b.String()
}

const (
	sourceOverride = "override"
	sourcePrefix   = "prefix"
	sourceDefault  = "default"
	sourceFallback = "fallback"
)

// resolve walks the four tiers and reports the value, the tier that
// produced it and, for prefix hits, the matching prefix.
func resolve[T any](
	k kind.Kind,
	r reason.Reason,
	override map[kind.Kind]T,
	prefixes map[kind.Kind]map[reason.Reason]T,
	defaults map[kind.Kind]T,
	fallback T,
) (T, string, reason.Reason) {
	if v, ok := override[k]; ok {
		return v, sourceOverride, reason.Empty
	}
	if v, p, ok := longestPrefix(prefixes[k], r); ok {
		return v, sourcePrefix, p
	}
	if v, ok := defaults[k]; ok {
		return v, sourceDefault, reason.Empty
	}
	return fallback, sourceFallback, reason.Empty
}

// longestPrefix tries r itself, then r with its last segment dropped, and so
// on. The first hit is the longest matching prefix.
func longestPrefix[T any](rules map[reason.Reason]T, r reason.Reason) (T, reason.Reason, bool) {
	var zero T
	if len(rules) == 0 || r == reason.Empty {
		return zero, reason.Empty, false
	}
	s := string(r)
	for {
		if v, ok := rules[reason.Reason(s)]; ok {
			return v, reason.Reason(s), true
		}
		i := strings.LastIndexByte(s, '.')
		if i < 0 {
			return zero, reason.Empty, false
		}
		s = s[:i]
	}
}

func describe(source string, pattern reason.Reason) string {
	if source == sourcePrefix {
		return fmt.Sprintf("source=%s pattern=%q", source, pattern)
	}
	return "source=" + source
}

// compilePrefixes validates raw prefix rules and builds per-kind lookup
// tables. Later rules for the same prefix win.
func compilePrefixes[T any](src map[kind.Kind][]prefixRule, transport string, conv func(int) T) (map[kind.Kind]map[reason.Reason]T, error) {
	if len(src) == 0 {
		return nil, nil
	}
	out := make(map[kind.Kind]map[reason.Reason]T, len(src))
	for k, rules := range src {
		if len(rules) == 0 {
			continue
		}
		table := make(map[reason.Reason]T, len(rules))
		for _, rule := range rules {
			p, err := normalizeAndValidatePrefix(rule.prefix)
			if err != nil {
				return nil, fmt.Errorf("mapper: invalid %s reason prefix %q for kind %q: %w", transport, rule.prefix, k, err)
			}
			table[p] = conv(rule.val)
		}
		out[k] = table
	}
	return out, nil
}

// normalizeAndValidatePrefix forbids empty prefixes and delegates structure
// checks to reason.Parse.
func normalizeAndValidatePrefix(raw string) (reason.Reason, error) {
	p, err := reason.Parse(raw)
	if err != nil {
		return reason.Empty, err
	}
	if p == reason.Empty {
		return reason.Empty, ErrInvalidPrefix
	}
	return p, nil
}

// freeze copies src into a fresh map, converting builder ints on the way.
func freeze[T any](src map[kind.Kind]int, conv func(int) T) map[kind.Kind]T {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[kind.Kind]T, len(src))
	for k, v := range src {
		dst[k] = conv(v)
	}
	return dst
}
