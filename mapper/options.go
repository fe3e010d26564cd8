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
	"dirpx.dev/drecord/kind"
)

// Option configures the Mapper at build time. Options are applied to an
// internal builder which New then freezes.
type Option func(*builder)

// WithHTTPDefault replaces the default HTTP status for k.
func WithHTTPDefault(k kind.Kind, http int) Option {
	return func(b *builder) { b.httpDefaults[k] = http }
}

// WithGRPCDefault replaces the default gRPC code for k.
func WithGRPCDefault(k kind.Kind, grpc int) Option {
	return func(b *builder) { b.grpcDefaults[k] = grpc }
}

// WithHTTPOverride pins the HTTP status for k. Overrides beat prefix rules
// and defaults.
func WithHTTPOverride(k kind.Kind, http int) Option {
	return func(b *builder) { b.httpOverride[k] = http }
}

// WithGRPCOverride pins the gRPC code for k.
func WithGRPCOverride(k kind.Kind, grpc int) Option {
	return func(b *builder) { b.grpcOverride[k] = grpc }
}

// WithHTTPPrefix adds an HTTP rule for reasons of k under prefix. The longest
// matching prefix wins; a later rule for the same prefix replaces an earlier one.
func WithHTTPPrefix(k kind.Kind, prefix string, http int) Option {
	return func(b *builder) { b.httpPrefixes[k] = append(b.httpPrefixes[k], prefixRule{prefix, http}) }
}

// WithGRPCPrefix adds a gRPC rule for reasons of k under prefix.
func WithGRPCPrefix(k kind.Kind, prefix string, grpc int) Option {
	return func(b *builder) { b.grpcPrefixes[k] = append(b.grpcPrefixes[k], prefixRule{prefix, grpc}) }
}
