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
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"dirpx.dev/drecord"
	"dirpx.dev/drecord/adapter"
	"dirpx.dev/drecord/apis"
	"dirpx.dev/drecord/mapper"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultMaxBodyBytes bounds the request body when Handler.MaxBodyBytes is 0.
const DefaultMaxBodyBytes = 1 << 10

// Handler parses the raw request body as a record.
//
//	POST /  body: John,32   -> 200 {"name":"John","age":32}
//	POST /  body: John      -> 400 google.rpc.Status
//
// The body is used byte for byte: no trimming, so a trailing newline makes
// the age invalid.
type Handler struct {
	Writer       Writer
	Logger       *zap.Logger
	MaxBodyBytes int64
}

// NewHandler returns a Handler using m (nil for the defaults) and logger
// (nil for a no-op logger).
func NewHandler(m apis.Mapper, logger *zap.Logger) *Handler {
	return &Handler{Writer: Writer{Mapper: m}, Logger: logger}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(rw http.ResponseWriter, req *http.Request) {
	id := strings.TrimSpace(req.Header.Get(HeaderRequestID))
	if id == "" {
		id = uuid.NewString()
	}
	rw.Header().Set(HeaderRequestID, id)
	log := h.logger().With(zap.String("request_id", id))

	if req.Method != http.MethodPost {
		rw.Header().Set("Allow", http.MethodPost)
		http.Error(rw, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := h.MaxBodyBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	body, err := io.ReadAll(http.MaxBytesReader(rw, req.Body, limit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.Warn("request body too large", zap.Int64("limit", limit))
			http.Error(rw, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		log.Warn("read request body", zap.Error(err))
		http.Error(rw, "cannot read request body", http.StatusBadRequest)
		return
	}

	rec, err := drecord.Parse(string(body))
	if err != nil {
		var e *drecord.Error
		if !errors.As(err, &e) {
			log.Error("unexpected parse error", zap.Error(err))
			http.Error(rw, "internal error", http.StatusInternalServerError)
			return
		}
		d := adapter.ToDescriptor(e, h.mapper().Status(e.Kind, e.Reason))
		log.Info("record rejected",
			zap.String("kind", d.Kind),
			zap.String("reason", d.Reason),
			zap.Int("http_status", d.HTTPStatus),
			zap.Int("grpc_code", d.GRPCCode),
		)
		h.Writer.Write(rw, e, Meta{CorrelationID: id})
		return
	}

	log.Debug("record parsed", zap.String("name", rec.Name()), zap.Uint("age", rec.Age()))
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(rw).Encode(rec)
}

func (h *Handler) logger() *zap.Logger {
	if h.Logger == nil {
		return zap.NewNop()
	}
	return h.Logger
}

func (h *Handler) mapper() apis.Mapper {
	if h.Writer.Mapper == nil {
		return mapper.Default()
	}
	return h.Writer.Mapper
}
