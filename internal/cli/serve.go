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

package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dirpx.dev/drecord/httpx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
)

func serveCmd(s *state) *cobra.Command {
	var (
		addr         string
		maxBody      int64
		mapperConfig string
	)

	c := &cobra.Command{
		Use:   "serve",
		Short: "Serve the record parser over HTTP",
		Long: `Serve the record parser over HTTP.

  POST /parse   raw body is the input; 200 with the record or a
                google.rpc.Status JSON body on failure
  GET  /healthz liveness probe`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := loadMapper(mapperConfig)
			if err != nil {
				return err
			}

			h := httpx.NewHandler(m, s.log())
			h.MaxBodyBytes = maxBody

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			return serve(ctx, ln, newMux(h), s.log())
		},
	}

	c.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	c.Flags().Int64Var(&maxBody, "max-body", httpx.DefaultMaxBodyBytes, "maximum request body size in bytes")
	c.Flags().StringVar(&mapperConfig, "mapper-config", "", "YAML file with status mapping rules")
	return c
}

func newMux(h http.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/parse", h)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}

// serve runs an HTTP server on ln until ctx is done, then shuts it down.
func serve(ctx context.Context, ln net.Listener, h http.Handler, log *zap.Logger) error {
	srv := &http.Server{Handler: h, ReadHeaderTimeout: readHeaderTimeout}

	errc := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", ln.Addr().String()))
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("serve: shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
