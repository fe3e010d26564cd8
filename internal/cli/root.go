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

// Package cli wires the drecord commands.
package cli

import (
	"fmt"
	"os"

	"dirpx.dev/drecord"
	"dirpx.dev/drecord/apis"
	"dirpx.dev/drecord/internal/logging"
	"dirpx.dev/drecord/mapper"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// demoInput is parsed when drecord runs without a subcommand.
const demoInput = "Mark,20"

// Execute runs the root command and exits 1 on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// state is shared by the subcommands of one invocation.
type state struct {
	debug  bool
	logger *zap.Logger
}

func (s *state) log() *zap.Logger {
	if s.logger == nil {
		return zap.NewNop()
	}
	return s.logger
}

// NewRootCmd builds the drecord command tree.
func NewRootCmd() *cobra.Command {
	s := &state{}

	cmd := &cobra.Command{
		Use:   "drecord",
		Short: "Parse \"name,age\" records",
		Long: `drecord parses "name,age" text into records and maps parse failures
to HTTP and gRPC statuses.

Run without arguments to parse the demo input "Mark,20".`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			l, err := logging.New(logging.Config{Debug: s.debug, Console: true})
			if err != nil {
				return err
			}
			s.logger = l
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if s.logger != nil {
				_ = s.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := drecord.Parse(demoInput)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatRecord(r))
			return nil
		},
	}

	cmd.PersistentFlags().BoolVar(&s.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(parseCmd(s))
	cmd.AddCommand(explainCmd())
	cmd.AddCommand(serveCmd(s))
	return cmd
}

func formatRecord(r drecord.Record) string {
	return fmt.Sprintf("name=%q age=%d", r.Name(), r.Age())
}

// loadMapper returns the default mapper for an empty path, otherwise the
// mapper described by the YAML file at path.
func loadMapper(path string) (apis.Mapper, error) {
	if path == "" {
		return mapper.Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mapper config: %w", err)
	}
	defer f.Close()

	opts, err := mapper.LoadConfig(f)
	if err != nil {
		return nil, fmt.Errorf("mapper config %s: %w", path, err)
	}
	m, err := mapper.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("mapper config %s: %w", path, err)
	}
	return m, nil
}
