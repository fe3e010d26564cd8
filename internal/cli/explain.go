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
	"fmt"

	"dirpx.dev/drecord/kind"
	"dirpx.dev/drecord/reason"
	"github.com/spf13/cobra"
)

func explainCmd() *cobra.Command {
	var mapperConfig string

	c := &cobra.Command{
		Use:   "explain <kind> [reason]",
		Short: "Show which mapping rules apply to a kind and reason",
		Long: `Show how a failure kind (and optional reason) maps to an HTTP status and a
gRPC code, naming the rule that matched at each step.

The kind is normalized but not checked against the known kinds, so the
fallback for an unknown kind can be explained too.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMapper(mapperConfig)
			if err != nil {
				return err
			}

			k := kind.Kind(kind.Normalize(args[0]))
			r := reason.Empty
			if len(args) == 2 {
				if r, err = reason.Parse(args[1]); err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), m.Explain(k, r))
			return nil
		},
	}

	c.Flags().StringVar(&mapperConfig, "mapper-config", "", "YAML file with status mapping rules")
	return c
}
