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
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"dirpx.dev/drecord"
	"dirpx.dev/drecord/adapter"
	"dirpx.dev/drecord/apis"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type parseResult struct {
	Input   string            `json:"input"`
	Record  *drecord.Record   `json:"record,omitempty"`
	Failure *apis.FailureView `json:"failure,omitempty"`
	Status  *statusView       `json:"status,omitempty"`
}

type statusView struct {
	HTTP int    `json:"http"`
	GRPC string `json:"grpc"`
}

func parseCmd(s *state) *cobra.Command {
	var (
		asJSON       bool
		withStatus   bool
		mapperConfig string
	)

	c := &cobra.Command{
		Use:   "parse <input>...",
		Short: "Parse each argument as a record",
		Long: `Parse each argument as a "name,age" record and print the result.

Arguments are used exactly as given: no trimming, so " John,32" keeps its
leading space in the name. The command fails if any input fails.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMapper(mapperConfig)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, in := range args {
				res := parseOne(in, m, withStatus)
				if res.Failure != nil {
					failed++
					s.log().Debug("input rejected", zap.String("input", in), zap.String("kind", res.Failure.Kind))
				}
				if err := printResult(out, res, asJSON); err != nil {
					return err
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d inputs failed", failed, len(args))
			}
			return nil
		},
	}

	c.Flags().BoolVar(&asJSON, "json", false, "print one JSON object per input")
	c.Flags().BoolVar(&withStatus, "status", false, "include the mapped HTTP and gRPC status of failures")
	c.Flags().StringVar(&mapperConfig, "mapper-config", "", "YAML file with status mapping rules")
	return c
}

func parseOne(in string, m apis.Mapper, withStatus bool) parseResult {
	res := parseResult{Input: in}
	r, err := drecord.Parse(in)
	if err == nil {
		res.Record = &r
		return res
	}

	var e *drecord.Error
	if !errors.As(err, &e) {
		e = drecord.E(drecord.KindOf(err), err.Error())
	}
	v := adapter.ToView(e)
	res.Failure = &v
	if withStatus {
		st := m.Status(e.Kind, e.Reason)
		res.Status = &statusView{HTTP: st.HTTP, GRPC: st.GRPC.String()}
	}
	return res
}

func printResult(w io.Writer, res parseResult, asJSON bool) error {
	if asJSON {
		return json.NewEncoder(w).Encode(res)
	}

	var line string
	switch {
	case res.Record != nil:
		line = fmt.Sprintf("ok   %q %s", res.Input, formatRecord(*res.Record))
	default:
		line = fmt.Sprintf("fail %q %s", res.Input, res.Failure.Kind)
		if res.Failure.Reason != "" {
			line += ":" + res.Failure.Reason
		}
		line += ": " + res.Failure.Message
		if res.Status != nil {
			line += fmt.Sprintf(" [http=%d grpc=%s]", res.Status.HTTP, res.Status.GRPC)
		}
	}
	_, err := fmt.Fprintln(w, line)
	return err
}
