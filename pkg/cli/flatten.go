// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/splunk/ethmetrics/pkg/flatten"
	"github.com/splunk/ethmetrics/pkg/measurement"
	"github.com/splunk/ethmetrics/pkg/serializer"
)

func flattenCmd() *cli.Command {
	return &cli.Command{
		Name:                  "flatten",
		EnableShellCompletion: true,
		Usage:                 "Flatten a saved snapshot into measurements",
		ArgsUsage:             "[FILE]",
		Description: `Read a debug_metrics or debug_memStats snapshot from FILE, or from stdin
when FILE is omitted or "-", and print its flat measurements.

The input format is taken from the file extension (.json, .yaml, .yml) or
from --input-format when reading stdin.

Examples:
  ethmetrics flatten metrics.json
  ethmetrics flatten --mode memstats --format table memstats.yaml
  curl -s ... | ethmetrics flatten --prefix x`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "mode",
				Aliases: []string{"m"},
				Value:   string(flatten.ModeMetrics),
				Usage:   "Snapshot kind (metrics, memstats)",
			},
			&cli.StringFlag{
				Name:  "prefix",
				Usage: "Key namespace (default geth.metrics or geth.memStats.)",
			},
			&cli.StringFlag{
				Name:  "input-format",
				Value: string(serializer.FormatJSON),
				Usage: "Format of stdin input (json, yaml)",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			mode, err := flatten.ParseMode(cmd.String("mode"))
			if err != nil {
				return err
			}
			prefix := mode.DefaultPrefix()
			if cmd.IsSet("prefix") {
				prefix = cmd.String("prefix")
			}

			v, err := readSnapshot(cmd.Args().First(), serializer.Format(cmd.String("input-format")))
			if err != nil {
				return err
			}

			ser := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer func() {
				_ = serializer.Close(ser)
			}()

			return writeReport(ctx, ser, mode.Apply(v, prefix))
		},
	}
}

func readSnapshot(path string, stdinFormat serializer.Format) (measurement.Value, error) {
	var (
		r   *serializer.Reader
		err error
	)
	if path == "" || path == "-" {
		r, err = serializer.NewReader(stdinFormat, os.Stdin)
	} else {
		r, err = serializer.NewFileReaderAuto(path)
	}
	if err != nil {
		return measurement.Value{}, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer r.Close()

	var v measurement.Value
	if err := r.Deserialize(&v); err != nil {
		return measurement.Value{}, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return v, nil
}
