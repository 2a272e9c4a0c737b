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

	"github.com/urfave/cli/v3"

	"github.com/splunk/ethmetrics/pkg/capture"
)

func captureCmd() *cli.Command {
	return &cli.Command{
		Name:                  "capture",
		EnableShellCompletion: true,
		Usage:                 "Capture node statistics once",
		Description: `Capture a single report from the node. The report contains:
  - a node:info message describing the client
  - node:metrics messages with flat dotted-key measurements
  - one geth:peer message per connected peer (geth only)

The report can be output in JSON, YAML, or table format. The table format
prints the merged metrics as sorted key/value rows.`,
		Flags: []cli.Flag{
			outputFlag(),
			formatFlag(),
			includeFlag(),
			excludeFlag(),
			txpoolFlag(),
			peersFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			ser, closeSink := newSink(cfg)
			defer closeSink()

			runner, err := capture.NewRunner(ctx, cfg, version, ser)
			if err != nil {
				return err
			}

			report, err := runner.CaptureOnce(ctx)
			if err != nil {
				return fmt.Errorf("capture failed: %w", err)
			}

			return writeReport(ctx, ser, report)
		},
	}
}
