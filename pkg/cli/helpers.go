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
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/splunk/ethmetrics/pkg/config"
	"github.com/splunk/ethmetrics/pkg/defaults"
	"github.com/splunk/ethmetrics/pkg/logging"
	"github.com/splunk/ethmetrics/pkg/serializer"
)

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to a YAML config file",
		Sources: cli.EnvVars("ETHMETRICS_CONFIG"),
	}
}

func logLevelFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "log-level",
		Value:   "info",
		Usage:   "Log level (debug, info, warn, error)",
		Sources: cli.EnvVars("ETHMETRICS_LOG_LEVEL", "LOG_LEVEL"),
	}
}

func nodeURLFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "node-url",
		Aliases: []string{"n"},
		Usage:   "JSON-RPC endpoint of the node (default http://127.0.0.1:8545)",
		Sources: cli.EnvVars("ETHMETRICS_NODE_URL"),
	}
}

func timeoutFlag() cli.Flag {
	return &cli.DurationFlag{
		Name:  "timeout",
		Value: defaults.RPCTimeout,
		Usage: "Timeout of a single JSON-RPC call",
	}
}

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file path (default: stdout)",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatJSON),
		Usage:   fmt.Sprintf("Output format (supported values: %s)", strings.Join(serializer.SupportedFormats(), ", ")),
	}
}

func includeFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:  "include",
		Usage: "Only emit metric keys matching these wildcard patterns",
	}
}

func excludeFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:  "exclude",
		Usage: "Drop metric keys matching these wildcard patterns",
	}
}

func txpoolFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "txpool",
		Value: true,
		Usage: "Capture txpool counts on geth nodes",
	}
}

func peersFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "peers",
		Value: true,
		Usage: "Capture one message per connected peer on geth nodes",
	}
}

// parseOutputFormat validates the --format flag.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	outFormat := serializer.Format(strings.ToLower(cmd.String("format")))
	if outFormat.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, supported values: %s",
			cmd.String("format"), strings.Join(serializer.SupportedFormats(), ", "))
	}
	return outFormat, nil
}

// loadConfig reads the --config file and applies command line overrides.
// Flags win over file values only when set explicitly.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}
	if err := applyOverrides(cmd, cfg); err != nil {
		return nil, err
	}
	logging.SetDefaultStructuredLoggerWithLevel(name, version, cfg.LogLevel)
	slog.Debug("config loaded",
		"node", cfg.Node.URL,
		"interval", cfg.Capture.Interval.String(),
		"txpool", cfg.Capture.Txpool,
		"peers", cfg.Capture.Peers)
	return cfg, nil
}

func applyOverrides(cmd *cli.Command, cfg *config.Config) error {
	if cmd.IsSet("log-level") {
		cfg.LogLevel = strings.ToLower(cmd.String("log-level"))
	}
	if cmd.IsSet("node-url") {
		cfg.Node.URL = cmd.String("node-url")
	}
	if cmd.IsSet("timeout") {
		cfg.Node.Timeout = cmd.Duration("timeout")
	}
	if cmd.IsSet("include") {
		cfg.Capture.Include = cmd.StringSlice("include")
	}
	if cmd.IsSet("exclude") {
		cfg.Capture.Exclude = cmd.StringSlice("exclude")
	}
	if cmd.IsSet("txpool") {
		cfg.Capture.Txpool = cmd.Bool("txpool")
	}
	if cmd.IsSet("peers") {
		cfg.Capture.Peers = cmd.Bool("peers")
	}
	if cmd.IsSet("interval") {
		cfg.Capture.Interval = cmd.Duration("interval")
	}
	if cmd.IsSet("format") {
		cfg.Output.Format = strings.ToLower(cmd.String("format"))
	}
	if cmd.IsSet("output") {
		cfg.Output.Path = cmd.String("output")
	}
	return cfg.Validate()
}

// newSink opens the report destination and returns a close func that logs
// close errors.
func newSink(cfg *config.Config) (serializer.Serializer, func()) {
	ser := serializer.NewFileWriterOrStdout(serializer.Format(cfg.Output.Format), cfg.Output.Path)
	return ser, func() {
		if err := serializer.Close(ser); err != nil {
			slog.Warn("failed to close serializer", "error", err)
		}
	}
}

func writeReport(ctx context.Context, ser serializer.Serializer, v any) error {
	if err := ser.Serialize(ctx, v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
