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
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/splunk/ethmetrics/pkg/capture"
	"github.com/splunk/ethmetrics/pkg/config"
	"github.com/splunk/ethmetrics/pkg/defaults"
	"github.com/splunk/ethmetrics/pkg/serializer"
)

func runCmd() *cli.Command {
	return &cli.Command{
		Name:                  "run",
		EnableShellCompletion: true,
		Usage:                 "Capture node statistics periodically",
		Description: `Capture a report every interval until interrupted. Each report is
written to the output as a separate document.

When --config is given the file is watched. A valid change restarts the
capture loop with the new node and capture settings; an invalid change is
logged and ignored. Output settings are fixed for the life of the process.`,
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:    "interval",
				Aliases: []string{"i"},
				Value:   defaults.CaptureInterval,
				Usage:   "Time between captures",
			},
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

			path := cmd.String("config")
			if path == "" {
				return runLoop(ctx, cfg, ser)
			}

			updates := make(chan *config.Config, 1)
			g, gctx := errgroup.WithContext(ctx)

			g.Go(func() error {
				return config.Watch(gctx, path, func(next *config.Config) {
					if err := applyOverrides(cmd, next); err != nil {
						slog.Warn("reloaded config rejected", "error", err)
						return
					}
					// keep only the newest pending revision
					select {
					case <-updates:
					default:
					}
					updates <- next
				})
			})

			g.Go(func() error {
				return superviseLoop(gctx, cfg, ser, updates)
			})

			return g.Wait()
		},
	}
}

// superviseLoop runs the capture loop and restarts it on every config update.
func superviseLoop(ctx context.Context, cfg *config.Config, ser serializer.Serializer, updates <-chan *config.Config) error {
	current := cfg
	for {
		loopCtx, cancel := context.WithCancel(ctx)
		done := make(chan error, 1)
		go func(c *config.Config) {
			done <- runLoop(loopCtx, c, ser)
		}(current)

		select {
		case <-ctx.Done():
			cancel()
			<-done
			return nil
		case next := <-updates:
			cancel()
			<-done
			slog.Info("restarting capture loop", "node", next.Node.URL, "interval", next.Capture.Interval.String())
			current = next
		case err := <-done:
			cancel()
			return err
		}
	}
}

// runLoop connects to the node, retrying every interval, and then runs the
// capture runner until ctx is canceled.
func runLoop(ctx context.Context, cfg *config.Config, ser serializer.Serializer) error {
	interval := cfg.Capture.Interval
	if interval <= 0 {
		interval = defaults.CaptureInterval
	}

	runner, err := connect(ctx, cfg, ser, interval)
	if err != nil {
		return err
	}
	if runner == nil {
		return nil
	}

	if err := runner.Run(ctx); err != nil {
		return fmt.Errorf("capture loop failed: %w", err)
	}
	return nil
}

func connect(ctx context.Context, cfg *config.Config, ser serializer.Serializer, retry time.Duration) (*capture.Runner, error) {
	ticker := time.NewTicker(retry)
	defer ticker.Stop()

	for {
		runner, err := capture.NewRunner(ctx, cfg, version, ser)
		if err == nil {
			return runner, nil
		}
		slog.Warn("node not reachable, retrying", "node", cfg.Node.URL, "retry", retry.String(), "error", err)

		select {
		case <-ctx.Done():
			return nil, nil
		case <-ticker.C:
		}
	}
}
