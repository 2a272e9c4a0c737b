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

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	validator "gopkg.in/go-playground/validator.v9"

	"github.com/splunk/ethmetrics/pkg/defaults"
	apperrors "github.com/splunk/ethmetrics/pkg/errors"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "ETHMETRICS"

// Config is the complete ethmetrics configuration.
type Config struct {
	LogLevel string        `mapstructure:"logLevel" yaml:"logLevel" validate:"omitempty,oneof=debug info warn warning error"`
	Node     NodeConfig    `mapstructure:"node" yaml:"node"`
	Capture  CaptureConfig `mapstructure:"capture" yaml:"capture"`
	Output   OutputConfig  `mapstructure:"output" yaml:"output"`
	Server   ServerConfig  `mapstructure:"server" yaml:"server"`
}

// NodeConfig describes the JSON-RPC endpoint.
type NodeConfig struct {
	URL               string            `mapstructure:"url" yaml:"url" validate:"required,url"`
	Timeout           time.Duration     `mapstructure:"timeout" yaml:"timeout" validate:"gte=0"`
	RequestsPerSecond int               `mapstructure:"requestsPerSecond" yaml:"requestsPerSecond" validate:"gte=0"`
	Headers           map[string]string `mapstructure:"headers" yaml:"headers,omitempty"`
}

// CaptureConfig selects what is captured and how often.
type CaptureConfig struct {
	Interval time.Duration `mapstructure:"interval" yaml:"interval"`
	Include  []string      `mapstructure:"include" yaml:"include,omitempty"`
	Exclude  []string      `mapstructure:"exclude" yaml:"exclude,omitempty"`
	Txpool   bool          `mapstructure:"txpool" yaml:"txpool"`
	Peers    bool          `mapstructure:"peers" yaml:"peers"`
}

// OutputConfig selects the report format and destination.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format" validate:"omitempty,oneof=json yaml table"`
	Path   string `mapstructure:"path" yaml:"path,omitempty"`
}

// ServerConfig overrides the HTTP server settings of the daemon. Zero values
// keep the server defaults.
type ServerConfig struct {
	Address        string  `mapstructure:"address" yaml:"address,omitempty"`
	Port           int     `mapstructure:"port" yaml:"port,omitempty" validate:"gte=0,lte=65535"`
	RateLimit      float64 `mapstructure:"rateLimit" yaml:"rateLimit,omitempty" validate:"gte=0"`
	RateLimitBurst int     `mapstructure:"rateLimitBurst" yaml:"rateLimitBurst,omitempty" validate:"gte=0"`
}

var defaultValues = map[string]any{
	"logLevel":               "info",
	"node.url":               "http://127.0.0.1:8545",
	"node.timeout":           defaults.RPCTimeout,
	"node.requestsPerSecond": 0,
	"node.headers":           map[string]string{},
	"capture.interval":       defaults.CaptureInterval,
	"capture.include":        []string{},
	"capture.exclude":        []string{},
	"capture.txpool":         true,
	"capture.peers":          true,
	"output.format":          "json",
	"output.path":            "",
	"server.address":         "",
	"server.port":            0,
	"server.rateLimit":       0,
	"server.rateLimitBurst":  0,
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	for key, value := range defaultValues {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Default returns the built-in configuration with environment overrides.
func Default() (*Config, error) {
	return Load("")
}

// Load reads the YAML file at path, applies environment overrides and
// validates the result. An empty path loads defaults and environment only.
func Load(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, apperrors.WrapWithContext(apperrors.ErrCodeInvalidRequest,
				"failed to read config", err, map[string]any{"path": path})
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "failed to decode config", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks struct constraints and the minimum capture interval.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid config", err)
	}
	if c.Capture.Interval != 0 && c.Capture.Interval < defaults.MinCaptureInterval {
		return apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("capture interval %s is below minimum %s", c.Capture.Interval, defaults.MinCaptureInterval))
	}
	return nil
}
