// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config holds the configuration of counterd.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ava-labs/countervm/ledger"
	"github.com/ava-labs/countervm/logger"
	"github.com/ava-labs/countervm/pebble"
	"github.com/ava-labs/countervm/pubsub"
	"github.com/ava-labs/countervm/server"
	"github.com/ava-labs/countervm/trace"
)

const (
	dbDirectory  = "db"
	logDirectory = "logs"
)

var (
	ErrMissingDataDir = errors.New("data directory is required")
	ErrInvalidConfig  = errors.New("invalid config")
)

type Config struct {
	// DataDir holds the database and, unless overridden, the logs.
	DataDir string `json:"dataDir"`
	// GenesisFile is read on first start. Empty uses a default genesis
	// without allocations.
	GenesisFile string `json:"genesisFile"`

	HTTPHost        string            `json:"httpHost"`
	HTTPPort        uint16            `json:"httpPort"`
	AllowedOrigins  []string          `json:"allowedOrigins"`
	HTTPConfig      server.HTTPConfig `json:"httpConfig"`
	ShutdownTimeout time.Duration     `json:"shutdownTimeout"`

	LogConfig       logger.Config       `json:"log"`
	LedgerConfig    ledger.Config       `json:"ledger"`
	PebbleConfig    pebble.Config       `json:"pebble"`
	StreamingConfig pubsub.ServerConfig `json:"streaming"`
	TraceConfig     trace.Config        `json:"traceConfig"`
}

func NewDefaultConfig() Config {
	return Config{
		DataDir:         ".counterd",
		HTTPHost:        "127.0.0.1",
		HTTPPort:        9650,
		AllowedOrigins:  []string{"*"},
		HTTPConfig:      server.NewDefaultHTTPConfig(),
		ShutdownTimeout: 10 * time.Second,
		LogConfig:       logger.NewDefaultConfig(),
		LedgerConfig:    ledger.NewDefaultConfig(),
		PebbleConfig:    pebble.NewDefaultConfig(),
		StreamingConfig: pubsub.NewDefaultServerConfig(),
		TraceConfig:     trace.NewDefaultConfig(),
	}
}

// Parse overlays [b] onto the defaults. Fields missing from [b] keep their
// default values.
func Parse(b []byte) (Config, error) {
	c := NewDefaultConfig()
	if len(b) > 0 {
		if err := json.Unmarshal(b, &c); err != nil {
			return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}
	if c.LogConfig.Directory == "" {
		c.LogConfig.Directory = filepath.Join(c.DataDir, logDirectory)
	}
	return c, c.Verify()
}

// Load parses the config file at [path]. An empty [path] returns the
// defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Parse(nil)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(b)
}

func (c *Config) Verify() error {
	switch {
	case c.DataDir == "":
		return ErrMissingDataDir
	case c.LedgerConfig.ValidityWindow <= 0:
		return fmt.Errorf("%w: validityWindow must be positive", ErrInvalidConfig)
	case c.LedgerConfig.Concurrency <= 0:
		return fmt.Errorf("%w: concurrency must be positive", ErrInvalidConfig)
	case c.LedgerConfig.MaxBlockTxs <= 0:
		return fmt.Errorf("%w: maxBlockTxs must be positive", ErrInvalidConfig)
	case c.StreamingConfig.PingPeriod >= c.StreamingConfig.PongWait:
		return fmt.Errorf("%w: pingPeriod must be less than pongWait", ErrInvalidConfig)
	default:
		return nil
	}
}

// Address is the host:port the HTTP server listens on.
func (c *Config) Address() string {
	return net.JoinHostPort(c.HTTPHost, strconv.Itoa(int(c.HTTPPort)))
}

func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, dbDirectory)
}

// LoadGenesis reads [GenesisFile], or returns a default genesis when it is
// unset.
func (c *Config) LoadGenesis() (*ledger.Genesis, error) {
	if c.GenesisFile == "" {
		return ledger.NewDefaultGenesis(nil), nil
	}
	b, err := os.ReadFile(c.GenesisFile)
	if err != nil {
		return nil, err
	}
	return ledger.ParseGenesis(b)
}
