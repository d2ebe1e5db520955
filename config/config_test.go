// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/crypto/ed25519"
	"github.com/ava-labs/countervm/ledger"
)

func TestParseOverlaysDefaults(t *testing.T) {
	require := require.New(t)

	c, err := Parse([]byte(`{
		"dataDir": "/tmp/counterd",
		"httpPort": 9999,
		"ledger": {"maxBlockTxs": 8},
		"log": {"logLevel": "debug"},
		"traceConfig": {"enabled": true}
	}`))
	require.NoError(err)
	require.Equal("/tmp/counterd", c.DataDir)
	require.Equal("127.0.0.1:9999", c.Address())
	require.Equal(filepath.Join("/tmp/counterd", "db"), c.DatabasePath())
	require.Equal(filepath.Join("/tmp/counterd", "logs"), c.LogConfig.Directory)
	require.Equal("debug", c.LogConfig.LogLevel)
	require.Equal("info", c.LogConfig.DisplayLevel)
	require.Equal(8, c.LedgerConfig.MaxBlockTxs)
	require.Equal(ledger.NewDefaultConfig().ValidityWindow, c.LedgerConfig.ValidityWindow)
	require.True(c.TraceConfig.Enabled)
	require.Equal(10*time.Second, c.ShutdownTimeout)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name        string
		config      string
		expectedErr error
	}{
		{"EmptyDataDir", `{"dataDir": ""}`, ErrMissingDataDir},
		{"ZeroConcurrency", `{"ledger": {"concurrency": 0}}`, ErrInvalidConfig},
		{"NegativeWindow", `{"ledger": {"validityWindow": -1}}`, ErrInvalidConfig},
		{"PingAfterPong", `{"streaming": {"pingPeriod": 60000000000, "pongWait": 1000000000}}`, ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.config))
			require.ErrorIs(t, err, tt.expectedErr)
		})
	}
	_, err := Parse([]byte(`{"httpPort": "high"}`))
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()

	c, err := Load("")
	require.NoError(err)
	require.Equal(NewDefaultConfig().HTTPPort, c.HTTPPort)
	genesis, err := c.LoadGenesis()
	require.NoError(err)
	require.Empty(genesis.CustomAllocation)

	priv, err := ed25519.GeneratePrivateKey()
	require.NoError(err)
	genesisPath := filepath.Join(dir, "genesis.json")
	require.NoError(os.WriteFile(genesisPath, []byte(`{"customAllocation":[{"address":"`+priv.Address().String()+`","balance":5}]}`), 0o600))
	configPath := filepath.Join(dir, "config.json")
	require.NoError(os.WriteFile(configPath, []byte(`{"genesisFile":"`+genesisPath+`"}`), 0o600))

	c, err = Load(configPath)
	require.NoError(err)
	genesis, err = c.LoadGenesis()
	require.NoError(err)
	require.Len(genesis.CustomAllocation, 1)
	require.Equal(priv.Address(), genesis.CustomAllocation[0].Address)
	require.Equal(uint64(5), genesis.CustomAllocation[0].Balance)
	require.NotEqual(codec.EmptyAddress, genesis.CustomAllocation[0].Address)

	_, err = Load(filepath.Join(dir, "missing.json"))
	require.ErrorIs(err, os.ErrNotExist)
}
