// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/ledger"
	"github.com/ava-labs/countervm/pebble"
	"github.com/ava-labs/countervm/programs/counter"
	"github.com/ava-labs/countervm/pubsub"
	"github.com/ava-labs/countervm/rpc"
)

// newTestNode serves a fresh ledger funding [h]'s default key and makes it
// the default chain of [h].
func newTestNode(t *testing.T, h *Handler) *rpc.WebSocketServer {
	require := require.New(t)
	ctx := context.Background()

	priv, err := h.GetDefaultKey()
	require.NoError(err)
	db, _, err := pebble.NewInMemory(pebble.NewDefaultConfig())
	require.NoError(err)
	l, err := ledger.New(
		ctx,
		logging.NoLog{},
		trace.Noop,
		prometheus.NewRegistry(),
		ledger.NewDefaultConfig(),
		ledger.NewDefaultGenesis([]*ledger.CustomAllocation{
			{Address: priv.Address(), Balance: 10_000_000_000},
		}),
		db,
	)
	require.NoError(err)

	handler, err := rpc.NewJSONRPCHandler(rpc.Name, rpc.NewJSONRPCServer(logging.NoLog{}, trace.Noop, l))
	require.NoError(err)
	ws := rpc.NewWebSocketServer(logging.NoLog{}, pubsub.NewDefaultServerConfig())
	_, err = l.Subscribe(ws)
	require.NoError(err)
	mux := http.NewServeMux()
	mux.Handle(rpc.JSONRPCEndpoint, handler)
	mux.Handle(rpc.WebSocketEndpoint, ws.Handler())
	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		require.NoError(l.Close())
		require.NoError(db.Close())
	})

	require.NoError(h.SetChain(ctx, server.URL))
	return ws
}

func TestCounterCommands(t *testing.T) {
	require := require.New(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	h := newTestHandler(t)
	_, err := h.GenerateKey()
	require.NoError(err)
	ws := newTestNode(t, h)

	network, err := h.CounterAddress(ctx)
	require.NoError(err)
	addr, bump, err := counter.CounterAddress()
	require.NoError(err)
	require.Equal(addr, network.Counter)
	require.Equal(bump, network.Bump)

	_, err = h.Count(ctx)
	require.Error(err)

	watched := make(chan error, 1)
	go func() {
		watched <- h.WatchEvents(ctx, 3)
	}()
	require.Eventually(func() bool {
		return ws.Handler().Connections().Len() == 1
	}, time.Second, 10*time.Millisecond)

	result, err := h.SendInstruction(ctx, InitializeInstruction)
	require.NoError(err)
	require.Len(result.Events, 1)
	_, err = h.SendInstruction(ctx, IncrementInstruction)
	require.NoError(err)
	_, err = h.SendInstruction(ctx, DecrementInstruction)
	require.NoError(err)
	require.NoError(<-watched)

	count, err := h.Count(ctx)
	require.NoError(err)
	require.Zero(count)

	// A second key decrementing at zero reverts with Underflow.
	_, err = h.GenerateKey()
	require.NoError(err)
	result, err = h.SendInstruction(ctx, DecrementInstruction)
	require.ErrorIs(err, ErrTxFailed)
	require.False(result.Success)
	require.Contains(result.Error, "Underflow")
	require.Equal(uint32(6001), result.ErrorCode)

	_, err = h.SendInstruction(ctx, "reset")
	require.ErrorIs(err, ErrInvalidStep)
}
