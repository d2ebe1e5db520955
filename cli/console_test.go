// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConsole(t *testing.T) {
	require := require.New(t)
	t.Setenv("COUNTER_URI", "http://127.0.0.1:9650")

	input := strings.Join([]string{
		"counter increment",
		"",
		"chain set $COUNTER_URI",
		"fail",
		`key import "my keys/id.json"`,
		"exit",
		"counter decrement",
	}, "\n")
	var calls [][]string
	err := Console(context.Background(), strings.NewReader(input), func(_ context.Context, args []string) error {
		calls = append(calls, args)
		if args[0] == "fail" {
			return errors.New("boom")
		}
		return nil
	})
	require.NoError(err)
	require.Equal([][]string{
		{"counter", "increment"},
		{"chain", "set", "http://127.0.0.1:9650"},
		{"fail"},
		{"key", "import", "my keys/id.json"},
	}, calls)
}

func TestConsoleStopsAtEOF(t *testing.T) {
	calls := 0
	err := Console(context.Background(), strings.NewReader("counter count"), func(context.Context, []string) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, calls)
}

func TestConsoleCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Console(ctx, strings.NewReader("counter count"), func(context.Context, []string) error {
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
}
