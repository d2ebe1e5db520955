// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"go.uber.org/zap"

	"github.com/ava-labs/countervm/auth"
	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/programs/counter"
	"github.com/ava-labs/countervm/rpc"
	"github.com/ava-labs/countervm/runtime"
	"github.com/ava-labs/countervm/utils"
)

const (
	InitializeInstruction = "initialize"
	IncrementInstruction  = "increment"
	DecrementInstruction  = "decrement"
)

// NewInstruction builds the counter instruction called [name] paid for and
// signed by [payer].
func NewInstruction(name string, payer codec.Address) (chain.Action, error) {
	accounts, err := counter.NewAccounts(payer)
	if err != nil {
		return nil, err
	}
	switch name {
	case InitializeInstruction:
		return &counter.Initialize{Accounts: accounts}, nil
	case IncrementInstruction:
		return &counter.Increment{Accounts: accounts}, nil
	case DecrementInstruction:
		return &counter.Decrement{Accounts: accounts}, nil
	default:
		return nil, fmt.Errorf("%w: unknown instruction %q", ErrInvalidStep, name)
	}
}

func (h *Handler) defaultClient() (*rpc.JSONRPCClient, error) {
	uri, err := h.GetDefaultChain()
	if err != nil {
		return nil, err
	}
	return rpc.NewJSONRPCClient(uri), nil
}

// SendInstruction signs the counter instruction [name] with the default
// key, submits it to the default chain and prints the outcome. A reverted
// transaction returns [ErrTxFailed].
func (h *Handler) SendInstruction(ctx context.Context, name string) (*chain.Result, error) {
	priv, err := h.GetDefaultKey()
	if err != nil {
		return nil, err
	}
	cli, err := h.defaultClient()
	if err != nil {
		return nil, err
	}
	action, err := NewInstruction(name, priv.Address())
	if err != nil {
		return nil, err
	}
	txID, result, err := cli.Send(ctx, auth.NewED25519Factory(priv), action)
	if errors.Is(err, chain.ErrDuplicateTx) {
		return nil, fmt.Errorf("%w: identical %s already sent this second, try again", err, name)
	}
	if err != nil {
		return nil, err
	}
	h.log.Debug("sent instruction",
		zap.String("instruction", name),
		zap.Stringer("txID", txID),
		zap.Bool("success", result.Success),
	)
	if err := PrintResult(txID, result); err != nil {
		return nil, err
	}
	if !result.Success {
		return result, fmt.Errorf("%w: %s", ErrTxFailed, result.Error)
	}
	return result, nil
}

// Count prints the current count of the default chain.
func (h *Handler) Count(ctx context.Context) (uint64, error) {
	cli, err := h.defaultClient()
	if err != nil {
		return 0, err
	}
	count, err := cli.Count(ctx)
	if err != nil {
		return 0, err
	}
	utils.Outf("{{yellow}}count:{{/}} %d\n", count)
	return count, nil
}

// CounterAddress prints the counter address and bump of the default chain.
func (h *Handler) CounterAddress(ctx context.Context) (*rpc.NetworkReply, error) {
	cli, err := h.defaultClient()
	if err != nil {
		return nil, err
	}
	network, err := cli.Network(ctx)
	if err != nil {
		return nil, err
	}
	utils.Outf(
		"{{yellow}}program:{{/}} %s\n{{yellow}}counter:{{/}} %s {{yellow}}bump:{{/}} %d\n",
		network.ProgramID,
		network.Counter,
		network.Bump,
	)
	return network, nil
}

// PrintResult prints the logs and decoded events of a transaction.
func PrintResult(txID ids.ID, result *chain.Result) error {
	if result.Success {
		utils.Outf("{{green}}success:{{/}} %s\n", txID)
	} else {
		utils.Outf("{{red}}failed:{{/}} %s {{red}}error:{{/}} %s\n", txID, result.Error)
	}
	for _, l := range result.Logs {
		utils.Outf("  {{light-gray}}%s{{/}}\n", l)
	}
	for _, e := range result.Events {
		if err := PrintEvent(e); err != nil {
			return err
		}
	}
	return nil
}

func PrintEvent(e *runtime.Event) error {
	body, err := counter.ParseEvent(e)
	if err != nil {
		utils.Outf("  {{magenta}}%s:{{/}} %x\n", e.Name, e.Data)
		return nil
	}
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	utils.Outf("  {{magenta}}%s:{{/}} %s\n", e.Name, b)
	return nil
}
