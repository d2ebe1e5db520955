// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ava-labs/countervm/actions"
	"github.com/ava-labs/countervm/auth"
	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/crypto/ed25519"
	"github.com/ava-labs/countervm/ledger"
	"github.com/ava-labs/countervm/pebble"
	"github.com/ava-labs/countervm/registry"
	"github.com/ava-labs/countervm/runtime"
)

const (
	faucetSupply = 1_000_000 * 1_000_000_000
	keyFunding   = 10 * 1_000_000_000
)

// Response is printed as one JSON line per simulated step.
type Response struct {
	// The index of the step that generated this response.
	ID          int    `json:"id"`
	Description string `json:"description,omitempty"`
	Result      Result `json:"result"`
	// The error message if available.
	Error string `json:"error,omitempty"`
}

type Result struct {
	TxID    string           `json:"txId,omitempty"`
	Success bool             `json:"success"`
	Address string           `json:"address,omitempty"`
	Balance *uint64          `json:"balance,omitempty"`
	Count   *uint64          `json:"count,omitempty"`
	Logs    []string         `json:"logs,omitempty"`
	Events  []*runtime.Event `json:"events,omitempty"`
}

// Simulator runs plans against a private in-memory ledger. Each step
// advances the ledger clock by one second so repeated instructions from
// one signer produce distinct transactions.
type Simulator struct {
	log    logging.Logger
	db     *pebble.Database
	ledger *ledger.Ledger
	faucet ed25519.PrivateKey
	keys   map[string]ed25519.PrivateKey
	now    int64
}

func NewSimulator(ctx context.Context, log logging.Logger) (*Simulator, error) {
	faucet, err := ed25519.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	db, _, err := pebble.NewInMemory(pebble.NewDefaultConfig())
	if err != nil {
		return nil, err
	}
	s := &Simulator{
		log:    log,
		db:     db,
		faucet: faucet,
		keys:   make(map[string]ed25519.PrivateKey),
		now:    time.Now().UnixMilli() / consts.MillisecondsPerSecond * consts.MillisecondsPerSecond,
	}
	genesis := ledger.NewDefaultGenesis([]*ledger.CustomAllocation{
		{Address: faucet.Address(), Balance: faucetSupply},
	})
	genesis.Timestamp = s.now
	s.ledger, err = ledger.New(
		ctx,
		log,
		trace.Noop,
		prometheus.NewRegistry(),
		ledger.NewDefaultConfig(),
		genesis,
		db,
		ledger.WithClock(func() time.Time { return time.UnixMilli(s.now) }),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Run executes every step of [plan] and writes one [Response] per step to
// [out]. It stops at the first failed assertion.
func (s *Simulator) Run(ctx context.Context, plan *Plan, out io.Writer) error {
	if err := plan.Verify(); err != nil {
		return err
	}
	s.log.Info("simulation",
		zap.String("name", plan.Name),
		zap.String("plan", plan.Description),
		zap.Int("steps", len(plan.Steps)),
	)
	enc := json.NewEncoder(out)
	for i, step := range plan.Steps {
		s.now += consts.MillisecondsPerSecond
		s.log.Debug("simulation",
			zap.Int("step", i),
			zap.String("description", step.Description),
			zap.String("action", step.Action),
			zap.String("key", step.Key),
		)
		resp := &Response{ID: i, Description: step.Description}
		stepErr := s.runStep(ctx, &step, &resp.Result)
		if stepErr != nil {
			resp.Error = stepErr.Error()
		}
		if err := enc.Encode(resp); err != nil {
			return err
		}
		if err := checkRequire(&step, resp, stepErr); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	return nil
}

func (s *Simulator) runStep(ctx context.Context, step *Step, result *Result) error {
	switch step.Action {
	case KeyStep:
		if _, ok := s.keys[step.Key]; ok {
			return fmt.Errorf("%w: key %q", ErrDuplicate, step.Key)
		}
		priv, err := ed25519.GeneratePrivateKey()
		if err != nil {
			return err
		}
		s.keys[step.Key] = priv
		result.Address = priv.Address().String()
		if err := s.submit(ctx, s.faucet, result, &actions.Transfer{To: priv.Address(), Value: keyFunding}); err != nil {
			return err
		}
		return s.balance(ctx, priv.Address(), result)
	case BalanceStep:
		priv, err := s.key(step.Key)
		if err != nil {
			return err
		}
		result.Address = priv.Address().String()
		return s.balance(ctx, priv.Address(), result)
	case CountStep:
		count, err := s.ledger.Count(ctx)
		if err != nil {
			return err
		}
		result.Success = true
		result.Count = &count
		return nil
	default:
		priv, err := s.key(step.Key)
		if err != nil {
			return err
		}
		action, err := NewInstruction(step.Action, priv.Address())
		if err != nil {
			return err
		}
		if err := s.submit(ctx, priv, result, action); err != nil {
			return err
		}
		count, err := s.ledger.Count(ctx)
		if errors.Is(err, runtime.ErrAccountNotInitialized) {
			return nil
		}
		if err != nil {
			return err
		}
		result.Count = &count
		return nil
	}
}

func (s *Simulator) key(name string) (ed25519.PrivateKey, error) {
	priv, ok := s.keys[name]
	if !ok {
		return ed25519.EmptyPrivateKey, fmt.Errorf("%w: %q", ErrUnknownKey, name)
	}
	return priv, nil
}

func (s *Simulator) balance(ctx context.Context, addr codec.Address, result *Result) error {
	balance, err := s.ledger.Balance(ctx, addr)
	if err != nil {
		return err
	}
	result.Balance = &balance
	return nil
}

func (s *Simulator) submit(ctx context.Context, priv ed25519.PrivateKey, result *Result, acts ...chain.Action) error {
	base := &chain.Base{
		Timestamp: s.now + chain.DefaultValidityWindow,
		ChainID:   s.ledger.ChainID(),
	}
	tx, err := chain.NewTx(base, acts).Sign(auth.NewED25519Factory(priv), registry.Action, registry.Auth)
	if err != nil {
		return err
	}
	blk, err := s.ledger.Submit(ctx, tx)
	if err != nil {
		return err
	}
	r := blk.Results[0]
	result.TxID = tx.ID().String()
	result.Success = r.Success
	result.Logs = r.Logs
	result.Events = r.Events
	if !r.Success {
		return fmt.Errorf("%w: %s", ErrTxFailed, r.Error)
	}
	return nil
}

// checkRequire compares the outcome of [step] with its assertions. Without
// assertions every outcome is accepted.
func checkRequire(step *Step, resp *Response, stepErr error) error {
	req := step.Require
	if req == nil {
		return nil
	}
	if req.Success != nil && *req.Success != (stepErr == nil) {
		return fmt.Errorf("%w: success=%t, error=%q", ErrAssertion, stepErr == nil, resp.Error)
	}
	if req.Error != "" && (stepErr == nil || !strings.Contains(stepErr.Error(), req.Error)) {
		return fmt.Errorf("%w: expected error %q, got %q", ErrAssertion, req.Error, resp.Error)
	}
	if req.Result == nil {
		return nil
	}
	actual := resp.Result.Count
	if step.Action == BalanceStep || step.Action == KeyStep {
		actual = resp.Result.Balance
	}
	if actual == nil {
		return fmt.Errorf("%w: step produced no value to compare", ErrAssertion)
	}
	ok, err := validateAssertion(*actual, req.Result)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %d %s %s", ErrAssertion, *actual, req.Result.Operator, req.Result.Value)
	}
	return nil
}

func (s *Simulator) Close() error {
	return errors.Join(s.ledger.Close(), s.db.Close())
}

// Simulate runs the plan read from [r] on a fresh in-memory ledger.
func (h *Handler) Simulate(ctx context.Context, r io.Reader, out io.Writer) error {
	plan, err := ReadPlan(r)
	if err != nil {
		return err
	}
	s, err := NewSimulator(ctx, h.log)
	if err != nil {
		return err
	}
	return errors.Join(s.Run(ctx, plan, out), s.Close())
}
