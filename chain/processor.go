// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/neilotoole/errgroup"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/ava-labs/countervm/executor"
	"github.com/ava-labs/countervm/runtime"
	"github.com/ava-labs/countervm/state"
	"github.com/ava-labs/countervm/tstate"

	oteltrace "go.opentelemetry.io/otel/trace"
)

const programDataPrefix = "Program data: "

type ProcessorConfig struct {
	ChainID        ids.ID
	ValidityWindow int64
	Concurrency    int
}

// Processor verifies and executes batches of transactions.
type Processor struct {
	tracer  trace.Tracer
	log     logging.Logger
	config  ProcessorConfig
	engines AuthEngines
	metrics *metrics
}

func NewProcessor(
	tracer trace.Tracer,
	log logging.Logger,
	config ProcessorConfig,
	engines AuthEngines,
	registerer prometheus.Registerer,
) (*Processor, error) {
	m, err := newMetrics(registerer)
	if err != nil {
		return nil, err
	}
	if config.ValidityWindow <= 0 {
		config.ValidityWindow = DefaultValidityWindow
	}
	if config.Concurrency <= 0 {
		config.Concurrency = 1
	}
	return &Processor{
		tracer:  tracer,
		log:     log,
		config:  config,
		engines: engines,
		metrics: m,
	}, nil
}

// Verify performs every check that does not depend on state: expiry,
// chain ID and signature. It returns one entry per transaction; nil means
// the transaction may be executed at [timestamp].
func (p *Processor) Verify(ctx context.Context, timestamp int64, txs []*Transaction) []error {
	_, span := p.tracer.Start(ctx, "Processor.Verify", oteltrace.WithAttributes(
		attribute.Int("txs", len(txs)),
	))
	defer span.End()

	errs := make([]error, len(txs))
	batches := map[uint8]AuthBatchVerifier{}
	indices := map[uint8][]int{}
	for i, tx := range txs {
		if err := tx.Base.Verify(p.config.ChainID, p.config.ValidityWindow, timestamp); err != nil {
			errs[i] = err
			continue
		}
		digest, err := tx.Digest()
		if err != nil {
			errs[i] = err
			continue
		}
		authType := tx.Auth.GetTypeID()
		newBatch, ok := p.engines[authType]
		if !ok {
			errs[i] = tx.Auth.Verify(ctx, digest)
			continue
		}
		batch, ok := batches[authType]
		if !ok {
			batch = newBatch(len(txs))
			batches[authType] = batch
		}
		batch.Add(digest, tx.Auth)
		indices[authType] = append(indices[authType], i)
	}
	// Each batch owns a disjoint set of indices in errs.
	g, _ := errgroup.WithContextN(ctx, p.config.Concurrency, len(batches))
	for authType, batch := range batches {
		idx, batch := indices[authType], batch
		g.Go(func() error {
			for j, err := range batch.Verify() {
				if err != nil {
					errs[idx[j]] = fmt.Errorf("%w: %w", ErrInvalidSignature, err)
				}
			}
			return nil
		})
	}
	_ = g.Wait()
	for _, err := range errs {
		if err != nil {
			p.metrics.txsInvalid.Inc()
		} else {
			p.metrics.txsVerified.Inc()
		}
	}
	return errs
}

// Execute runs [txs] against [im] as of [timestamp]. Transactions whose
// state keys overlap run in the order given; others run concurrently.
//
// The returned [tstate.TState] holds the changes of every successful
// transaction. A failed transaction leaves no trace other than its
// [Result].
func (p *Processor) Execute(
	ctx context.Context,
	timestamp int64,
	im state.Immutable,
	txs []*Transaction,
) (*tstate.TState, []*Result, error) {
	ctx, span := p.tracer.Start(ctx, "Processor.Execute", oteltrace.WithAttributes(
		attribute.Int("txs", len(txs)),
		attribute.Int64("timestamp", timestamp),
	))
	defer span.End()

	start := time.Now()
	defer func() {
		p.metrics.executeLatency.Observe(time.Since(start).Seconds())
	}()

	storage, err := p.prefetch(ctx, im, txs)
	if err != nil {
		return nil, nil, err
	}
	var (
		ts      = tstate.New(len(txs) * 2)
		e       = executor.New(len(txs), p.config.Concurrency, p.metrics.executor)
		results = make([]*Result, len(txs))
	)
	for i, tx := range txs {
		i, tx := i, tx
		stateKeys := tx.StateKeys()
		e.Run(stateKeys, func() error {
			tsv := ts.NewView(stateKeys, storage)
			results[i] = p.executeTx(ctx, tsv, timestamp, tx)
			tsv.Commit()
			return nil
		})
	}
	if err := e.Wait(); err != nil {
		return nil, nil, err
	}
	return ts, results, nil
}

func (p *Processor) prefetch(ctx context.Context, im state.Immutable, txs []*Transaction) (map[string][]byte, error) {
	storage := make(map[string][]byte, len(txs)*2)
	seen := make(map[string]struct{}, len(txs)*2)
	for _, tx := range txs {
		for k := range tx.StateKeys() {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			v, err := im.GetValue(ctx, []byte(k))
			if errors.Is(err, database.ErrNotFound) {
				continue
			}
			if err != nil {
				return nil, err
			}
			storage[k] = v
		}
	}
	return storage, nil
}

func (p *Processor) executeTx(
	ctx context.Context,
	tsv *tstate.TStateView,
	timestamp int64,
	tx *Transaction,
) *Result {
	var (
		actor  = tx.Auth.Actor()
		logs   []string
		events []*runtime.Event
	)
	for _, action := range tx.Actions {
		programID := action.ProgramID()
		logs = append(logs, fmt.Sprintf("Program %s invoke [1]", programID))
		ic := runtime.NewInvokeContext(actor, programID, tsv, timestamp)
		ic.Log("Instruction: " + action.Name())
		if err := action.Execute(ctx, ic); err != nil {
			tsv.Rollback(ctx, 0)
			logs = append(logs, ic.Logs()...)
			logs = append(logs, fmt.Sprintf("Program %s failed: %v", programID, err))
			result := &Result{
				Error: err.Error(),
				Logs:  withoutEventData(logs),
			}
			if perr, ok := runtime.AsProgramError(err); ok {
				result.ErrorCode = perr.Code
			}
			p.metrics.txsFailed.Inc()
			p.log.Debug("transaction failed",
				zap.Stringer("txID", tx.ID()),
				zap.Stringer("actor", actor),
				zap.String("instruction", action.Name()),
				zap.Error(err),
			)
			return result
		}
		logs = append(logs, ic.Logs()...)
		logs = append(logs, fmt.Sprintf("Program %s success", programID))
		events = append(events, ic.Events()...)
	}
	p.metrics.txsSucceeded.Inc()
	return &Result{
		Success: true,
		Events:  events,
		Logs:    logs,
	}
}

// withoutEventData drops event payloads from the logs of a reverted
// transaction.
func withoutEventData(logs []string) []string {
	kept := logs[:0:0]
	for _, l := range logs {
		if strings.HasPrefix(l, programDataPrefix) {
			continue
		}
		kept = append(kept, l)
	}
	return kept
}
