// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/countervm/executor"
)

var _ executor.Metrics = (*executorMetrics)(nil)

type executorMetrics struct {
	blocked    prometheus.Counter
	executable prometheus.Counter
}

func (em *executorMetrics) RecordBlocked() {
	em.blocked.Inc()
}

func (em *executorMetrics) RecordExecutable() {
	em.executable.Inc()
}

type metrics struct {
	txsVerified    prometheus.Counter
	txsInvalid     prometheus.Counter
	txsSucceeded   prometheus.Counter
	txsFailed      prometheus.Counter
	executeLatency prometheus.Histogram

	executor *executorMetrics
}

func newMetrics(r prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		txsVerified: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "txs_verified",
			Help:      "number of transactions that passed verification",
		}),
		txsInvalid: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "txs_invalid",
			Help:      "number of transactions rejected before execution",
		}),
		txsSucceeded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "txs_succeeded",
			Help:      "number of transactions executed successfully",
		}),
		txsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "txs_failed",
			Help:      "number of transactions reverted during execution",
		}),
		executeLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "chain",
			Name:      "execute_latency",
			Help:      "time spent executing a batch of transactions (seconds)",
			Buckets:   prometheus.DefBuckets,
		}),
		executor: &executorMetrics{
			blocked: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "chain",
				Name:      "executor_blocked",
				Help:      "number of transactions that waited on a conflicting transaction",
			}),
			executable: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "chain",
				Name:      "executor_executable",
				Help:      "number of transactions that could run immediately",
			}),
		},
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.txsVerified),
		r.Register(m.txsInvalid),
		r.Register(m.txsSucceeded),
		r.Register(m.txsFailed),
		r.Register(m.executeLatency),
		r.Register(m.executor.blocked),
		r.Register(m.executor.executable),
	)
	return m, errs.Err
}
