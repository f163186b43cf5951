// Copyright 2025 Menagerie Labs
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

package ledger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type ledgerMetrics struct {
	operationsTotal *prometheus.CounterVec
	epochsSettled   prometheus.Counter
	delistedTotal   prometheus.Counter
	currentEpoch    prometheus.Gauge
}

func (l *Ledger) initMetrics(registry prometheus.Registerer) {
	promautoFactory := promauto.With(registry)
	l.metrics = &ledgerMetrics{
		operationsTotal: promautoFactory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arena_ledger_operations_total",
				Help: "total ledger operations by name and outcome",
			},
			[]string{"op", "outcome"},
		),
		epochsSettled: promautoFactory.NewCounter(
			prometheus.CounterOpts{
				Name: "arena_ledger_epochs_settled_total",
				Help: "total epochs settled by the catch-up step",
			},
		),
		delistedTotal: promautoFactory.NewCounter(
			prometheus.CounterOpts{
				Name: "arena_ledger_collections_delisted_total",
				Help: "total collections delisted at epoch boundaries",
			},
		),
		currentEpoch: promautoFactory.NewGauge(
			prometheus.GaugeOpts{
				Name: "arena_ledger_current_epoch",
				Help: "ledger epoch seen by the most recent operation",
			},
		),
	}
}
