// Copyright 2026 The GNP Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package router

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the prometheus metrics of the router.
type Metrics struct {
	ReceivedDatagramsTotal  *prometheus.CounterVec
	ForwardedDatagramsTotal prometheus.Counter
	DeliveredDatagramsTotal *prometheus.CounterVec
	SentDatagramsTotal      *prometheus.CounterVec
	DroppedDatagramsTotal   *prometheus.CounterVec
	HookVerdictsTotal       *prometheus.CounterVec
	QueuedDatagrams         prometheus.Gauge
}

// NewMetrics creates the metrics and registers them with reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ReceivedDatagramsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gnp_received_datagrams_total",
				Help: "Total number of datagrams received from the network.",
			},
			[]string{"interface"},
		),
		ForwardedDatagramsTotal: f.NewCounter(
			prometheus.CounterOpts{
				Name: "gnp_forwarded_datagrams_total",
				Help: "Total number of forwarded datagrams handed to the link layer.",
			},
		),
		DeliveredDatagramsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gnp_delivered_datagrams_total",
				Help: "Total number of datagrams delivered to the upper layers (kind=local_in) " +
					"or sent on behalf of them (kind=local_out).",
			},
			[]string{"kind"},
		),
		SentDatagramsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gnp_sent_datagrams_total",
				Help: "Total number of datagrams handed to the link layer per interface.",
			},
			[]string{"interface"},
		),
		DroppedDatagramsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gnp_dropped_datagrams_total",
				Help: "Total number of datagrams dropped by the router.",
			},
			[]string{"reason"},
		),
		HookVerdictsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gnp_hook_verdicts_total",
				Help: "Total number of non-accepting hook verdicts per interception point.",
			},
			[]string{"point", "verdict"},
		),
		QueuedDatagrams: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "gnp_queued_datagrams",
				Help: "Number of datagrams waiting for an external verdict.",
			},
		),
	}
}
