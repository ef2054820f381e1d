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

// Package config defines the configuration file of the router process.
package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gnprouter/gnp/pkg/log"
	"github.com/gnprouter/gnp/pkg/private/serrors"
	"github.com/gnprouter/gnp/private/config"
	"github.com/gnprouter/gnp/router"
)

const (
	DefaultID = "gnp"
	// HandlerTimeout bounds the time a metrics scrape may take.
	HandlerTimeout = time.Minute
)

var _ config.Config = (*Config)(nil)

// Config is the root of the router configuration file.
type Config struct {
	General      General       `toml:"general,omitempty"`
	Logging      log.Config    `toml:"log,omitempty"`
	Metrics      Metrics       `toml:"metrics,omitempty"`
	API          API           `toml:"api,omitempty"`
	Router       Router        `toml:"router,omitempty"`
	Interfaces   []Interface   `toml:"interfaces,omitempty"`
	Routes       []Route       `toml:"routes,omitempty"`
	PolicyRoutes []PolicyRoute `toml:"policy_routes,omitempty"`
	Inspect      []Inspect     `toml:"inspect,omitempty"`
}

func (cfg *Config) InitDefaults() {
	config.InitAll(
		&cfg.General,
		&cfg.Logging,
		&cfg.Metrics,
		&cfg.API,
		&cfg.Router,
	)
}

// Validate checks the blocks and the references between interfaces, routes
// and hooks.
func (cfg *Config) Validate() error {
	if err := config.ValidateAll(
		&cfg.General,
		&cfg.Logging,
		&cfg.Metrics,
		&cfg.API,
		&cfg.Router,
	); err != nil {
		return err
	}
	ifaces, err := cfg.InterfaceTable()
	if err != nil {
		return err
	}
	if _, err := cfg.RouteTable(ifaces); err != nil {
		return err
	}
	if _, err := cfg.Hooks(ifaces, nil); err != nil {
		return err
	}
	_, err = cfg.Endpoints(ifaces)
	return err
}

func (cfg *Config) Sample(dst io.Writer, path config.Path, _ config.CtxMap) {
	config.WriteSample(dst, path, config.CtxMap{config.ID: DefaultID},
		&cfg.General,
		&cfg.Logging,
		&cfg.Metrics,
		&cfg.API,
		&cfg.Router,
		tablesSampler{},
	)
}

// General holds the identity of the router process.
type General struct {
	// ID identifies the router in logs.
	ID string `toml:"id,omitempty"`
}

func (cfg *General) InitDefaults() {
	if cfg.ID == "" {
		cfg.ID = DefaultID
	}
}

func (cfg *General) Validate() error {
	return nil
}

func (cfg *General) Sample(dst io.Writer, _ config.Path, ctx config.CtxMap) {
	config.WriteString(dst, fmt.Sprintf(generalSample, ctx[config.ID]))
}

func (cfg *General) ConfigName() string {
	return "general"
}

// Metrics configures the prometheus endpoint.
type Metrics struct {
	config.NoDefaulter
	config.NoValidator

	// Prometheus is the address metrics are exported on. Empty disables
	// the export.
	Prometheus string `toml:"prometheus,omitempty"`
}

func (cfg *Metrics) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, metricsSample)
}

func (cfg *Metrics) ConfigName() string {
	return "metrics"
}

// ServePrometheus serves the metrics of the default registry until ctx is
// done. It returns immediately if no address is configured.
func (cfg *Metrics) ServePrometheus(ctx context.Context) error {
	if cfg.Prometheus == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.InstrumentMetricHandler(
		prometheus.DefaultRegisterer,
		promhttp.HandlerFor(
			prometheus.DefaultGatherer,
			promhttp.HandlerOpts{Timeout: HandlerTimeout},
		),
	))
	log.Info("Exporting prometheus metrics", "addr", cfg.Prometheus)

	server := &http.Server{Addr: cfg.Prometheus, Handler: mux}
	go func() {
		defer log.HandlePanic()
		<-ctx.Done()
		server.Close()
	}()
	err := server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return serrors.Wrap("serving prometheus metrics", err)
	}
	return nil
}

// API configures the management API.
type API struct {
	config.NoDefaulter
	config.NoValidator

	// Addr is the address the API listens on. Empty disables the API.
	Addr string `toml:"addr,omitempty"`
}

func (cfg *API) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, apiSample)
}

func (cfg *API) ConfigName() string {
	return "api"
}

// Router holds the settings of the forwarding core.
type Router struct {
	DefaultHopLimit     int   `toml:"default_hop_limit,omitempty"`
	QueueCapacity       int   `toml:"queue_capacity,omitempty"`
	DisposedHistory     int   `toml:"disposed_history,omitempty"`
	Forwarding          *bool `toml:"forwarding,omitempty"`
	MulticastForwarding *bool `toml:"multicast_forwarding,omitempty"`
}

func (cfg *Router) InitDefaults() {
	if cfg.DefaultHopLimit == 0 {
		cfg.DefaultHopLimit = router.DefaultHopLimit
	}
	if cfg.QueueCapacity == 0 {
		cfg.QueueCapacity = router.DefaultQueueCapacity
	}
	if cfg.DisposedHistory == 0 {
		cfg.DisposedHistory = router.DefaultDisposedHistory
	}
	if cfg.Forwarding == nil {
		cfg.Forwarding = boolRef(true)
	}
	if cfg.MulticastForwarding == nil {
		cfg.MulticastForwarding = boolRef(true)
	}
}

func (cfg *Router) Validate() error {
	rc := cfg.RouterConfig()
	return rc.Validate()
}

func (cfg *Router) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, routerSample)
}

func (cfg *Router) ConfigName() string {
	return "router"
}

// RouterConfig converts the block to the configuration of router.New.
func (cfg *Router) RouterConfig() router.Config {
	return router.Config{
		DefaultHopLimit:            cfg.DefaultHopLimit,
		QueueCapacity:              cfg.QueueCapacity,
		DisposedHistory:            cfg.DisposedHistory,
		DisableForwarding:          cfg.Forwarding != nil && !*cfg.Forwarding,
		DisableMulticastForwarding: cfg.MulticastForwarding != nil && !*cfg.MulticastForwarding,
	}
}

func boolRef(b bool) *bool {
	return &b
}
