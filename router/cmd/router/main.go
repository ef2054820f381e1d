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

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/gnprouter/gnp/pkg/gnp"
	"github.com/gnprouter/gnp/pkg/log"
	"github.com/gnprouter/gnp/pkg/private/processmetrics"
	"github.com/gnprouter/gnp/pkg/private/serrors"
	libconfig "github.com/gnprouter/gnp/private/config"
	"github.com/gnprouter/gnp/router"
	"github.com/gnprouter/gnp/router/config"
	"github.com/gnprouter/gnp/router/mgmtapi"
	"github.com/gnprouter/gnp/router/underlay"
)

// loopSize is the number of events buffered by the event loop.
const loopSize = 1024

func main() {
	executable := filepath.Base(os.Args[0])
	if err := newCommand(executable).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newCommand(name string) *cobra.Command {
	var cfgFile string
	cmd := &cobra.Command{
		Use:   name,
		Short: "Generic network-layer router",
		Args:  cobra.NoArgs,
		// Errors are printed in main.
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var cfg config.Config
			if err := libconfig.Load(cfgFile, &cfg); err != nil {
				return err
			}
			cmd.SilenceUsage = true
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, &cfg)
		},
	}
	addConfigFlag(cmd.Flags(), &cfgFile)
	if err := cmd.MarkFlagRequired("config"); err != nil {
		panic(err)
	}
	cmd.AddCommand(newSample(), newShow())
	return cmd
}

func addConfigFlag(flags *pflag.FlagSet, dst *string) {
	flags.StringVar(dst, "config", "", "TOML configuration file")
}

func newSample() *cobra.Command {
	return &cobra.Command{
		Use:   "sample",
		Short: "Print a sample configuration file",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			var cfg config.Config
			cfg.Sample(cmd.OutOrStdout(), nil, nil)
		},
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	if err := log.Setup(cfg.Logging); err != nil {
		return serrors.Wrap("initializing logging", err)
	}
	defer log.Flush()
	defer log.HandlePanic()
	logger := log.New("id", cfg.General.ID)

	ifaces, err := cfg.InterfaceTable()
	if err != nil {
		return err
	}
	routes, err := cfg.RouteTable(ifaces)
	if err != nil {
		return err
	}
	hooks, err := cfg.Hooks(ifaces, logger.New("component", "inspector"))
	if err != nil {
		return err
	}
	eps, err := cfg.Endpoints(ifaces)
	if err != nil {
		return err
	}
	ids := &gnp.IDGenerator{}
	link, err := underlay.Open(eps, ids, logger.New("component", "underlay"))
	if err != nil {
		return err
	}
	defer link.Close()

	r, err := router.New(cfg.Router.RouterConfig(), router.Dependencies{
		Interfaces: ifaces,
		Routes:     routes,
		Link:       link,
		Upper:      icmpSink{logger: logger.New("component", "icmp")},
		Metrics:    router.NewMetrics(prometheus.DefaultRegisterer),
		Logger:     logger.New("component", "router"),
		IDs:        ids,
	})
	if err != nil {
		return serrors.Wrap("creating router", err)
	}
	for _, h := range hooks {
		r.RegisterHook(h.Priority, h.Hook)
	}
	if err := processmetrics.Init(prometheus.DefaultRegisterer); err != nil {
		logger.Info("Process metrics unavailable", "err", err)
	}
	r.RegisterProtocol(gnp.ProtocolICMP)

	loop := router.NewLoop(loopSize)
	g, errCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer log.HandlePanic()
		return loop.Run(errCtx)
	})
	g.Go(func() error {
		defer log.HandlePanic()
		if err := link.Run(errCtx, loop, r); err != nil {
			return serrors.Wrap("running underlay", err)
		}
		return nil
	})
	g.Go(func() error {
		defer log.HandlePanic()
		return cfg.Metrics.ServePrometheus(errCtx)
	})
	if cfg.API.Addr != "" {
		mux := chi.NewRouter()
		mux.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
		}))
		server := &mgmtapi.Server{Router: r, Loop: loop, Routes: routes}
		mgmtServer := &http.Server{
			Addr:    cfg.API.Addr,
			Handler: mgmtapi.Handler(server, mux),
		}
		logger.Info("Exposing API", "addr", cfg.API.Addr)
		g.Go(func() error {
			defer log.HandlePanic()
			<-errCtx.Done()
			return mgmtServer.Close()
		})
		g.Go(func() error {
			defer log.HandlePanic()
			err := mgmtServer.ListenAndServe()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return serrors.Wrap("serving management API", err)
			}
			return nil
		})
	}
	logger.Info("Router started", "interfaces", len(ifaces.Interfaces()),
		"routes", len(routes.Entries()), "hooks", len(hooks))
	return g.Wait()
}

// icmpSink consumes the ICMP datagrams addressed to the router. The process
// has no transport layer of its own.
type icmpSink struct {
	logger log.Logger
}

func (s icmpSink) Deliver(sock router.SocketID, msg *router.TransportMessage) error {
	s.logger.Debug("ICMP datagram received", "socket", sock, "src", msg.Src, "dst", msg.Dst,
		"in", msg.InIfID, "len", len(msg.Payload))
	return nil
}
