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

package config

import (
	"io"
	"net/netip"
	"strings"

	"github.com/gnprouter/gnp/pkg/gnp"
	"github.com/gnprouter/gnp/pkg/log"
	"github.com/gnprouter/gnp/pkg/private/serrors"
	"github.com/gnprouter/gnp/private/config"
	"github.com/gnprouter/gnp/private/routing"
	"github.com/gnprouter/gnp/router"
	"github.com/gnprouter/gnp/router/hooks"
	"github.com/gnprouter/gnp/router/underlay"
)

// Interface is one entry of the [[interfaces]] table.
type Interface struct {
	ID        int          `toml:"id"`
	Name      string       `toml:"name"`
	Addrs     []netip.Addr `toml:"addrs,omitempty"`
	Groups    []netip.Addr `toml:"groups,omitempty"`
	Multicast bool         `toml:"multicast,omitempty"`
	// Down starts the interface administratively down.
	Down bool `toml:"down,omitempty"`
	// Local and Remote are the UDP endpoints that emulate the link. An
	// interface without them cannot transmit.
	Local  netip.AddrPort `toml:"local,omitempty"`
	Remote netip.AddrPort `toml:"remote,omitempty"`
}

// Route is one entry of the [[routes]] table.
type Route struct {
	Prefix    netip.Prefix `toml:"prefix"`
	Interface string       `toml:"interface"`
	NextHop   netip.Addr   `toml:"next_hop,omitempty"`
}

// PolicyRoute is one entry of the [[policy_routes]] table.
type PolicyRoute struct {
	Priority  int           `toml:"priority,omitempty"`
	Sources   routing.IPSet `toml:"sources"`
	Interface string        `toml:"interface"`
	NextHop   netip.Addr    `toml:"next_hop,omitempty"`
}

// Inspect is one entry of the [[inspect]] table.
type Inspect struct {
	Priority  int      `toml:"priority,omitempty"`
	Point     string   `toml:"point"`
	Protocols []string `toml:"protocols,omitempty"`
}

// HookEntry is a configured hook with its priority.
type HookEntry struct {
	Priority int
	Hook     router.Hook
}

// InterfaceTable builds the interface table from the [[interfaces]] entries.
func (cfg *Config) InterfaceTable() (*router.StaticInterfaceTable, error) {
	ifaces := make([]*router.Interface, 0, len(cfg.Interfaces))
	for _, c := range cfg.Interfaces {
		ifaces = append(ifaces, &router.Interface{
			ID:        c.ID,
			Name:      c.Name,
			Addrs:     c.Addrs,
			Groups:    c.Groups,
			Multicast: c.Multicast,
			Up:        !c.Down,
		})
	}
	return router.NewInterfaceTable(ifaces)
}

// RouteTable builds the static route table from the [[routes]] entries.
func (cfg *Config) RouteTable(ifaces router.InterfaceTable) (*routing.Table, error) {
	entries := make([]routing.Entry, 0, len(cfg.Routes))
	for _, c := range cfg.Routes {
		ifc, err := byName(ifaces, c.Interface)
		if err != nil {
			return nil, serrors.Wrap("invalid route", err, "prefix", c.Prefix)
		}
		entries = append(entries, routing.Entry{
			Prefix:    c.Prefix,
			Interface: ifc,
			NextHop:   c.NextHop,
		})
	}
	return routing.NewTable(entries...)
}

// Hooks builds the policy routing and inspection hooks. logger may be nil.
func (cfg *Config) Hooks(ifaces router.InterfaceTable, logger log.Logger) ([]HookEntry, error) {
	var entries []HookEntry
	for _, c := range cfg.PolicyRoutes {
		ifc, err := byName(ifaces, c.Interface)
		if err != nil {
			return nil, serrors.Wrap("invalid policy route", err, "sources", c.Sources)
		}
		entries = append(entries, HookEntry{
			Priority: c.Priority,
			Hook: &hooks.PolicyRoute{
				Sources: c.Sources,
				Out:     ifc,
				NextHop: c.NextHop,
			},
		})
	}
	for _, c := range cfg.Inspect {
		point, err := router.ParseHookType(c.Point)
		if err != nil {
			return nil, serrors.Wrap("invalid inspect entry", err)
		}
		protos := make([]gnp.ProtocolID, 0, len(c.Protocols))
		for _, p := range c.Protocols {
			proto, err := gnp.ParseProtocol(p)
			if err != nil {
				return nil, serrors.Wrap("invalid inspect entry", err, "point", c.Point)
			}
			protos = append(protos, proto)
		}
		entries = append(entries, HookEntry{
			Priority: c.Priority,
			Hook:     &hooks.Inspector{Point: point, Protocols: protos, Logger: logger},
		})
	}
	return entries, nil
}

// Endpoints returns the UDP endpoints of the interfaces that have one.
func (cfg *Config) Endpoints(ifaces router.InterfaceTable) ([]underlay.Endpoint, error) {
	var eps []underlay.Endpoint
	for _, c := range cfg.Interfaces {
		if !c.Local.IsValid() && !c.Remote.IsValid() {
			continue
		}
		if !c.Local.IsValid() || !c.Remote.IsValid() {
			return nil, serrors.New("interface needs both local and remote endpoint",
				"interface", c.Name)
		}
		ifc, ok := ifaces.ByID(c.ID)
		if !ok {
			return nil, serrors.New("unknown interface", "id", c.ID)
		}
		eps = append(eps, underlay.Endpoint{Interface: ifc, Local: c.Local, Remote: c.Remote})
	}
	return eps, nil
}

func byName(ifaces router.InterfaceTable, name string) (*router.Interface, error) {
	for _, ifc := range ifaces.Interfaces() {
		if strings.EqualFold(ifc.Name, name) {
			return ifc, nil
		}
	}
	return nil, serrors.New("unknown interface", "name", name)
}

type tablesSampler struct{}

func (tablesSampler) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, tablesSample)
}
