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

// Package hooks contains hooks that ship with the router and can be set up
// from the configuration file.
package hooks

import (
	"net/netip"

	"github.com/gnprouter/gnp/pkg/gnp"
	"github.com/gnprouter/gnp/private/routing"
	"github.com/gnprouter/gnp/router"
)

// PolicyRoute overrides the routing decision for datagrams whose source
// address is in Sources. It acts at PreRouting, for datagrams received from
// the network, and at LocalOut, for datagrams sent by the host. Matching
// datagrams leave through Out. If NextHop is set it replaces the next hop,
// otherwise the destination is assumed to be on-link. Datagrams of the host
// only match if the sender chose the source address; otherwise it is filled
// in after LocalOut.
type PolicyRoute struct {
	router.AcceptAll

	Sources routing.IPSet
	Out     *router.Interface
	NextHop netip.Addr
}

func (p *PolicyRoute) DatagramPreRoutingHook(dg *gnp.Datagram, hc *router.HookContext) router.Verdict {
	p.apply(dg, hc)
	return router.Accept
}

func (p *PolicyRoute) DatagramLocalOutHook(dg *gnp.Datagram, hc *router.HookContext) router.Verdict {
	p.apply(dg, hc)
	return router.Accept
}

func (p *PolicyRoute) apply(dg *gnp.Datagram, hc *router.HookContext) {
	if p.Out == nil || !dg.Src.IsValid() || !p.Sources.Contains(dg.Src.Unmap()) {
		return
	}
	hc.Out = p.Out
	hc.NextHop = p.NextHop
	if !hc.NextHop.IsValid() {
		hc.NextHop = dg.Dst
	}
}
