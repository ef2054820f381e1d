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

package hooks

import (
	"slices"

	"github.com/gnprouter/gnp/pkg/gnp"
	"github.com/gnprouter/gnp/pkg/log"
	"github.com/gnprouter/gnp/router"
)

// Inspector queues datagrams of the listed protocols at one hook point. The
// queued datagrams wait for an operator decision through the management API.
// An empty protocol list matches every datagram.
type Inspector struct {
	Point     router.HookType
	Protocols []gnp.ProtocolID
	Logger    log.Logger
}

func (i *Inspector) DatagramPreRoutingHook(dg *gnp.Datagram, hc *router.HookContext) router.Verdict {
	return i.inspect(dg, hc)
}

func (i *Inspector) DatagramForwardHook(dg *gnp.Datagram, hc *router.HookContext) router.Verdict {
	return i.inspect(dg, hc)
}

func (i *Inspector) DatagramPostRoutingHook(dg *gnp.Datagram, hc *router.HookContext) router.Verdict {
	return i.inspect(dg, hc)
}

func (i *Inspector) DatagramLocalInHook(dg *gnp.Datagram, hc *router.HookContext) router.Verdict {
	return i.inspect(dg, hc)
}

func (i *Inspector) DatagramLocalOutHook(dg *gnp.Datagram, hc *router.HookContext) router.Verdict {
	return i.inspect(dg, hc)
}

func (i *Inspector) inspect(dg *gnp.Datagram, hc *router.HookContext) router.Verdict {
	if hc.Point != i.Point {
		return router.Accept
	}
	if len(i.Protocols) > 0 && !slices.Contains(i.Protocols, dg.Protocol) {
		return router.Accept
	}
	if i.Logger != nil {
		i.Logger.Debug("Holding datagram for inspection", "id", dg.ID, "point", hc.Point,
			"protocol", dg.Protocol, "src", dg.Src, "dst", dg.Dst)
	}
	return router.Queue
}
