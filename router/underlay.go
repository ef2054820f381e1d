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

// This file defines the boundary between the router and its collaborators:
// the interface table, the route resolver, the link layer and the upper
// layers.

package router

import (
	"net/netip"
	"slices"

	"github.com/gnprouter/gnp/pkg/gnp"
)

// Interface is a network interface of the node. The router treats it as
// read-only.
type Interface struct {
	// ID is unique and positive. Zero means "no interface".
	ID   int
	Name string
	// Addrs are the unicast addresses owned by the interface.
	Addrs []netip.Addr
	// Multicast is set if multicast datagrams may be sent on the interface.
	Multicast bool
	// Groups are the multicast groups joined on the interface.
	Groups []netip.Addr
	Up     bool
}

// PrimaryAddr returns the first address of the interface in the family of
// like.
func (i *Interface) PrimaryAddr(like netip.Addr) (netip.Addr, bool) {
	for _, a := range i.Addrs {
		if a.Is4() == like.Unmap().Is4() {
			return a, true
		}
	}
	return netip.Addr{}, false
}

// Joined reports whether group was joined on the interface.
func (i *Interface) Joined(group netip.Addr) bool {
	return slices.Contains(i.Groups, group.Unmap())
}

func (i *Interface) String() string {
	if i == nil {
		return "<none>"
	}
	return i.Name
}

// InterfaceTable enumerates the interfaces of the node and classifies
// addresses against them.
type InterfaceTable interface {
	// Interfaces returns all interfaces ordered by ID.
	Interfaces() []*Interface
	ByID(id int) (*Interface, bool)
	// IsLocalAddress reports whether a is a unicast address of the node.
	IsLocalAddress(a netip.Addr) bool
	IsMulticastAddress(a netip.Addr) bool
	// IsLocalMulticast reports whether datagrams to group arriving on in
	// are delivered to the node. A nil in matches any interface.
	IsLocalMulticast(group netip.Addr, in *Interface) bool
}

// Route is the answer of a RouteResolver. An invalid NextHop means the
// destination is on-link.
type Route struct {
	Interface *Interface
	NextHop   netip.Addr
}

// RouteResolver looks up the route to a destination.
type RouteResolver interface {
	Resolve(dst netip.Addr) (Route, bool)
}

// Link hands datagrams to the link layer. Ownership of dg passes to the
// link, whatever the result.
type Link interface {
	Transmit(dg *gnp.Datagram, out *Interface, nextHop netip.Addr) error
}

// UpperLayer receives datagrams delivered to the node. Each call gets its
// own copy of the message.
type UpperLayer interface {
	Deliver(socket SocketID, msg *TransportMessage) error
}
