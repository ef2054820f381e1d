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
	"net/netip"
	"slices"

	"go4.org/netipx"

	"github.com/gnprouter/gnp/pkg/private/serrors"
)

// AddressClass is the result of classifying a destination address.
type AddressClass int

const (
	// Remote addresses are forwarded.
	Remote AddressClass = iota
	// Local addresses are owned by the node.
	Local
	Multicast
)

func (c AddressClass) String() string {
	switch c {
	case Local:
		return "local"
	case Multicast:
		return "multicast"
	}
	return "remote"
}

// Classify classifies dst against the interfaces in t. Multicast wins over
// local, so a joined group classifies as Multicast.
func Classify(t InterfaceTable, dst netip.Addr) AddressClass {
	switch {
	case t.IsMulticastAddress(dst):
		return Multicast
	case t.IsLocalAddress(dst):
		return Local
	}
	return Remote
}

// StaticInterfaceTable is an InterfaceTable over a fixed set of interfaces.
type StaticInterfaceTable struct {
	ifaces []*Interface
	byID   map[int]*Interface
	local  *netipx.IPSet
}

// NewInterfaceTable builds a table from ifaces. IDs and names must be unique,
// IDs positive, and groups multicast addresses.
func NewInterfaceTable(ifaces []*Interface) (*StaticInterfaceTable, error) {
	t := &StaticInterfaceTable{
		ifaces: slices.Clone(ifaces),
		byID:   make(map[int]*Interface, len(ifaces)),
	}
	names := make(map[string]struct{}, len(ifaces))
	var b netipx.IPSetBuilder
	for _, ifc := range ifaces {
		if ifc.ID <= 0 {
			return nil, serrors.New("interface ID must be positive", "name", ifc.Name,
				"id", ifc.ID)
		}
		if _, ok := t.byID[ifc.ID]; ok {
			return nil, serrors.New("duplicate interface ID", "id", ifc.ID)
		}
		if _, ok := names[ifc.Name]; ok {
			return nil, serrors.New("duplicate interface name", "name", ifc.Name)
		}
		for _, a := range ifc.Addrs {
			if !a.IsValid() || a.IsMulticast() || a.IsUnspecified() {
				return nil, serrors.New("invalid interface address", "name", ifc.Name,
					"addr", a)
			}
			b.Add(a.Unmap())
		}
		for _, g := range ifc.Groups {
			if !g.IsMulticast() {
				return nil, serrors.New("group is not a multicast address", "name", ifc.Name,
					"group", g)
			}
		}
		t.byID[ifc.ID] = ifc
		names[ifc.Name] = struct{}{}
	}
	local, err := b.IPSet()
	if err != nil {
		return nil, serrors.Wrap("building local address set", err)
	}
	t.local = local
	slices.SortFunc(t.ifaces, func(a, b *Interface) int { return a.ID - b.ID })
	return t, nil
}

func (t *StaticInterfaceTable) Interfaces() []*Interface {
	return t.ifaces
}

func (t *StaticInterfaceTable) ByID(id int) (*Interface, bool) {
	ifc, ok := t.byID[id]
	return ifc, ok
}

func (t *StaticInterfaceTable) IsLocalAddress(a netip.Addr) bool {
	return t.local.Contains(a.Unmap())
}

func (t *StaticInterfaceTable) IsMulticastAddress(a netip.Addr) bool {
	return a.IsMulticast()
}

func (t *StaticInterfaceTable) IsLocalMulticast(group netip.Addr, in *Interface) bool {
	if in != nil {
		return in.Joined(group)
	}
	for _, ifc := range t.ifaces {
		if ifc.Up && ifc.Joined(group) {
			return true
		}
	}
	return false
}
