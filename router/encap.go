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

	"github.com/gnprouter/gnp/pkg/gnp"
	"github.com/gnprouter/gnp/pkg/private/serrors"
)

// TransportMessage is what the upper layers exchange with the router: a
// payload plus the metadata needed to build or describe a datagram.
type TransportMessage struct {
	// Src is optional when sending. If unset, the address of the outgoing
	// interface is used.
	Src      netip.Addr
	Dst      netip.Addr
	Protocol gnp.ProtocolID
	// HopLimit overrides the configured default when sending. On delivery it
	// holds the remaining hop limit.
	HopLimit uint8
	// OutIfID pins a sent datagram to an interface, skipping the route
	// lookup. Zero means unset.
	OutIfID int
	// InIfID is the arrival interface of a delivered datagram. Zero for
	// datagrams that did not arrive from the network.
	InIfID  int
	Payload []byte
}

// Clone returns a deep copy of m.
func (m *TransportMessage) Clone() *TransportMessage {
	c := *m
	if m.Payload != nil {
		c.Payload = append([]byte(nil), m.Payload...)
	}
	return &c
}

// Encapsulator converts between transport messages and datagrams.
type Encapsulator struct {
	DefaultHopLimit uint8
	Interfaces      InterfaceTable
	IDs             *gnp.IDGenerator
}

// Encapsulate wraps msg into a new datagram. It also returns the interface
// msg is pinned to, if any. The source address may remain unset until the
// outgoing interface is known.
func (e *Encapsulator) Encapsulate(msg *TransportMessage) (*gnp.Datagram, *Interface, error) {
	if !msg.Dst.IsValid() {
		return nil, nil, serrors.JoinNoStack(ErrMalformedDatagram, nil,
			"detail", "missing destination")
	}
	if msg.Protocol == gnp.ProtocolNone {
		return nil, nil, serrors.JoinNoStack(ErrMalformedDatagram, nil,
			"detail", "missing protocol", "dst", msg.Dst)
	}
	if msg.Src.IsValid() && msg.Src.Unmap().Is4() != msg.Dst.Unmap().Is4() {
		return nil, nil, serrors.JoinNoStack(ErrMalformedDatagram, nil,
			"detail", "address family mismatch", "src", msg.Src, "dst", msg.Dst)
	}
	var out *Interface
	if msg.OutIfID != 0 {
		ifc, ok := e.Interfaces.ByID(msg.OutIfID)
		if !ok {
			return nil, nil, serrors.JoinNoStack(ErrMalformedDatagram, nil,
				"detail", "unknown interface", "interface", msg.OutIfID)
		}
		out = ifc
	}
	hopLimit := msg.HopLimit
	if hopLimit == 0 {
		hopLimit = e.DefaultHopLimit
	}
	dg := &gnp.Datagram{
		ID:       e.IDs.Next(),
		Src:      msg.Src.Unmap(),
		Dst:      msg.Dst.Unmap(),
		HopLimit: hopLimit,
		Protocol: msg.Protocol,
		Payload:  msg.Payload,
	}
	return dg, out, nil
}

// Decapsulate unwraps dg for delivery to the upper layers. The message takes
// over the payload of dg.
func (e *Encapsulator) Decapsulate(dg *gnp.Datagram, in *Interface) (*TransportMessage, error) {
	if dg.Protocol == gnp.ProtocolNone {
		return nil, serrors.JoinNoStack(ErrMalformedDatagram, nil,
			"detail", "missing protocol", "id", dg.ID)
	}
	if !dg.Src.IsValid() || !dg.Dst.IsValid() {
		return nil, serrors.JoinNoStack(ErrMalformedDatagram, nil,
			"detail", "missing address", "id", dg.ID)
	}
	msg := &TransportMessage{
		Src:      dg.Src,
		Dst:      dg.Dst,
		Protocol: dg.Protocol,
		HopLimit: dg.HopLimit,
		Payload:  dg.Payload,
	}
	if in != nil {
		msg.InIfID = in.ID
	}
	return msg, nil
}
