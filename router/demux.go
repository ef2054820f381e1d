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
	"slices"

	"github.com/gnprouter/gnp/pkg/gnp"
	"github.com/gnprouter/gnp/pkg/private/serrors"
)

// SocketID identifies a listener of the upper layers.
type SocketID int

// ProtocolSocket is the socket ID used when a datagram is handed to the
// handler registered for a whole protocol with RegisterProtocol.
const ProtocolSocket SocketID = -1

// SocketDemux maps protocol IDs to the listeners registered for them. It is
// changed only by explicit register and unregister calls.
//
// SocketDemux is not safe for concurrent use.
type SocketDemux struct {
	sockets   map[SocketID]gnp.ProtocolID
	byProto   map[gnp.ProtocolID][]SocketID
	protocols map[gnp.ProtocolID]struct{}
}

func NewSocketDemux() *SocketDemux {
	return &SocketDemux{
		sockets:   make(map[SocketID]gnp.ProtocolID),
		byProto:   make(map[gnp.ProtocolID][]SocketID),
		protocols: make(map[gnp.ProtocolID]struct{}),
	}
}

// RegisterListener binds sock to proto. Registering the same pair again is
// a no-op. A socket registered for another protocol is moved.
func (d *SocketDemux) RegisterListener(sock SocketID, proto gnp.ProtocolID) {
	if cur, ok := d.sockets[sock]; ok {
		if cur == proto {
			return
		}
		d.UnregisterListener(sock)
	}
	d.sockets[sock] = proto
	d.byProto[proto] = append(d.byProto[proto], sock)
}

// UnregisterListener removes sock. Unknown sockets are ignored.
func (d *SocketDemux) UnregisterListener(sock SocketID) {
	proto, ok := d.sockets[sock]
	if !ok {
		return
	}
	delete(d.sockets, sock)
	socks := slices.DeleteFunc(d.byProto[proto], func(s SocketID) bool { return s == sock })
	if len(socks) == 0 {
		delete(d.byProto, proto)
		return
	}
	d.byProto[proto] = socks
}

// RegisterProtocol routes every datagram of proto to the upper layer with
// ProtocolSocket, in addition to the listeners of proto.
func (d *SocketDemux) RegisterProtocol(proto gnp.ProtocolID) {
	d.protocols[proto] = struct{}{}
}

func (d *SocketDemux) UnregisterProtocol(proto gnp.ProtocolID) {
	delete(d.protocols, proto)
}

// Listeners returns the sockets registered for proto in registration order.
func (d *SocketDemux) Listeners(proto gnp.ProtocolID) []SocketID {
	return slices.Clone(d.byProto[proto])
}

// Deliver hands msg to every listener of msg.Protocol. Each listener gets its
// own copy, and a failing listener does not keep the others from receiving
// the message. It returns the number of successful deliveries and the
// collected failures. Without any listener the result is ErrNoListener.
func (d *SocketDemux) Deliver(upper UpperLayer, msg *TransportMessage) (int, error) {
	targets := d.Listeners(msg.Protocol)
	if _, ok := d.protocols[msg.Protocol]; ok {
		targets = append(targets, ProtocolSocket)
	}
	if len(targets) == 0 {
		return 0, serrors.JoinNoStack(ErrNoListener, nil, "protocol", msg.Protocol)
	}
	var errs serrors.List
	delivered := 0
	for _, sock := range targets {
		if err := upper.Deliver(sock, msg.Clone()); err != nil {
			errs = append(errs, serrors.Wrap("delivering to listener", err, "socket", sock))
			continue
		}
		delivered++
	}
	return delivered, errs.ToError()
}
