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

// Package underlay emulates the links of the router with UDP sockets. Every
// interface owns one socket bound to a local address and exchanges encoded
// datagrams with a single remote peer.
package underlay

import (
	"context"
	"errors"
	"net"
	"net/netip"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/gnprouter/gnp/pkg/gnp"
	"github.com/gnprouter/gnp/pkg/log"
	"github.com/gnprouter/gnp/pkg/private/serrors"
	"github.com/gnprouter/gnp/router"
)

// MaxDatagramSize is the largest encoded datagram that is received.
const MaxDatagramSize = 1 << 16

// Endpoint is the UDP emulation of one interface.
type Endpoint struct {
	Interface *router.Interface
	Local     netip.AddrPort
	Remote    netip.AddrPort
}

// Receiver is handed every datagram read from a socket. It is called on
// the event loop.
type Receiver interface {
	OnReceive(dg *gnp.Datagram, in *router.Interface)
}

type conn struct {
	ifc    *router.Interface
	udp    *net.UDPConn
	remote netip.AddrPort
}

// Provider owns the sockets of all interfaces. It implements router.Link.
type Provider struct {
	conns  map[int]*conn
	ids    *gnp.IDGenerator
	logger log.Logger

	closeOnce sync.Once
	closeErr  error
}

var _ router.Link = (*Provider)(nil)

// Open binds a socket for every endpoint. ids numbers the received
// datagrams; it should be the generator the router uses.
func Open(eps []Endpoint, ids *gnp.IDGenerator, logger log.Logger) (*Provider, error) {
	if logger == nil {
		logger = log.New("component", "underlay")
	}
	p := &Provider{
		conns:  make(map[int]*conn, len(eps)),
		ids:    ids,
		logger: logger,
	}
	for _, ep := range eps {
		if _, ok := p.conns[ep.Interface.ID]; ok {
			p.Close()
			return nil, serrors.New("duplicate endpoint", "interface", ep.Interface)
		}
		udp, err := net.ListenUDP("udp", net.UDPAddrFromAddrPort(ep.Local))
		if err != nil {
			p.Close()
			return nil, serrors.Wrap("opening socket", err, "interface", ep.Interface,
				"local", ep.Local)
		}
		p.conns[ep.Interface.ID] = &conn{ifc: ep.Interface, udp: udp, remote: ep.Remote}
	}
	return p, nil
}

// LocalAddr returns the bound address of the socket of interface id.
func (p *Provider) LocalAddr(id int) (netip.AddrPort, bool) {
	c, ok := p.conns[id]
	if !ok {
		return netip.AddrPort{}, false
	}
	return c.udp.LocalAddr().(*net.UDPAddr).AddrPort(), true
}

// Transmit encodes dg and sends it to the peer of out. The next hop is not
// needed on a point-to-point link.
func (p *Provider) Transmit(dg *gnp.Datagram, out *router.Interface, _ netip.Addr) error {
	c, ok := p.conns[out.ID]
	if !ok {
		return serrors.New("no socket for interface", "interface", out)
	}
	raw, err := gnp.Encode(dg)
	if err != nil {
		return err
	}
	if _, err := c.udp.WriteToUDPAddrPort(raw, c.remote); err != nil {
		return serrors.Wrap("writing datagram", err, "interface", out, "remote", c.remote)
	}
	return nil
}

// Run reads from all sockets and submits the decoded datagrams to loop
// until ctx is done or the loop stops. The sockets are closed on return.
func (p *Provider) Run(ctx context.Context, loop *router.Loop, recv Receiver) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer log.HandlePanic()
		<-gctx.Done()
		return p.Close()
	})
	for _, c := range p.conns {
		g.Go(func() error {
			defer log.HandlePanic()
			// Once one reader stops, all do.
			defer cancel()
			return p.read(gctx, c, loop, recv)
		})
	}
	return g.Wait()
}

func (p *Provider) read(ctx context.Context, c *conn, loop *router.Loop, recv Receiver) error {
	buf := make([]byte, MaxDatagramSize)
	for {
		n, from, err := c.udp.ReadFromUDPAddrPort(buf)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return serrors.Wrap("reading datagram", err, "interface", c.ifc)
		}
		dg, err := gnp.Decode(buf[:n], p.ids.Next())
		if err != nil {
			p.logger.Debug("Discarding undecodable datagram", "interface", c.ifc,
				"from", from, "err", err)
			continue
		}
		err = loop.Submit(func() { recv.OnReceive(dg, c.ifc) })
		if errors.Is(err, router.ErrLoopClosed) {
			return nil
		}
	}
}

// Close closes all sockets. It is safe to call more than once.
func (p *Provider) Close() error {
	p.closeOnce.Do(func() {
		var errs serrors.List
		for _, c := range p.conns {
			if err := c.udp.Close(); err != nil {
				errs = append(errs, err)
			}
		}
		p.closeErr = errs.ToError()
	})
	return p.closeErr
}
