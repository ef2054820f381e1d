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

// Package router implements the forwarding engine of a generic network-layer
// node.
//
// Every datagram passes through a fixed sequence of stages. Datagrams from
// the network enter at PreRouting, are classified by destination, and are
// then either delivered locally through LocalIn, replicated to multicast
// interfaces, or forwarded through Forward. Datagrams sent by the node enter
// at LocalOut. Everything leaving the node passes PostRouting before it is
// handed to the link layer. Hooks registered at these points may accept,
// drop, steal or queue a datagram. Queued datagrams stay parked until
// DropQueued or ReinjectQueued is called, and a reinjected datagram continues
// with the stage after the one that queued it.
//
// The Router is not safe for concurrent use. Run all calls through a Loop.
// RegisterHook and UnregisterHook are the exception and may be called from
// any goroutine, including from within hooks.
package router

import (
	"errors"
	"fmt"
	"net/netip"

	"github.com/gnprouter/gnp/pkg/gnp"
	"github.com/gnprouter/gnp/pkg/log"
	"github.com/gnprouter/gnp/pkg/private/serrors"
)

const (
	DefaultHopLimit        = 64
	DefaultQueueCapacity   = 4096
	DefaultDisposedHistory = 1024
)

var (
	ErrHopLimitExceeded     = errors.New("hop limit exceeded")
	ErrUnroutable           = errors.New("no route to destination")
	ErrNoListener           = errors.New("no listener for protocol")
	ErrMalformedDatagram    = errors.New("malformed datagram")
	ErrUnknownQueueIdentity = errors.New("unknown queued datagram")
	ErrDoubleDisposition    = errors.New("queued datagram already disposed")
	ErrQueueFull            = errors.New("datagram queue full")
	ErrForwardingDisabled   = errors.New("forwarding disabled")
	ErrDroppedByHook        = errors.New("dropped by hook")
	ErrTransmitFailed       = errors.New("transmission failed")
	ErrDeliveryFailed       = errors.New("delivery to upper layer failed")
)

// dropReasons maps errors to the reason label of the drop counter. The
// first match wins.
var dropReasons = []struct {
	err    error
	reason string
}{
	{ErrHopLimitExceeded, "hop_limit_exceeded"},
	{ErrUnroutable, "unroutable"},
	{ErrNoListener, "no_listener"},
	{ErrMalformedDatagram, "malformed"},
	{ErrQueueFull, "queue_full"},
	{ErrForwardingDisabled, "forwarding_disabled"},
	{ErrDroppedByHook, "hook"},
	{ErrTransmitFailed, "transmit_failed"},
	{ErrDeliveryFailed, "delivery_failed"},
}

func dropReason(err error) string {
	for _, r := range dropReasons {
		if errors.Is(err, r.err) {
			return r.reason
		}
	}
	return "internal"
}

// Config configures a Router. Zero values are replaced by defaults.
type Config struct {
	// DefaultHopLimit is the hop limit of datagrams sent by the node.
	DefaultHopLimit int
	// QueueCapacity bounds the number of queued datagrams. Once it is
	// reached, further Queue verdicts drop the datagram.
	QueueCapacity int
	// DisposedHistory is the number of dropped or reinjected IDs remembered
	// to report double dispositions.
	DisposedHistory int
	// DisableForwarding drops unicast datagrams from the network that are
	// not addressed to the node, and suppresses multicast replication.
	DisableForwarding bool
	// DisableMulticastForwarding suppresses multicast replication. Local
	// delivery of multicast datagrams is not affected.
	DisableMulticastForwarding bool
}

func (c *Config) InitDefaults() {
	if c.DefaultHopLimit == 0 {
		c.DefaultHopLimit = DefaultHopLimit
	}
	if c.QueueCapacity == 0 {
		c.QueueCapacity = DefaultQueueCapacity
	}
	if c.DisposedHistory == 0 {
		c.DisposedHistory = DefaultDisposedHistory
	}
}

func (c *Config) Validate() error {
	if c.DefaultHopLimit < 1 || c.DefaultHopLimit > 255 {
		return serrors.New("default hop limit out of range", "value", c.DefaultHopLimit)
	}
	if c.QueueCapacity < 0 {
		return serrors.New("negative queue capacity", "value", c.QueueCapacity)
	}
	if c.DisposedHistory < 0 {
		return serrors.New("negative disposed history", "value", c.DisposedHistory)
	}
	return nil
}

// Dependencies are the collaborators of a Router. Interfaces, Routes, Link
// and Upper are required.
type Dependencies struct {
	Interfaces InterfaceTable
	Routes     RouteResolver
	Link       Link
	Upper      UpperLayer
	// Metrics defaults to unregistered metrics.
	Metrics *Metrics
	// Logger defaults to a child of the root logger.
	Logger log.Logger
	// IDs hands out datagram IDs. Share it with the underlay so that IDs are
	// unique per node. Defaults to a private generator.
	IDs *gnp.IDGenerator
}

// Statistics are the datagram counters of a Router.
type Statistics struct {
	// Forwarded counts datagrams from the network handed to the link layer.
	Forwarded uint64
	// Delivered counts datagrams delivered to the upper layers plus
	// datagrams of the upper layers handed to the link layer.
	Delivered uint64
	// Dropped counts discarded datagrams, except for those counted in
	// Unroutable.
	Dropped uint64
	// Unroutable counts datagrams discarded for lack of a route.
	Unroutable uint64
	// Queued is the number of datagrams currently queued.
	Queued int
}

// Router is the forwarding engine of a node.
type Router struct {
	cfg        Config
	interfaces InterfaceTable
	routes     RouteResolver
	link       Link
	upper      UpperLayer
	metrics    *Metrics
	logger     log.Logger
	ids        *gnp.IDGenerator

	encap Encapsulator
	hooks HookRegistry
	queue *DatagramQueue
	demux *SocketDemux
	stats Statistics
}

// New creates a Router.
func New(cfg Config, deps Dependencies) (*Router, error) {
	cfg.InitDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch {
	case deps.Interfaces == nil:
		return nil, serrors.New("interface table required")
	case deps.Routes == nil:
		return nil, serrors.New("route resolver required")
	case deps.Link == nil:
		return nil, serrors.New("link required")
	case deps.Upper == nil:
		return nil, serrors.New("upper layer required")
	}
	queue, err := NewDatagramQueue(cfg.QueueCapacity, cfg.DisposedHistory)
	if err != nil {
		return nil, err
	}
	r := &Router{
		cfg:        cfg,
		interfaces: deps.Interfaces,
		routes:     deps.Routes,
		link:       deps.Link,
		upper:      deps.Upper,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
		ids:        deps.IDs,
		queue:      queue,
		demux:      NewSocketDemux(),
	}
	if r.metrics == nil {
		r.metrics = NewMetrics(nil)
	}
	if r.logger == nil {
		r.logger = log.New("component", "router")
	}
	if r.ids == nil {
		r.ids = &gnp.IDGenerator{}
	}
	r.encap = Encapsulator{
		DefaultHopLimit: uint8(cfg.DefaultHopLimit),
		Interfaces:      r.interfaces,
		IDs:             r.ids,
	}
	return r, nil
}

// RegisterHook adds h at the given priority. Lower priorities run first.
func (r *Router) RegisterHook(priority int, h Hook) {
	r.hooks.Register(priority, h)
}

// UnregisterHook removes all registrations of h.
func (r *Router) UnregisterHook(h Hook) {
	r.hooks.Unregister(h)
}

func (r *Router) RegisterListener(sock SocketID, proto gnp.ProtocolID) {
	r.demux.RegisterListener(sock, proto)
}

func (r *Router) UnregisterListener(sock SocketID) {
	r.demux.UnregisterListener(sock)
}

func (r *Router) RegisterProtocol(proto gnp.ProtocolID) {
	r.demux.RegisterProtocol(proto)
}

func (r *Router) UnregisterProtocol(proto gnp.ProtocolID) {
	r.demux.UnregisterProtocol(proto)
}

// Stats returns a copy of the counters.
func (r *Router) Stats() Statistics {
	s := r.stats
	s.Queued = r.queue.Len()
	return s
}

// Queued lists the queued datagrams in queuing order. The entries must not
// be modified.
func (r *Router) Queued() []*PendingDatagram {
	return r.queue.List()
}

// Interfaces returns the interface table of the router.
func (r *Router) Interfaces() InterfaceTable {
	return r.interfaces
}

// OnReceive processes a datagram that arrived from the network on in. The
// router takes ownership of dg.
func (r *Router) OnReceive(dg *gnp.Datagram, in *Interface) {
	r.metrics.ReceivedDatagramsTotal.WithLabelValues(in.String()).Inc()
	if dg.HopLimit == 0 {
		r.drop(dg, serrors.JoinNoStack(ErrHopLimitExceeded, nil, "in", in.String()))
		return
	}
	dg.HopLimit--
	hc := &HookContext{Point: PreRouting, In: in}
	if !r.runHooks(dg, hc, false) {
		return
	}
	r.route(dg, hc.In, hc.Out, hc.NextHop)
}

// Send encapsulates msg and sends it. The router takes ownership of the
// payload. An error is returned only if msg cannot be encapsulated; later
// drops are reported through the counters.
func (r *Router) Send(msg *TransportMessage) error {
	dg, out, err := r.encap.Encapsulate(msg)
	if err != nil {
		r.drop(nil, err)
		return err
	}
	hc := &HookContext{Point: LocalOut, Out: out}
	if !r.runHooks(dg, hc, true) {
		return nil
	}
	r.localOut(dg, hc.Out, hc.NextHop)
	return nil
}

// DropQueued discards the queued datagram with the given ID.
func (r *Router) DropQueued(id gnp.ID) error {
	p, err := r.queue.Take(id)
	if err != nil {
		return err
	}
	r.metrics.QueuedDatagrams.Set(float64(r.queue.Len()))
	r.drop(p.Datagram, serrors.JoinNoStack(ErrDroppedByHook, nil, "point", p.Point.String(),
		"queued", true))
	return nil
}

// ReinjectQueued resumes processing of the queued datagram with the given ID
// at the stage after the one that queued it, with the routing state stored
// when it was queued.
func (r *Router) ReinjectQueued(id gnp.ID) error {
	p, err := r.queue.Take(id)
	if err != nil {
		return err
	}
	r.metrics.QueuedDatagrams.Set(float64(r.queue.Len()))
	dg := p.Datagram
	switch p.Point {
	case PreRouting:
		r.route(dg, p.In, p.Out, p.NextHop)
	case LocalIn:
		r.deliver(dg, p.In)
	case Forward:
		r.egress(dg, p.In, p.Out, p.NextHop, false)
	case LocalOut:
		r.localOut(dg, p.Out, p.NextHop)
	case PostRouting:
		r.transmit(dg, p.Out, p.NextHop, p.LocalOrigin)
	default:
		r.drop(dg, serrors.New("unknown hook point", "point", p.Point))
	}
	return nil
}

// route classifies a datagram from the network that passed PreRouting.
func (r *Router) route(dg *gnp.Datagram, in, out *Interface, nextHop netip.Addr) {
	switch Classify(r.interfaces, dg.Dst) {
	case Multicast:
		r.routeMulticast(dg, in)
	case Local:
		r.localIn(dg, in)
	default:
		if r.cfg.DisableForwarding {
			r.drop(dg, serrors.JoinNoStack(ErrForwardingDisabled, nil))
			return
		}
		// A PreRouting hook may have chosen the egress already.
		if out == nil {
			rt, ok := r.resolve(dg)
			if !ok {
				return
			}
			out, nextHop = rt.Interface, rt.NextHop
		}
		r.forward(dg, in, out, nextHop)
	}
}

func (r *Router) routeMulticast(dg *gnp.Datagram, in *Interface) {
	local := r.interfaces.IsLocalMulticast(dg.Dst, in)
	var outs []*Interface
	if !r.cfg.DisableForwarding && !r.cfg.DisableMulticastForwarding {
		outs = r.multicastInterfaces(in)
	}
	if !local && len(outs) == 0 {
		r.drop(dg, serrors.JoinNoStack(ErrUnroutable, nil, "group", dg.Dst))
		return
	}
	for _, out := range outs {
		r.forward(dg.Clone(r.ids.Next()), in, out, dg.Dst)
	}
	if local {
		r.localIn(dg, in)
	}
}

// multicastInterfaces returns the interfaces multicast datagrams are
// replicated to, except.
func (r *Router) multicastInterfaces(except *Interface) []*Interface {
	var outs []*Interface
	for _, ifc := range r.interfaces.Interfaces() {
		if !ifc.Up || !ifc.Multicast {
			continue
		}
		if except != nil && ifc.ID == except.ID {
			continue
		}
		outs = append(outs, ifc)
	}
	return outs
}

func (r *Router) resolve(dg *gnp.Datagram) (Route, bool) {
	rt, ok := r.routes.Resolve(dg.Dst)
	if !ok || rt.Interface == nil {
		r.drop(dg, serrors.JoinNoStack(ErrUnroutable, nil))
		return Route{}, false
	}
	return rt, true
}

func (r *Router) localIn(dg *gnp.Datagram, in *Interface) {
	hc := &HookContext{Point: LocalIn, In: in}
	if !r.runHooks(dg, hc, false) {
		return
	}
	r.deliver(dg, in)
}

func (r *Router) deliver(dg *gnp.Datagram, in *Interface) {
	msg, err := r.encap.Decapsulate(dg, in)
	if err != nil {
		r.drop(dg, err)
		return
	}
	n, err := r.demux.Deliver(r.upper, msg)
	switch {
	case n > 0:
		if err != nil {
			r.logger.Info("Local delivery partially failed", "id", dg.ID, "delivered", n,
				"err", err)
		}
		r.stats.Delivered++
		r.metrics.DeliveredDatagramsTotal.WithLabelValues("local_in").Inc()
	case errors.Is(err, ErrNoListener):
		r.drop(dg, err)
	default:
		r.drop(dg, serrors.JoinNoStack(ErrDeliveryFailed, err))
	}
}

func (r *Router) forward(dg *gnp.Datagram, in, out *Interface, nextHop netip.Addr) {
	hc := &HookContext{Point: Forward, In: in, Out: out, NextHop: nextHop}
	if !r.runHooks(dg, hc, false) {
		return
	}
	r.egress(dg, in, hc.Out, hc.NextHop, false)
}

// localOut routes a datagram of the node that passed LocalOut.
func (r *Router) localOut(dg *gnp.Datagram, out *Interface, nextHop netip.Addr) {
	if r.interfaces.IsMulticastAddress(dg.Dst) {
		outs := []*Interface{out}
		if out == nil {
			outs = r.multicastInterfaces(nil)
		}
		if len(outs) == 0 {
			r.drop(dg, serrors.JoinNoStack(ErrUnroutable, nil, "group", dg.Dst))
			return
		}
		group := dg.Dst
		for i, o := range outs {
			replica := dg
			if i < len(outs)-1 {
				replica = dg.Clone(r.ids.Next())
			}
			r.egress(replica, nil, o, group, true)
		}
		return
	}
	if out == nil {
		rt, ok := r.resolve(dg)
		if !ok {
			return
		}
		out, nextHop = rt.Interface, rt.NextHop
	}
	r.egress(dg, nil, out, nextHop, true)
}

// egress applies the hop limit rules and runs PostRouting. Datagrams of the
// node are charged their first hop here. Forwarded datagrams were charged on
// ingress and only need a hop left.
func (r *Router) egress(dg *gnp.Datagram, in, out *Interface, nextHop netip.Addr, local bool) {
	if out == nil {
		r.drop(dg, serrors.JoinNoStack(ErrUnroutable, nil, "detail", "egress interface unset"))
		return
	}
	if !nextHop.IsValid() {
		nextHop = dg.Dst
	}
	if dg.HopLimit == 0 {
		r.drop(dg, serrors.JoinNoStack(ErrHopLimitExceeded, nil, "out", out.Name))
		return
	}
	if local {
		dg.HopLimit--
		if !dg.Src.IsValid() {
			src, ok := out.PrimaryAddr(dg.Dst)
			if !ok {
				r.drop(dg, serrors.JoinNoStack(ErrMalformedDatagram, nil,
					"detail", "no source address on interface", "out", out.Name))
				return
			}
			dg.Src = src
		}
	}
	hc := &HookContext{Point: PostRouting, In: in, Out: out, NextHop: nextHop}
	if !r.runHooks(dg, hc, local) {
		return
	}
	r.transmit(dg, hc.Out, hc.NextHop, local)
}

func (r *Router) transmit(dg *gnp.Datagram, out *Interface, nextHop netip.Addr, local bool) {
	if out == nil {
		r.drop(dg, serrors.JoinNoStack(ErrUnroutable, nil, "detail", "egress interface unset"))
		return
	}
	if err := r.link.Transmit(dg, out, nextHop); err != nil {
		r.drop(dg, serrors.JoinNoStack(ErrTransmitFailed, err, "out", out.Name))
		return
	}
	r.metrics.SentDatagramsTotal.WithLabelValues(out.Name).Inc()
	if local {
		r.stats.Delivered++
		r.metrics.DeliveredDatagramsTotal.WithLabelValues("local_out").Inc()
		return
	}
	r.stats.Forwarded++
	r.metrics.ForwardedDatagramsTotal.Inc()
}

// runHooks runs the hooks of hc.Point and reports whether processing
// continues. For any other verdict than Accept the router has given up dg
// when it returns.
func (r *Router) runHooks(dg *gnp.Datagram, hc *HookContext, local bool) bool {
	v, h := r.hooks.Run(dg, hc)
	if v == Accept {
		return true
	}
	r.metrics.HookVerdictsTotal.WithLabelValues(hc.Point.String(), v.String()).Inc()
	switch v {
	case Queue:
		r.enqueue(dg, hc, local)
	case Stolen:
		r.logger.Debug("Datagram stolen by hook", "id", dg.ID, "point", hc.Point.String(),
			"hook", fmt.Sprintf("%T", h))
	default:
		r.drop(dg, serrors.JoinNoStack(ErrDroppedByHook, nil, "point", hc.Point.String(),
			"hook", fmt.Sprintf("%T", h), "verdict", v.String()))
	}
	return false
}

func (r *Router) enqueue(dg *gnp.Datagram, hc *HookContext, local bool) {
	p := &PendingDatagram{
		Datagram:    dg,
		Point:       hc.Point,
		In:          hc.In,
		Out:         hc.Out,
		NextHop:     hc.NextHop,
		LocalOrigin: local,
	}
	if err := r.queue.Put(p); err != nil {
		r.drop(dg, err)
		return
	}
	r.metrics.QueuedDatagrams.Set(float64(r.queue.Len()))
	r.logger.Debug("Datagram queued", "id", dg.ID, "point", hc.Point.String())
}

// drop accounts for a discarded datagram. dg is nil if the datagram could not
// be built.
func (r *Router) drop(dg *gnp.Datagram, err error) {
	reason := dropReason(err)
	r.metrics.DroppedDatagramsTotal.WithLabelValues(reason).Inc()
	if errors.Is(err, ErrUnroutable) {
		r.stats.Unroutable++
	} else {
		r.stats.Dropped++
	}
	if !r.logger.Enabled(log.DebugLevel) {
		return
	}
	logCtx := []any{"reason", reason, "err", err}
	if dg != nil {
		logCtx = append(logCtx, "id", dg.ID, "src", dg.Src, "dst", dg.Dst)
	}
	r.logger.Debug("Dropping datagram", logCtx...)
}
