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
	"fmt"
	"net/netip"
	"reflect"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/gnprouter/gnp/pkg/gnp"
)

// HookType names an interception point of the router.
type HookType int

const (
	PreRouting HookType = iota
	LocalIn
	Forward
	PostRouting
	LocalOut
)

func (t HookType) String() string {
	switch t {
	case PreRouting:
		return "prerouting"
	case LocalIn:
		return "localin"
	case Forward:
		return "forward"
	case PostRouting:
		return "postrouting"
	case LocalOut:
		return "localout"
	}
	return fmt.Sprintf("hook(%d)", int(t))
}

// ParseHookType parses the names produced by HookType.String.
func ParseHookType(s string) (HookType, error) {
	for t := PreRouting; t <= LocalOut; t++ {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown hook type %q", s)
}

// Verdict is the outcome of a hook.
type Verdict int

const (
	// Accept lets the datagram continue to the next hook or stage.
	Accept Verdict = iota
	// Drop discards the datagram.
	Drop
	// Queue parks the datagram until DropQueued or ReinjectQueued is called
	// with its ID.
	Queue
	// Stolen means the hook took ownership of the datagram. The router
	// forgets about it.
	Stolen
)

func (v Verdict) String() string {
	switch v {
	case Accept:
		return "accept"
	case Drop:
		return "drop"
	case Queue:
		return "queue"
	case Stolen:
		return "stolen"
	}
	return fmt.Sprintf("verdict(%d)", int(v))
}

// HookContext is the routing state a hook sees. Out and NextHop may be
// rewritten by hooks that return Accept; later hooks and stages use the
// rewritten values.
type HookContext struct {
	Point   HookType
	In      *Interface
	Out     *Interface
	NextHop netip.Addr
}

// Hook inspects datagrams at the interception points. A hook that returns
// Stolen owns the datagram afterwards; with every other verdict the router
// keeps ownership and the hook must not retain dg.
type Hook interface {
	DatagramPreRoutingHook(dg *gnp.Datagram, hc *HookContext) Verdict
	DatagramForwardHook(dg *gnp.Datagram, hc *HookContext) Verdict
	DatagramPostRoutingHook(dg *gnp.Datagram, hc *HookContext) Verdict
	DatagramLocalInHook(dg *gnp.Datagram, hc *HookContext) Verdict
	DatagramLocalOutHook(dg *gnp.Datagram, hc *HookContext) Verdict
}

// AcceptAll accepts everything. Embed it to implement only some points.
type AcceptAll struct{}

func (AcceptAll) DatagramPreRoutingHook(*gnp.Datagram, *HookContext) Verdict  { return Accept }
func (AcceptAll) DatagramForwardHook(*gnp.Datagram, *HookContext) Verdict     { return Accept }
func (AcceptAll) DatagramPostRoutingHook(*gnp.Datagram, *HookContext) Verdict { return Accept }
func (AcceptAll) DatagramLocalInHook(*gnp.Datagram, *HookContext) Verdict     { return Accept }
func (AcceptAll) DatagramLocalOutHook(*gnp.Datagram, *HookContext) Verdict    { return Accept }

type hookEntry struct {
	priority int
	hook     Hook
}

// HookRegistry keeps hooks ordered by priority, lowest first, with ties in
// registration order. Every Run works on the entries as they were when it
// started, so hooks may register or unregister hooks while a pipeline is
// running. Pointer hooks are matched by identity, value hooks by equality.
type HookRegistry struct {
	mtx     sync.Mutex
	entries atomic.Pointer[[]hookEntry]
}

// Register adds h with the given priority. Registering the same hook twice
// makes it run twice.
func (r *HookRegistry) Register(priority int, h Hook) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	cur := r.snapshot()
	i, _ := slices.BinarySearchFunc(cur, priority, func(e hookEntry, p int) int {
		if e.priority <= p {
			return -1
		}
		return 1
	})
	next := slices.Insert(slices.Clone(cur), i, hookEntry{priority: priority, hook: h})
	r.entries.Store(&next)
}

// Unregister removes every entry of h. Unknown hooks are ignored.
func (r *HookRegistry) Unregister(h Hook) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	cur := r.snapshot()
	match := func(e hookEntry) bool { return sameHook(e.hook, h) }
	if !slices.ContainsFunc(cur, match) {
		return
	}
	next := slices.DeleteFunc(slices.Clone(cur), match)
	r.entries.Store(&next)
}

// Len returns the number of registered entries.
func (r *HookRegistry) Len() int {
	return len(r.snapshot())
}

// Run passes dg through the hooks for hc.Point and returns the first
// verdict other than Accept together with the hook that gave it. If all
// hooks accept, or none is registered, the result is Accept and a nil hook.
func (r *HookRegistry) Run(dg *gnp.Datagram, hc *HookContext) (Verdict, Hook) {
	for _, e := range r.snapshot() {
		if v := invoke(e.hook, dg, hc); v != Accept {
			return v, e.hook
		}
	}
	return Accept, nil
}

// sameHook compares hooks without panicking on values that == rejects, such
// as structs holding slices. Those are compared with reflect.DeepEqual.
func sameHook(a, b Hook) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	if va.Comparable() && vb.Comparable() {
		return va.Equal(vb)
	}
	return reflect.DeepEqual(a, b)
}

func (r *HookRegistry) snapshot() []hookEntry {
	if p := r.entries.Load(); p != nil {
		return *p
	}
	return nil
}

func invoke(h Hook, dg *gnp.Datagram, hc *HookContext) Verdict {
	switch hc.Point {
	case PreRouting:
		return h.DatagramPreRoutingHook(dg, hc)
	case LocalIn:
		return h.DatagramLocalInHook(dg, hc)
	case Forward:
		return h.DatagramForwardHook(dg, hc)
	case PostRouting:
		return h.DatagramPostRoutingHook(dg, hc)
	case LocalOut:
		return h.DatagramLocalOutHook(dg, hc)
	}
	panic(fmt.Sprintf("unknown hook point %d", int(hc.Point)))
}
