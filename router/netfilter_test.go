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

package router_test

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnprouter/gnp/pkg/gnp"
	"github.com/gnprouter/gnp/router"
)

// tagHook appends its tag to a shared trace and returns a fixed verdict.
type tagHook struct {
	router.AcceptAll
	tag     string
	verdict router.Verdict
	trace   *[]string
}

func (h *tagHook) DatagramPreRoutingHook(*gnp.Datagram, *router.HookContext) router.Verdict {
	*h.trace = append(*h.trace, h.tag)
	return h.verdict
}

func TestHookRegistryOrder(t *testing.T) {
	var trace []string
	newHook := func(tag string) *tagHook {
		return &tagHook{tag: tag, verdict: router.Accept, trace: &trace}
	}
	var reg router.HookRegistry
	reg.Register(10, newHook("c"))
	reg.Register(-5, newHook("a"))
	reg.Register(0, newHook("b1"))
	reg.Register(0, newHook("b2"))
	reg.Register(10, newHook("d"))
	require.Equal(t, 5, reg.Len())

	v, h := reg.Run(&gnp.Datagram{}, &router.HookContext{Point: router.PreRouting})
	assert.Equal(t, router.Accept, v)
	assert.Nil(t, h)
	assert.Equal(t, []string{"a", "b1", "b2", "c", "d"}, trace)
}

func TestHookRegistryShortCircuit(t *testing.T) {
	var trace []string
	first := &tagHook{tag: "first", verdict: router.Queue, trace: &trace}
	second := &tagHook{tag: "second", verdict: router.Accept, trace: &trace}
	var reg router.HookRegistry
	reg.Register(1, second)
	reg.Register(0, first)

	v, h := reg.Run(&gnp.Datagram{}, &router.HookContext{Point: router.PreRouting})
	assert.Equal(t, router.Queue, v)
	assert.Same(t, first, h)
	assert.Equal(t, []string{"first"}, trace)
}

func TestHookRegistryOtherPointsUseEmbeddedDefault(t *testing.T) {
	var trace []string
	var reg router.HookRegistry
	reg.Register(0, &tagHook{tag: "x", verdict: router.Drop, trace: &trace})

	for _, p := range []router.HookType{
		router.LocalIn, router.Forward, router.PostRouting, router.LocalOut,
	} {
		v, _ := reg.Run(&gnp.Datagram{}, &router.HookContext{Point: p})
		assert.Equal(t, router.Accept, v, p.String())
	}
	assert.Empty(t, trace)
}

func TestHookRegistryUnregister(t *testing.T) {
	var trace []string
	h := &tagHook{tag: "h", trace: &trace}
	other := &tagHook{tag: "other", trace: &trace}
	var reg router.HookRegistry
	reg.Register(0, h)
	reg.Register(1, other)
	reg.Register(2, h)

	reg.Unregister(h)
	assert.Equal(t, 1, reg.Len())
	reg.Unregister(h)
	assert.Equal(t, 1, reg.Len())

	reg.Run(&gnp.Datagram{}, &router.HookContext{Point: router.PreRouting})
	assert.Equal(t, []string{"other"}, trace)
}

// sliceHook is a value hook that == cannot compare.
type sliceHook struct {
	router.AcceptAll
	tags []string
}

func TestHookRegistryUnregisterUncomparable(t *testing.T) {
	var reg router.HookRegistry
	reg.Register(0, sliceHook{tags: []string{"a"}})
	reg.Register(1, sliceHook{tags: []string{"b"}})
	reg.Register(2, &tagHook{tag: "ptr", trace: new([]string)})

	require.NotPanics(t, func() { reg.Unregister(sliceHook{tags: []string{"c"}}) })
	assert.Equal(t, 3, reg.Len())

	require.NotPanics(t, func() { reg.Unregister(sliceHook{tags: []string{"a"}}) })
	assert.Equal(t, 2, reg.Len())

	// A different dynamic type never matches.
	reg.Unregister(&sliceHook{tags: []string{"b"}})
	assert.Equal(t, 2, reg.Len())
	reg.Unregister(sliceHook{tags: []string{"b"}})
	assert.Equal(t, 1, reg.Len())
}

// forwardFunc runs fn at the Forward point.
type forwardFunc struct {
	router.AcceptAll
	fn func(hc *router.HookContext) router.Verdict
}

func (h *forwardFunc) DatagramForwardHook(_ *gnp.Datagram,
	hc *router.HookContext) router.Verdict {

	return h.fn(hc)
}

func TestHookRegistryContextChangesVisibleToLaterHooks(t *testing.T) {
	orig := &router.Interface{ID: 1, Name: "eth0"}
	redirect := &router.Interface{ID: 2, Name: "eth1"}
	gw := netip.MustParseAddr("192.0.2.254")

	var seenOut *router.Interface
	var seenNextHop netip.Addr
	var reg router.HookRegistry
	reg.Register(1, &forwardFunc{fn: func(hc *router.HookContext) router.Verdict {
		seenOut, seenNextHop = hc.Out, hc.NextHop
		return router.Accept
	}})
	reg.Register(0, &forwardFunc{fn: func(hc *router.HookContext) router.Verdict {
		hc.Out, hc.NextHop = redirect, gw
		return router.Accept
	}})

	hc := &router.HookContext{
		Point:   router.Forward,
		In:      orig,
		Out:     orig,
		NextHop: netip.MustParseAddr("192.0.2.1"),
	}
	v, h := reg.Run(&gnp.Datagram{}, hc)
	assert.Equal(t, router.Accept, v)
	assert.Nil(t, h)
	assert.Same(t, redirect, seenOut)
	assert.Equal(t, gw, seenNextHop)
	assert.Same(t, redirect, hc.Out)
	assert.Equal(t, gw, hc.NextHop)
	assert.Same(t, orig, hc.In)
}

func TestHookTypeParse(t *testing.T) {
	for p := router.PreRouting; p <= router.LocalOut; p++ {
		got, err := router.ParseHookType(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	_, err := router.ParseHookType("input")
	assert.Error(t, err)
}
