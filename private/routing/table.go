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

// Package routing provides the static route table and address set helpers
// used to configure the router.
package routing

import (
	"net/netip"
	"slices"
	"sync"

	"github.com/gnprouter/gnp/pkg/private/serrors"
	"github.com/gnprouter/gnp/router"
)

// Entry is a route to all destinations in Prefix.
type Entry struct {
	Prefix    netip.Prefix
	Interface *router.Interface
	// NextHop is the gateway. Unset for on-link prefixes.
	NextHop netip.Addr
}

func (e Entry) validate() error {
	if !e.Prefix.IsValid() {
		return serrors.New("invalid prefix", "prefix", e.Prefix)
	}
	if e.Prefix != e.Prefix.Masked() {
		return serrors.New("prefix has host bits set", "prefix", e.Prefix)
	}
	if e.Interface == nil {
		return serrors.New("route without interface", "prefix", e.Prefix)
	}
	if e.NextHop.IsValid() && e.NextHop.Is4() != e.Prefix.Addr().Is4() {
		return serrors.New("next hop family differs from prefix", "prefix", e.Prefix,
			"next_hop", e.NextHop)
	}
	return nil
}

// Table is a longest-prefix-match route table. It is safe for concurrent use.
// Routes over interfaces that are down are skipped.
type Table struct {
	mtx sync.RWMutex
	// entries are ordered by decreasing prefix length.
	entries []Entry
}

// NewTable creates a table holding entries.
func NewTable(entries ...Entry) (*Table, error) {
	t := &Table{}
	for _, e := range entries {
		if err := t.Add(e); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Add inserts e, replacing a route for the same prefix.
func (t *Table) Add(e Entry) error {
	if err := e.validate(); err != nil {
		return err
	}
	t.mtx.Lock()
	defer t.mtx.Unlock()

	if i := t.index(e.Prefix); i >= 0 {
		t.entries[i] = e
		return nil
	}
	i, _ := slices.BinarySearchFunc(t.entries, e.Prefix.Bits(),
		func(cur Entry, bits int) int {
			if cur.Prefix.Bits() >= bits {
				return -1
			}
			return 1
		})
	t.entries = slices.Insert(t.entries, i, e)
	return nil
}

// Remove deletes the route for p and reports whether there was one.
func (t *Table) Remove(p netip.Prefix) bool {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	i := t.index(p.Masked())
	if i < 0 {
		return false
	}
	t.entries = slices.Delete(t.entries, i, i+1)
	return true
}

// Entries returns the routes, most specific first.
func (t *Table) Entries() []Entry {
	t.mtx.RLock()
	defer t.mtx.RUnlock()
	return slices.Clone(t.entries)
}

// Resolve implements router.RouteResolver.
func (t *Table) Resolve(dst netip.Addr) (router.Route, bool) {
	dst = dst.Unmap()
	t.mtx.RLock()
	defer t.mtx.RUnlock()

	for _, e := range t.entries {
		if !e.Interface.Up || !e.Prefix.Contains(dst) {
			continue
		}
		return router.Route{Interface: e.Interface, NextHop: e.NextHop}, true
	}
	return router.Route{}, false
}

func (t *Table) index(p netip.Prefix) int {
	return slices.IndexFunc(t.entries, func(e Entry) bool { return e.Prefix == p })
}
