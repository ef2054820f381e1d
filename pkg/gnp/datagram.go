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

// Package gnp defines the generic network-layer datagram handled by the
// router, and its wire encoding.
package gnp

import (
	"fmt"
	"net/netip"
)

// Datagram is a network-layer message. The ID is assigned once on creation
// and never changes; all other fields may be rewritten while the datagram is
// processed.
//
// A datagram has exactly one owner at a time. Code that hands a datagram to
// another component must not touch it afterwards.
type Datagram struct {
	ID       ID
	Src      netip.Addr
	Dst      netip.Addr
	HopLimit uint8
	Protocol ProtocolID
	Payload  []byte
}

// Clone returns a deep copy of dg carrying the given id.
func (dg *Datagram) Clone(id ID) *Datagram {
	c := *dg
	c.ID = id
	if dg.Payload != nil {
		c.Payload = append([]byte(nil), dg.Payload...)
	}
	return &c
}

func (dg *Datagram) String() string {
	return fmt.Sprintf("id=%s src=%s dst=%s hop_limit=%d proto=%s len=%d",
		dg.ID, dg.Src, dg.Dst, dg.HopLimit, dg.Protocol, len(dg.Payload))
}
