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

package gnp

import (
	"strconv"
	"sync/atomic"
)

// ID identifies a datagram for as long as it lives in the router. Replicas
// of a multicast datagram get their own ID. The zero ID is never handed out.
type ID uint64

func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// ParseID parses the decimal form produced by ID.String.
func ParseID(s string) (ID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return ID(v), nil
}

// IDGenerator hands out increasing IDs. The zero value is ready to use and
// safe for concurrent use.
type IDGenerator struct {
	last atomic.Uint64
}

// Next returns the next ID.
func (g *IDGenerator) Next() ID {
	return ID(g.last.Add(1))
}
