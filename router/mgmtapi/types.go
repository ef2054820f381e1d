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

package mgmtapi

// Problem types.
const (
	BadRequest    = "/problems/bad-request"
	NotFound      = "/problems/not-found"
	Conflict      = "/problems/conflict"
	Unavailable   = "/problems/unavailable"
	InternalError = "/problems/internal-error"
)

// Problem is an RFC 7807 error description.
type Problem struct {
	Type     *string `json:"type,omitempty"`
	Title    string  `json:"title"`
	Status   int     `json:"status"`
	Detail   *string `json:"detail,omitempty"`
	Instance *string `json:"instance,omitempty"`
}

// StatsResponse holds the router counters.
type StatsResponse struct {
	Forwarded  uint64 `json:"forwarded"`
	Delivered  uint64 `json:"delivered"`
	Dropped    uint64 `json:"dropped"`
	Unroutable uint64 `json:"unroutable"`
	Queued     int    `json:"queued"`
}

// QueuedDatagram describes a datagram held by a hook.
type QueuedDatagram struct {
	ID          string `json:"id"`
	Point       string `json:"point"`
	Src         string `json:"src"`
	Dst         string `json:"dst"`
	Protocol    string `json:"protocol"`
	HopLimit    uint8  `json:"hop_limit"`
	PayloadLen  int    `json:"payload_len"`
	In          string `json:"in,omitempty"`
	Out         string `json:"out,omitempty"`
	NextHop     string `json:"next_hop,omitempty"`
	LocalOrigin bool   `json:"local_origin"`
}

// Interface describes an interface of the router.
type Interface struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Addrs     []string `json:"addrs"`
	Groups    []string `json:"groups,omitempty"`
	Multicast bool     `json:"multicast"`
	Up        bool     `json:"up"`
}

// Route is an entry of the static route table.
type Route struct {
	Prefix    string `json:"prefix"`
	Interface string `json:"interface"`
	NextHop   string `json:"next_hop,omitempty"`
}

func stringRef(s string) *string {
	return &s
}
