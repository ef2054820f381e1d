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

import "strconv"

// ProtocolID names the protocol carried in the payload of a datagram.
type ProtocolID uint8

const (
	// ProtocolNone marks a datagram without protocol metadata.
	ProtocolNone ProtocolID = 0
	ProtocolICMP ProtocolID = 1
	ProtocolTCP  ProtocolID = 6
	ProtocolUDP  ProtocolID = 17
)

func (p ProtocolID) String() string {
	switch p {
	case ProtocolNone:
		return "none"
	case ProtocolICMP:
		return "icmp"
	case ProtocolTCP:
		return "tcp"
	case ProtocolUDP:
		return "udp"
	}
	return strconv.Itoa(int(p))
}

// ParseProtocol accepts a protocol name known to String or a decimal number.
func ParseProtocol(s string) (ProtocolID, error) {
	switch s {
	case "icmp":
		return ProtocolICMP, nil
	case "tcp":
		return ProtocolTCP, nil
	case "udp":
		return ProtocolUDP, nil
	}
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return ProtocolNone, err
	}
	return ProtocolID(v), nil
}
