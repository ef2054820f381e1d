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

package gnp_test

import (
	"net/netip"
	"testing"

	"github.com/gopacket/gopacket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnprouter/gnp/pkg/gnp"
)

func TestIDGenerator(t *testing.T) {
	var g gnp.IDGenerator
	first := g.Next()
	assert.NotZero(t, first)
	assert.Greater(t, g.Next(), first)

	id, err := gnp.ParseID(first.String())
	require.NoError(t, err)
	assert.Equal(t, first, id)
}

func TestClone(t *testing.T) {
	dg := &gnp.Datagram{
		ID:       1,
		Src:      netip.MustParseAddr("10.0.0.1"),
		Dst:      netip.MustParseAddr("224.0.0.5"),
		HopLimit: 3,
		Protocol: gnp.ProtocolUDP,
		Payload:  []byte("abc"),
	}
	c := dg.Clone(2)
	assert.Equal(t, gnp.ID(2), c.ID)
	assert.Equal(t, dg.Dst, c.Dst)
	c.Payload[0] = 'x'
	c.HopLimit = 9
	assert.Equal(t, []byte("abc"), dg.Payload)
	assert.Equal(t, uint8(3), dg.HopLimit)
}

func TestEncodeDecode(t *testing.T) {
	testCases := map[string]*gnp.Datagram{
		"ipv4": {
			ID:       7,
			Src:      netip.MustParseAddr("10.0.0.1"),
			Dst:      netip.MustParseAddr("10.0.1.1"),
			HopLimit: 64,
			Protocol: gnp.ProtocolUDP,
			Payload:  []byte("hello"),
		},
		"ipv6": {
			ID:       8,
			Src:      netip.MustParseAddr("2001:db8::1"),
			Dst:      netip.MustParseAddr("ff02::5"),
			HopLimit: 1,
			Protocol: gnp.ProtocolICMP,
			Payload:  []byte{1, 2, 3},
		},
	}
	for name, dg := range testCases {
		t.Run(name, func(t *testing.T) {
			raw, err := gnp.Encode(dg)
			require.NoError(t, err)
			got, err := gnp.Decode(raw, dg.ID)
			require.NoError(t, err)
			assert.Equal(t, dg, got)
		})
	}
}

func TestEncodeErrors(t *testing.T) {
	_, err := gnp.Encode(&gnp.Datagram{Dst: netip.MustParseAddr("10.0.0.1")})
	assert.Error(t, err, "missing source")

	_, err = gnp.Encode(&gnp.Datagram{
		Src: netip.MustParseAddr("10.0.0.1"),
		Dst: netip.MustParseAddr("2001:db8::1"),
	})
	assert.Error(t, err, "mixed families")
}

func TestDecodeErrors(t *testing.T) {
	raw, err := gnp.Encode(&gnp.Datagram{
		Src:      netip.MustParseAddr("10.0.0.1"),
		Dst:      netip.MustParseAddr("10.0.0.2"),
		HopLimit: 5,
		Payload:  []byte("payload"),
	})
	require.NoError(t, err)

	testCases := map[string][]byte{
		"empty":             nil,
		"fixed part only":   raw[:gnp.FixedHeaderLen],
		"truncated payload": raw[:len(raw)-1],
		"bad version":       append([]byte{0x20}, raw[1:]...),
		"bad address type":  append([]byte{0x17}, raw[1:]...),
	}
	for name, data := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := gnp.Decode(data, 1)
			assert.Error(t, err)
		})
	}
}

func TestGopacketDecoding(t *testing.T) {
	raw, err := gnp.Encode(&gnp.Datagram{
		Src:      netip.MustParseAddr("10.0.0.1"),
		Dst:      netip.MustParseAddr("10.0.0.2"),
		HopLimit: 5,
		Protocol: gnp.ProtocolTCP,
		Payload:  []byte("payload"),
	})
	require.NoError(t, err)

	pkt := gopacket.NewPacket(raw, gnp.LayerTypeGNP, gopacket.Default)
	require.Nil(t, pkt.ErrorLayer())
	h, ok := pkt.Layer(gnp.LayerTypeGNP).(*gnp.Header)
	require.True(t, ok)
	assert.Equal(t, gnp.ProtocolTCP, h.Protocol)
	assert.Equal(t, "10.0.0.1", h.NetworkFlow().Src().String())
	require.NotNil(t, pkt.ApplicationLayer())
	assert.Equal(t, []byte("payload"), pkt.ApplicationLayer().Payload())
}

func TestProtocolParse(t *testing.T) {
	p, err := gnp.ParseProtocol("udp")
	require.NoError(t, err)
	assert.Equal(t, gnp.ProtocolUDP, p)
	p, err = gnp.ParseProtocol("89")
	require.NoError(t, err)
	assert.Equal(t, gnp.ProtocolID(89), p)
	assert.Equal(t, "89", p.String())
	_, err = gnp.ParseProtocol("300")
	assert.Error(t, err)
}
