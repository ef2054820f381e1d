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
	"encoding/binary"
	"fmt"
	"net/netip"

	"github.com/gopacket/gopacket"

	"github.com/gnprouter/gnp/pkg/private/serrors"
)

const (
	// Version is the only header version understood.
	Version = 1
	// FixedHeaderLen is the length of the header without addresses.
	FixedHeaderLen = 8

	addrTypeIPv4 = 0
	addrTypeIPv6 = 1
)

var (
	LayerTypeGNP = gopacket.RegisterLayerType(
		1500,
		gopacket.LayerTypeMetadata{
			Name:    "GNP",
			Decoder: gopacket.DecodeFunc(decodeGNP),
		},
	)
	LayerClassGNP gopacket.LayerClass = LayerTypeGNP

	EndpointGNP = gopacket.RegisterEndpointType(
		1500,
		gopacket.EndpointTypeMetadata{
			Name: "GNP",
			Formatter: func(b []byte) string {
				a, _ := netip.AddrFromSlice(b)
				return a.String()
			},
		},
	)
)

// Header is the wire header of a datagram:
//
//	 0                   1                   2                   3
//	 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|Version|AddrTyp|   HopLimit    |   Protocol    |      RSV      |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|         PayloadLen            |              RSV              |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|                  SrcAddr (4 or 16 bytes)                      |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|                  DstAddr (4 or 16 bytes)                      |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//
// Both addresses belong to the family given by AddrTyp.
type Header struct {
	Contents []byte
	Payload  []byte

	Version    uint8
	HopLimit   uint8
	Protocol   ProtocolID
	PayloadLen uint16
	Src        netip.Addr
	Dst        netip.Addr
}

func (h *Header) LayerType() gopacket.LayerType {
	return LayerTypeGNP
}

func (h *Header) CanDecode() gopacket.LayerClass {
	return LayerClassGNP
}

func (h *Header) NextLayerType() gopacket.LayerType {
	return gopacket.LayerTypePayload
}

func (h *Header) LayerContents() []byte {
	return h.Contents
}

func (h *Header) LayerPayload() []byte {
	return h.Payload
}

func (h *Header) NetworkFlow() gopacket.Flow {
	return gopacket.NewFlow(EndpointGNP, h.Src.AsSlice(), h.Dst.AsSlice())
}

// DecodeFromBytes implements gopacket.DecodingLayer.
func (h *Header) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	if len(data) < FixedHeaderLen {
		df.SetTruncated()
		return serrors.New("header shorter than fixed part", "len", len(data))
	}
	h.Version = data[0] >> 4
	if h.Version != Version {
		return serrors.New("unsupported version", "version", h.Version)
	}
	var alen int
	switch data[0] & 0x0f {
	case addrTypeIPv4:
		alen = 4
	case addrTypeIPv6:
		alen = 16
	default:
		return serrors.New("unknown address type", "type", data[0]&0x0f)
	}
	h.HopLimit = data[1]
	h.Protocol = ProtocolID(data[2])
	h.PayloadLen = binary.BigEndian.Uint16(data[4:6])
	hdrLen := FixedHeaderLen + 2*alen
	if len(data) < hdrLen {
		df.SetTruncated()
		return serrors.New("header shorter than addresses", "len", len(data), "want", hdrLen)
	}
	h.Src, _ = netip.AddrFromSlice(data[FixedHeaderLen : FixedHeaderLen+alen])
	h.Dst, _ = netip.AddrFromSlice(data[FixedHeaderLen+alen : hdrLen])
	end := hdrLen + int(h.PayloadLen)
	if len(data) < end {
		df.SetTruncated()
		return serrors.New("payload truncated", "len", len(data)-hdrLen,
			"payload_len", h.PayloadLen)
	}
	h.Contents = data[:hdrLen]
	h.Payload = data[hdrLen:end]
	return nil
}

// SerializeTo implements gopacket.SerializableLayer. The payload must
// already be in b.
func (h *Header) SerializeTo(b gopacket.SerializeBuffer, opts gopacket.SerializeOptions) error {
	if !h.Src.IsValid() || !h.Dst.IsValid() {
		return serrors.New("missing address", "src", h.Src, "dst", h.Dst)
	}
	if h.Src.Is4() != h.Dst.Is4() {
		return serrors.New("address family mismatch", "src", h.Src, "dst", h.Dst)
	}
	addrType, alen := uint8(addrTypeIPv6), 16
	if h.Src.Is4() {
		addrType, alen = addrTypeIPv4, 4
	}
	if opts.FixLengths {
		if len(b.Bytes()) > 0xffff {
			return serrors.New("payload too large", "len", len(b.Bytes()))
		}
		h.PayloadLen = uint16(len(b.Bytes()))
	}
	buf, err := b.PrependBytes(FixedHeaderLen + 2*alen)
	if err != nil {
		return err
	}
	buf[0] = Version<<4 | addrType
	buf[1] = h.HopLimit
	buf[2] = uint8(h.Protocol)
	buf[3] = 0
	binary.BigEndian.PutUint16(buf[4:6], h.PayloadLen)
	buf[6], buf[7] = 0, 0
	copy(buf[FixedHeaderLen:], h.Src.AsSlice())
	copy(buf[FixedHeaderLen+alen:], h.Dst.AsSlice())
	return nil
}

func (h *Header) String() string {
	return fmt.Sprintf("Src=%s, Dst=%s, HopLimit=%d, Protocol=%s, PayloadLen=%d",
		h.Src, h.Dst, h.HopLimit, h.Protocol, h.PayloadLen)
}

func decodeGNP(data []byte, pb gopacket.PacketBuilder) error {
	h := &Header{}
	err := h.DecodeFromBytes(data, pb)
	pb.AddLayer(h)
	if err != nil {
		return err
	}
	pb.SetNetworkLayer(h)
	return pb.NextDecoder(gopacket.LayerTypePayload)
}

// Encode serializes dg into its wire form.
func Encode(dg *Datagram) ([]byte, error) {
	buf := gopacket.NewSerializeBuffer()
	h := &Header{
		HopLimit: dg.HopLimit,
		Protocol: dg.Protocol,
		Src:      dg.Src.Unmap(),
		Dst:      dg.Dst.Unmap(),
	}
	opts := gopacket.SerializeOptions{FixLengths: true}
	if err := gopacket.SerializeLayers(buf, opts, h, gopacket.Payload(dg.Payload)); err != nil {
		return nil, serrors.Wrap("encoding datagram", err, "id", dg.ID)
	}
	return buf.Bytes(), nil
}

// Decode parses raw into a datagram with the given id. The payload is
// copied, raw may be reused by the caller.
func Decode(raw []byte, id ID) (*Datagram, error) {
	var h Header
	if err := h.DecodeFromBytes(raw, gopacket.NilDecodeFeedback); err != nil {
		return nil, err
	}
	return &Datagram{
		ID:       id,
		Src:      h.Src,
		Dst:      h.Dst,
		HopLimit: h.HopLimit,
		Protocol: h.Protocol,
		Payload:  append([]byte(nil), h.Payload...),
	}, nil
}
