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

package routing

import (
	"net/netip"
	"strings"

	"go4.org/netipx"
)

// IPSet is a netipx.IPSet that converts to and from a comma separated list
// of prefixes, so that it can be used directly in configuration files.
type IPSet struct {
	netipx.IPSet
}

func ParseIPSet(s string) (IPSet, error) {
	var sb netipx.IPSetBuilder
	for _, prefix := range strings.Split(s, ",") {
		prefix = strings.TrimSpace(prefix)
		if prefix == "" {
			continue
		}
		p, err := netip.ParsePrefix(prefix)
		if err != nil {
			return IPSet{}, err
		}
		sb.AddPrefix(p)
	}
	set, err := sb.IPSet()
	if err != nil {
		return IPSet{}, err
	}
	return IPSet{IPSet: *set}, nil
}

func MustParseIPSet(s string) IPSet {
	set, err := ParseIPSet(s)
	if err != nil {
		panic(err)
	}
	return set
}

func (s IPSet) String() string {
	prefixes := s.Prefixes()
	out := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		out = append(out, p.String())
	}
	return strings.Join(out, ",")
}

func (s IPSet) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *IPSet) UnmarshalText(b []byte) error {
	set, err := ParseIPSet(string(b))
	if err != nil {
		return err
	}
	*s = set
	return nil
}
