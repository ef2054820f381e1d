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

package config

const generalSample = `# The ID of the router, used in logs. (default "gnp")
id = "%s"
`

const metricsSample = `# The address to export prometheus metrics on (host:port or ip:port or :port).
# The metrics can be found under /metrics. If not set, metrics are not
# exported. (default "")
prometheus = ""
`

const apiSample = `# The address the management API listens on (host:port or ip:port or :port).
# If not set, the API is disabled. (default "")
addr = ""
`

const routerSample = `# Hop limit of datagrams sent by the node, 1 to 255. (default 64)
default_hop_limit = 64

# Maximum number of datagrams queued by hooks. Datagrams queued beyond it
# are dropped. (default 4096)
queue_capacity = 4096

# Number of disposed queue identities remembered to detect a second
# disposition. (default 1024)
disposed_history = 1024

# Forward unicast datagrams that are not addressed to the node. (default true)
forwarding = true

# Replicate multicast datagrams to the other multicast interfaces.
# (default true)
multicast_forwarding = true
`

const tablesSample = `
# Interfaces of the router. Each interface is emulated by a UDP socket
# bound to local and sending to remote.
#
# [[interfaces]]
# id = 1
# name = "eth0"
# addrs = ["10.0.0.1"]
# groups = ["224.0.0.9"]
# multicast = true
# down = false
# local = "127.0.0.1:40001"
# remote = "127.0.0.1:40002"

# Static routes. The longest matching prefix wins. Without next_hop the
# destination is expected on the link.
#
# [[routes]]
# prefix = "0.0.0.0/0"
# interface = "eth0"
# next_hop = "10.0.0.254"

# Policy routes send datagrams from the given sources out of a fixed
# interface, ignoring the route table.
#
# [[policy_routes]]
# priority = 0
# sources = "172.16.0.0/12,192.168.0.0/16"
# interface = "eth0"
# next_hop = "10.0.0.254"

# Datagrams of the listed protocols are held at the given point
# (prerouting|localin|forward|postrouting|localout) until they are dropped
# or reinjected through the management API. No protocols match everything.
#
# [[inspect]]
# priority = 10
# point = "forward"
# protocols = ["tcp"]
`
