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

package router

import (
	"net/netip"
	"slices"

	"github.com/hashicorp/golang-lru/arc/v2"

	"github.com/gnprouter/gnp/pkg/gnp"
	"github.com/gnprouter/gnp/pkg/private/serrors"
)

// PendingDatagram is a datagram parked by a Queue verdict together with the
// routing state at the time it was parked.
type PendingDatagram struct {
	Datagram *gnp.Datagram
	// Point is where the datagram was queued. Processing resumes at the
	// stage after it.
	Point   HookType
	In      *Interface
	Out     *Interface
	NextHop netip.Addr
	// LocalOrigin is set for datagrams sent by the node itself.
	LocalOrigin bool

	seq uint64
}

// DatagramQueue holds pending datagrams keyed by datagram ID. Every entry
// leaves the queue exactly once, through Take. The queue remembers a bounded
// number of taken IDs to tell a second disposition apart from an ID that
// was never queued.
//
// DatagramQueue is not safe for concurrent use.
type DatagramQueue struct {
	capacity int
	pending  map[gnp.ID]*PendingDatagram
	disposed *arc.ARCCache[gnp.ID, struct{}]
	seq      uint64
}

// NewDatagramQueue creates a queue holding at most capacity datagrams and
// remembering the last history disposed IDs.
func NewDatagramQueue(capacity, history int) (*DatagramQueue, error) {
	if capacity <= 0 {
		return nil, serrors.New("queue capacity must be positive", "capacity", capacity)
	}
	disposed, err := arc.NewARC[gnp.ID, struct{}](history)
	if err != nil {
		return nil, serrors.Wrap("creating disposition history", err, "history", history)
	}
	return &DatagramQueue{
		capacity: capacity,
		pending:  make(map[gnp.ID]*PendingDatagram),
		disposed: disposed,
	}, nil
}

// Put parks p. A full queue rejects new entries with ErrQueueFull, the
// entries already queued are kept.
func (q *DatagramQueue) Put(p *PendingDatagram) error {
	id := p.Datagram.ID
	if _, ok := q.pending[id]; ok {
		return serrors.New("datagram already queued", "id", id)
	}
	if len(q.pending) >= q.capacity {
		return serrors.JoinNoStack(ErrQueueFull, nil, "id", id, "capacity", q.capacity)
	}
	q.seq++
	p.seq = q.seq
	q.pending[id] = p
	// An ID may be queued again after it was reinjected.
	q.disposed.Remove(id)
	return nil
}

// Take removes the entry for id and hands it to the caller. For an ID that
// was already taken, the error matches both ErrDoubleDisposition and
// ErrUnknownQueueIdentity. For an ID that was never queued, it matches
// ErrUnknownQueueIdentity only.
func (q *DatagramQueue) Take(id gnp.ID) (*PendingDatagram, error) {
	p, ok := q.pending[id]
	if !ok {
		if q.disposed.Contains(id) {
			return nil, serrors.Join(ErrDoubleDisposition, ErrUnknownQueueIdentity, "id", id)
		}
		return nil, serrors.Join(ErrUnknownQueueIdentity, nil, "id", id)
	}
	delete(q.pending, id)
	q.disposed.Add(id, struct{}{})
	return p, nil
}

// Len returns the number of pending datagrams.
func (q *DatagramQueue) Len() int {
	return len(q.pending)
}

// Capacity returns the maximum number of pending datagrams.
func (q *DatagramQueue) Capacity() int {
	return q.capacity
}

// List returns the pending datagrams in the order they were queued. The
// entries are owned by the queue and must not be modified.
func (q *DatagramQueue) List() []*PendingDatagram {
	out := make([]*PendingDatagram, 0, len(q.pending))
	for _, p := range q.pending {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b *PendingDatagram) int {
		switch {
		case a.seq < b.seq:
			return -1
		case a.seq > b.seq:
			return 1
		}
		return 0
	})
	return out
}
