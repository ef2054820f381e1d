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
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/gnprouter/gnp/pkg/log"
)

// ErrLoopClosed is returned for events submitted to a stopped Loop.
var ErrLoopClosed = errors.New("event loop closed")

// Loop runs events one after the other on a single goroutine. All calls into
// a Router go through its Loop, which makes the Router single-threaded.
type Loop struct {
	events  chan func()
	done    chan struct{}
	stop    sync.Once
	running atomic.Bool
}

// NewLoop creates a loop buffering up to size pending events.
func NewLoop(size int) *Loop {
	return &Loop{
		events: make(chan func(), size),
		done:   make(chan struct{}),
	}
}

// Run processes events until ctx is done. A loop runs at most once. Events
// still buffered when the loop stops are discarded.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return errors.New("event loop already started")
	}
	defer log.HandlePanic()
	defer l.stop.Do(func() { close(l.done) })
	for {
		select {
		case <-ctx.Done():
			return nil
		case fn := <-l.events:
			fn()
		}
	}
}

// Submit queues fn without waiting for it to run. It blocks while the event
// buffer is full.
func (l *Loop) Submit(fn func()) error {
	select {
	case <-l.done:
		return ErrLoopClosed
	default:
	}
	select {
	case l.events <- fn:
		return nil
	case <-l.done:
		return ErrLoopClosed
	}
}

// Do runs fn on the loop and waits until it returned. If ctx ends first, fn
// may still run later.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	wrapped := func() {
		defer close(finished)
		fn()
	}
	select {
	case l.events <- wrapped:
	case <-l.done:
		return ErrLoopClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-finished:
		return nil
	case <-l.done:
		// The loop may have stopped before it got to fn.
		select {
		case <-finished:
			return nil
		default:
			return ErrLoopClosed
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}
