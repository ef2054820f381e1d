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

package router_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"

	"github.com/gnprouter/gnp/router"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	loop := router.NewLoop(4)
	var g errgroup.Group
	g.Go(func() error { return loop.Run(ctx) })

	var order []int
	for i := 0; i < 10; i++ {
		require.NoError(t, loop.Submit(func() { order = append(order, i) }))
	}
	var seen []int
	require.NoError(t, loop.Do(ctx, func() { seen = append(seen, order...) }))
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, seen)

	assert.Error(t, loop.Run(ctx), "second run")

	cancel()
	require.NoError(t, g.Wait())
	assert.ErrorIs(t, loop.Submit(func() {}), router.ErrLoopClosed)
	assert.ErrorIs(t, loop.Do(context.Background(), func() {}), router.ErrLoopClosed)
}

func TestLoopDoContext(t *testing.T) {
	// Nobody runs the loop, so the event is never picked up.
	loop := router.NewLoop(0)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := loop.Do(ctx, func() {})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
