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

package testlog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnprouter/gnp/pkg/log/testlog"
)

func TestNewObserved(t *testing.T) {
	logger, logs := testlog.NewObserved(t)
	logger.New("component", "test").Debug("first", "n", 1)
	logger.Info("second", "dangling")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "first", entries[0].Message)
	assert.Equal(t, map[string]any{"component": "test", "n": int64(1)},
		entries[0].ContextMap())
	assert.Equal(t, map[string]any{"dangling": nil}, entries[1].ContextMap())
	assert.Equal(t, 1, logs.FilterMessage("second").Len())
}
