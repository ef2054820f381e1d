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

//go:build linux

package processmetrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnprouter/gnp/pkg/private/processmetrics"
)

func TestCollector(t *testing.T) {
	c, err := processmetrics.NewCollector()
	if err != nil {
		t.Skipf("scheduler statistics unavailable: %s", err)
	}
	assert.Equal(t, 3, testutil.CollectAndCount(c))
}

func TestInit(t *testing.T) {
	if _, err := processmetrics.NewCollector(); err != nil {
		t.Skipf("scheduler statistics unavailable: %s", err)
	}
	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, processmetrics.Init(reg))
	assert.Error(t, processmetrics.Init(reg), "registered twice")
}
