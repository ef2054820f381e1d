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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	libconfig "github.com/gnprouter/gnp/private/config"
	"github.com/gnprouter/gnp/router/config"
)

func TestSampleCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newCommand("router")
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"sample"})
	require.NoError(t, cmd.Execute())

	var cfg config.Config
	require.NoError(t, libconfig.Decode(out.Bytes(), &cfg))
	cfg.InitDefaults()
	assert.NoError(t, cfg.Validate())
}

func TestConfigFlagRequired(t *testing.T) {
	cmd := newCommand("router")
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(nil)
	assert.Error(t, cmd.Execute())
}

func TestShowCommand(t *testing.T) {
	file := filepath.Join(t.TempDir(), "router.toml")
	require.NoError(t, os.WriteFile(file, []byte(`
[[interfaces]]
id = 1
name = "eth0"
addrs = ["10.0.0.1"]

[[routes]]
prefix = "0.0.0.0/0"
interface = "eth0"
next_hop = "10.0.0.254"
`), 0o644))

	var out bytes.Buffer
	cmd := newCommand("router")
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"show", "--config", file})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "eth0")
	assert.Contains(t, out.String(), "10.0.0.254")
}
