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

package config_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnprouter/gnp/pkg/private/serrors"
	"github.com/gnprouter/gnp/private/config"
)

type block struct {
	Size int    `toml:"size,omitempty"`
	Name string `toml:"name,omitempty"`
}

func (b *block) InitDefaults() {
	if b.Size == 0 {
		b.Size = 8
	}
}

func (b *block) Validate() error {
	if b.Size < 0 {
		return serrors.New("negative size", "size", b.Size)
	}
	return nil
}

func (b *block) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, "# Size of the thing.\nsize = 8\n")
}

func (b *block) ConfigName() string {
	return "block"
}

type outer struct {
	Block block `toml:"block,omitempty"`
}

func (o *outer) InitDefaults()  { o.Block.InitDefaults() }
func (o *outer) Validate() error { return o.Block.Validate() }
func (o *outer) Sample(dst io.Writer, path config.Path, ctx config.CtxMap) {
	config.WriteSample(dst, path, ctx, &o.Block)
}

func TestPathExtend(t *testing.T) {
	base := config.Path{"a"}
	p1 := base.Extend("b")
	p2 := base.Extend("c")
	assert.Equal(t, config.Path{"a", "b"}, p1)
	assert.Equal(t, config.Path{"a", "c"}, p2)
	assert.Equal(t, config.Path{"a"}, base)
}

func TestWriteSample(t *testing.T) {
	var buf bytes.Buffer
	var o outer
	o.Sample(&buf, config.Path{"top"}, nil)
	assert.Equal(t, "\n[top.block]\n    # Size of the thing.\n    size = 8\n", buf.String())

	buf.Reset()
	o.Sample(&buf, nil, nil)
	var parsed outer
	require.NoError(t, config.Decode(buf.Bytes(), &parsed))
	o.InitDefaults()
	assert.Equal(t, o, parsed)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	var o outer
	err := config.Decode([]byte("[block]\nsize = 3\nbogus = 1\n"), &o)
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
		return p
	}

	t.Run("defaults applied", func(t *testing.T) {
		var o outer
		require.NoError(t, config.Load(write("ok.toml", "[block]\nname = \"x\"\n"), &o))
		assert.Equal(t, block{Size: 8, Name: "x"}, o.Block)
	})
	t.Run("validation error", func(t *testing.T) {
		var o outer
		assert.Error(t, config.Load(write("bad.toml", "[block]\nsize = -1\n"), &o))
	})
	t.Run("missing file", func(t *testing.T) {
		var o outer
		assert.Error(t, config.Load(filepath.Join(dir, "nope.toml"), &o))
	})
}

func TestValidateAll(t *testing.T) {
	good := &block{Size: 1}
	bad := &block{Size: -1}
	assert.NoError(t, config.ValidateAll(good, config.NoValidator{}))
	assert.Error(t, config.ValidateAll(good, bad))
}
