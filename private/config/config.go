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

// Package config holds the conventions every configuration block of the
// router follows.
//
// A block is a struct implementing Config. Loading a file is three steps:
// the TOML is decoded with unknown keys rejected, InitDefaults fills in
// every field the operator left empty, and Validate checks the result.
// Load performs all three.
//
// Each block also renders a commented sample of itself through Sample. The
// sample of a block must decode into a value equal to its defaults; every
// package that defines a block carries a test asserting that.
//
// Sample may panic on write errors.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/gnprouter/gnp/pkg/private/serrors"
)

// Config is implemented by every configuration block.
type Config interface {
	Sampler
	Validator
	Defaulter
}

// Validator checks a block after defaults were applied.
type Validator interface {
	Validate() error
}

// Defaulter fills in the fields that were not set explicitly.
type Defaulter interface {
	InitDefaults()
}

// Sampler writes a commented sample of a block to dst.
type Sampler interface {
	Sample(dst io.Writer, path Path, ctx CtxMap)
}

// TableSampler is a Sampler rendered as its own TOML table.
type TableSampler interface {
	Sampler
	// ConfigName is the table name of the block.
	ConfigName() string
}

// Path is the dotted table header of a block.
type Path []string

// Extend returns a copy of p with s appended.
func (p Path) Extend(s string) Path {
	c := make(Path, 0, len(p)+1)
	c = append(c, p...)
	return append(c, s)
}

// NoValidator can be embedded by blocks that accept any value.
type NoValidator struct{}

func (NoValidator) Validate() error {
	return nil
}

// NoDefaulter can be embedded by blocks without defaults.
type NoDefaulter struct{}

func (NoDefaulter) InitDefaults() {}

// ValidateAll runs the validators in order and returns the first failure.
func ValidateAll(validators ...Validator) error {
	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return serrors.Wrap("validating config", err, "type", fmt.Sprintf("%T", v))
		}
	}
	return nil
}

// InitAll applies the defaults of all blocks.
func InitAll(defaulters ...Defaulter) {
	for _, d := range defaulters {
		d.InitDefaults()
	}
}

// Decode decodes raw TOML into cfg. Keys without a matching field are an
// error.
func Decode(raw []byte, cfg any) error {
	return toml.NewDecoder(bytes.NewReader(raw)).DisallowUnknownFields().Decode(cfg)
}

// LoadFile decodes the TOML file into cfg.
func LoadFile(file string, cfg any) error {
	raw, err := os.ReadFile(file)
	if err != nil {
		return serrors.Wrap("reading config file", err, "file", file)
	}
	if err := Decode(raw, cfg); err != nil {
		return serrors.Wrap("decoding config file", err, "file", file)
	}
	return nil
}

// Load decodes the file into cfg, applies the defaults and validates the
// result.
func Load(file string, cfg Config) error {
	if err := LoadFile(file, cfg); err != nil {
		return err
	}
	cfg.InitDefaults()
	return ValidateAll(cfg)
}
