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

package log_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/mocktracer"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnprouter/gnp/pkg/log"
	"github.com/gnprouter/gnp/pkg/log/testlog"
	"github.com/gnprouter/gnp/private/config"
)

func TestParseLevel(t *testing.T) {
	for s, want := range map[string]log.Level{
		"debug": log.DebugLevel,
		"INFO":  log.InfoLevel,
		"error": log.ErrorLevel,
	} {
		got, err := log.ParseLevel(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, got, s)
	}
	_, err := log.ParseLevel("verbose")
	assert.Error(t, err)
}

func TestConfigSample(t *testing.T) {
	var sample bytes.Buffer
	var cfg log.Config
	cfg.Sample(&sample, nil, nil)

	var parsed log.Config
	require.NoError(t, config.Decode(sample.Bytes(), &parsed))
	cfg.InitDefaults()
	assert.Equal(t, cfg, parsed)
	assert.NoError(t, parsed.Validate())
}

func TestConfigValidate(t *testing.T) {
	cfg := log.Config{Console: log.ConsoleConfig{Format: "xml"}}
	cfg.InitDefaults()
	assert.Error(t, cfg.Validate())

	cfg = log.Config{Console: log.ConsoleConfig{StacktraceLevel: "sometimes"}}
	cfg.InitDefaults()
	assert.Error(t, cfg.Validate())
}

func TestConfigRoundTrip(t *testing.T) {
	raw, err := toml.Marshal(log.Config{Console: log.ConsoleConfig{Level: "debug"}})
	require.NoError(t, err)
	var cfg log.Config
	require.NoError(t, config.Decode(raw, &cfg))
	assert.Equal(t, "debug", cfg.Console.Level)
}

func TestFromCtx(t *testing.T) {
	t.Run("nil context yields root", func(t *testing.T) {
		//nolint:staticcheck // nil context is part of the contract.
		assert.NotNil(t, log.FromCtx(nil))
	})
	t.Run("stored logger is returned", func(t *testing.T) {
		l := testlog.NewLogger(t)
		ctx := log.CtxWith(context.Background(), l)
		assert.Equal(t, l, log.FromCtx(ctx))
	})
	t.Run("span records log entries", func(t *testing.T) {
		tracer := mocktracer.New()
		span := tracer.StartSpan("op")
		ctx := opentracing.ContextWithSpan(context.Background(), span)
		ctx = log.CtxWith(ctx, testlog.NewLogger(t))

		ctx, l := log.WithLabels(ctx, "component", "test")
		l.Info("hello", "k", "v")
		_, isSpan := log.FromCtx(ctx).(log.Span)
		assert.True(t, isSpan)

		span.Finish()
		finished := tracer.FinishedSpans()
		require.Len(t, finished, 1)
		require.Len(t, finished[0].Logs(), 1)
	})
}
