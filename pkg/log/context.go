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

package log

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

type ctxKey struct{}

// CtxWith returns a copy of ctx carrying l. A logger already stored in ctx
// is replaced.
func CtxWith(ctx context.Context, l Logger) context.Context {
	if ctx == nil {
		panic("nil context")
	}
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromCtx returns the logger stored in ctx, or the root logger. If ctx holds
// a tracing span, the returned logger also records into the span. The result
// is never nil.
func FromCtx(ctx context.Context) Logger {
	if ctx == nil {
		return Root()
	}
	l, ok := ctx.Value(ctxKey{}).(Logger)
	if !ok {
		l = Root()
	}
	if _, isSpan := l.(Span); isSpan {
		return l
	}
	return withSpan(ctx, l)
}

// WithLabels adds labels to the logger in ctx and returns both the new
// context and the new logger.
func WithLabels(ctx context.Context, labels ...any) (context.Context, Logger) {
	l := FromCtx(ctx).New(labels...)
	return CtxWith(ctx, l), l
}

func withSpan(ctx context.Context, l Logger) Logger {
	span := opentracing.SpanFromContext(ctx)
	if span == nil {
		return l
	}
	// The Span wrapper adds one frame to every call.
	if o, ok := l.(interface{ WithOptions(...zap.Option) Logger }); ok {
		l = o.WithOptions(zap.AddCallerSkip(1))
	}
	return Span{Logger: l, Span: span}
}

// Span is a Logger that also writes every entry into a tracing span.
type Span struct {
	Logger
	Span opentracing.Span
}

func (s Span) New(ctx ...any) Logger {
	return Span{Logger: s.Logger.New(ctx...), Span: s.Span}
}

func (s Span) Debug(msg string, ctx ...any) {
	s.Logger.Debug(msg, ctx...)
	s.spanLog("debug", msg, ctx)
}

func (s Span) Info(msg string, ctx ...any) {
	s.Logger.Info(msg, ctx...)
	s.spanLog("info", msg, ctx)
}

func (s Span) Error(msg string, ctx ...any) {
	s.Logger.Error(msg, ctx...)
	s.spanLog("error", msg, ctx)
}

func (s Span) spanLog(lvl, msg string, ctx []any) {
	kv := append([]any{"level", lvl, "event", msg}, ctx...)
	s.Span.LogKV(kv...)
}
