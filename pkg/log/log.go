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

// Package log is the structured logging facade used across the router. It
// is backed by zap. Log context is passed as alternating key/value pairs:
//
//	log.Info("Datagram queued", "id", dg.ID, "point", point)
package log

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gnprouter/gnp/pkg/private/serrors"
)

// Level is a log level.
type Level zapcore.Level

const (
	DebugLevel = Level(zapcore.DebugLevel)
	InfoLevel  = Level(zapcore.InfoLevel)
	ErrorLevel = Level(zapcore.ErrorLevel)
)

// ParseLevel parses one of "debug", "info" or "error".
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return DebugLevel, nil
	case "info":
		return InfoLevel, nil
	case "error":
		return ErrorLevel, nil
	}
	return 0, serrors.New("unknown log level", "level", s)
}

func (l Level) String() string {
	return zapcore.Level(l).String()
}

// Logger is the logging interface handed to components.
type Logger interface {
	New(ctx ...any) Logger
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	Enabled(lvl Level) bool
}

type logger struct {
	logger *zap.Logger
}

func (l *logger) New(ctx ...any) Logger {
	return &logger{logger: l.logger.With(convertCtx(ctx)...)}
}

func (l *logger) Debug(msg string, ctx ...any) {
	l.logger.Debug(msg, convertCtx(ctx)...)
}

func (l *logger) Info(msg string, ctx ...any) {
	l.logger.Info(msg, convertCtx(ctx)...)
}

func (l *logger) Error(msg string, ctx ...any) {
	l.logger.Error(msg, convertCtx(ctx)...)
}

func (l *logger) Enabled(lvl Level) bool {
	return l.logger.Core().Enabled(zapcore.Level(lvl))
}

// WithOptions clones the logger with extra zap options. Used to keep caller
// annotations correct for wrappers.
func (l *logger) WithOptions(opts ...zap.Option) Logger {
	return &logger{logger: l.logger.WithOptions(opts...)}
}

func convertCtx(ctx []any) []zap.Field {
	fields := make([]zap.Field, 0, len(ctx)/2)
	for i := 0; i+1 < len(ctx); i += 2 {
		key, ok := ctx[i].(string)
		if !ok {
			key = fmt.Sprint(ctx[i])
		}
		fields = append(fields, zap.Any(key, ctx[i+1]))
	}
	return fields
}

var (
	rootMtx sync.RWMutex
	root    Logger = &logger{logger: zap.NewNop()}
	level          = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

// Setup installs the root logger according to cfg. Until Setup is called
// the root logger discards everything.
func Setup(cfg Config) error {
	cfg.InitDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}
	lvl, err := ParseLevel(cfg.Console.Level)
	if err != nil {
		return err
	}
	level.SetLevel(zapcore.Level(lvl))

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if cfg.Console.Format == "json" {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		if isatty.IsTerminal(os.Stderr.Fd()) {
			encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		enc = zapcore.NewConsoleEncoder(encCfg)
	}
	core := zapcore.NewCore(enc, zapcore.Lock(os.Stderr), level)
	opts := []zap.Option{zap.AddCaller(), zap.AddCallerSkip(1)}
	if cfg.Console.StacktraceLevel != "none" {
		stLvl, err := ParseLevel(cfg.Console.StacktraceLevel)
		if err != nil {
			return err
		}
		opts = append(opts, zap.AddStacktrace(zapcore.Level(stLvl)))
	}
	zl := zap.New(core, opts...)
	zap.ReplaceGlobals(zl)
	SetRoot(&logger{logger: zl})
	return nil
}

// SetLevel changes the level of the root logger installed by Setup.
func SetLevel(lvl Level) {
	level.SetLevel(zapcore.Level(lvl))
}

// SetRoot replaces the root logger. Mostly useful in tests.
func SetRoot(l Logger) {
	rootMtx.Lock()
	defer rootMtx.Unlock()
	root = l
}

// Root returns the root logger. It is never nil.
func Root() Logger {
	rootMtx.RLock()
	defer rootMtx.RUnlock()
	return root
}

// New creates a child of the root logger with the given context.
func New(ctx ...any) Logger {
	return Root().New(ctx...)
}

// Debug logs at debug level on the root logger.
func Debug(msg string, ctx ...any) {
	Root().Debug(msg, ctx...)
}

// Info logs at info level on the root logger.
func Info(msg string, ctx ...any) {
	Root().Info(msg, ctx...)
}

// Error logs at error level on the root logger.
func Error(msg string, ctx ...any) {
	Root().Error(msg, ctx...)
}

// Flush writes out buffered log entries.
func Flush() {
	_ = zap.L().Sync()
}

// HandlePanic logs a panic with its stack and re-panics. Every goroutine
// should defer it first thing:
//
//	go func() {
//		defer log.HandlePanic()
//		...
//	}()
func HandlePanic() {
	if msg := recover(); msg != nil {
		Error("Panic", "msg", msg, "stack", string(debug.Stack()))
		Flush()
		panic(msg)
	}
}
