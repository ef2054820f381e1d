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

// Package serrors provides errors that carry key/value context and,
// optionally, the stack of the goroutine that created them.
//
// Errors built with New and Wrap are distinct values: errors.Is(a, b) only
// holds if a is b or wraps b. Join attaches context to an existing (usually
// sentinel) error so that errors.Is keeps matching the sentinel and, if
// given, the cause.
package serrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type field struct {
	key   string
	value any
}

// details is shared by the error implementations of this package.
type details struct {
	fields []field
	cause  error
	stack  *stack
}

func newDetails(cause error, withStack bool, errCtx []any) details {
	n := len(errCtx) / 2
	fields := make([]field, 0, n)
	for i := 0; i < n; i++ {
		fields = append(fields, field{key: fmt.Sprint(errCtx[2*i]), value: errCtx[2*i+1]})
	}
	sort.SliceStable(fields, func(a, b int) bool { return fields[a].key < fields[b].key })
	d := details{fields: fields, cause: cause}
	// A cause produced by this package already has the interesting stack.
	if withStack && !hasStack(cause) {
		d.stack = callers()
	}
	return d
}

func hasStack(err error) bool {
	if err == nil {
		return false
	}
	var st interface{ StackTrace() StackTrace }
	return errors.As(err, &st) && st.StackTrace() != nil
}

func (d details) suffix() string {
	var sb strings.Builder
	if len(d.fields) > 0 {
		sb.WriteString(" {")
		for i, f := range d.fields {
			if i > 0 {
				sb.WriteString("; ")
			}
			fmt.Fprintf(&sb, "%s=%v", f.key, f.value)
		}
		sb.WriteString("}")
	}
	if d.cause != nil {
		sb.WriteString(": ")
		sb.WriteString(d.cause.Error())
	}
	return sb.String()
}

func (d details) marshal(enc zapcore.ObjectEncoder) error {
	if d.cause != nil {
		if m, ok := d.cause.(zapcore.ObjectMarshaler); ok {
			if err := enc.AddObject("cause", m); err != nil {
				return err
			}
		} else {
			enc.AddString("cause", d.cause.Error())
		}
	}
	if d.stack != nil {
		if err := enc.AddArray("stacktrace", d.stack); err != nil {
			return err
		}
	}
	for _, f := range d.fields {
		zap.Any(f.key, f.value).AddTo(enc)
	}
	return nil
}

// StackTrace returns the stack recorded when the error was created, if any.
func (d details) StackTrace() StackTrace {
	if d.stack == nil {
		return nil
	}
	return d.stack.StackTrace()
}

// msgError is an error identified by its message.
type msgError struct {
	details
	msg string
}

func (e *msgError) Error() string {
	return e.msg + e.details.suffix()
}

func (e *msgError) Unwrap() error {
	return e.cause
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (e *msgError) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("msg", e.msg)
	return e.details.marshal(enc)
}

// joinedError decorates a base error with context and an optional cause.
type joinedError struct {
	details
	base error
}

func (e *joinedError) Error() string {
	return e.base.Error() + e.details.suffix()
}

func (e *joinedError) Unwrap() []error {
	if e.cause == nil {
		return []error{e.base}
	}
	return []error{e.base, e.cause}
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (e *joinedError) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("msg", e.base.Error())
	return e.details.marshal(enc)
}

// New creates an error with the given message and context. A stack trace is
// recorded. Sentinel errors should use errors.New instead.
func New(msg string, errCtx ...any) error {
	return &msgError{details: newDetails(nil, true, errCtx), msg: msg}
}

// Wrap creates an error with the given message that wraps cause. A stack
// trace is recorded unless cause already carries one.
func Wrap(msg string, cause error, errCtx ...any) error {
	return &msgError{details: newDetails(cause, true, errCtx), msg: msg}
}

// WrapNoStack is like Wrap but never records a stack trace.
func WrapNoStack(msg string, cause error, errCtx ...any) error {
	return &msgError{details: newDetails(cause, false, errCtx), msg: msg}
}

// Join attaches context and an optional cause to err. The result matches both
// err and cause with errors.Is. Join returns nil if err and cause are nil.
func Join(err, cause error, errCtx ...any) error {
	return join(err, cause, true, errCtx)
}

// JoinNoStack is like Join but never records a stack trace. It is the
// variant to use on the datagram path.
func JoinNoStack(err, cause error, errCtx ...any) error {
	return join(err, cause, false, errCtx)
}

func join(err, cause error, withStack bool, errCtx []any) error {
	if err == nil && cause == nil {
		return nil
	}
	if err == nil {
		err, cause = cause, nil
	}
	return &joinedError{details: newDetails(cause, withStack, errCtx), base: err}
}

// IsTimeout reports whether err is or is caused by a timeout error.
func IsTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}

// IsTemporary reports whether err is or is caused by a temporary error.
func IsTemporary(err error) bool {
	var t interface{ Temporary() bool }
	return errors.As(err, &t) && t.Temporary()
}

// List is a slice of errors.
type List []error

// Error implements the error interface.
func (l List) Error() string {
	s := make([]string, 0, len(l))
	for _, err := range l {
		s = append(s, err.Error())
	}
	return fmt.Sprintf("[ %s ]", strings.Join(s, "; "))
}

// Unwrap makes errors.Is and errors.As consider every element.
func (l List) Unwrap() []error {
	return l
}

// ToError returns nil for an empty list and the list otherwise.
func (l List) ToError() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// MarshalLogArray implements zapcore.ArrayMarshaler.
func (l List) MarshalLogArray(ae zapcore.ArrayEncoder) error {
	for _, err := range l {
		if m, ok := err.(zapcore.ObjectMarshaler); ok {
			if err := ae.AppendObject(m); err != nil {
				return err
			}
			continue
		}
		ae.AppendString(err.Error())
	}
	return nil
}
