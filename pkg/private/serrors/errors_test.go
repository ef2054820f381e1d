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

package serrors_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gnprouter/gnp/pkg/private/serrors"
)

type timeoutErr struct {
	timeout   bool
	temporary bool
}

func (e *timeoutErr) Error() string   { return "timeout err" }
func (e *timeoutErr) Timeout() bool   { return e.timeout }
func (e *timeoutErr) Temporary() bool { return e.temporary }

func TestIsTimeout(t *testing.T) {
	assert.False(t, serrors.IsTimeout(serrors.New("plain")))
	assert.True(t, serrors.IsTimeout(&timeoutErr{timeout: true}))
	assert.True(t, serrors.IsTimeout(serrors.Wrap("outer", &timeoutErr{timeout: true})))
	assert.False(t, serrors.IsTemporary(serrors.Wrap("outer", &timeoutErr{timeout: true})))
	assert.True(t, serrors.IsTemporary(serrors.Wrap("outer", &timeoutErr{temporary: true})))
}

func TestNew(t *testing.T) {
	err1 := serrors.New("err msg", "k", "v")
	err2 := serrors.New("err msg", "k", "v")
	assert.ErrorIs(t, err1, err1)
	assert.False(t, errors.Is(err1, err2))
	assert.Equal(t, "err msg {k=v}", err1.Error())
}

func TestWrap(t *testing.T) {
	cause := errors.New("cause")
	err := serrors.Wrap("outer", cause, "b", 2, "a", 1)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "outer {a=1; b=2}: cause", err.Error())

	var st interface{ StackTrace() serrors.StackTrace }
	require.True(t, errors.As(err, &st))
	assert.NotEmpty(t, st.StackTrace())
}

func TestWrapNoStack(t *testing.T) {
	sentinel := errors.New("sentinel")
	err := serrors.WrapNoStack("outer", sentinel)
	assert.ErrorIs(t, err, sentinel)
	var st interface{ StackTrace() serrors.StackTrace }
	require.True(t, errors.As(err, &st))
	assert.Nil(t, st.StackTrace())
}

func TestJoin(t *testing.T) {
	base := errors.New("base")
	cause := errors.New("cause")

	t.Run("base and cause", func(t *testing.T) {
		err := serrors.JoinNoStack(base, cause, "id", 7)
		assert.ErrorIs(t, err, base)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "base {id=7}: cause", err.Error())
	})
	t.Run("base only", func(t *testing.T) {
		err := serrors.Join(base, nil, "id", 7)
		assert.ErrorIs(t, err, base)
		assert.False(t, errors.Is(err, cause))
	})
	t.Run("cause only", func(t *testing.T) {
		err := serrors.Join(nil, cause)
		assert.ErrorIs(t, err, cause)
	})
	t.Run("nothing", func(t *testing.T) {
		assert.NoError(t, serrors.Join(nil, nil))
	})
}

func TestList(t *testing.T) {
	sentinel := errors.New("sentinel")
	var l serrors.List
	assert.NoError(t, l.ToError())

	l = append(l, serrors.New("first"), serrors.JoinNoStack(sentinel, nil))
	err := l.ToError()
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, "[ first; sentinel ]", err.Error())
}

func TestEncoding(t *testing.T) {
	var buf bytes.Buffer
	logger := zap.New(zapcore.NewCore(
		zapcore.NewJSONEncoder(zapcore.EncoderConfig{MessageKey: "msg"}),
		zapcore.AddSync(&buf),
		zapcore.DebugLevel,
	))
	logger.Info("failed", zap.Any("error", serrors.WrapNoStack("outer",
		serrors.WrapNoStack("inner", nil, "k1", 1), "k0", "v0")))
	require.NoError(t, logger.Sync())

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	errObj, ok := got["error"].(map[string]any)
	require.True(t, ok, "error is logged as object: %s", buf.String())
	assert.Equal(t, "outer", errObj["msg"])
	assert.Equal(t, "v0", errObj["k0"])
	cause, ok := errObj["cause"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "inner", cause["msg"])
	assert.EqualValues(t, 1, cause["k1"])
}
