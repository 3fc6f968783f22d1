/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package notify_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/enumx/log"
	"dirpx.dev/enumx/notify"
)

func TestPublish_OrderAndSynchrony(t *testing.T) {
	n := notify.New(nil)
	var calls []string
	n.Subscribe(func() { calls = append(calls, "a") })
	n.Subscribe(func() { calls = append(calls, "b") })
	n.Subscribe(nil)
	require.Equal(t, 2, n.Len())

	require.NoError(t, n.Publish())
	assert.Equal(t, []string{"a", "b"}, calls, "subscribers run before Publish returns")
}

func TestSubscribe_Cancel(t *testing.T) {
	n := notify.New(nil)
	var calls []string
	cancelA := n.Subscribe(func() { calls = append(calls, "a") })
	n.Subscribe(func() { calls = append(calls, "b") })

	cancelA()
	cancelA()
	require.NoError(t, n.Publish())
	assert.Equal(t, []string{"b"}, calls)
	assert.Equal(t, 1, n.Len())
}

func TestMutate_ErrorSkipsPublish(t *testing.T) {
	n := notify.New(nil)
	published := 0
	n.Subscribe(func() { published++ })

	boom := errors.New("rejected")
	err := n.Mutate(func() error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, published)
	assert.False(t, n.Busy())

	require.NoError(t, n.Mutate(func() error { return nil }))
	assert.Equal(t, 1, published)
}

func TestReentrancy(t *testing.T) {
	t.Run("publish from subscriber", func(t *testing.T) {
		n := notify.New(nil)
		var inner error
		n.Subscribe(func() { inner = n.Publish() })

		require.NoError(t, n.Publish())
		assert.ErrorIs(t, inner, notify.ErrReentrant)
		assert.False(t, n.Busy())
	})

	t.Run("mutate from mutation", func(t *testing.T) {
		n := notify.New(nil)
		var inner error
		err := n.Mutate(func() error {
			assert.True(t, n.Busy())
			inner = n.Mutate(func() error { return nil })
			return nil
		})
		require.NoError(t, err, "outer mutation still completes")
		assert.ErrorIs(t, inner, notify.ErrReentrant)
	})
}

func TestSubscriberPanicIsLogged(t *testing.T) {
	buffer := new(bytes.Buffer)
	n := notify.New(log.NewZap(log.InfoLevel, buffer))
	after := false
	n.Subscribe(func() { panic("subscriber bug") })
	n.Subscribe(func() { after = true })

	require.NoError(t, n.Publish())
	assert.True(t, after, "later subscribers still run")
	assert.Contains(t, buffer.String(), "subscriber bug")
	assert.False(t, n.Busy())
}
