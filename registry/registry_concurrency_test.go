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

package registry_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/enumx/apis"
	"dirpx.dev/enumx/registry"
)

// Readers run alongside a single mutating goroutine and must always observe
// a complete View: the base entries followed by a prefix of the custom ones.
func TestConcurrentReaders(t *testing.T) {
	r := newReady(t)
	const n = 200

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				v, err := r.Snapshot()
				if !assert.NoError(t, err) {
					return
				}
				vals := v.Values()
				for i, val := range vals {
					if !assert.Equal(t, apis.Value(i), val) {
						return
					}
				}
			}
		}()
	}

	for i := range n {
		v := apis.Value(3 + i)
		require.NoError(t, r.Register(custom(v, "mod.a", v.String())))
	}
	close(stop)
	wg.Wait()

	assert.Len(t, r.AllEffective(), 3+n)
}

// Hook labels are readable while another goroutine adds hooks.
func TestConcurrentHookLabels(t *testing.T) {
	r := newReady(t)
	const n = 50

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				labels := r.Hooks()
				if !assert.LessOrEqual(t, len(labels), n) {
					return
				}
			}
		}()
	}

	for range n {
		require.NoError(t, r.AddModifyHook(func(in []registry.Entry[boon]) []registry.Entry[boon] { return in }))
	}
	close(stop)
	wg.Wait()

	assert.Len(t, r.Hooks(), n)
}
