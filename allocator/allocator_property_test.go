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

package allocator_test

import (
	"testing"

	"pgregory.net/rapid"

	"dirpx.dev/enumx/allocator"
	"dirpx.dev/enumx/apis"
	"dirpx.dev/enumx/config"
)

// TestAllocatorProperties drives random Allocate sequences and checks that
// values are deterministic per key, unique per domain, and that NextFree only
// moves forward, and only on first-time keys.
func TestAllocatorProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		baseMax := apis.Value(rapid.IntRange(0, 1000).Draw(t, "baseMax"))
		a := allocator.New(config.DefaultConfig())
		if err := a.Define(apis.Domain{Name: "boon", BaseMax: baseMax}); err != nil {
			t.Fatalf("Define: %v", err)
		}

		namespaces := []string{"mod.alice", "mod.bob", "mod.carol"}
		seen := make(map[apis.Key]apis.Value)
		owners := make(map[apis.Value]apis.Key)
		prevNext, _ := a.NextFree("boon")

		numOps := rapid.IntRange(1, 200).Draw(t, "numOps")
		for i := 0; i < numOps; i++ {
			ns := rapid.SampledFrom(namespaces).Draw(t, "namespace")
			name := rapid.StringMatching(`[A-Za-z]{1,4}`).Draw(t, "name")
			key := apis.Key{Domain: "boon", Namespace: ns, Name: name}

			v, err := a.Allocate("boon", ns, name)
			if err != nil {
				t.Fatalf("Allocate(%s): %v", key, err)
			}
			next, ok := a.NextFree("boon")
			if !ok {
				t.Fatalf("NextFree unexpectedly exhausted")
			}

			if old, known := seen[key]; known {
				if old != v {
					t.Fatalf("key %s moved from %s to %s", key, old, v)
				}
				if next != prevNext {
					t.Fatalf("NextFree changed on repeated key: %s -> %s", prevNext, next)
				}
			} else {
				if other, taken := owners[v]; taken {
					t.Fatalf("value %s given to %s and %s", v, other, key)
				}
				if v <= baseMax {
					t.Fatalf("value %s collides with base range <= %s", v, baseMax)
				}
				if next != prevNext+1 {
					t.Fatalf("NextFree did not advance by one: %s -> %s", prevNext, next)
				}
				seen[key] = v
				owners[v] = key
			}
			if next < prevNext {
				t.Fatalf("NextFree decreased: %s -> %s", prevNext, next)
			}
			prevNext = next

			if k, ok := a.Resolve("boon", v); !ok || k != key {
				t.Fatalf("Resolve(%s) = %v,%v want %s", v, k, ok, key)
			}
		}

		if got := len(a.Values("boon")); got != len(seen) {
			t.Fatalf("Values has %d entries, want %d", got, len(seen))
		}
	})
}
