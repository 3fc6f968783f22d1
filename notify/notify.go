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

package notify

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/atomic"

	"dirpx.dev/enumx/log"
)

// ErrReentrant is returned when a mutation or publish starts while another
// one is still running on the same Notifier, typically from inside a hook
// or subscriber.
var ErrReentrant = errors.New("enumx(notify): re-entrant mutation")

// Notifier is a synchronous observer list with re-entrancy detection.
//
// Mutations run one at a time: Mutate marks the notifier busy, runs the
// mutation, then calls every subscriber in subscription order on the
// caller's goroutine. Any Mutate or Publish issued while busy fails with
// ErrReentrant instead of recursing. Callers are expected to mutate from a
// single goroutine; a second goroutine racing a mutation is reported the same
// way.
type Notifier struct {
	busy   *atomic.Bool
	logger log.Logger

	mu   sync.Mutex
	next uint64
	subs []subscriber
}

type subscriber struct {
	id uint64
	fn func()
}

// New creates a Notifier. Subscriber panics are recovered and logged to logger.
func New(logger log.Logger) *Notifier {
	return &Notifier{
		busy:   atomic.NewBool(false),
		logger: log.OrDiscard(logger),
	}
}

// Subscribe appends fn to the subscriber list and returns a function that
// removes it. Nil fn is ignored.
func (n *Notifier) Subscribe(fn func()) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	n.mu.Lock()
	n.next++
	id := n.next
	n.subs = append(n.subs, subscriber{id: id, fn: fn})
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		for i, s := range n.subs {
			if s.id == id {
				n.subs = append(n.subs[:i:i], n.subs[i+1:]...)
				return
			}
		}
	}
}

// Len returns the number of subscribers.
func (n *Notifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs)
}

// Busy reports whether a mutation or publish is running.
func (n *Notifier) Busy() bool {
	return n.busy.Load()
}

// Publish invokes every subscriber synchronously, in subscription order.
func (n *Notifier) Publish() error {
	return n.Mutate(func() error { return nil })
}

// Mutate runs fn exclusively and, if it succeeds, publishes to subscribers
// before releasing. An error from fn is returned and nothing is published.
func (n *Notifier) Mutate(fn func() error) error {
	if !n.busy.CompareAndSwap(false, true) {
		return ErrReentrant
	}
	defer n.busy.Store(false)

	if err := fn(); err != nil {
		return err
	}

	n.mu.Lock()
	subs := make([]subscriber, len(n.subs))
	copy(subs, n.subs)
	n.mu.Unlock()

	for _, s := range subs {
		n.call(s)
	}
	return nil
}

// call runs one subscriber, logging a panic instead of propagating it.
func (n *Notifier) call(s subscriber) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.With("subscriber", int64(s.id)).Error(fmt.Sprintf("subscriber panicked: %v", r))
		}
	}()
	s.fn()
}
