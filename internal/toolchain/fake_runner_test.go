// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"context"
	"sync"
)

// fakeRunner records invocations and answers them from a callback.
type fakeRunner struct {
	mu      sync.Mutex
	calls   []Invocation
	respond func(Invocation) *Result
}

func (f *fakeRunner) Run(_ context.Context, inv Invocation) *Result {
	f.mu.Lock()
	f.calls = append(f.calls, inv)
	f.mu.Unlock()
	if f.respond == nil {
		return &Result{}
	}
	return f.respond(inv)
}
