// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package utils provides small helpers shared by the engine, the publisher and the CLI
package utils

import (
	"sync"
)

// DoneSignal is a channel that is closed exactly once. Any number of
// goroutines may wait on it, and Close may be called from any of them.
type DoneSignal struct {
	ch   chan struct{}
	once sync.Once
}

func NewDoneSignal() *DoneSignal {
	return &DoneSignal{
		ch: make(chan struct{}),
	}
}

func (d *DoneSignal) Close() {
	d.once.Do(func() {
		close(d.ch)
	})
}

// Done returns the channel that is closed by Close
func (d *DoneSignal) Done() <-chan struct{} {
	return d.ch
}

// IsClosed reports whether Close has been called
func (d *DoneSignal) IsClosed() bool {
	select {
	case <-d.ch:
		return true
	default:
		return false
	}
}
