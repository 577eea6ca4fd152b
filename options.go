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

package helm

import (
	"log/slog"
	"time"

	"github.com/blinklabs-io/helm/ledger/common"
	"github.com/blinklabs-io/helm/store"
	"golang.org/x/time/rate"
)

// EngineOptionFunc is a type that represents functions that modify the Engine config
type EngineOptionFunc func(*Engine)

// WithStore specifies the account store. The default is a new MemoryStore
func WithStore(s store.Store) EngineOptionFunc {
	return func(e *Engine) {
		e.store = s
	}
}

func WithLogger(logger *slog.Logger) EngineOptionFunc {
	return func(e *Engine) {
		e.logger = logger
	}
}

func WithParams(params common.Params) EngineOptionFunc {
	return func(e *Engine) {
		e.params = params
	}
}

// WithClock specifies the time source used to stamp records
func WithClock(clock func() time.Time) EngineOptionFunc {
	return func(e *Engine) {
		e.clock = clock
	}
}

// WithRateLimit limits how many instructions each signer may execute. Limits
// are disabled by default.
func WithRateLimit(limit rate.Limit, burst int) EngineOptionFunc {
	return func(e *Engine) {
		e.rateLimit = limit
		e.rateBurst = burst
	}
}
