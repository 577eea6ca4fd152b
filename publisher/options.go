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

package publisher

import (
	"log/slog"
	"time"

	"github.com/blinklabs-io/helm/store"
)

// PublisherOptionFunc is a type that represents functions that modify the Publisher config
type PublisherOptionFunc func(*Publisher)

// WithJobStore specifies where job bookkeeping is kept. The default is a new MemoryStore
func WithJobStore(s store.Store) PublisherOptionFunc {
	return func(p *Publisher) {
		p.jobs = s
	}
}

func WithLogger(logger *slog.Logger) PublisherOptionFunc {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func WithClock(clock func() time.Time) PublisherOptionFunc {
	return func(p *Publisher) {
		p.clock = clock
	}
}

// WithPollInterval specifies how often Start polls for due content
func WithPollInterval(interval time.Duration) PublisherOptionFunc {
	return func(p *Publisher) {
		p.interval = interval
	}
}

// WithMaxAttempts specifies how many failed posts mark a job as failed
func WithMaxAttempts(maxAttempts int) PublisherOptionFunc {
	return func(p *Publisher) {
		p.maxAttempts = maxAttempts
	}
}

// WithBreakerTimeout specifies how long the circuit breaker stays open
// after tripping
func WithBreakerTimeout(timeout time.Duration) PublisherOptionFunc {
	return func(p *Publisher) {
		p.breakerTimeout = timeout
	}
}
