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

// Package publisher turns approved, due content into outbound posts.
//
// The publisher sits outside the engine. It reads approved records through
// the engine's read path, keeps its own scheduled/published/failed
// bookkeeping in a separate store and never writes engine records.
package publisher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/blinklabs-io/helm/ledger/common"
	"github.com/blinklabs-io/helm/ledger/content"
	"github.com/blinklabs-io/helm/ledger/governance"
	"github.com/blinklabs-io/helm/store"
	"github.com/blinklabs-io/helm/utils"
	"github.com/sony/gobreaker"
)

const (
	DefaultPollInterval   = 30 * time.Second
	DefaultMaxAttempts    = 5
	DefaultBreakerTimeout = 60 * time.Second
)

// ContentSource is the read path the publisher polls
type ContentSource interface {
	ContentsByStatus(status content.Status) ([]content.Content, error)
	IdentityAt(addr common.Address) (governance.Identity, error)
}

// PassResult summarizes one polling pass
type PassResult struct {
	Published int
	Retrying  int
	Failed    int
	NotDue    int
}

type Publisher struct {
	source         ContentSource
	texts          TextSource
	poster         Poster
	jobs           store.Store
	logger         *slog.Logger
	clock          func() time.Time
	interval       time.Duration
	maxAttempts    int
	breakerTimeout time.Duration
	breaker        *gobreaker.CircuitBreaker
	done           *utils.DoneSignal
	cancel         context.CancelFunc
	waitGroup      sync.WaitGroup
	startOnce      sync.Once
	// Serializes passes
	passMutex sync.Mutex
}

func New(
	source ContentSource,
	texts TextSource,
	poster Poster,
	options ...PublisherOptionFunc,
) (*Publisher, error) {
	if source == nil || texts == nil || poster == nil {
		return nil, errors.New("publisher needs a content source, a text source and a poster")
	}
	p := &Publisher{
		source:         source,
		texts:          texts,
		poster:         poster,
		interval:       DefaultPollInterval,
		maxAttempts:    DefaultMaxAttempts,
		breakerTimeout: DefaultBreakerTimeout,
		done:           utils.NewDoneSignal(),
	}
	for _, option := range options {
		option(p)
	}
	if p.jobs == nil {
		p.jobs = store.NewMemoryStore()
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	if p.clock == nil {
		p.clock = time.Now
	}
	if p.maxAttempts < 1 {
		return nil, fmt.Errorf("max attempts must be at least 1, got %d", p.maxAttempts)
	}
	p.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "poster",
		Timeout: p.breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			p.logger.Warn(
				"circuit breaker state changed",
				"component", "publisher",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})
	return p, nil
}

// Start polls in the background until Stop is called
func (p *Publisher) Start() {
	p.startOnce.Do(func() {
		ctx, cancel := context.WithCancel(context.Background())
		p.cancel = cancel
		p.waitGroup.Add(1)
		go p.loop(ctx)
	})
}

// Stop ends the polling loop and waits for an in-progress pass to finish.
// An in-flight post is canceled.
func (p *Publisher) Stop() {
	p.done.Close()
	p.startOnce.Do(func() {})
	if p.cancel != nil {
		p.cancel()
	}
	p.waitGroup.Wait()
}

func (p *Publisher) loop(ctx context.Context) {
	defer p.waitGroup.Done()
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		if _, err := p.RunOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
			p.logger.Error(
				"publish pass failed",
				"component", "publisher",
				"error", err,
			)
		}
		select {
		case <-p.done.Done():
			return
		case <-ticker.C:
		}
	}
}

// Job returns the bookkeeping for a content record
func (p *Publisher) Job(addr common.Address) (Job, bool, error) {
	return loadJob(p.jobs, addr)
}

// RunOnce makes a single pass over approved content
func (p *Publisher) RunOnce(ctx context.Context) (PassResult, error) {
	p.passMutex.Lock()
	defer p.passMutex.Unlock()
	var res PassResult
	approved, err := p.source.ContentsByStatus(content.StatusApproved)
	if err != nil {
		return res, fmt.Errorf("failed to list approved content: %w", err)
	}
	for _, c := range approved {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		result, err := p.process(ctx, c)
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				// nothing will get through until the breaker half-opens
				p.logger.Warn(
					"poster unavailable, ending pass",
					"component", "publisher",
				)
				return res, nil
			}
			return res, err
		}
		switch result {
		case outcomePublished:
			res.Published++
		case outcomeFailed:
			res.Failed++
		case outcomeRetry:
			res.Retrying++
		case outcomeNotDue:
			res.NotDue++
		}
	}
	return res, nil
}

type outcome int

const (
	outcomeSkipped outcome = iota
	outcomeNotDue
	outcomePublished
	outcomeRetry
	outcomeFailed
)

func (p *Publisher) process(ctx context.Context, c content.Content) (outcome, error) {
	addr := c.Address()
	now := p.clock().Unix()
	job, found, err := loadJob(p.jobs, addr)
	if err != nil {
		return outcomeSkipped, err
	}
	if found && job.Done() {
		return outcomeSkipped, nil
	}
	if !found {
		job = newJob(addr, now)
	}
	identity, err := p.source.IdentityAt(c.Identity)
	if err != nil {
		return outcomeSkipped, err
	}
	ready, err := content.ReadyForPublish(c, identity, now)
	if err != nil {
		// quorum raised after approval; the record waits for an admin
		p.logger.Debug(
			"content not publishable",
			"component", "publisher",
			"content", addr.String(),
			"error", err,
		)
		return outcomeSkipped, nil
	}
	if !ready {
		if !found {
			if err := saveJob(p.jobs, job); err != nil {
				return outcomeSkipped, err
			}
		}
		return outcomeNotDue, nil
	}
	remoteId, postErr := p.attempt(ctx, c, identity)
	if errors.Is(postErr, gobreaker.ErrOpenState) || errors.Is(postErr, gobreaker.ErrTooManyRequests) {
		return outcomeSkipped, gobreaker.ErrOpenState
	}
	if postErr != nil && ctx.Err() != nil {
		// shutting down; the attempt does not count
		return outcomeSkipped, ctx.Err()
	}
	job.Attempts++
	job.UpdatedAt = now
	ret := outcomePublished
	if postErr == nil {
		job.Status = JobStatusPublished
		job.RemoteId = remoteId
		job.LastError = ""
		publishAttempts.WithLabelValues("success").Inc()
		p.logger.Info(
			"content published",
			"component", "publisher",
			"content", addr.String(),
			"job", job.Id,
			"remote_id", remoteId,
		)
	} else {
		job.LastError = postErr.Error()
		publishAttempts.WithLabelValues("failure").Inc()
		ret = outcomeRetry
		if job.Attempts >= p.maxAttempts {
			job.Status = JobStatusFailed
			ret = outcomeFailed
		}
		p.logger.Warn(
			"publish attempt failed",
			"component", "publisher",
			"content", addr.String(),
			"job", job.Id,
			"attempt", job.Attempts,
			"error", postErr,
		)
	}
	if job.Done() {
		jobsFinished.WithLabelValues(job.Status.String()).Inc()
	}
	if err := saveJob(p.jobs, job); err != nil {
		return outcomeSkipped, err
	}
	return ret, nil
}

func (p *Publisher) attempt(
	ctx context.Context,
	c content.Content,
	identity governance.Identity,
) (string, error) {
	tweets, err := p.texts.Texts(ctx, c.Hash, c.Kind)
	if err != nil {
		return "", err
	}
	ret, err := p.breaker.Execute(func() (any, error) {
		return p.poster.Post(ctx, Post{
			Content:    c.Address(),
			ExternalId: identity.ExternalId,
			Handle:     identity.ExternalHandle,
			Tweets:     tweets,
		})
	})
	if err != nil {
		return "", err
	}
	return ret.(string), nil
}
