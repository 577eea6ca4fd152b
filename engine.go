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

// Package helm implements a governed publishing engine: an identity delegates
// content approval to a set of admins under a quorum rule.
//
// The Engine is the dispatcher. It checks the signature on each Instruction,
// loads the accounts the instruction names, runs the matching pure transition
// from the ledger packages and commits every resulting write in a single
// atomic store batch. A rejected instruction leaves no trace.
package helm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/blinklabs-io/helm/ledger/common"
	"github.com/blinklabs-io/helm/store"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

// Signers with a limiter kept in memory at any one time
const limiterCacheSize = 4096

// Engine executes instructions against a store
type Engine struct {
	store     store.Store
	logger    *slog.Logger
	params    common.Params
	clock     func() time.Time
	rateLimit rate.Limit
	rateBurst int
	limiters  *lru.Cache[common.PublicKey, *rate.Limiter]
	// Serializes instructions, which gives them a total order
	mutex sync.Mutex
}

// Result describes a committed instruction
type Result struct {
	Op      Op
	Signer  common.PublicKey
	Touched []common.Address
}

// NewEngine returns a new Engine object with the specified options
func NewEngine(options ...EngineOptionFunc) (*Engine, error) {
	e := &Engine{
		params:    common.DefaultParams(),
		rateLimit: rate.Inf,
	}
	for _, option := range options {
		option(e)
	}
	if e.store == nil {
		e.store = store.NewMemoryStore()
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	if e.clock == nil {
		e.clock = time.Now
	}
	if err := e.params.Validate(); err != nil {
		return nil, err
	}
	if e.rateLimit != rate.Inf {
		limiters, err := lru.New[common.PublicKey, *rate.Limiter](limiterCacheSize)
		if err != nil {
			return nil, err
		}
		e.limiters = limiters
	}
	return e, nil
}

func (e *Engine) Params() common.Params {
	return e.params
}

// Close closes the underlying store
func (e *Engine) Close() error {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.store.Close()
}

// Execute runs a single instruction. On any error nothing is written.
func (e *Engine) Execute(ctx context.Context, ins Instruction) (*Result, error) {
	res, err := e.execute(ctx, ins)
	if err != nil {
		code := "none"
		if c, ok := common.CodeOf(err); ok {
			code = c.Name()
		}
		instructionsRejected.WithLabelValues(ins.Op.String(), code).Inc()
		e.logger.Debug(
			"instruction rejected",
			"component", "engine",
			"op", ins.Op.String(),
			"signer", ins.Signer.String(),
			"code", code,
			"error", err,
		)
		return nil, err
	}
	instructionsCommitted.WithLabelValues(ins.Op.String()).Inc()
	touched := make([]string, len(res.Touched))
	for i, addr := range res.Touched {
		touched[i] = addr.String()
	}
	e.logger.Debug(
		"instruction committed",
		"component", "engine",
		"op", ins.Op.String(),
		"signer", ins.Signer.String(),
		"touched", touched,
	)
	return res, nil
}

func (e *Engine) execute(ctx context.Context, ins Instruction) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !e.allow(ins.Signer) {
		return nil, common.ErrTooManyRequests
	}
	if !ins.VerifySignature() {
		return nil, fmt.Errorf("%w: bad signature", common.ErrUnauthorized)
	}
	handler, ok := handlers[ins.Op]
	if !ok {
		return nil, fmt.Errorf("%w: unknown op %d", ErrInvalidPayload, uint8(ins.Op))
	}
	e.mutex.Lock()
	defer e.mutex.Unlock()
	snap := newSnapshot(e.store)
	signer, err := snap.signer(ins.Signer)
	if err != nil {
		return nil, err
	}
	signer, err = signer.Advance(ins.Nonce)
	if err != nil {
		return nil, err
	}
	req := request{
		params: e.params,
		signer: ins.Signer,
		now:    e.clock().Unix(),
		snap:   snap,
	}
	if err := handler(req, ins.Payload); err != nil {
		return nil, err
	}
	if len(snap.writes) == 0 {
		return nil, errors.New("instruction produced no writes")
	}
	// the nonce is consumed in the same batch, so a rejected instruction leaves it unused
	if err := snap.stage(signer.Address(), signer); err != nil {
		return nil, err
	}
	if err := e.store.Commit(snap.writes); err != nil {
		return nil, fmt.Errorf("commit failed: %w", err)
	}
	for _, status := range snap.statuses {
		contentTransitions.WithLabelValues(status.String()).Inc()
	}
	return &Result{
		Op:      ins.Op,
		Signer:  ins.Signer,
		Touched: snap.touched,
	}, nil
}

func (e *Engine) allow(signer common.PublicKey) bool {
	if e.limiters == nil {
		return true
	}
	limiter, ok := e.limiters.Get(signer)
	if !ok {
		limiter = rate.NewLimiter(e.rateLimit, e.rateBurst)
		// Another goroutine may have raced us; keep whichever landed first
		if prev, found, _ := e.limiters.PeekOrAdd(signer, limiter); found {
			limiter = prev
		}
	}
	return limiter.Allow()
}
