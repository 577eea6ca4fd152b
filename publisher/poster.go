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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/blinklabs-io/helm/ledger/common"
	"github.com/carlmjohnson/versioninfo"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
)

// Post is one approved content record ready to go out
type Post struct {
	Content    common.Address
	ExternalId string
	Handle     string
	Tweets     []string
}

// Poster performs the outbound post and returns the platform's id for it
type Poster interface {
	Post(ctx context.Context, post Post) (string, error)
}

// leveledSlog adapts slog to the retryablehttp logger interface. Errors are
// logged as warnings because the request may still succeed on retry.
type leveledSlog struct {
	inner *slog.Logger
}

func (l leveledSlog) Error(msg string, keysAndValues ...any) {
	l.inner.Warn(msg, keysAndValues...)
}

func (l leveledSlog) Warn(msg string, keysAndValues ...any) {
	l.inner.Warn(msg, keysAndValues...)
}

func (l leveledSlog) Info(msg string, keysAndValues ...any) {
	l.inner.Info(msg, keysAndValues...)
}

func (l leveledSlog) Debug(msg string, keysAndValues ...any) {
	l.inner.Debug(msg, keysAndValues...)
}

// HTTPPoster posts tweets to a platform endpoint that accepts
// {"text": ..., "reply": {"in_reply_to_tweet_id": ...}} and answers with
// {"data": {"id": ...}}. Threads are posted as a reply chain.
type HTTPPoster struct {
	client   *http.Client
	endpoint string
	token    string
}

type HTTPPosterOptionFunc func(*retryablehttp.Client)

func WithHTTPMaxRetries(maxRetries int) HTTPPosterOptionFunc {
	return func(client *retryablehttp.Client) {
		client.RetryMax = maxRetries
	}
}

func WithHTTPRetryWait(waitMin time.Duration, waitMax time.Duration) HTTPPosterOptionFunc {
	return func(client *retryablehttp.Client) {
		client.RetryWaitMin = waitMin
		client.RetryWaitMax = waitMax
	}
}

func WithHTTPLogger(logger *slog.Logger) HTTPPosterOptionFunc {
	return func(client *retryablehttp.Client) {
		client.Logger = retryablehttp.LeveledLogger(leveledSlog{inner: logger})
	}
}

func NewHTTPPoster(
	endpoint string,
	token string,
	options ...HTTPPosterOptionFunc,
) *HTTPPoster {
	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient.Transport = cleanhttp.DefaultPooledTransport()
	retryClient.RetryMax = 3
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = 10 * time.Second
	retryClient.Logger = retryablehttp.LeveledLogger(
		leveledSlog{inner: slog.Default().With("component", "http_poster")},
	)
	retryClient.CheckRetry = postRetryPolicy
	for _, option := range options {
		option(retryClient)
	}
	client := retryClient.StandardClient()
	client.Timeout = 30 * time.Second
	return &HTTPPoster{
		client:   client,
		endpoint: endpoint,
		token:    token,
	}
}

// postRetryPolicy does not retry 429 so the publisher's own attempt
// accounting decides when to try again
func postRetryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if err == nil && resp.StatusCode == http.StatusTooManyRequests {
		return false, nil
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

type tweetRequest struct {
	Text  string        `json:"text"`
	Reply *tweetReplyTo `json:"reply,omitempty"`
}

type tweetReplyTo struct {
	InReplyToTweetId string `json:"in_reply_to_tweet_id"`
}

type tweetResponse struct {
	Data struct {
		Id string `json:"id"`
	} `json:"data"`
}

// Post sends every tweet of the post and returns the id of the first one
func (p *HTTPPoster) Post(ctx context.Context, post Post) (string, error) {
	if len(post.Tweets) == 0 {
		return "", errors.New("post has no tweets")
	}
	var firstId, prevId string
	for idx, text := range post.Tweets {
		req := tweetRequest{Text: text}
		if prevId != "" {
			req.Reply = &tweetReplyTo{InReplyToTweetId: prevId}
		}
		id, err := p.postOne(ctx, req)
		if err != nil {
			return "", fmt.Errorf("tweet %d of %d: %w", idx+1, len(post.Tweets), err)
		}
		if firstId == "" {
			firstId = id
		}
		prevId = id
	}
	return firstId, nil
}

func (p *HTTPPoster) postOne(ctx context.Context, body tweetRequest) (string, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "helm/"+versioninfo.Short())
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, bytes.TrimSpace(respBody))
	}
	var parsed tweetResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if parsed.Data.Id == "" {
		return "", errors.New("response has no tweet id")
	}
	return parsed.Data.Id, nil
}
