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

package publisher_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/blinklabs-io/helm/publisher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedTweet struct {
	Text  string `json:"text"`
	Reply *struct {
		InReplyToTweetId string `json:"in_reply_to_tweet_id"`
	} `json:"reply"`
}

func newTweetServer(t *testing.T) (*httptest.Server, *[]recordedTweet) {
	t.Helper()
	var mutex sync.Mutex
	var tweets []recordedTweet
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var tweet recordedTweet
		if err := json.NewDecoder(r.Body).Decode(&tweet); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		mutex.Lock()
		tweets = append(tweets, tweet)
		id := len(tweets)
		mutex.Unlock()
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"data":{"id":"%d"}}`, id)
	}))
	t.Cleanup(server.Close)
	return server, &tweets
}

func TestHTTPPosterThread(t *testing.T) {
	server, tweets := newTweetServer(t)
	poster := publisher.NewHTTPPoster(server.URL, "secret", publisher.WithHTTPMaxRetries(0))

	id, err := poster.Post(context.Background(), publisher.Post{Tweets: []string{"one", "two", "three"}})
	require.NoError(t, err)
	assert.Equal(t, "1", id)
	require.Len(t, *tweets, 3)
	assert.Nil(t, (*tweets)[0].Reply)
	require.NotNil(t, (*tweets)[1].Reply)
	assert.Equal(t, "1", (*tweets)[1].Reply.InReplyToTweetId)
	require.NotNil(t, (*tweets)[2].Reply)
	assert.Equal(t, "2", (*tweets)[2].Reply.InReplyToTweetId)
	assert.Equal(t, "three", (*tweets)[2].Text)
}

func TestHTTPPosterErrors(t *testing.T) {
	server, _ := newTweetServer(t)

	unauthorized := publisher.NewHTTPPoster(server.URL, "wrong", publisher.WithHTTPMaxRetries(0))
	_, err := unauthorized.Post(context.Background(), publisher.Post{Tweets: []string{"hi"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")

	poster := publisher.NewHTTPPoster(server.URL, "secret", publisher.WithHTTPMaxRetries(0))
	_, err = poster.Post(context.Background(), publisher.Post{})
	assert.Error(t, err)
}

func TestHTTPPosterTooManyRequests(t *testing.T) {
	var calls int
	var mutex sync.Mutex
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mutex.Lock()
		calls++
		mutex.Unlock()
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	poster := publisher.NewHTTPPoster(server.URL, "", publisher.WithHTTPMaxRetries(3))
	_, err := poster.Post(context.Background(), publisher.Post{Tweets: []string{"hi"}})
	require.Error(t, err)
	mutex.Lock()
	defer mutex.Unlock()
	assert.Equal(t, 1, calls)
}
