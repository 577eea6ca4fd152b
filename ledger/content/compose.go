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

package content

import (
	"errors"
	"fmt"

	"github.com/blinklabs-io/helm/ledger/common"
	"github.com/rivo/uniseg"
)

var ErrEmptyText = errors.New("text is empty")

// TweetLength counts user-perceived characters (grapheme clusters)
func TweetLength(text string) int {
	count := 0
	graphemes := uniseg.NewGraphemes(text)
	for graphemes.Next() {
		count++
	}
	return count
}

// HashTweet returns the content hash of a single tweet
func HashTweet(params common.Params, text string) (common.ContentHash, error) {
	if err := checkTweet(params, text); err != nil {
		return common.ContentHash{}, err
	}
	return common.Keccak256Hash([]byte(text)), nil
}

// HashThread returns the content hash and kind of a thread. The hash covers
// the concatenated per-tweet hashes, so tweet boundaries are part of the content.
func HashThread(
	params common.Params,
	texts []string,
) (common.ContentHash, Kind, error) {
	if len(texts) == 0 || len(texts) > int(params.MaxThreadLength) {
		return common.ContentHash{}, Kind{}, fmt.Errorf(
			"%w: %d tweets, max %d",
			common.ErrThreadTooLong,
			len(texts),
			params.MaxThreadLength,
		)
	}
	joined := make([]byte, 0, len(texts)*common.ContentHashSize)
	for idx, text := range texts {
		if err := checkTweet(params, text); err != nil {
			return common.ContentHash{}, Kind{}, fmt.Errorf("tweet %d: %w", idx, err)
		}
		tweetHash := common.Keccak256Hash([]byte(text))
		joined = append(joined, tweetHash.Bytes()...)
	}
	return common.Keccak256Hash(joined), Thread(uint8(len(texts))), nil // #nosec G115
}

func checkTweet(params common.Params, text string) error {
	if text == "" {
		return ErrEmptyText
	}
	if length := TweetLength(text); length > params.MaxTweetLength {
		return fmt.Errorf(
			"%w: %d characters, max %d",
			common.ErrContentTooLong,
			length,
			params.MaxTweetLength,
		)
	}
	return nil
}
