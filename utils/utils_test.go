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

package utils_test

import (
	"testing"
	"time"

	"github.com/blinklabs-io/helm/internal/test"
	"github.com/blinklabs-io/helm/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestDoneSignal(t *testing.T) {
	defer goleak.VerifyNone(t)
	d := utils.NewDoneSignal()
	assert.False(t, d.IsClosed())
	waited := make(chan struct{})
	go func() {
		<-d.Done()
		close(waited)
	}()
	d.Close()
	// repeated close is safe
	d.Close()
	select {
	case <-waited:
	case <-time.After(time.Second):
		t.Fatal("waiter was not released")
	}
	assert.True(t, d.IsClosed())
}

func TestDumpCbor(t *testing.T) {
	// [1, "a", h'0102', {}, null]
	out, err := utils.DumpCbor(test.DecodeHexString("85016161420102a0f6"))
	require.NoError(t, err)
	expected := "[\n  1\n  \"a\"\n  h'0102'\n  {\n  }\n  null\n]\n"
	assert.Equal(t, expected, out)

	_, err = utils.DumpCbor([]byte{0x85})
	assert.Error(t, err)
}
