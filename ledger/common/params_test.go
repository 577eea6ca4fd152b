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

package common_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/blinklabs-io/helm/ledger/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultParamsValid(t *testing.T) {
	params := common.DefaultParams()
	require.NoError(t, params.Validate())
	assert.Equal(t, 10, params.MaxAdmins)
	assert.Equal(t, uint8(3), params.DefaultRequiredApprovals)
}

func TestParamsValidate(t *testing.T) {
	testDefs := []struct {
		name    string
		modify  func(*common.Params)
		quorum  bool
		wantErr bool
	}{
		{name: "zero admins", modify: func(p *common.Params) { p.MaxAdmins = 0 }, wantErr: true},
		{name: "zero min approvals", modify: func(p *common.Params) { p.MinRequiredApprovals = 0 }, quorum: true, wantErr: true},
		{name: "default above max", modify: func(p *common.Params) { p.DefaultRequiredApprovals = 11 }, quorum: true, wantErr: true},
		{name: "empty schedule window", modify: func(p *common.Params) { p.MaxScheduleDelay = p.MinScheduleDelay }, wantErr: true},
		{name: "quorum of one", modify: func(p *common.Params) { p.DefaultRequiredApprovals = 1 }},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			params := common.DefaultParams()
			testDef.modify(&params)
			err := params.Validate()
			if !testDef.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			if testDef.quorum {
				assert.ErrorIs(t, err, common.ErrInvalidRequiredApprovals)
			}
		})
	}
}

func TestLoadParams(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "params.toml")
	data := []byte("max_admins = 5\ndefault_required_approvals = 2\nrequire_schedule = true\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	params, err := common.LoadParams(path)
	require.NoError(t, err)
	assert.Equal(t, 5, params.MaxAdmins)
	assert.Equal(t, uint8(2), params.DefaultRequiredApprovals)
	assert.True(t, params.RequireSchedule)
	// untouched keys keep their defaults
	assert.Equal(t, 10, params.MaxCreators)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("default_required_approvals = 0\n"), 0o600))
	_, err = common.LoadParams(bad)
	assert.ErrorIs(t, err, common.ErrInvalidRequiredApprovals)

	_, err = common.LoadParams(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}
