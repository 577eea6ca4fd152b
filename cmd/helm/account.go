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

package main

import (
	"fmt"

	"github.com/blinklabs-io/helm/utils"
	"github.com/urfave/cli/v2"
)

var accountCommand = &cli.Command{
	Name:  "account",
	Usage: "inspect raw accounts",
	Subcommands: []*cli.Command{
		{
			Name:      "dump",
			Usage:     "print the decoded CBOR of an account",
			ArgsUsage: "<address>",
			Action:    runAccountDump,
		},
	},
}

func runAccountDump(cctx *cli.Context) error {
	addr, err := parseAddressArg(cctx, 0)
	if err != nil {
		return err
	}
	engine, err := openEngine(cctx)
	if err != nil {
		return err
	}
	defer engine.Close()
	data, err := engine.RawAccount(addr)
	if err != nil {
		return err
	}
	dump, err := utils.DumpCbor(data)
	if err != nil {
		return err
	}
	fmt.Print(dump)
	return nil
}
