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
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	"github.com/blinklabs-io/helm"
	"github.com/blinklabs-io/helm/ledger/common"
	"github.com/blinklabs-io/helm/ledger/content"
	"github.com/urfave/cli/v2"
)

var keygenCommand = &cli.Command{
	Name:  "keygen",
	Usage: "generate a signing key",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "out",
			Usage: "write the seed to this file instead of stdout",
		},
	},
	Action: runKeygen,
}

func runKeygen(cctx *cli.Context) error {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return err
	}
	seed := hex.EncodeToString(priv.Seed())
	if out := cctx.String("out"); out != "" {
		if err := os.WriteFile(out, []byte(seed+"\n"), 0o600); err != nil {
			return err
		}
	} else {
		fmt.Println(seed)
	}
	fmt.Fprintf(os.Stderr, "public key: %s\n", common.PublicKeyFromPrivate(priv))
	return nil
}

var addressCommand = &cli.Command{
	Name:      "address",
	Usage:     "show the account addresses derived for an external account id",
	ArgsUsage: "<external_id>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "author",
			Usage: "also show the content address for this author",
		},
		&cli.StringFlag{
			Name:  "hash",
			Usage: "content hash used with --author",
		},
	},
	Action: runAddress,
}

func runAddress(cctx *cli.Context) error {
	externalId, err := requireArg(cctx, 0, "external_id")
	if err != nil {
		return err
	}
	addrs := helm.Addresses(externalId)
	fmt.Printf("identity:     %s\n", addrs.Identity)
	fmt.Printf("admin list:   %s\n", addrs.AdminList)
	fmt.Printf("creator list: %s\n", addrs.CreatorList)
	if cctx.String("author") == "" {
		return nil
	}
	author, err := common.NewPublicKeyFromString(cctx.String("author"))
	if err != nil {
		return err
	}
	hash, err := common.NewContentHashFromString(cctx.String("hash"))
	if err != nil {
		return err
	}
	addr, _ := common.ContentAddress(addrs.Identity, author, hash)
	fmt.Printf("content:      %s\n", addr)
	return nil
}

var hashCommand = &cli.Command{
	Name:      "hash",
	Usage:     "hash a tweet, or a thread when given more than one text",
	ArgsUsage: "<text>...",
	Action:    runHash,
}

func runHash(cctx *cli.Context) error {
	params, err := loadParams(cctx)
	if err != nil {
		return err
	}
	texts := cctx.Args().Slice()
	var hash common.ContentHash
	kind := content.Tweet()
	switch len(texts) {
	case 0:
		return errors.New("missing text argument")
	case 1:
		hash, err = content.HashTweet(params, texts[0])
	default:
		hash, kind, err = content.HashThread(params, texts)
	}
	if err != nil {
		return err
	}
	fmt.Printf("%s %s\n", hash, kind)
	return nil
}
