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
	"errors"
	"fmt"
	"time"

	"github.com/blinklabs-io/helm"
	"github.com/blinklabs-io/helm/ledger/common"
	"github.com/blinklabs-io/helm/ledger/content"
	"github.com/blinklabs-io/helm/publisher"
	"github.com/urfave/cli/v2"
)

var contentCommand = &cli.Command{
	Name:  "content",
	Usage: "submit and review content",
	Subcommands: []*cli.Command{
		{
			Name:      "submit",
			Usage:     "submit a tweet, or a thread when given more than one text",
			ArgsUsage: "<external_id> <text>...",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "hash",
					Usage: "submit a precomputed hash instead of texts",
				},
				&cli.UintFlag{
					Name:  "thread",
					Usage: "tweet count when --hash is a thread",
				},
				&cli.TimestampFlag{
					Name:   "at",
					Usage:  "publish time, e.g. 2026-01-02T15:04:05Z",
					Layout: time.RFC3339,
				},
			},
			Action: runContentSubmit,
		},
		{
			Name:      "approve",
			ArgsUsage: "<content_address>",
			Action:    contentAction(helm.OpApproveContent),
		},
		{
			Name:      "reject",
			ArgsUsage: "<content_address> <reason>",
			Action:    runContentReject,
		},
		{
			Name:      "cancel",
			ArgsUsage: "<content_address>",
			Action:    contentAction(helm.OpCancelContent),
		},
		{
			Name:      "show",
			ArgsUsage: "<content_address>",
			Action:    runContentShow,
		},
		{
			Name:  "list",
			Usage: "list content in a status",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "status",
					Value: "PendingApproval",
				},
			},
			Action: runContentList,
		},
	},
}

func runContentSubmit(cctx *cli.Context) error {
	externalId, err := requireArg(cctx, 0, "external_id")
	if err != nil {
		return err
	}
	texts := cctx.Args().Tail()
	engine, err := openEngine(cctx)
	if err != nil {
		return err
	}
	defer engine.Close()
	payload := helm.SubmitContentPayload{ExternalId: externalId}
	switch {
	case cctx.String("hash") != "":
		if len(texts) > 0 {
			return errors.New("give either texts or --hash, not both")
		}
		payload.Hash, err = common.NewContentHashFromString(cctx.String("hash"))
		if err != nil {
			return err
		}
		payload.Kind = content.Tweet()
		if n := cctx.Uint("thread"); n > 0 {
			if n > 255 {
				return fmt.Errorf("invalid thread length %d", n)
			}
			payload.Kind = content.Thread(uint8(n))
		}
	case len(texts) > 0:
		// keep the texts so the publisher can post them later
		source := publisher.NewStoreTextSource(engine.Store(), engine.Params())
		payload.Hash, payload.Kind, err = source.Put(texts)
		if err != nil {
			return err
		}
	default:
		return errors.New("missing text argument")
	}
	if at := cctx.Timestamp("at"); at != nil {
		scheduled := at.Unix()
		payload.ScheduledFor = &scheduled
	}
	_, err = execute(cctx, engine, helm.OpSubmitContent, payload)
	return err
}

func contentAction(op helm.Op) cli.ActionFunc {
	return func(cctx *cli.Context) error {
		addr, err := parseAddressArg(cctx, 0)
		if err != nil {
			return err
		}
		_, err = submit(cctx, op, helm.ContentActionPayload{Content: addr})
		return err
	}
}

func runContentReject(cctx *cli.Context) error {
	addr, err := parseAddressArg(cctx, 0)
	if err != nil {
		return err
	}
	reason, err := requireArg(cctx, 1, "reason")
	if err != nil {
		return err
	}
	_, err = submit(cctx, helm.OpRejectContent, helm.RejectContentPayload{
		Content: addr,
		Reason:  reason,
	})
	return err
}

func runContentShow(cctx *cli.Context) error {
	addr, err := parseAddressArg(cctx, 0)
	if err != nil {
		return err
	}
	engine, err := openEngine(cctx)
	if err != nil {
		return err
	}
	defer engine.Close()
	c, err := engine.Content(addr)
	if err != nil {
		return err
	}
	printContent(c)
	return nil
}

func runContentList(cctx *cli.Context) error {
	status, err := content.ParseStatus(cctx.String("status"))
	if err != nil {
		return err
	}
	engine, err := openEngine(cctx)
	if err != nil {
		return err
	}
	defer engine.Close()
	records, err := engine.ContentsByStatus(status)
	if err != nil {
		return err
	}
	for _, c := range records {
		fmt.Printf("%s %s %s approvals=%d\n", c.Address(), c.Kind, c.Hash, len(c.Approvals))
	}
	return nil
}

func printContent(c content.Content) {
	fmt.Printf("address:    %s\n", c.Address())
	fmt.Printf("identity:   %s\n", c.Identity)
	fmt.Printf("author:     %s\n", c.Author)
	fmt.Printf("kind:       %s\n", c.Kind)
	fmt.Printf("hash:       %s\n", c.Hash)
	fmt.Printf("status:     %s\n", c.Status)
	if c.ScheduledFor != nil {
		fmt.Printf("scheduled:  %s\n", time.Unix(*c.ScheduledFor, 0).UTC().Format(time.RFC3339))
	}
	for _, approver := range c.Approvals {
		fmt.Printf("approval:   %s\n", approver)
	}
	if c.RejectionReason != nil {
		fmt.Printf("rejected:   %s\n", *c.RejectionReason)
	}
	if c.FailureReason != nil {
		fmt.Printf("failed:     %s\n", *c.FailureReason)
	}
	fmt.Printf("created:    %s\n", time.Unix(c.CreatedAt, 0).UTC().Format(time.RFC3339))
	fmt.Printf("updated:    %s\n", time.Unix(c.UpdatedAt, 0).UTC().Format(time.RFC3339))
}
