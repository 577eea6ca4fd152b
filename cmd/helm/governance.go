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
	"strconv"

	"github.com/blinklabs-io/helm"
	"github.com/urfave/cli/v2"
)

var identityCommand = &cli.Command{
	Name:  "identity",
	Usage: "manage identities",
	Subcommands: []*cli.Command{
		{
			Name:      "register",
			Usage:     "register an identity owned by the signing key",
			ArgsUsage: "<external_id> <handle>",
			Action:    runIdentityRegister,
		},
		{
			Name:      "verify",
			Usage:     "mark an identity verified",
			ArgsUsage: "<external_id>",
			Action:    runIdentityVerify,
		},
		{
			Name:      "approvals",
			Usage:     "set the approvals needed to publish",
			ArgsUsage: "<external_id> <count>",
			Action:    runIdentityApprovals,
		},
		{
			Name:      "show",
			Usage:     "show an identity with its admins and creators",
			ArgsUsage: "<external_id>",
			Action:    runIdentityShow,
		},
	},
}

func runIdentityRegister(cctx *cli.Context) error {
	externalId, err := requireArg(cctx, 0, "external_id")
	if err != nil {
		return err
	}
	handle, err := requireArg(cctx, 1, "handle")
	if err != nil {
		return err
	}
	_, err = submit(cctx, helm.OpRegisterIdentity, helm.RegisterIdentityPayload{
		ExternalId: externalId,
		Handle:     handle,
	})
	return err
}

func runIdentityVerify(cctx *cli.Context) error {
	externalId, err := requireArg(cctx, 0, "external_id")
	if err != nil {
		return err
	}
	_, err = submit(cctx, helm.OpVerifyIdentity, helm.VerifyIdentityPayload{ExternalId: externalId})
	return err
}

func runIdentityApprovals(cctx *cli.Context) error {
	externalId, err := requireArg(cctx, 0, "external_id")
	if err != nil {
		return err
	}
	arg, err := requireArg(cctx, 1, "count")
	if err != nil {
		return err
	}
	count, err := strconv.ParseUint(arg, 10, 8)
	if err != nil {
		return fmt.Errorf("invalid count: %w", err)
	}
	_, err = submit(cctx, helm.OpUpdateRequiredApprovals, helm.UpdateRequiredApprovalsPayload{
		ExternalId:        externalId,
		RequiredApprovals: uint8(count),
	})
	return err
}

func runIdentityShow(cctx *cli.Context) error {
	externalId, err := requireArg(cctx, 0, "external_id")
	if err != nil {
		return err
	}
	engine, err := openEngine(cctx)
	if err != nil {
		return err
	}
	defer engine.Close()
	identity, err := engine.Identity(externalId)
	if err != nil {
		return err
	}
	admins, err := engine.AdminList(externalId)
	if err != nil {
		return err
	}
	creators, err := engine.CreatorList(externalId)
	if err != nil {
		return err
	}
	fmt.Printf("address:            %s\n", identity.Address())
	fmt.Printf("external id:        %s\n", identity.ExternalId)
	fmt.Printf("handle:             @%s\n", identity.ExternalHandle)
	fmt.Printf("owner:              %s\n", identity.Owner)
	fmt.Printf("verified:           %t\n", identity.IsVerified)
	fmt.Printf("required approvals: %d\n", identity.RequiredApprovals)
	for _, admin := range admins.Admins {
		fmt.Printf("admin:              %s\n", admin)
	}
	for _, creator := range creators.Creators {
		fmt.Printf("creator:            %s\n", creator)
	}
	return nil
}

var adminCommand = &cli.Command{
	Name:  "admin",
	Usage: "manage the admins of an identity",
	Subcommands: []*cli.Command{
		{
			Name:      "add",
			ArgsUsage: "<external_id> <public_key>",
			Action:    memberAction(helm.OpAddAdmin),
		},
		{
			Name:      "remove",
			ArgsUsage: "<external_id> <public_key>",
			Action:    memberAction(helm.OpRemoveAdmin),
		},
	},
}

var creatorCommand = &cli.Command{
	Name:  "creator",
	Usage: "manage the creators of an identity",
	Subcommands: []*cli.Command{
		{
			Name:      "add",
			ArgsUsage: "<external_id> <public_key>",
			Action:    memberAction(helm.OpAddCreator),
		},
		{
			Name:      "remove",
			ArgsUsage: "<external_id> <public_key>",
			Action:    memberAction(helm.OpRemoveCreator),
		},
	},
}

func memberAction(op helm.Op) cli.ActionFunc {
	return func(cctx *cli.Context) error {
		externalId, err := requireArg(cctx, 0, "external_id")
		if err != nil {
			return err
		}
		member, err := parseKeyArg(cctx, 1, "public_key")
		if err != nil {
			return err
		}
		_, err = submit(cctx, op, helm.MemberPayload{
			ExternalId: externalId,
			Member:     member,
		})
		return err
	}
}
