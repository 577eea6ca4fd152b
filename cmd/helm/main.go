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
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/blinklabs-io/helm"
	"github.com/blinklabs-io/helm/ledger/common"
	"github.com/blinklabs-io/helm/store"
	"github.com/carlmjohnson/versioninfo"
	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v2"
)

const programName = "helm"

func main() {
	if err := run(os.Args); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func run(args []string) error {
	app := cli.App{
		Name:    programName,
		Usage:   "multi-party approval of social media content",
		Version: versioninfo.Short(),
	}
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "data-dir",
			Usage:   "path of the ledger database directory",
			Value:   "data/helm",
			EnvVars: []string{"HELM_DATA_DIR"},
		},
		&cli.StringFlag{
			Name:    "key-file",
			Usage:   "file holding the hex encoded ed25519 seed used to sign instructions",
			EnvVars: []string{"HELM_KEY_FILE"},
		},
		&cli.StringFlag{
			Name:    "key",
			Usage:   "hex encoded ed25519 seed used to sign instructions",
			EnvVars: []string{"HELM_KEY"},
		},
		&cli.StringFlag{
			Name:    "params",
			Usage:   "TOML file overriding the ledger parameters",
			EnvVars: []string{"HELM_PARAMS"},
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "one of debug, info, warn or error",
			Value:   "info",
			EnvVars: []string{"HELM_LOG_LEVEL"},
		},
	}
	app.Before = setupLogging
	app.Commands = []*cli.Command{
		keygenCommand,
		addressCommand,
		hashCommand,
		identityCommand,
		adminCommand,
		creatorCommand,
		contentCommand,
		publishCommand,
		accountCommand,
	}
	return app.Run(args)
}

func setupLogging(cctx *cli.Context) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cctx.String("log-level"))); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logger := slog.New(
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}),
	)
	slog.SetDefault(logger)
	return nil
}

func loadParams(cctx *cli.Context) (common.Params, error) {
	path := cctx.String("params")
	if path == "" {
		return common.DefaultParams(), nil
	}
	return common.LoadParams(path)
}

// openEngine opens the ledger in the data dir. The caller closes it.
func openEngine(cctx *cli.Context) (*helm.Engine, error) {
	params, err := loadParams(cctx)
	if err != nil {
		return nil, err
	}
	dir := cctx.String("data-dir")
	if err := os.MkdirAll(filepath.Dir(dir), 0o755); err != nil {
		return nil, err
	}
	db, err := store.OpenPebbleStore(dir, store.DefaultCacheSize)
	if err != nil {
		return nil, err
	}
	engine, err := helm.NewEngine(
		helm.WithStore(db),
		helm.WithParams(params),
		helm.WithLogger(slog.Default().With("component", "engine")),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return engine, nil
}

func loadKey(cctx *cli.Context) (ed25519.PrivateKey, error) {
	encoded := cctx.String("key")
	if path := cctx.String("key-file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read key file: %w", err)
		}
		encoded = string(data)
	}
	if encoded == "" {
		return nil, errors.New("no signing key given, use --key-file or --key")
	}
	seed, err := hex.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, fmt.Errorf("invalid key: %w", err)
	}
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("invalid key length %d, expected %d", len(seed), ed25519.SeedSize)
	}
	return ed25519.NewKeyFromSeed(seed), nil
}

// submit signs and executes one instruction against the ledger
func submit(cctx *cli.Context, op helm.Op, payload any) (*helm.Result, error) {
	engine, err := openEngine(cctx)
	if err != nil {
		return nil, err
	}
	defer engine.Close()
	return execute(cctx, engine, op, payload)
}

func execute(
	cctx *cli.Context,
	engine *helm.Engine,
	op helm.Op,
	payload any,
) (*helm.Result, error) {
	key, err := loadKey(cctx)
	if err != nil {
		return nil, err
	}
	nonce, err := engine.NextNonce(common.PublicKeyFromPrivate(key))
	if err != nil {
		return nil, err
	}
	ins, err := helm.NewInstruction(key, op, nonce, payload)
	if err != nil {
		return nil, err
	}
	res, err := engine.Execute(cctx.Context, ins)
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", op, err)
	}
	for _, addr := range res.Touched {
		fmt.Println(addr.String())
	}
	return res, nil
}

func parseKeyArg(cctx *cli.Context, idx int, what string) (common.PublicKey, error) {
	arg := cctx.Args().Get(idx)
	if arg == "" {
		return common.PublicKey{}, fmt.Errorf("missing %s argument", what)
	}
	return common.NewPublicKeyFromString(arg)
}

func parseAddressArg(cctx *cli.Context, idx int) (common.Address, error) {
	arg := cctx.Args().Get(idx)
	if arg == "" {
		return common.Address{}, errors.New("missing address argument")
	}
	return common.NewAddressFromString(arg)
}

func requireArg(cctx *cli.Context, idx int, what string) (string, error) {
	arg := cctx.Args().Get(idx)
	if arg == "" {
		return "", fmt.Errorf("missing %s argument", what)
	}
	return arg, nil
}
