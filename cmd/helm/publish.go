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
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/blinklabs-io/helm/publisher"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"
)

var publishCommand = &cli.Command{
	Name:  "publish",
	Usage: "post approved content that is due",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "endpoint",
			Usage:    "URL tweets are posted to",
			EnvVars:  []string{"HELM_POST_ENDPOINT"},
			Required: true,
		},
		&cli.StringFlag{
			Name:    "token",
			Usage:   "bearer token for the endpoint",
			EnvVars: []string{"HELM_POST_TOKEN"},
		},
		&cli.BoolFlag{
			Name:  "once",
			Usage: "make a single pass and exit",
		},
		&cli.DurationFlag{
			Name:  "interval",
			Value: publisher.DefaultPollInterval,
		},
		&cli.IntFlag{
			Name:  "max-attempts",
			Value: publisher.DefaultMaxAttempts,
		},
		&cli.StringFlag{
			Name:    "metrics-listen",
			Usage:   "address to serve prometheus metrics on",
			EnvVars: []string{"HELM_METRICS_LISTEN"},
		},
	},
	Action: runPublish,
}

func runPublish(cctx *cli.Context) error {
	engine, err := openEngine(cctx)
	if err != nil {
		return err
	}
	defer engine.Close()
	logger := slog.Default().With("component", "publisher")
	poster := publisher.NewHTTPPoster(
		cctx.String("endpoint"),
		cctx.String("token"),
		publisher.WithHTTPLogger(logger),
	)
	pub, err := publisher.New(
		engine,
		publisher.NewStoreTextSource(engine.Store(), engine.Params()),
		poster,
		publisher.WithJobStore(engine.Store()),
		publisher.WithLogger(logger),
		publisher.WithPollInterval(cctx.Duration("interval")),
		publisher.WithMaxAttempts(cctx.Int("max-attempts")),
	)
	if err != nil {
		return err
	}
	if cctx.Bool("once") {
		res, err := pub.RunOnce(cctx.Context)
		if err != nil {
			return err
		}
		logger.Info(
			"pass complete",
			"published", res.Published,
			"retrying", res.Retrying,
			"failed", res.Failed,
			"not_due", res.NotDue,
		)
		return nil
	}
	if addr := cctx.String("metrics-listen"); addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		server := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics listener failed", "error", err)
			}
		}()
		defer server.Close()
	}
	ctx, stop := signal.NotifyContext(cctx.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	pub.Start()
	logger.Info("publisher started", "interval", cctx.Duration("interval").String())
	<-ctx.Done()
	logger.Info("shutting down")
	pub.Stop()
	return nil
}
