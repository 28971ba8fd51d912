// Copyright 2020 Coinbase, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/atmosieve/carbon-api/chain"
	"github.com/atmosieve/carbon-api/configuration"
	"github.com/atmosieve/carbon-api/observability"
	"github.com/atmosieve/carbon-api/services"
)

const (
	// readHeaderTimeout bounds how long a client
	// may take to send request headers.
	readHeaderTimeout = 10 * time.Second

	// writeTimeout exceeds chain.ReceiptTimeout so a
	// mint response is never cut off.
	writeTimeout = chain.ReceiptTimeout + 30*time.Second

	shutdownTimeout = 15 * time.Second
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run carbon-api",
	RunE:  runRunCmd,
}

func runRunCmd(cmd *cobra.Command, args []string) error {
	cfg, err := configuration.LoadConfiguration()
	if err != nil {
		return fmt.Errorf("%w: unable to load configuration", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, closeClient := dialClient(ctx, cfg)
	defer closeClient()

	router := services.NewRouter(cfg, client, observability.NewMetrics(""))
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}

	identifiers := make([]string, 0, len(cfg.Systems))
	for identifier := range cfg.Systems {
		identifiers = append(identifiers, identifier)
	}
	sort.Strings(identifiers)

	color.Cyan("carbon-api %s listening on port %d", configuration.MiddlewareVersion, cfg.Port)
	log.Printf("simulating systems: %v\n", identifiers)
	if !cfg.MintEnabled() {
		color.Yellow("minting is disabled: contract interface or owner key missing")
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Println("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// dialClient returns a nil Client when the configuration does
// not allow outbound connections or the node cannot be dialed.
func dialClient(ctx context.Context, cfg *configuration.Configuration) (services.Client, func()) {
	noop := func() {}
	if cfg.Mode != configuration.Online {
		log.Printf("running in %s mode: minting is disabled\n", cfg.Mode)
		return nil, noop
	}

	client, err := chain.NewClient(cfg.RPCURL, cfg.RPCHeaders)
	if err != nil {
		log.Printf("ERROR: %s: unable to dial %s\n", err.Error(), cfg.RPCURL)
		return nil, noop
	}

	if err := client.Connected(ctx); err != nil {
		log.Printf("ERROR: %s: failed to connect to %s\n", err.Error(), cfg.RPCURL)
	} else {
		log.Printf("connected to %s\n", cfg.RPCURL)
	}

	return client, client.Close
}
