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
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/atmosieve/carbon-api/carbon"
	"github.com/atmosieve/carbon-api/configuration"
	"github.com/atmosieve/carbon-api/observability"
	svcErrors "github.com/atmosieve/carbon-api/services/errors"
	"github.com/atmosieve/carbon-api/services/relay"
)

var (
	mintSystem string
	mintPeriod string
)

var mintCmd = &cobra.Command{
	Use:   "mint",
	Short: "Mint the credits a system captured in the current period",
	Long: `Computes the units captured by a system since the start of the
current period, rounds them to whole units and mints them to the
designated recipient. Running it twice for the same period mints twice.`,
	Args: cobra.NoArgs,
	RunE: runMintCmd,
}

func init() {
	mintCmd.Flags().StringVar(&mintSystem, "system", carbon.AlphaIdentifier, "identifier of the capture system")
	mintCmd.Flags().StringVar(&mintPeriod, "period", string(carbon.DefaultPeriod), "day, week or month")
}

func runMintCmd(cmd *cobra.Command, args []string) error {
	cfg, err := configuration.LoadConfiguration()
	if err != nil {
		return fmt.Errorf("%w: unable to load configuration", err)
	}

	result, err := carbon.NewCalculator(cfg.Systems).ComputeUnits(mintSystem, mintPeriod, time.Now())
	if err != nil {
		return err
	}

	units := carbon.RoundedUnits(result)
	fmt.Printf(
		"%s captured %s units since %s, rounded to %s\n",
		result.System.Identifier,
		result.Units.String(),
		carbon.FormatTimestamp(result.Start),
		units.String(),
	)

	if !units.IsPositive() {
		color.Yellow("no positive units captured, nothing to mint")
		return nil
	}

	client, closeClient := dialClient(cmd.Context(), cfg)
	defer closeClient()

	var relayClient relay.Client
	if client != nil {
		relayClient = client
	}

	color.Yellow("no double-minting prevention: each run mints again for the same period")

	service := relay.NewAPIService(cfg, relayClient, observability.NewMetrics(""))
	resp, rErr := service.Mint(cmd.Context(), &relay.MintRequest{
		Amount:   units,
		SystemID: result.System.Identifier,
	})
	if rErr != nil {
		body := svcErrors.Body(rErr)
		if txHash, ok := body[svcErrors.TxHashKey]; ok {
			return fmt.Errorf("%s (transaction %v)", body["error"], txHash)
		}

		return errors.New(body["error"].(string))
	}

	color.Green(resp.Message)
	fmt.Printf("transaction %s confirmed in block %d\n", resp.TxHash, resp.BlockNumber)

	return nil
}
