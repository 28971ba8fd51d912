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

package relay

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/coinbase/rosetta-sdk-go/types"
	ethTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/atmosieve/carbon-api/chain"
	"github.com/atmosieve/carbon-api/chain/artifacts"
	"github.com/atmosieve/carbon-api/configuration"
	"github.com/atmosieve/carbon-api/observability"
	svcErrors "github.com/atmosieve/carbon-api/services/errors"
)

// otherSystemLabel replaces system ids outside the identifier
// table in metric labels.
const otherSystemLabel = "other"

// APIService relays mint requests to the token contract
// using the owner account.
type APIService struct {
	config  *configuration.Configuration
	client  Client
	metrics *observability.Metrics

	// nonceLock is held from fetching the owner nonce
	// until the signed transaction is submitted.
	nonceLock      *semaphore.Weighted
	receiptTimeout time.Duration
}

// NewAPIService creates a new instance of a APIService.
// client may be nil when the node could not be dialed.
func NewAPIService(
	cfg *configuration.Configuration,
	client Client,
	metrics *observability.Metrics,
) *APIService {
	return &APIService{
		config:         cfg,
		client:         client,
		metrics:        metrics,
		nonceLock:      semaphore.NewWeighted(1),
		receiptTimeout: chain.ReceiptTimeout,
	}
}

// Ready returns an error if minting is impossible with the
// loaded configuration or the current node connection.
func (a *APIService) Ready(ctx context.Context) *types.Error {
	if !a.config.MintEnabled() {
		return svcErrors.ErrBackendConfiguration
	}

	if a.config.Mode != configuration.Online {
		return svcErrors.ErrUnavailableOffline
	}

	if a.client == nil {
		return svcErrors.ErrNodeUnavailable
	}

	if err := a.client.Connected(ctx); err != nil {
		return svcErrors.WrapErr(svcErrors.ErrNodeUnavailable, err)
	}

	return nil
}

// MintCredits decodes body and mints the requested amount.
// Readiness is checked before the body is looked at.
func (a *APIService) MintCredits(
	ctx context.Context,
	body []byte,
) (*MintResponse, *types.Error) {
	if rErr := a.Ready(ctx); rErr != nil {
		return nil, rErr
	}

	request, rErr := ParseMintRequest(body)
	if rErr != nil {
		return nil, rErr
	}

	return a.mint(ctx, request)
}

// Mint mints request.Amount tokens to the designated recipient
// and waits for the transaction to be mined.
func (a *APIService) Mint(
	ctx context.Context,
	request *MintRequest,
) (*MintResponse, *types.Error) {
	if rErr := a.Ready(ctx); rErr != nil {
		return nil, rErr
	}

	if err := validateAmount(request.Amount); err != nil {
		return nil, svcErrors.WrapErr(svcErrors.ErrInvalidAmount, err)
	}

	if len(request.SystemID) == 0 {
		request = &MintRequest{
			Amount:   request.Amount,
			SystemID: DefaultSystemID,
		}
	}

	return a.mint(ctx, request)
}

func (a *APIService) mint(
	ctx context.Context,
	request *MintRequest,
) (resp *MintResponse, rErr *types.Error) {
	start := time.Now()
	defer func() {
		a.metrics.ObserveMint(start, rErr != nil)
	}()

	requestID := uuid.New().String()
	baseUnits := toBaseUnits(request.Amount)
	log.Printf(
		"[%s] received mint request for %s tokens -> %s base units (%s)\n",
		requestID,
		request.Amount.String(),
		baseUnits.String(),
		request.SystemID,
	)

	data, err := a.config.ContractABI.Pack(
		artifacts.MintMethod,
		a.config.RecipientAddress,
		baseUnits,
		request.SystemID,
	)
	if err != nil {
		return nil, svcErrors.WrapErr(svcErrors.ErrMintInternal, err)
	}

	tx, err := a.submit(ctx, requestID, data)
	if err != nil {
		log.Printf("[%s] %s: unable to submit mint transaction\n", requestID, err.Error())
		return nil, svcErrors.WrapErr(svcErrors.ErrMintInternal, err)
	}

	txHash := tx.Hash().Hex()
	log.Printf("[%s] transaction sent: %s, waiting for receipt\n", requestID, txHash)

	receipt, err := a.waitMined(ctx, tx)
	if err != nil {
		log.Printf("[%s] %s\n", requestID, err.Error())
		return nil, svcErrors.WrapErr(svcErrors.ErrMintInternal, err)
	}

	log.Printf("[%s] transaction confirmed with status %d\n", requestID, receipt.Status)
	if receipt.Status != ethTypes.ReceiptStatusSuccessful {
		return nil, svcErrors.WithDetail(svcErrors.ErrTransactionFailed, svcErrors.TxHashKey, txHash)
	}

	a.metrics.MintedAmounts.WithLabelValues(a.systemLabel(request.SystemID)).Add(request.Amount.InexactFloat64())

	var blockNumber uint64
	if receipt.BlockNumber != nil {
		blockNumber = receipt.BlockNumber.Uint64()
	}

	return &MintResponse{
		Success: true,
		Message: fmt.Sprintf(
			"Successfully minted %s tokens to %s",
			request.Amount.String(),
			a.config.RecipientAddress.Hex(),
		),
		TxHash:      txHash,
		BlockNumber: blockNumber,
		SystemID:    request.SystemID,
	}, nil
}

// systemLabel bounds the label values of mint metrics to the
// identifier table and DefaultSystemID.
func (a *APIService) systemLabel(systemID string) string {
	if systemID == DefaultSystemID {
		return systemID
	}

	if _, ok := a.config.Systems[systemID]; ok {
		return systemID
	}

	return otherSystemLabel
}
