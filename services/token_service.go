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

package services

import (
	"context"
	"log"

	"github.com/coinbase/rosetta-sdk-go/types"
	"github.com/shopspring/decimal"

	"github.com/atmosieve/carbon-api/chain"
	"github.com/atmosieve/carbon-api/configuration"
	"github.com/atmosieve/carbon-api/observability"
	svcErrors "github.com/atmosieve/carbon-api/services/errors"
)

// TokenAPIService reads the carbon credit token contract.
type TokenAPIService struct {
	config  *configuration.Configuration
	client  Client
	fetcher chain.TokenFetcher
	metrics *observability.Metrics
}

// NewTokenAPIService returns a new *TokenAPIService. No fetcher
// is created without a contract interface or client.
func NewTokenAPIService(
	cfg *configuration.Configuration,
	client Client,
	metrics *observability.Metrics,
) *TokenAPIService {
	s := &TokenAPIService{
		config:  cfg,
		client:  client,
		metrics: metrics,
	}

	if cfg.ContractABI == nil || client == nil {
		return s
	}

	fetcher, err := chain.NewTokenFetcher(client, *cfg.ContractABI)
	if err != nil {
		log.Printf("%s: unable to create token fetcher\n", err.Error())
		return s
	}
	s.fetcher = fetcher

	return s
}

// TokenInfo implements /api/token-info.
func (s *TokenAPIService) TokenInfo(ctx context.Context) (*TokenInfoResponse, *types.Error) {
	resp, rErr := s.tokenInfo(ctx)
	s.metrics.TokenInfoRequests.WithLabelValues(observability.Outcome(rErr != nil)).Inc()

	return resp, rErr
}

func (s *TokenAPIService) tokenInfo(ctx context.Context) (*TokenInfoResponse, *types.Error) {
	if s.config.ContractABI == nil {
		return nil, svcErrors.ErrBackendConfiguration
	}

	if s.config.Mode != configuration.Online {
		return nil, svcErrors.ErrUnavailableOffline
	}

	if s.client == nil || s.fetcher == nil {
		return nil, svcErrors.ErrNodeUnavailable
	}

	if err := s.client.Connected(ctx); err != nil {
		return nil, svcErrors.WrapErr(svcErrors.ErrNodeUnavailable, err)
	}

	details, err := s.fetcher.FetchDetails(ctx, s.config.ContractAddress, s.config.RecipientAddress)
	if err != nil {
		return nil, svcErrors.WrapErr(svcErrors.ErrTokenInfo, err)
	}

	formatted := decimal.NewFromBigInt(details.HolderBalance, -int32(details.Decimals))

	return &TokenInfoResponse{
		ContractAddress:           s.config.ContractAddress.Hex(),
		RecipientAddress:          s.config.RecipientAddress.Hex(),
		Name:                      details.Name,
		Symbol:                    details.Symbol,
		Decimals:                  details.Decimals,
		TotalSupply:               details.TotalSupply.String(),
		RecipientBalance:          details.HolderBalance.String(),
		RecipientBalanceFormatted: formatted.String(),
	}, nil
}
