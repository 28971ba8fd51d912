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
	"github.com/atmosieve/carbon-api/chain"
	"github.com/atmosieve/carbon-api/services/relay"
)

// Client is used by the servicers to mint
// and to read the token contract.
type Client interface {
	relay.Client
	chain.ContractCaller
}

// UnitsResponse is returned by the units endpoint.
type UnitsResponse struct {
	SystemIdentifier     string  `json:"system_identifier"`
	SystemName           string  `json:"system_name"`
	PeriodType           string  `json:"period_type"`
	CalculationStartTime string  `json:"calculation_start_time"`
	CalculationEndTime   string  `json:"calculation_end_time"`
	SimulatedCarbonUnits float64 `json:"simulated_carbon_units"`
}

// TokenInfoResponse is returned by the token info endpoint.
// Integer amounts are decimal strings in base units.
type TokenInfoResponse struct {
	ContractAddress           string `json:"contractAddress"`
	RecipientAddress          string `json:"recipientAddress"`
	Name                      string `json:"name"`
	Symbol                    string `json:"symbol"`
	Decimals                  uint8  `json:"decimals"`
	TotalSupply               string `json:"totalSupply"`
	RecipientBalance          string `json:"recipientBalance"`
	RecipientBalanceFormatted string `json:"recipientBalanceFormatted"`
}
