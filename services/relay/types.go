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
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"
)

const (
	// DefaultSystemID tags mints whose request
	// carries no systemId.
	DefaultSystemID = "PurchaseFlow"

	// AmountKey and SystemIDKey are the fields
	// of a mint request body.
	AmountKey   = "amount"
	SystemIDKey = "systemId"
)

// Client is used by the relay to build, submit
// and confirm mint transactions.
type Client interface {
	bind.DeployBackend

	Connected(ctx context.Context) error

	ChainID(ctx context.Context) (*big.Int, error)

	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)

	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)

	SuggestGasPrice(ctx context.Context) (*big.Int, error)

	SendTransaction(ctx context.Context, tx *ethTypes.Transaction) error
}

// MintRequest is a validated request to mint Amount
// whole tokens to the designated recipient.
type MintRequest struct {
	Amount   decimal.Decimal
	SystemID string
}

// MintResponse is returned once a mint
// transaction succeeded.
type MintResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	TxHash      string `json:"txHash"`
	BlockNumber uint64 `json:"blockNumber"`
	SystemID    string `json:"systemId"`
}
