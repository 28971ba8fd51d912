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

package chain

import (
	"context"
	"errors"
	"math/big"
	"time"
)

const (
	// Decimals is the fixed number of decimals of the carbon
	// credit token. It is not read from the contract.
	Decimals = 18

	// GasLimitBuffer is added on top of an estimated
	// gas limit.
	GasLimitBuffer = uint64(30000) //nolint:gomnd

	// DefaultGasLimit is used when gas estimation fails. A signed
	// legacy transaction must carry a gas limit, so this stands in
	// for submitting without an explicit limit. It is not read
	// from the chain.
	DefaultGasLimit = uint64(2000000) //nolint:gomnd

	// ReceiptTimeout bounds how long a submitted transaction
	// is waited on.
	ReceiptTimeout = 120 * time.Second

	// httpTimeout is the timeout of a single JSON-RPC request.
	httpTimeout = 30 * time.Second

	defaultCacheSize = 100

	defaultTokenDecimals = 0

	defaultTokenString = "UNKNOWN"
)

var (
	// ErrDialFailed is returned when the RPC client
	// cannot be constructed.
	ErrDialFailed = errors.New("unable to dial node")

	// ErrNotConnected is returned when the node does not
	// answer the connectivity check.
	ErrNotConnected = errors.New("node is not connected")
)

// JSONRPC is the interface for accessing go-ethereum's JSON RPC endpoint.
type JSONRPC interface {
	CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error
	Close()
}

// HTTPHeader is key, value pair to be set on the HTTP client.
type HTTPHeader struct {
	Key   string
	Value string
}

// TokenMetadata are the immutable details of a token contract.
type TokenMetadata struct {
	Name     string
	Symbol   string
	Decimals uint8
}

// TokenDetails are the metadata of a token contract together
// with its live supply and the balance of a single holder.
type TokenDetails struct {
	*TokenMetadata

	TotalSupply   *big.Int
	HolderBalance *big.Int
}
