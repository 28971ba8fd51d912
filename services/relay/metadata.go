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
	"log"

	"github.com/ethereum/go-ethereum"

	"github.com/atmosieve/carbon-api/chain"
)

// calculateNonce returns the pending nonce of the owner account.
// Callers must hold nonceLock.
func (a *APIService) calculateNonce(ctx context.Context) (uint64, error) {
	return a.client.PendingNonceAt(ctx, *a.config.OwnerAddress)
}

// calculateGasLimit estimates the gas needed by the mint call and
// adds chain.GasLimitBuffer. A transaction must carry a limit, so a
// failed estimate falls back to chain.DefaultGasLimit.
func (a *APIService) calculateGasLimit(
	ctx context.Context,
	requestID string,
	data []byte,
) uint64 {
	to := a.config.ContractAddress
	gasLimit, err := a.client.EstimateGas(ctx, ethereum.CallMsg{
		From: *a.config.OwnerAddress,
		To:   &to,
		Data: data,
	})
	if err != nil {
		log.Printf(
			"[%s] WARN: gas estimation failed: %s, using gas limit %d\n",
			requestID,
			err.Error(),
			chain.DefaultGasLimit,
		)
		return chain.DefaultGasLimit
	}

	log.Printf("[%s] estimated gas: %d\n", requestID, gasLimit)
	return gasLimit + chain.GasLimitBuffer
}
