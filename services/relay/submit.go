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
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	ethTypes "github.com/ethereum/go-ethereum/core/types"
)

// submit signs and sends a mint transaction carrying data. The
// nonce lock is released once the node accepted or rejected it.
func (a *APIService) submit(
	ctx context.Context,
	requestID string,
	data []byte,
) (*ethTypes.Transaction, error) {
	if err := a.nonceLock.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer a.nonceLock.Release(1)

	nonce, err := a.calculateNonce(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to get nonce", err)
	}

	gasLimit := a.calculateGasLimit(ctx, requestID, data)

	gasPrice, err := a.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to get gas price", err)
	}

	chainID, err := a.client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to get chain id", err)
	}

	signedTx, err := a.signTransaction(nonce, gasLimit, gasPrice, chainID, data)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to sign transaction", err)
	}

	if err := a.client.SendTransaction(ctx, signedTx); err != nil {
		return nil, err
	}

	return signedTx, nil
}

// waitMined blocks until tx has a receipt, the receipt timeout
// elapses or ctx is done.
func (a *APIService) waitMined(
	ctx context.Context,
	tx *ethTypes.Transaction,
) (*ethTypes.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, a.receiptTimeout)
	defer cancel()

	receipt, err := bind.WaitMined(ctx, a.client, tx)
	if errors.Is(err, context.DeadlineExceeded) {
		return nil, fmt.Errorf(
			"%w: transaction %s is not in the chain after %s",
			err,
			tx.Hash().Hex(),
			a.receiptTimeout,
		)
	}

	return receipt, err
}
