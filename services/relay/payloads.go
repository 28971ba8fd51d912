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
	"math/big"

	ethTypes "github.com/ethereum/go-ethereum/core/types"
)

// signTransaction builds the legacy mint transaction
// and signs it with the owner key.
func (a *APIService) signTransaction(
	nonce uint64,
	gasLimit uint64,
	gasPrice *big.Int,
	chainID *big.Int,
	data []byte,
) (*ethTypes.Transaction, error) {
	to := a.config.ContractAddress
	tx := ethTypes.NewTx(&ethTypes.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gasLimit,
		To:       &to,
		Value:    big.NewInt(0),
		Data:     data,
	})

	return ethTypes.SignTx(tx, ethTypes.LatestSignerForChainID(chainID), a.config.OwnerKey)
}
