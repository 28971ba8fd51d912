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
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	lru "github.com/hashicorp/golang-lru"

	"github.com/atmosieve/carbon-api/chain/artifacts"
)

// ContractCaller executes read only contract calls.
type ContractCaller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// TokenFetcher fetches the details of a token contract.
type TokenFetcher interface {
	FetchDetails(ctx context.Context, contract common.Address, holder common.Address) (*TokenDetails, error)
}

// ERC20TokenFetcher type has a tokenCache (lru) to cache the immutable metadata
// of token contracts, as well as a ContractCaller to query them.
type ERC20TokenFetcher struct {
	tokenCache *lru.Cache

	c   ContractCaller
	abi abi.ABI
}

// NewTokenFetcher returns a fetcher reading tokens described by parsedABI.
func NewTokenFetcher(c ContractCaller, parsedABI abi.ABI) (*ERC20TokenFetcher, error) {
	cache, err := lru.New(defaultCacheSize)
	if err != nil {
		return nil, err
	}

	return &ERC20TokenFetcher{tokenCache: cache, c: c, abi: parsedABI}, nil
}

// parseStringReturn parses data for ABI functions that return a single string
func parseStringReturn(parsedABI abi.ABI, methodName string, data []byte) (string, error) {
	stringRes, err := parsedABI.Unpack(methodName, data)
	if err != nil {
		return "", err
	}

	out0, ok := stringRes[0].(string)
	if !ok {
		return "", fmt.Errorf("%s did not return a string", methodName)
	}

	return out0, nil
}

// parseIntReturn parses data for the functions of ERC20s that return ints
func parseIntReturn(parsedABI abi.ABI, methodName string, data []byte) (*big.Int, error) {
	intRes, err := parsedABI.Unpack(methodName, data)
	if err != nil {
		return nil, err
	}

	out0 := *abi.ConvertType(intRes[0], new(*big.Int)).(**big.Int)
	return out0, nil
}

// parseUint8Return parses data for functions that return a uint8
func parseUint8Return(parsedABI abi.ABI, methodName string, data []byte) (uint8, error) {
	res, err := parsedABI.Unpack(methodName, data)
	if err != nil {
		return 0, err
	}

	out0, ok := res[0].(uint8)
	if !ok {
		return 0, fmt.Errorf("%s did not return a uint8", methodName)
	}

	return out0, nil
}

func (f *ERC20TokenFetcher) call(
	ctx context.Context,
	contract common.Address,
	method string,
	args ...interface{},
) ([]byte, error) {
	data, err := f.abi.Pack(method, args...)
	if err != nil {
		return nil, err
	}

	return f.c.CallContract(ctx, ethereum.CallMsg{
		To:   &contract,
		Data: data,
	}, nil)
}

// FetchMetadata returns the name, symbol and decimals of contract.
// We make use of an LRU cache to prevent repeatedly fetching the metadata.
//
// If any contract call returns an empty value ("0x"), we fall back
// on default values.
func (f *ERC20TokenFetcher) FetchMetadata(
	ctx context.Context,
	contract common.Address,
) (*TokenMetadata, error) {
	if cached, ok := f.tokenCache.Get(contract); ok {
		return cached.(*TokenMetadata), nil
	}

	metadata := &TokenMetadata{
		Name:     defaultTokenString,
		Symbol:   defaultTokenString,
		Decimals: defaultTokenDecimals,
	}

	nameData, err := f.call(ctx, contract, artifacts.NameMethod)
	if err != nil {
		return nil, err
	}
	if len(nameData) > 0 {
		name, err := parseStringReturn(f.abi, artifacts.NameMethod, nameData)
		if err != nil {
			return nil, err
		}
		if len(name) > 0 {
			metadata.Name = name
		}
	}

	symbolData, err := f.call(ctx, contract, artifacts.SymbolMethod)
	if err != nil {
		return nil, err
	}
	if len(symbolData) > 0 {
		symbol, err := parseStringReturn(f.abi, artifacts.SymbolMethod, symbolData)
		if err != nil {
			return nil, err
		}
		if len(symbol) > 0 {
			metadata.Symbol = symbol
		}
	}

	decimalsData, err := f.call(ctx, contract, artifacts.DecimalsMethod)
	if err != nil {
		return nil, err
	}
	if len(decimalsData) > 0 {
		decimals, err := parseUint8Return(f.abi, artifacts.DecimalsMethod, decimalsData)
		if err != nil {
			return nil, err
		}
		metadata.Decimals = decimals
	}

	f.tokenCache.Add(contract, metadata)

	return metadata, nil
}

// FetchDetails returns the cached metadata of contract along with
// its current total supply and the balance of holder.
func (f *ERC20TokenFetcher) FetchDetails(
	ctx context.Context,
	contract common.Address,
	holder common.Address,
) (*TokenDetails, error) {
	metadata, err := f.FetchMetadata(ctx, contract)
	if err != nil {
		return nil, err
	}

	supplyData, err := f.call(ctx, contract, artifacts.TotalSupplyMethod)
	if err != nil {
		return nil, err
	}

	totalSupply := big.NewInt(0)
	if len(supplyData) > 0 {
		totalSupply, err = parseIntReturn(f.abi, artifacts.TotalSupplyMethod, supplyData)
		if err != nil {
			return nil, err
		}
	}

	balanceData, err := f.call(ctx, contract, artifacts.BalanceOfMethod, holder)
	if err != nil {
		return nil, err
	}

	balance := big.NewInt(0)
	if len(balanceData) > 0 {
		balance, err = parseIntReturn(f.abi, artifacts.BalanceOfMethod, balanceData)
		if err != nil {
			return nil, err
		}
	}

	return &TokenDetails{
		TokenMetadata: metadata,
		TotalSupply:   totalSupply,
		HolderBalance: balance,
	}, nil
}
