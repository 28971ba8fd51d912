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

package artifacts

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"golang.org/x/crypto/sha3"
)

const (
	// MintMethod is the name of the contract method
	// used to mint carbon credits.
	MintMethod = "mint"

	// MintSignature is the canonical signature
	// of MintMethod.
	MintSignature = "mint(address,uint256,string)"

	// NameMethod, SymbolMethod, DecimalsMethod, TotalSupplyMethod
	// and BalanceOfMethod are the read only token methods.
	NameMethod        = "name"
	SymbolMethod      = "symbol"
	DecimalsMethod    = "decimals"
	TotalSupplyMethod = "totalSupply"
	BalanceOfMethod   = "balanceOf"

	// DefaultABIPath is where the contract interface is
	// looked up first.
	DefaultABIPath = "abi/CarbonCreditTokenMinimized.json"

	// FallbackABIPath is used when DefaultABIPath
	// does not exist.
	FallbackABIPath = "CarbonCreditTokenMinimized.json"
)

var (
	// ErrABINotFound is returned when no ABI file exists.
	ErrABINotFound = errors.New("abi file not found")

	// ErrABIInvalid is returned when the ABI file cannot be decoded.
	ErrABIInvalid = errors.New("could not decode abi file")

	// ErrMintMethodMissing is returned when the ABI does not
	// describe MintSignature.
	ErrMintMethodMissing = errors.New("abi does not describe " + MintSignature)
)

// ResolveABIPath returns the first of paths that exists.
func ResolveABIPath(paths ...string) (string, error) {
	for _, path := range paths {
		if len(path) == 0 {
			continue
		}

		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("%w: tried %v", ErrABINotFound, paths)
}

// LoadABI parses the contract interface stored at path and
// checks that it can be used to mint.
func LoadABI(path string) (*abi.ABI, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrABINotFound, err.Error())
	}
	defer f.Close()

	parsed, err := abi.JSON(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrABIInvalid, path, err.Error())
	}

	if err := ValidateMintMethod(parsed); err != nil {
		return nil, err
	}

	return &parsed, nil
}

// ValidateMintMethod ensures parsed exposes MintSignature.
func ValidateMintMethod(parsed abi.ABI) error {
	method, ok := parsed.Methods[MintMethod]
	if !ok {
		return ErrMintMethodMissing
	}

	if method.Sig != MintSignature {
		return fmt.Errorf("%w: found %s", ErrMintMethodMissing, method.Sig)
	}

	expected, err := MethodID(MintSignature)
	if err != nil {
		return err
	}

	if !bytes.Equal(expected, method.ID) {
		return fmt.Errorf("%w: selector mismatch", ErrMintMethodMissing)
	}

	return nil
}

// MethodID calculates the first 4 bytes of the method
// signature for function call on contract
func MethodID(methodSig string) ([]byte, error) {
	hash := sha3.NewLegacyKeccak256()
	if _, err := hash.Write([]byte(methodSig)); err != nil {
		return nil, err
	}

	return hash.Sum(nil)[:4], nil
}
