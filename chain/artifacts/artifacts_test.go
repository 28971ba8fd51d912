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
	"errors"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadABI(t *testing.T) {
	tests := map[string]struct {
		path string
		err  error
	}{
		"happy path": {
			path: "testdata/CarbonCreditTokenMinimized.json",
		},
		"missing file": {
			path: "testdata/missing.json",
			err:  ErrABINotFound,
		},
		"invalid json": {
			path: "testdata/invalid.json",
			err:  ErrABIInvalid,
		},
		"no mint method": {
			path: "testdata/no_mint.json",
			err:  ErrMintMethodMissing,
		},
		"mint method without system id": {
			path: "testdata/mint_without_system.json",
			err:  ErrMintMethodMissing,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			parsed, err := LoadABI(test.path)
			if test.err != nil {
				assert.Nil(t, parsed)
				assert.True(t, errors.Is(err, test.err))
				return
			}

			require.NoError(t, err)
			for _, method := range []string{
				MintMethod,
				NameMethod,
				SymbolMethod,
				DecimalsMethod,
				TotalSupplyMethod,
				BalanceOfMethod,
			} {
				_, ok := parsed.Methods[method]
				assert.True(t, ok, method)
			}
			assert.Equal(t, MintSignature, parsed.Methods[MintMethod].Sig)
		})
	}
}

func TestResolveABIPath(t *testing.T) {
	existing := filepath.Join("testdata", "CarbonCreditTokenMinimized.json")

	path, err := ResolveABIPath("testdata/missing.json", "", existing)
	assert.NoError(t, err)
	assert.Equal(t, existing, path)

	path, err = ResolveABIPath("testdata/missing.json")
	assert.Empty(t, path)
	assert.True(t, errors.Is(err, ErrABINotFound))
}

func TestMethodID(t *testing.T) {
	tests := map[string]string{
		"transfer(address,uint256)": "0xa9059cbb",
		"decimals()":                "0x313ce567",
		"symbol()":                  "0x95d89b41",
		MintSignature:               "0xd3fc9864",
	}

	for sig, expected := range tests {
		t.Run(sig, func(t *testing.T) {
			id, err := MethodID(sig)
			assert.NoError(t, err)
			assert.Equal(t, expected, hexutil.Encode(id))
		})
	}
}
