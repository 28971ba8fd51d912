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
	"testing"
	"time"

	"github.com/coinbase/rosetta-sdk-go/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	svcErrors "github.com/atmosieve/carbon-api/services/errors"
)

func TestParseMintRequest(t *testing.T) {
	tests := map[string]struct {
		body string

		expected      *MintRequest
		expectedError *types.Error
	}{
		"integer amount": {
			body: `{"amount": 100}`,
			expected: &MintRequest{
				Amount:   decimal.NewFromInt(100),
				SystemID: DefaultSystemID,
			},
		},
		"real amount with system": {
			body: `{"amount": 0.25, "systemId": "AC:XX0003"}`,
			expected: &MintRequest{
				Amount:   decimal.RequireFromString("0.25"),
				SystemID: "AC:XX0003",
			},
		},
		"exponent amount": {
			body: `{"amount": 1e3}`,
			expected: &MintRequest{
				Amount:   decimal.NewFromInt(1000),
				SystemID: DefaultSystemID,
			},
		},
		"invalid json": {
			body:          `{"amount": `,
			expectedError: svcErrors.ErrMissingBody,
		},
		"array body": {
			body:          `[100]`,
			expectedError: svcErrors.ErrMissingBody,
		},
		"below one base unit": {
			body:          `{"amount": 0.0000000000000000001}`,
			expectedError: svcErrors.ErrInvalidAmount,
		},
		"far below one base unit": {
			body:          `{"amount": 1e-10000000}`,
			expectedError: svcErrors.ErrInvalidAmount,
		},
		"huge exponent": {
			body:          `{"amount": 1e10000000}`,
			expectedError: svcErrors.ErrInvalidAmount,
		},
		"just above uint256": {
			body:          `{"amount": 2e59}`,
			expectedError: svcErrors.ErrInvalidAmount,
		},
		"largest power of ten": {
			body: `{"amount": 1e59}`,
			expected: &MintRequest{
				Amount:   decimal.New(1, 59),
				SystemID: DefaultSystemID,
			},
		},
		"object system id": {
			body:          `{"amount": 1, "systemId": {}}`,
			expectedError: svcErrors.ErrInvalidSystemID,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			request, err := ParseMintRequest([]byte(test.body))
			if test.expectedError != nil {
				assert.Nil(t, request)
				assert.Equal(t, test.expectedError.Code, err.Code)
				return
			}

			assert.Nil(t, err)
			assert.True(t, test.expected.Amount.Equal(request.Amount))
			assert.Equal(t, test.expected.SystemID, request.SystemID)
		})
	}
}

func TestValidateAmount_LargeExponent(t *testing.T) {
	start := time.Now()
	err := validateAmount(decimal.New(1, 100000000))
	assert.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestToBaseUnits(t *testing.T) {
	tests := map[string]string{
		"1":                     "1000000000000000000",
		"100":                   "100000000000000000000",
		"1.5":                   "1500000000000000000",
		"907.202593":            "907202593000000000000",
		"0.000000000000000001":  "1",
		"0.0000000000000000019": "1",
	}

	for amount, expected := range tests {
		t.Run(amount, func(t *testing.T) {
			want, ok := new(big.Int).SetString(expected, 10)
			assert.True(t, ok)
			assert.Equal(t, 0, want.Cmp(toBaseUnits(decimal.RequireFromString(amount))))
		})
	}
}
