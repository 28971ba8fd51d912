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
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/coinbase/rosetta-sdk-go/types"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/shopspring/decimal"

	"github.com/atmosieve/carbon-api/chain"
	svcErrors "github.com/atmosieve/carbon-api/services/errors"
)

// maxUint256Digits is the number of decimal digits of 2^256 - 1.
const maxUint256Digits = 78

var maxBaseUnits = decimal.NewFromBigInt(math.MaxBig256, 0)

// ParseMintRequest decodes and validates the body
// of a mint request.
func ParseMintRequest(body []byte) (*MintRequest, *types.Error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, svcErrors.ErrMissingBody
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	var fields map[string]interface{}
	if err := decoder.Decode(&fields); err != nil {
		return nil, svcErrors.WrapErr(svcErrors.ErrMissingBody, err)
	}

	if len(fields) == 0 {
		return nil, svcErrors.ErrMissingBody
	}

	amount, err := parseAmount(fields[AmountKey])
	if err != nil {
		return nil, svcErrors.WrapErr(svcErrors.ErrInvalidAmount, err)
	}

	systemID := DefaultSystemID
	if raw, ok := fields[SystemIDKey]; ok && raw != nil {
		s, ok := raw.(string)
		if !ok {
			return nil, svcErrors.WrapErr(
				svcErrors.ErrInvalidSystemID,
				fmt.Errorf("%v is not a string", raw),
			)
		}
		systemID = s
	}

	return &MintRequest{
		Amount:   amount,
		SystemID: systemID,
	}, nil
}

// parseAmount accepts JSON numbers only. Booleans and
// numeric strings are rejected.
func parseAmount(raw interface{}) (decimal.Decimal, error) {
	if raw == nil {
		return decimal.Zero, errors.New("amount is not provided")
	}

	number, ok := raw.(json.Number)
	if !ok {
		return decimal.Zero, fmt.Errorf("%v is not a number", raw)
	}

	amount, err := decimal.NewFromString(number.String())
	if err != nil {
		return decimal.Zero, err
	}

	if err := validateAmount(amount); err != nil {
		return decimal.Zero, err
	}

	return amount, nil
}

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errors.New("amount is not positive")
	}

	// Magnitude is checked on digits and exponent so that
	// no huge integer is ever built or printed from the amount.
	integerDigits := int64(amount.NumDigits()) + int64(amount.Exponent()) + chain.Decimals
	if integerDigits <= 0 {
		return errors.New("amount is smaller than one base unit")
	}

	if integerDigits > maxUint256Digits || amount.Shift(chain.Decimals).GreaterThan(maxBaseUnits) {
		return errors.New("amount does not fit in uint256 base units")
	}

	return nil
}

// toBaseUnits scales amount by the fixed token decimals,
// truncating anything below one base unit.
func toBaseUnits(amount decimal.Decimal) *big.Int {
	return amount.Shift(chain.Decimals).BigInt()
}
