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

package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/coinbase/rosetta-sdk-go/types"
	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	codes := map[int32]struct{}{}
	for _, err := range Errors {
		_, exists := codes[err.Code]
		assert.False(t, exists, err.Message)
		codes[err.Code] = struct{}{}

		_, ok := err.Details[KindKey].(Kind)
		assert.True(t, ok, err.Message)
	}
}

func TestWrapErr(t *testing.T) {
	wrapped := WrapErr(ErrUnknownSystem, errors.New("AC:XX9999"))
	assert.Equal(t, ErrUnknownSystem.Code, wrapped.Code)
	assert.Equal(t, "AC:XX9999", wrapped.Details[ContextKey])

	_, ok := ErrUnknownSystem.Details[ContextKey]
	assert.False(t, ok)

	assert.Equal(t, ErrUnknownSystem.Details, WrapErr(ErrUnknownSystem, nil).Details)
}

func TestHTTPStatus(t *testing.T) {
	tests := map[string]struct {
		err    *types.Error
		status int
	}{
		"not found": {
			err:    ErrUnknownSystem,
			status: http.StatusNotFound,
		},
		"invalid period": {
			err:    ErrInvalidPeriod,
			status: http.StatusBadRequest,
		},
		"invalid amount": {
			err:    WrapErr(ErrInvalidAmount, errors.New("amount must be positive")),
			status: http.StatusBadRequest,
		},
		"configuration": {
			err:    ErrBackendConfiguration,
			status: http.StatusInternalServerError,
		},
		"chain failure": {
			err:    WithDetail(ErrTransactionFailed, TxHashKey, "0x01"),
			status: http.StatusInternalServerError,
		},
		"no details": {
			err:    &types.Error{Message: "boom"},
			status: http.StatusInternalServerError,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.status, HTTPStatus(test.err))
		})
	}
}

func TestBody(t *testing.T) {
	tests := map[string]struct {
		err      *types.Error
		expected map[string]interface{}
	}{
		"message only": {
			err: ErrInvalidPeriod,
			expected: map[string]interface{}{
				"error": "Invalid period specified. Use 'day', 'week', or 'month'.",
			},
		},
		"with context": {
			err: WrapErr(ErrUnknownSystem, errors.New("AC:XX9999")),
			expected: map[string]interface{}{
				"error": "Invalid system identifier: AC:XX9999",
			},
		},
		"with tx hash": {
			err: WithDetail(ErrTransactionFailed, TxHashKey, "0xabc"),
			expected: map[string]interface{}{
				"error":  "Blockchain transaction failed",
				"txHash": "0xabc",
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expected, Body(test.err))
		})
	}
}
