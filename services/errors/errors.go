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
	"net/http"

	"github.com/coinbase/rosetta-sdk-go/types"
)

// Kind groups errors by how they are reported to callers.
type Kind string

const (
	// NotFound is returned for unknown resources.
	NotFound Kind = "NOT_FOUND"

	// InvalidInput is returned for malformed requests.
	InvalidInput Kind = "INVALID_INPUT"

	// ConfigError is returned while minting is not possible
	// with the loaded configuration or connection.
	ConfigError Kind = "CONFIG_ERROR"

	// ChainFailure is returned when a submitted transaction
	// did not succeed.
	ChainFailure Kind = "CHAIN_FAILURE"

	// Internal is returned for every other failure.
	Internal Kind = "INTERNAL"

	// ContextKey is the detail key holding the
	// wrapped error message.
	ContextKey = "context"

	// KindKey is the detail key holding the Kind.
	KindKey = "kind"

	// TxHashKey is the detail key holding the hash
	// of a failed transaction.
	TxHashKey = "txHash"
)

var (
	// Errors contains all errors that could be returned
	// by this API.
	Errors = []*types.Error{
		ErrUnknownSystem,
		ErrInvalidPeriod,
		ErrSystemMisconfigured,
		ErrMissingBody,
		ErrInvalidAmount,
		ErrInvalidSystemID,
		ErrBackendConfiguration,
		ErrNodeUnavailable,
		ErrUnavailableOffline,
		ErrTransactionFailed,
		ErrInternal,
		ErrMintInternal,
		ErrTokenInfo,
	}

	// ErrUnknownSystem is returned when the requested
	// identifier is not in the system table.
	ErrUnknownSystem = &types.Error{
		Code:    0, //nolint
		Message: "Invalid system identifier",
		Details: kind(NotFound),
	}

	// ErrInvalidPeriod is returned when period is not
	// day, week or month.
	ErrInvalidPeriod = &types.Error{
		Code:    1, //nolint
		Message: "Invalid period specified. Use 'day', 'week', or 'month'.",
		Details: kind(InvalidInput),
	}

	// ErrSystemMisconfigured is returned when a system in the
	// table cannot be used to compute units.
	ErrSystemMisconfigured = &types.Error{
		Code:    2, //nolint
		Message: "Configuration error",
		Details: kind(ConfigError),
	}

	// ErrMissingBody is returned when a mint request
	// carries no JSON object.
	ErrMissingBody = &types.Error{
		Code:    3, //nolint
		Message: "Missing request body",
		Details: kind(InvalidInput),
	}

	// ErrInvalidAmount is returned when amount is missing,
	// not a number or not positive.
	ErrInvalidAmount = &types.Error{
		Code:    4, //nolint
		Message: "Invalid or missing 'amount' in request body",
		Details: kind(InvalidInput),
	}

	// ErrInvalidSystemID is returned when systemId
	// is present but not a string.
	ErrInvalidSystemID = &types.Error{
		Code:    5, //nolint
		Message: "Invalid 'systemId' in request body",
		Details: kind(InvalidInput),
	}

	// ErrBackendConfiguration is returned when the contract
	// interface or owner key was not loaded.
	ErrBackendConfiguration = &types.Error{
		Code:    6, //nolint
		Message: "Backend configuration error (ABI/Owner Key)",
		Details: kind(ConfigError),
	}

	// ErrNodeUnavailable is returned when the chain
	// node cannot be reached.
	ErrNodeUnavailable = &types.Error{
		Code:      7, //nolint
		Message:   "Backend unable to connect to blockchain node",
		Retriable: true,
		Details:   kind(ConfigError),
	}

	// ErrUnavailableOffline is returned when asking for
	// chain access in offline mode.
	ErrUnavailableOffline = &types.Error{
		Code:    8, //nolint
		Message: "Endpoint unavailable offline",
		Details: kind(ConfigError),
	}

	// ErrTransactionFailed is returned when a mint transaction
	// was mined with a failed status.
	ErrTransactionFailed = &types.Error{
		Code:    9, //nolint
		Message: "Blockchain transaction failed",
		Details: kind(ChainFailure),
	}

	// ErrInternal is returned when units cannot
	// be computed.
	ErrInternal = &types.Error{
		Code:    10, //nolint
		Message: "An internal error occurred",
		Details: kind(Internal),
	}

	// ErrMintInternal is returned when minting fails
	// before a receipt is available.
	ErrMintInternal = &types.Error{
		Code:    11, //nolint
		Message: "An internal error occurred during minting",
		Details: kind(Internal),
	}

	// ErrTokenInfo is returned when token
	// details cannot be read.
	ErrTokenInfo = &types.Error{
		Code:    12, //nolint
		Message: "Unable to read token details",
		Details: kind(Internal),
	}
)

func kind(k Kind) map[string]interface{} {
	return map[string]interface{}{KindKey: k}
}

// WrapErr adds details to the types.Error provided. We use a function
// to do this so that we don't accidentally override the standard errors.
func WrapErr(rErr *types.Error, err error) *types.Error {
	newErr := copyErr(rErr)
	if err != nil {
		newErr.Details[ContextKey] = err.Error()
	}

	return newErr
}

// WithDetail returns a copy of rErr carrying
// an additional detail.
func WithDetail(rErr *types.Error, key string, value interface{}) *types.Error {
	newErr := copyErr(rErr)
	newErr.Details[key] = value

	return newErr
}

func copyErr(rErr *types.Error) *types.Error {
	newErr := &types.Error{
		Code:      rErr.Code,
		Message:   rErr.Message,
		Retriable: rErr.Retriable,
		Details:   map[string]interface{}{},
	}
	for k, v := range rErr.Details {
		newErr.Details[k] = v
	}

	return newErr
}

// KindOf returns the Kind of rErr, defaulting to Internal.
func KindOf(rErr *types.Error) Kind {
	if rErr == nil || rErr.Details == nil {
		return Internal
	}

	k, ok := rErr.Details[KindKey].(Kind)
	if !ok {
		return Internal
	}

	return k
}

// HTTPStatus maps rErr to the status code it is returned with.
func HTTPStatus(rErr *types.Error) int {
	switch KindOf(rErr) {
	case NotFound:
		return http.StatusNotFound
	case InvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Body renders rErr as the JSON object returned to callers:
// {"error": "<message>[: <context>]"} plus any extra details.
func Body(rErr *types.Error) map[string]interface{} {
	message := rErr.Message
	body := map[string]interface{}{}
	for k, v := range rErr.Details {
		switch k {
		case KindKey:
		case ContextKey:
			if s, ok := v.(string); ok && len(s) > 0 {
				message = message + ": " + s
			}
		default:
			body[k] = v
		}
	}
	body["error"] = message

	return body
}
