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

package carbon

import (
	"errors"

	"github.com/shopspring/decimal"
)

const (
	// AlphaIdentifier is the identifier of System Alpha.
	AlphaIdentifier = "AC:XX0001"

	// BetaIdentifier is the identifier of System Beta.
	BetaIdentifier = "AC:XX0002"

	// GammaIdentifier is the identifier of System Gamma.
	GammaIdentifier = "AC:XX0003"

	// UnitsPrecision is the number of decimal places
	// simulated units are rounded to.
	UnitsPrecision = 6
)

var (
	// ErrUnknownSystem is returned when an identifier
	// is not part of the system table.
	ErrUnknownSystem = errors.New("unknown system identifier")

	// ErrInvalidPeriod is returned when a period is not
	// one of day, week or month.
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrInvalidCaptureRate is returned when a system in the
	// table carries a missing or non-positive capture rate.
	ErrInvalidCaptureRate = errors.New("invalid capture rate")
)

// System is a simulated carbon capture system.
type System struct {
	Identifier           string
	Name                 string
	CaptureRatePerSecond decimal.Decimal
}

// DefaultSystems returns the fixed table of simulated
// capture systems keyed by identifier. A new map is
// returned on every call so callers cannot mutate
// each other's table.
func DefaultSystems() map[string]*System {
	return map[string]*System{
		AlphaIdentifier: {
			Identifier:           AlphaIdentifier,
			Name:                 "System Alpha",
			CaptureRatePerSecond: decimal.RequireFromString("0.015"),
		},
		BetaIdentifier: {
			Identifier:           BetaIdentifier,
			Name:                 "System Beta",
			CaptureRatePerSecond: decimal.RequireFromString("0.021"),
		},
		GammaIdentifier: {
			Identifier:           GammaIdentifier,
			Name:                 "System Gamma",
			CaptureRatePerSecond: decimal.RequireFromString("0.009"),
		},
	}
}
