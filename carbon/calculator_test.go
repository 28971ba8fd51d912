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
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, value string) time.Time {
	parsed, err := time.Parse(time.RFC3339Nano, value)
	require.NoError(t, err)

	return parsed
}

func TestComputeUnits(t *testing.T) {
	tests := map[string]struct {
		identifier string
		period     string
		now        string

		expectedPeriod Period
		expectedStart  string
		expectedEnd    string
		expectedUnits  string
		expectedErr    error
	}{
		"day": {
			identifier:     BetaIdentifier,
			period:         "day",
			now:            "2024-01-01T12:00:00Z",
			expectedPeriod: Day,
			expectedStart:  "2024-01-01T00:00:00+00:00",
			expectedEnd:    "2024-01-01T12:00:00+00:00",
			expectedUnits:  "907.2",
		},
		"default period": {
			identifier:     BetaIdentifier,
			now:            "2024-01-01T12:00:00Z",
			expectedPeriod: Day,
			expectedStart:  "2024-01-01T00:00:00+00:00",
			expectedEnd:    "2024-01-01T12:00:00+00:00",
			expectedUnits:  "907.2",
		},
		"upper case period": {
			identifier:     BetaIdentifier,
			period:         "DAY",
			now:            "2024-01-01T12:00:00Z",
			expectedPeriod: Day,
			expectedStart:  "2024-01-01T00:00:00+00:00",
			expectedEnd:    "2024-01-01T12:00:00+00:00",
			expectedUnits:  "907.2",
		},
		"week (wednesday)": {
			identifier:     AlphaIdentifier,
			period:         "Week",
			now:            "2024-01-03T12:00:00Z",
			expectedPeriod: Week,
			expectedStart:  "2024-01-01T00:00:00+00:00",
			expectedEnd:    "2024-01-03T12:00:00+00:00",
			expectedUnits:  "3240",
		},
		"week (sunday)": {
			identifier:     AlphaIdentifier,
			period:         "week",
			now:            "2024-01-07T10:00:00Z",
			expectedPeriod: Week,
			expectedStart:  "2024-01-01T00:00:00+00:00",
			expectedEnd:    "2024-01-07T10:00:00+00:00",
			expectedUnits:  "8316",
		},
		"week (monday midnight)": {
			identifier:     AlphaIdentifier,
			period:         "week",
			now:            "2024-01-08T00:00:00Z",
			expectedPeriod: Week,
			expectedStart:  "2024-01-08T00:00:00+00:00",
			expectedEnd:    "2024-01-08T00:00:00+00:00",
			expectedUnits:  "0",
		},
		"month": {
			identifier:     GammaIdentifier,
			period:         "month",
			now:            "2024-02-15T06:30:00Z",
			expectedPeriod: Month,
			expectedStart:  "2024-02-01T00:00:00+00:00",
			expectedEnd:    "2024-02-15T06:30:00+00:00",
			expectedUnits:  "11097",
		},
		"non utc now": {
			identifier:     BetaIdentifier,
			period:         "day",
			now:            "2024-01-01T14:00:00+02:00",
			expectedPeriod: Day,
			expectedStart:  "2024-01-01T00:00:00+00:00",
			expectedEnd:    "2024-01-01T12:00:00+00:00",
			expectedUnits:  "907.2",
		},
		"sub second precision": {
			identifier:     BetaIdentifier,
			period:         "day",
			now:            "2024-01-01T12:00:00.123456789Z",
			expectedPeriod: Day,
			expectedStart:  "2024-01-01T00:00:00+00:00",
			expectedEnd:    "2024-01-01T12:00:00.123456+00:00",
			expectedUnits:  "907.202593",
		},
		"unknown identifier": {
			identifier:  "AC:XX9999",
			period:      "day",
			now:         "2024-01-01T12:00:00Z",
			expectedErr: ErrUnknownSystem,
		},
		"unknown identifier with invalid period": {
			identifier:  "AC:XX9999",
			period:      "year",
			now:         "2024-01-01T12:00:00Z",
			expectedErr: ErrUnknownSystem,
		},
		"invalid period": {
			identifier:  AlphaIdentifier,
			period:      "year",
			now:         "2024-01-01T12:00:00Z",
			expectedErr: ErrInvalidPeriod,
		},
	}

	calculator := NewCalculator(DefaultSystems())
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			result, err := calculator.ComputeUnits(test.identifier, test.period, mustTime(t, test.now))
			if test.expectedErr != nil {
				assert.Nil(t, result)
				assert.True(t, errors.Is(err, test.expectedErr))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.identifier, result.System.Identifier)
			assert.Equal(t, test.expectedPeriod, result.Period)
			assert.Equal(t, test.expectedStart, FormatTimestamp(result.Start))
			assert.Equal(t, test.expectedEnd, FormatTimestamp(result.End))
			assert.Equal(t, test.expectedUnits, result.Units.String())
			assert.False(t, result.Units.IsNegative())
		})
	}
}

func TestComputeUnits_UnknownIdentifierNamed(t *testing.T) {
	calculator := NewCalculator(DefaultSystems())
	_, err := calculator.ComputeUnits("AC:XX9999", "", time.Now())
	assert.Contains(t, err.Error(), "AC:XX9999")
}

func TestComputeUnits_InvalidCaptureRate(t *testing.T) {
	calculator := NewCalculator(map[string]*System{
		"AC:XX0004": {Identifier: "AC:XX0004", Name: "System Delta"},
	})

	result, err := calculator.ComputeUnits("AC:XX0004", "day", time.Now())
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, ErrInvalidCaptureRate))
}

func TestCalculateUnits_ClampsNegativeDuration(t *testing.T) {
	start := mustTime(t, "2024-01-01T12:00:00Z")
	end := mustTime(t, "2024-01-01T11:00:00Z")

	units := calculateUnits(start, end, decimal.RequireFromString("0.021"))
	assert.True(t, units.IsZero())
}

func TestRoundedUnits(t *testing.T) {
	tests := map[string]struct {
		units    string
		expected string
	}{
		"round down":    {units: "907.2", expected: "907"},
		"round half up": {units: "907.5", expected: "908"},
		"zero":          {units: "0.4", expected: "0"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			r := &Result{Units: decimal.RequireFromString(test.units)}
			assert.Equal(t, test.expected, RoundedUnits(r).String())
		})
	}
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("")
	assert.NoError(t, err)
	assert.Equal(t, Day, p)

	p, err = ParsePeriod("MONTH")
	assert.NoError(t, err)
	assert.Equal(t, Month, p)

	_, err = ParsePeriod("year")
	assert.True(t, errors.Is(err, ErrInvalidPeriod))
}
