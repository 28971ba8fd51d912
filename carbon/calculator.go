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
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	isoFormat       = "2006-01-02T15:04:05-07:00"
	isoFormatMicros = "2006-01-02T15:04:05.000000-07:00"
)

// Result is a single units calculation. It is never stored.
type Result struct {
	System *System
	Period Period
	Start  time.Time
	End    time.Time
	Units  decimal.Decimal
}

// Calculator computes simulated carbon units for
// a fixed table of systems.
type Calculator struct {
	systems map[string]*System
}

// NewCalculator returns a *Calculator over systems.
func NewCalculator(systems map[string]*System) *Calculator {
	return &Calculator{systems: systems}
}

// System returns the system registered under identifier.
func (c *Calculator) System(identifier string) (*System, error) {
	system, ok := c.systems[identifier]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSystem, identifier)
	}

	return system, nil
}

// ComputeUnits returns the units captured by the system named by
// identifier between the start of the period window and now.
func (c *Calculator) ComputeUnits(identifier string, period string, now time.Time) (*Result, error) {
	system, err := c.System(identifier)
	if err != nil {
		return nil, err
	}

	if !system.CaptureRatePerSecond.IsPositive() {
		return nil, fmt.Errorf("%w: missing capture rate for %s", ErrInvalidCaptureRate, identifier)
	}

	p, err := ParsePeriod(period)
	if err != nil {
		return nil, err
	}

	// Timestamps carry microsecond precision.
	end := now.UTC().Truncate(time.Microsecond)
	start, err := p.WindowStart(end)
	if err != nil {
		return nil, err
	}

	return &Result{
		System: system,
		Period: p,
		Start:  start,
		End:    end,
		Units:  calculateUnits(start, end, system.CaptureRatePerSecond),
	}, nil
}

// calculateUnits multiplies the elapsed seconds by rate. A negative
// duration (clock moved backwards) is clamped to zero.
func calculateUnits(start time.Time, end time.Time, rate decimal.Decimal) decimal.Decimal {
	elapsed := end.Sub(start)
	if elapsed < 0 {
		elapsed = 0
	}

	seconds := decimal.NewFromInt(elapsed.Microseconds()).Shift(-6) //nolint:gomnd
	return seconds.Mul(rate).Round(UnitsPrecision)
}

// RoundedUnits returns the units of r rounded to the
// nearest whole unit.
func RoundedUnits(r *Result) decimal.Decimal {
	return r.Units.Round(0)
}

// FormatTimestamp renders t in ISO-8601 with an explicit UTC
// offset. Fractional seconds are only included when non-zero.
func FormatTimestamp(t time.Time) string {
	t = t.UTC()
	if t.Nanosecond() == 0 {
		return t.Format(isoFormat)
	}

	return t.Format(isoFormatMicros)
}
