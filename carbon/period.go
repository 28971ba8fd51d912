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
	"strings"
	"time"
)

// Period selects the calculation window.
type Period string

const (
	// Day starts the window at midnight of the current day.
	Day Period = "day"

	// Week starts the window at midnight of the current
	// ISO week's Monday.
	Week Period = "week"

	// Month starts the window at midnight of the first
	// day of the current month.
	Month Period = "month"

	// DefaultPeriod is used when no period is provided.
	DefaultPeriod = Day
)

// Periods are all supported periods.
var Periods = []Period{Day, Week, Month}

// ParsePeriod normalizes a user provided period. An empty
// value resolves to DefaultPeriod and matching is case
// insensitive.
func ParsePeriod(value string) (Period, error) {
	if len(value) == 0 {
		return DefaultPeriod, nil
	}

	p := Period(strings.ToLower(value))
	for _, period := range Periods {
		if period == p {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrInvalidPeriod, value)
}

// WindowStart returns the UTC start of the window
// containing now.
func (p Period) WindowStart(now time.Time) (time.Time, error) {
	now = now.UTC()
	year, month, day := now.Date()

	switch p {
	case Day:
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), nil
	case Week:
		// Monday is day zero of the ISO week.
		weekday := (int(now.Weekday()) + 6) % 7 //nolint:gomnd
		monday := now.AddDate(0, 0, -weekday)
		year, month, day = monday.Date()
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), nil
	case Month:
		return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), nil
	default:
		return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidPeriod, p)
	}
}
