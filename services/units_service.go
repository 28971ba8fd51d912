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

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coinbase/rosetta-sdk-go/types"

	"github.com/atmosieve/carbon-api/carbon"
	"github.com/atmosieve/carbon-api/configuration"
	"github.com/atmosieve/carbon-api/observability"
	svcErrors "github.com/atmosieve/carbon-api/services/errors"
)

// unknownSystemLabel replaces unknown identifiers in metric labels.
const unknownSystemLabel = "unknown"

// UnitsAPIService computes simulated carbon units.
type UnitsAPIService struct {
	config     *configuration.Configuration
	calculator *carbon.Calculator
	metrics    *observability.Metrics

	now func() time.Time
}

// NewUnitsAPIService returns a new *UnitsAPIService.
func NewUnitsAPIService(
	cfg *configuration.Configuration,
	metrics *observability.Metrics,
) *UnitsAPIService {
	return &UnitsAPIService{
		config:     cfg,
		calculator: carbon.NewCalculator(cfg.Systems),
		metrics:    metrics,
		now:        time.Now,
	}
}

// Units implements /carbon/{identifier}/units.
func (s *UnitsAPIService) Units(
	ctx context.Context,
	identifier string,
	period string,
) (*UnitsResponse, *types.Error) {
	result, err := s.calculator.ComputeUnits(identifier, period, s.now())
	if err != nil {
		label := identifier
		if errors.Is(err, carbon.ErrUnknownSystem) {
			label = unknownSystemLabel
		}
		s.metrics.UnitsRequests.WithLabelValues(label, observability.OutcomeError).Inc()

		return nil, unitsError(identifier, err)
	}

	s.metrics.UnitsRequests.WithLabelValues(identifier, observability.OutcomeSuccess).Inc()

	return &UnitsResponse{
		SystemIdentifier:     result.System.Identifier,
		SystemName:           result.System.Name,
		PeriodType:           string(result.Period),
		CalculationStartTime: carbon.FormatTimestamp(result.Start),
		CalculationEndTime:   carbon.FormatTimestamp(result.End),
		SimulatedCarbonUnits: result.Units.InexactFloat64(),
	}, nil
}

func unitsError(identifier string, err error) *types.Error {
	switch {
	case errors.Is(err, carbon.ErrUnknownSystem):
		return svcErrors.WrapErr(svcErrors.ErrUnknownSystem, errors.New(identifier))
	case errors.Is(err, carbon.ErrInvalidPeriod):
		return svcErrors.ErrInvalidPeriod
	case errors.Is(err, carbon.ErrInvalidCaptureRate):
		return svcErrors.WrapErr(
			svcErrors.ErrSystemMisconfigured,
			fmt.Errorf("Missing capture rate for %s", identifier), //nolint:stylecheck
		)
	default:
		return svcErrors.WrapErr(svcErrors.ErrInternal, err)
	}
}
