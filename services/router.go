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
	"io"
	"net/http"

	"github.com/coinbase/rosetta-sdk-go/server"
	"github.com/gorilla/mux"

	"github.com/atmosieve/carbon-api/configuration"
	"github.com/atmosieve/carbon-api/observability"
	svcErrors "github.com/atmosieve/carbon-api/services/errors"
	"github.com/atmosieve/carbon-api/services/relay"
)

const (
	// UnitsRoute serves simulated carbon units.
	UnitsRoute = "/carbon/{identifier}/units"

	// MintRoute mints credits with the owner account.
	MintRoute = "/api/mint-credits-backend"

	// TokenInfoRoute serves token contract details.
	TokenInfoRoute = "/api/token-info"

	// MetricsRoute serves Prometheus metrics.
	MetricsRoute = "/metrics"

	// maxBodyBytes bounds the size of a mint request body.
	maxBodyBytes = 1 << 20
)

// Router routes requests to the servicers.
type Router struct {
	units *UnitsAPIService
	relay *relay.APIService
	token *TokenAPIService

	metrics *observability.Metrics
}

// NewRouter returns a Router wired to client. client may be nil
// when the node could not be dialed.
func NewRouter(
	cfg *configuration.Configuration,
	client Client,
	metrics *observability.Metrics,
) *Router {
	var relayClient relay.Client
	if client != nil {
		relayClient = client
	}

	return &Router{
		units:   NewUnitsAPIService(cfg, metrics),
		relay:   relay.NewAPIService(cfg, relayClient, metrics),
		token:   NewTokenAPIService(cfg, client, metrics),
		metrics: metrics,
	}
}

// Relay returns the mint servicer.
func (r *Router) Relay() *relay.APIService {
	return r.relay
}

// Handler returns the HTTP handler of all routes with request
// logging and CORS for every origin.
func (r *Router) Handler() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc(UnitsRoute, r.handleUnits).Methods(http.MethodGet)
	router.HandleFunc(MintRoute, r.handleMint).Methods(http.MethodPost)
	router.HandleFunc(TokenInfoRoute, r.handleTokenInfo).Methods(http.MethodGet)
	router.Handle(MetricsRoute, r.metrics.Handler()).Methods(http.MethodGet)

	return server.CorsMiddleware(server.LoggerMiddleware(router))
}

func (r *Router) handleUnits(w http.ResponseWriter, req *http.Request) {
	resp, rErr := r.units.Units(
		req.Context(),
		mux.Vars(req)["identifier"],
		req.URL.Query().Get("period"),
	)
	if rErr != nil {
		writeError(w, rErr)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (r *Router) handleMint(w http.ResponseWriter, req *http.Request) {
	body, err := io.ReadAll(io.LimitReader(req.Body, maxBodyBytes))
	if err != nil {
		writeError(w, svcErrors.WrapErr(svcErrors.ErrMissingBody, err))
		return
	}

	resp, rErr := r.relay.MintCredits(req.Context(), body)
	if rErr != nil {
		writeError(w, rErr)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (r *Router) handleTokenInfo(w http.ResponseWriter, req *http.Request) {
	resp, rErr := r.token.TokenInfo(req.Context())
	if rErr != nil {
		writeError(w, rErr)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
