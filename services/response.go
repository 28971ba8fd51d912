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
	"encoding/json"
	"log"
	"net/http"

	"github.com/coinbase/rosetta-sdk-go/types"

	svcErrors "github.com/atmosieve/carbon-api/services/errors"
)

// writeJSON writes v as the JSON body of a response with status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("%s: unable to encode response\n", err.Error())
	}
}

// writeError writes rErr with the status of its kind.
func writeError(w http.ResponseWriter, rErr *types.Error) {
	writeJSON(w, svcErrors.HTTPStatus(rErr), svcErrors.Body(rErr))
}
