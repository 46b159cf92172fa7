// Copyright (c) 2025, The Agro24 Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package market

import (
	"log/slog"
	"net/http"
	"slices"

	cnserrors "github.com/agro24/agrod/pkg/errors"
	"github.com/agro24/agrod/pkg/serializer"
	"github.com/agro24/agrod/pkg/server"
)

// Query parameter names.
const (
	ParamState    = "state"
	ParamCity     = "city"
	ParamCropType = "crop_type"
)

const (
	msgMissingParams     = "Missing required parameters"
	msgNoStates          = "No states available"
	msgNoCropsInDistrict = "No crop data available for this district"
)

// selection is a validated (state, district, crop) query.
type selection struct {
	state    string
	district string
	crop     string
}

func parseSelection(r *http.Request) (selection, bool) {
	q := r.URL.Query()
	sel := selection{
		state:    q.Get(ParamState),
		district: q.Get(ParamCity),
		crop:     q.Get(ParamCropType),
	}
	return sel, sel.state != "" && sel.district != "" && sel.crop != ""
}

// HandleInsights serves the production series of a metric column. The
// selection is validated level by level so each missing level has its own 404.
func (e *Engine) HandleInsights(w http.ResponseWriter, r *http.Request) {
	sel, ok := parseSelection(r)
	if !ok {
		server.WriteError(w, r, http.StatusBadRequest, cnserrors.ErrCodeInvalidRequest, msgMissingParams)
		return
	}

	slog.Debug("market insights",
		"requestID", server.RequestID(r.Context()),
		"state", sel.state,
		"district", sel.district,
		"crop", sel.crop,
	)

	points, err := e.Insights(sel.state, sel.district, sel.crop)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to extract series")
		return
	}

	serializer.RespondJSON(w, http.StatusOK, points)
}

// HandlePrices serves the price series of a column. Unlike HandleInsights it
// does not validate the state and district levels separately; an unknown
// selection yields the extractor's "no data" message.
func (e *Engine) HandlePrices(w http.ResponseWriter, r *http.Request) {
	sel, ok := parseSelection(r)
	if !ok {
		server.WriteError(w, r, http.StatusBadRequest, cnserrors.ErrCodeInvalidRequest, msgMissingParams)
		return
	}

	slog.Debug("market prices",
		"requestID", server.RequestID(r.Context()),
		"state", sel.state,
		"district", sel.district,
		"crop", sel.crop,
	)

	points, err := e.ExtractPriceSeries(sel.state, sel.district, sel.crop)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to extract price series")
		return
	}

	serializer.RespondJSON(w, http.StatusOK, points)
}

// HandleStates lists the known states.
func (e *Engine) HandleStates(w http.ResponseWriter, r *http.Request) {
	states := e.States()
	if len(states) == 0 {
		server.WriteError(w, r, http.StatusNotFound, cnserrors.ErrCodeNotFound, msgNoStates)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, states)
}

// HandleDistricts lists the districts of a state.
func (e *Engine) HandleDistricts(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get(ParamState)
	if state == "" {
		server.WriteError(w, r, http.StatusBadRequest, cnserrors.ErrCodeInvalidRequest, msgMissingParams)
		return
	}

	districts := e.Districts(state)
	if len(districts) == 0 {
		server.WriteError(w, r, http.StatusNotFound, cnserrors.ErrCodeNotFound, MsgStateNotFound)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, districts)
}

// HandleCrops lists the metric columns available for a district.
func (e *Engine) HandleCrops(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	state, district := q.Get(ParamState), q.Get(ParamCity)
	if state == "" || district == "" {
		server.WriteError(w, r, http.StatusBadRequest, cnserrors.ErrCodeInvalidRequest, msgMissingParams)
		return
	}

	districts := e.Districts(state)
	if len(districts) == 0 {
		server.WriteError(w, r, http.StatusNotFound, cnserrors.ErrCodeNotFound, MsgStateNotFound)
		return
	}
	if !slices.Contains(districts, district) {
		server.WriteError(w, r, http.StatusNotFound, cnserrors.ErrCodeNotFound, MsgDistrictNotFound)
		return
	}

	metrics := e.AvailableMetrics(state, district)
	if len(metrics) == 0 {
		server.WriteError(w, r, http.StatusNotFound, cnserrors.ErrCodeNotFound, msgNoCropsInDistrict)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, metrics)
}
