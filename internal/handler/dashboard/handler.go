// Copyright 2024 Dimitrij Drus <dadrus@gmx.de>
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
//
// SPDX-License-Identifier: Apache-2.0

package dashboard

import (
	"net/http"
	"slices"

	"github.com/go-http-utils/etag"
	"github.com/goccy/go-json"
	"github.com/justinas/alice"

	"github.com/dadrus/kvasir/internal/charts"
	"github.com/dadrus/kvasir/internal/handler/middleware/http/errorhandler"
	"github.com/dadrus/kvasir/internal/handler/middleware/http/methodfilter"
	"github.com/dadrus/kvasir/internal/kvasir"
	"github.com/dadrus/kvasir/internal/live"
	"github.com/dadrus/kvasir/internal/sources"
	"github.com/dadrus/kvasir/internal/x/errorchain"
)

const (
	EndpointHealth      = "/.well-known/health"
	EndpointResources   = "/api/resources/{name}"
	EndpointCharts      = "/api/charts/{name}"
	EndpointLiveMetrics = "/api/metrics/live"
	EndpointAlerts      = "/api/alerts"
	EndpointCache       = "/api/cache"
	EndpointWS          = "/ws"
)

func newDashboardHandler(
	client *sources.Client,
	adpt charts.Adapter,
	lst *live.Listener,
	eh errorhandler.ErrorHandler,
) http.Handler {
	mux := http.NewServeMux()

	get := methodfilter.New(http.MethodGet, eh)

	mux.Handle(EndpointHealth, alice.New(get).Then(health()))
	mux.Handle(EndpointResources, alice.New(get).Then(etag.Handler(resource(client, eh), false)))
	mux.Handle(EndpointCharts, alice.New(get).Then(etag.Handler(chart(client, adpt, eh), false)))
	mux.Handle(EndpointLiveMetrics, alice.New(get).Then(liveMetrics(lst)))
	mux.Handle(EndpointAlerts, alice.New(get).Then(alerts(lst)))
	mux.Handle(EndpointCache, alice.New(methodfilter.New(http.MethodDelete, eh)).Then(clearCache(client, eh)))
	mux.Handle(EndpointWS, alice.New(get).Then(stream(lst)))

	return mux
}

func health() http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, _ *http.Request) {
		writeJSON(rw, []byte(`{"status":"ok"}`))
	})
}

func resource(client *sources.Client, eh errorhandler.ErrorHandler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		name := req.PathValue("name")

		if !slices.Contains(client.Resources(), name) {
			eh.HandleError(rw, req, errorchain.NewWithMessagef(kvasir.ErrNoResource,
				"unknown resource '%s'", name))

			return
		}

		var opts *sources.FetchOptions

		if query := req.URL.Query(); len(query) != 0 {
			values := make(map[string]string, len(query))
			for name := range query {
				values[name] = query.Get(name)
			}

			opts = &sources.FetchOptions{Query: values}
		}

		payload, err := client.Fetch(req.Context(), name, opts)
		if err != nil {
			eh.HandleError(rw, req, err)

			return
		}

		writeJSON(rw, payload.Raw)
	})
}

func chart(client *sources.Client, adpt charts.Adapter, eh errorhandler.ErrorHandler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		name := req.PathValue("name")

		resource, err := adpt.ResourceFor(name)
		if err != nil {
			eh.HandleError(rw, req, err)

			return
		}

		payload, err := client.Fetch(req.Context(), resource, nil)
		if err != nil {
			eh.HandleError(rw, req, err)

			return
		}

		doc, err := adpt.Render(req.Context(), name, payload.Raw)
		if err != nil {
			eh.HandleError(rw, req, err)

			return
		}

		body, err := json.Marshal(doc)
		if err != nil {
			eh.HandleError(rw, req, errorchain.NewWithMessagef(kvasir.ErrInternal,
				"failed encoding chart '%s'", name).CausedBy(err))

			return
		}

		writeJSON(rw, body)
	})
}

func liveMetrics(lst *live.Listener) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, _ *http.Request) {
		writeJSON(rw, lst.Snapshot().Raw())
	})
}

func alerts(lst *live.Listener) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		recorded := lst.Alerts()
		if recorded == nil {
			recorded = []live.Alert{}
		}

		body, err := json.Marshal(recorded)
		if err != nil {
			rw.WriteHeader(http.StatusInternalServerError)

			return
		}

		writeJSON(rw, body)
	})
}

func clearCache(client *sources.Client, eh errorhandler.ErrorHandler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		if err := client.Clear(req.Context()); err != nil {
			eh.HandleError(rw, req, errorchain.NewWithMessage(kvasir.ErrInternal,
				"failed clearing cache").CausedBy(err))

			return
		}

		rw.WriteHeader(http.StatusNoContent)
	})
}

func writeJSON(rw http.ResponseWriter, body []byte) {
	rw.Header().Set("Content-Type", "application/json")
	rw.Write(body) //nolint:errcheck
}
