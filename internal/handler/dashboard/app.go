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
	"fmt"
	"net/http"
	"strings"

	"github.com/ccoveille/go-safecast"
	"github.com/justinas/alice"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"

	"github.com/dadrus/kvasir/internal/charts"
	"github.com/dadrus/kvasir/internal/config"
	"github.com/dadrus/kvasir/internal/handler/middleware/http/accesslog"
	"github.com/dadrus/kvasir/internal/handler/middleware/http/dump"
	"github.com/dadrus/kvasir/internal/handler/middleware/http/errorhandler"
	"github.com/dadrus/kvasir/internal/handler/middleware/http/logger"
	"github.com/dadrus/kvasir/internal/handler/middleware/http/otelmetrics"
	"github.com/dadrus/kvasir/internal/handler/middleware/http/passthrough"
	"github.com/dadrus/kvasir/internal/handler/middleware/http/recovery"
	"github.com/dadrus/kvasir/internal/live"
	"github.com/dadrus/kvasir/internal/sources"
	"github.com/dadrus/kvasir/internal/x"
	"github.com/dadrus/kvasir/internal/x/loggeradapter"
)

func newApp(
	conf *config.Configuration,
	log zerolog.Logger,
	client *sources.Client,
	adpt charts.Adapter,
	lst *live.Listener,
) *http.Server {
	service := conf.Serve

	eh := errorhandler.New(
		errorhandler.WithVerboseErrors(service.Respond.Verbose),
		errorhandler.WithArgumentErrorCode(service.Respond.With.ArgumentError.Code),
		errorhandler.WithCommunicationErrorCode(service.Respond.With.CommunicationError.Code),
		errorhandler.WithInternalServerErrorCode(service.Respond.With.InternalError.Code),
		errorhandler.WithNoResourceErrorCode(service.Respond.With.NoResourceError.Code),
	)

	hc := alice.New(
		recovery.New(eh),
		func(next http.Handler) http.Handler {
			return otelhttp.NewHandler(
				next,
				"",
				otelhttp.WithTracerProvider(otel.GetTracerProvider()),
				otelhttp.WithServerName("dashboard"),
				otelhttp.WithSpanNameFormatter(func(_ string, req *http.Request) string {
					return fmt.Sprintf("EntryPoint %s %s%s",
						strings.ToLower(x.IfThenElse(req.TLS != nil, "https", "http")),
						req.Host, req.URL.Path)
				}),
			)
		},
		x.IfThenElseExec(conf.Metrics.Enabled,
			func() func(http.Handler) http.Handler {
				return otelmetrics.New(
					otelmetrics.WithSubsystem("dashboard"),
					otelmetrics.WithServerName(service.Address()),
				)
			},
			func() func(http.Handler) http.Handler { return passthrough.New },
		),
		accesslog.New(log),
		logger.New(log),
		dump.New(),
		x.IfThenElseExec(service.CORS != nil,
			func() func(http.Handler) http.Handler {
				return cors.New(
					cors.Options{
						AllowedOrigins:   service.CORS.AllowedOrigins,
						AllowedMethods:   service.CORS.AllowedMethods,
						AllowedHeaders:   service.CORS.AllowedHeaders,
						AllowCredentials: service.CORS.AllowCredentials,
						ExposedHeaders:   service.CORS.ExposedHeaders,
						MaxAge:           int(service.CORS.MaxAge.Seconds()),
					},
				).Handler
			},
			func() func(http.Handler) http.Handler { return passthrough.New },
		),
	).Then(newDashboardHandler(client, adpt, lst, eh))

	maxHeaderBytes, err := safecast.ToInt(uint64(service.BufferLimit.Read))
	if err != nil {
		maxHeaderBytes = http.DefaultMaxHeaderBytes
	}

	return &http.Server{
		Handler:        hc,
		Addr:           service.Address(),
		ReadTimeout:    service.Timeout.Read,
		WriteTimeout:   service.Timeout.Write,
		IdleTimeout:    service.Timeout.Idle,
		MaxHeaderBytes: maxHeaderBytes,
		ErrorLog:       loggeradapter.NewStdLogger(log),
	}
}
