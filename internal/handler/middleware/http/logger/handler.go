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

package logger

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/dadrus/kvasir/internal/x/opentelemetry/tracecontext"
)

// New makes the given logger available via the request context, with
// trace correlation ids attached when a span is recording.
func New(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
			ctx := req.Context()

			logCtx := logger.With()

			if traceCtx := tracecontext.Extract(ctx); traceCtx != nil {
				logCtx = logCtx.
					Str("_trace_id", traceCtx.TraceID).
					Str("_span_id", traceCtx.SpanID)

				if len(traceCtx.ParentID) != 0 {
					logCtx = logCtx.Str("_parent_id", traceCtx.ParentID)
				}
			}

			reqLog := logCtx.Logger()

			next.ServeHTTP(rw, req.WithContext(reqLog.WithContext(ctx)))
		})
	}
}
