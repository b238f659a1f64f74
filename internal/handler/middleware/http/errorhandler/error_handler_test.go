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

package errorhandler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dadrus/kvasir/internal/kvasir"
	"github.com/dadrus/kvasir/internal/x/errorchain"
)

func TestHandleError(t *testing.T) {
	for uc, tc := range map[string]struct {
		err          error
		opts         []Option
		accept       string
		expCode      int
		expBody      string
		expMediaType string
	}{
		"argument error": {
			err:     errorchain.NewWithMessage(kvasir.ErrArgument, "bad request"),
			expCode: http.StatusBadRequest,
		},
		"communication error": {
			err:     errorchain.NewWithMessage(kvasir.ErrCommunication, "upstream failed"),
			expCode: http.StatusBadGateway,
		},
		"communication timeout": {
			err:     errorchain.NewWithMessage(kvasir.ErrCommunicationTimeout, "upstream timeout"),
			expCode: http.StatusGatewayTimeout,
		},
		"malformed payload": {
			err:     errorchain.NewWithMessage(kvasir.ErrMalformedPayload, "unusable document"),
			expCode: http.StatusBadGateway,
		},
		"no resource error": {
			err:     errorchain.NewWithMessage(kvasir.ErrNoResource, "unknown resource"),
			expCode: http.StatusNotFound,
		},
		"method not allowed": {
			err:     errorchain.NewWithMessage(kvasir.ErrMethodNotAllowed, "POST is not allowed"),
			expCode: http.StatusMethodNotAllowed,
		},
		"internal error": {
			err:     errorchain.NewWithMessage(kvasir.ErrInternal, "boom"),
			expCode: http.StatusInternalServerError,
		},
		"overridden no resource code": {
			err:     errorchain.NewWithMessage(kvasir.ErrNoResource, "unknown resource"),
			opts:    []Option{WithNoResourceErrorCode(http.StatusGone)},
			expCode: http.StatusGone,
		},
		"verbose json body": {
			err:          errorchain.NewWithMessage(kvasir.ErrArgument, "bad request"),
			opts:         []Option{WithVerboseErrors(true)},
			accept:       "application/json",
			expCode:      http.StatusBadRequest,
			expBody:      `{"error": "argument error: bad request"}`,
			expMediaType: "application/json",
		},
		"verbose plain text body": {
			err:          errorchain.NewWithMessage(kvasir.ErrArgument, "bad request"),
			opts:         []Option{WithVerboseErrors(true)},
			accept:       "text/plain",
			expCode:      http.StatusBadRequest,
			expBody:      "argument error: bad request",
			expMediaType: "text/plain",
		},
	} {
		t.Run(uc, func(t *testing.T) {
			// GIVEN
			eh := New(tc.opts...)

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if len(tc.accept) != 0 {
				req.Header.Set("Accept", tc.accept)
			}

			rec := httptest.NewRecorder()

			// WHEN
			eh.HandleError(rec, req, tc.err)

			// THEN
			assert.Equal(t, tc.expCode, rec.Code)

			if len(tc.expBody) != 0 {
				assert.Contains(t, rec.Header().Get("Content-Type"), tc.expMediaType)
				assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

				if tc.expMediaType == "application/json" {
					assert.JSONEq(t, tc.expBody, rec.Body.String())
				} else {
					assert.Equal(t, tc.expBody, rec.Body.String())
				}
			} else {
				assert.Empty(t, rec.Body.String())
			}
		})
	}
}
