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

package methodfilter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dadrus/kvasir/internal/handler/middleware/http/errorhandler"
)

func TestMethodFilter(t *testing.T) {
	for uc, tc := range map[string]struct {
		method     string
		expCode    int
		expHandled bool
	}{
		"allowed method":     {method: http.MethodGet, expCode: http.StatusOK, expHandled: true},
		"not allowed method": {method: http.MethodPost, expCode: http.StatusMethodNotAllowed},
	} {
		t.Run(uc, func(t *testing.T) {
			// GIVEN
			var handled bool

			handler := New(http.MethodGet, errorhandler.New())(
				http.HandlerFunc(func(rw http.ResponseWriter, _ *http.Request) {
					handled = true

					rw.WriteHeader(http.StatusOK)
				}))

			req := httptest.NewRequest(tc.method, "/test", nil)
			rec := httptest.NewRecorder()

			// WHEN
			handler.ServeHTTP(rec, req)

			// THEN
			assert.Equal(t, tc.expCode, rec.Code)
			assert.Equal(t, tc.expHandled, handled)
		})
	}
}
