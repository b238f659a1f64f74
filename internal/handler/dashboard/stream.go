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

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/dadrus/kvasir/internal/live"
)

// nolint: gochecknoglobals
var upgrader = websocket.Upgrader{}

// stream upgrades the connection and forwards snapshot updates from
// the live listener. The full current snapshot is sent on attach.
func stream(lst *live.Listener) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		logger := zerolog.Ctx(req.Context())

		conn, err := upgrader.Upgrade(rw, req, nil)
		if err != nil {
			// the upgrader has already replied
			logger.Debug().Err(err).Msg("Websocket upgrade failed")

			return
		}
		defer conn.Close()

		updates, unsubscribe := lst.Subscribe()
		defer unsubscribe()

		if err = conn.WriteMessage(websocket.TextMessage, lst.Snapshot().Raw()); err != nil {
			return
		}

		closed := make(chan struct{})

		go func() {
			defer close(closed)

			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-closed:
				return
			case update, open := <-updates:
				if !open {
					return
				}

				if err = conn.WriteMessage(websocket.TextMessage, update); err != nil {
					return
				}
			}
		}
	})
}
