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

package live

import (
	"sync"
	"time"

	"github.com/goccy/go-json"
)

// Alert is a single alert message received from the upstream feed.
type Alert struct {
	ID         string          `json:"id"`
	Level      string          `json:"level"`
	Message    string          `json:"message"`
	ReceivedAt time.Time       `json:"received_at"`
	Data       json.RawMessage `json:"data,omitempty"`
}

// alertHistory keeps the most recent alerts, newest first.
type alertHistory struct {
	mut    sync.Mutex
	limit  int
	alerts []Alert
}

func newAlertHistory(limit int) *alertHistory {
	return &alertHistory{limit: limit}
}

func (h *alertHistory) add(alert Alert) {
	h.mut.Lock()
	defer h.mut.Unlock()

	h.alerts = append([]Alert{alert}, h.alerts...)
	if len(h.alerts) > h.limit {
		h.alerts = h.alerts[:h.limit]
	}
}

func (h *alertHistory) all() []Alert {
	h.mut.Lock()
	defer h.mut.Unlock()

	alerts := make([]Alert, len(h.alerts))
	copy(alerts, h.alerts)

	return alerts
}
