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

package charts

import "github.com/goccy/go-json"

// Document is a renderable chart option document in the shape the
// usual browser side charting libraries expect.
type Document struct {
	Title   *Title   `json:"title,omitempty"`
	Tooltip *Tooltip `json:"tooltip,omitempty"`
	Legend  *Legend  `json:"legend,omitempty"`
	XAxis   *Axis    `json:"xAxis,omitempty"`
	YAxis   *Axis    `json:"yAxis,omitempty"`
	Series  []Series `json:"series"`
	Color   []string `json:"color,omitempty"`
}

func (d *Document) MarshalBinary() ([]byte, error) { return json.Marshal(d) }

type Title struct {
	Text string `json:"text,omitempty"`
	Left string `json:"left,omitempty"`
}

type Tooltip struct {
	Trigger string `json:"trigger"`
}

type Legend struct {
	Data []string `json:"data,omitempty"`
}

type Axis struct {
	Type string   `json:"type"`
	Data []string `json:"data,omitempty"`
}

type Series struct {
	Name   string `json:"name,omitempty"`
	Type   string `json:"type"`
	Data   any    `json:"data"`
	Smooth bool   `json:"smooth,omitempty"`
	Stack  string `json:"stack,omitempty"`
	Radius string `json:"radius,omitempty"`
}

type PieItem struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}
