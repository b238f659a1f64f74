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

package config

// ChartSpec binds a named chart to the resource it renders and the
// gjson paths the series data is extracted from.
type ChartSpec struct {
	Name       string `koanf:"name"        validate:"required"`
	Type       string `koanf:"type"        validate:"required,oneof=line bar pie"`
	Resource   string `koanf:"resource"    validate:"required"`
	Title      string `koanf:"title"`
	LabelsPath string `koanf:"labels_path"`
	ValuesPath string `koanf:"values_path"`
	ColorsPath string `koanf:"colors_path"`
	Smooth     bool   `koanf:"smooth"`
	Stacked    bool   `koanf:"stacked"`
}
