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

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/dadrus/kvasir/internal/config"
	"github.com/dadrus/kvasir/internal/kvasir"
	"github.com/dadrus/kvasir/internal/x/errorchain"
)

const (
	defaultLabelsPath = "labels"
	defaultValuesPath = "values"
)

// defaultPalette is applied when a chart does not extract its colors
// from the payload.
var defaultPalette = []string{ //nolint:gochecknoglobals
	"#5470c6", "#91cc75", "#fac858", "#ee6666", "#73c0de",
	"#3ba272", "#fc8452", "#9a60b4", "#ea7ccc",
}

// Adapter turns raw resource payloads into chart documents according
// to the configured chart specs.
type Adapter interface {
	Render(ctx context.Context, name string, payload []byte) (*Document, error)
	Supports(name string) bool
	ResourceFor(name string) (string, error)
	Names() []string
}

type adapter struct {
	specs map[string]config.ChartSpec
	order []string
}

// NewAdapter creates an Adapter for the given chart specs. Specs with
// unknown chart types or duplicate names are rejected.
func NewAdapter(specs []config.ChartSpec) (Adapter, error) {
	adpt := &adapter{specs: make(map[string]config.ChartSpec, len(specs))}

	for _, spec := range specs {
		switch spec.Type {
		case "line", "bar", "pie":
		default:
			return nil, errorchain.NewWithMessagef(kvasir.ErrConfiguration,
				"chart %s uses unsupported type '%s'", spec.Name, spec.Type)
		}

		if _, present := adpt.specs[spec.Name]; present {
			return nil, errorchain.NewWithMessagef(kvasir.ErrConfiguration,
				"chart %s is defined multiple times", spec.Name)
		}

		if len(spec.LabelsPath) == 0 {
			spec.LabelsPath = defaultLabelsPath
		}

		if len(spec.ValuesPath) == 0 {
			spec.ValuesPath = defaultValuesPath
		}

		adpt.specs[spec.Name] = spec
		adpt.order = append(adpt.order, spec.Name)
	}

	return adpt, nil
}

func (a *adapter) Supports(name string) bool {
	_, present := a.specs[name]

	return present
}

func (a *adapter) ResourceFor(name string) (string, error) {
	spec, present := a.specs[name]
	if !present {
		return "", errorchain.NewWithMessagef(kvasir.ErrArgument, "unknown chart '%s'", name)
	}

	return spec.Resource, nil
}

func (a *adapter) Names() []string {
	names := make([]string, len(a.order))
	copy(names, a.order)

	return names
}

func (a *adapter) Render(ctx context.Context, name string, payload []byte) (*Document, error) {
	spec, present := a.specs[name]
	if !present {
		return nil, errorchain.NewWithMessagef(kvasir.ErrArgument, "unknown chart '%s'", name)
	}

	logger := zerolog.Ctx(ctx)
	logger.Debug().
		Str("_chart", name).
		Str("_resource", spec.Resource).
		Msg("Rendering chart")

	labels, err := extractLabels(payload, spec.LabelsPath)
	if err != nil {
		return nil, err
	}

	values, err := extractValues(payload, spec.ValuesPath)
	if err != nil {
		return nil, err
	}

	if len(labels) != len(values) {
		return nil, errorchain.NewWithMessagef(kvasir.ErrMalformedPayload,
			"payload resolves to %d labels, but %d values", len(labels), len(values))
	}

	colors := defaultPalette
	if len(spec.ColorsPath) != 0 {
		if colors, err = extractColors(payload, spec.ColorsPath); err != nil {
			return nil, err
		}
	}

	switch spec.Type {
	case "pie":
		return buildPieDocument(spec, labels, values, colors), nil
	default:
		return buildAxisDocument(spec, labels, values, colors), nil
	}
}

func extractLabels(payload []byte, path string) ([]string, error) {
	res := gjson.GetBytes(payload, path)
	if !res.Exists() || !res.IsArray() {
		return nil, errorchain.NewWithMessagef(kvasir.ErrMalformedPayload,
			"payload does not contain an array at '%s'", path)
	}

	var labels []string

	for _, entry := range res.Array() {
		labels = append(labels, entry.String())
	}

	return labels, nil
}

func extractValues(payload []byte, path string) ([]float64, error) {
	res := gjson.GetBytes(payload, path)
	if !res.Exists() || !res.IsArray() {
		return nil, errorchain.NewWithMessagef(kvasir.ErrMalformedPayload,
			"payload does not contain an array at '%s'", path)
	}

	var values []float64

	for _, entry := range res.Array() {
		if entry.Type != gjson.Number {
			return nil, errorchain.NewWithMessagef(kvasir.ErrMalformedPayload,
				"payload contains a non numeric value at '%s'", path)
		}

		values = append(values, entry.Float())
	}

	return values, nil
}

func extractColors(payload []byte, path string) ([]string, error) {
	res := gjson.GetBytes(payload, path)
	if !res.Exists() || !res.IsArray() {
		return nil, errorchain.NewWithMessagef(kvasir.ErrMalformedPayload,
			"payload does not contain an array at '%s'", path)
	}

	var colors []string

	for _, entry := range res.Array() {
		colors = append(colors, entry.String())
	}

	return colors, nil
}

func buildAxisDocument(spec config.ChartSpec, labels []string, values []float64, colors []string) *Document {
	series := Series{
		Name:   spec.Title,
		Type:   spec.Type,
		Data:   values,
		Smooth: spec.Type == "line" && spec.Smooth,
	}

	if spec.Stacked {
		series.Stack = "total"
	}

	doc := &Document{
		Tooltip: &Tooltip{Trigger: "axis"},
		XAxis:   &Axis{Type: "category", Data: labels},
		YAxis:   &Axis{Type: "value"},
		Series:  []Series{series},
		Color:   colors,
	}

	if len(spec.Title) != 0 {
		doc.Title = &Title{Text: spec.Title, Left: "center"}
	}

	return doc
}

func buildPieDocument(spec config.ChartSpec, labels []string, values []float64, colors []string) *Document {
	items := make([]PieItem, len(values))
	for idx, value := range values {
		items[idx] = PieItem{Name: labels[idx], Value: value}
	}

	doc := &Document{
		Tooltip: &Tooltip{Trigger: "item"},
		Legend:  &Legend{Data: labels},
		Series: []Series{{
			Name:   spec.Title,
			Type:   "pie",
			Data:   items,
			Radius: "55%",
		}},
		Color: colors,
	}

	if len(spec.Title) != 0 {
		doc.Title = &Title{Text: spec.Title, Left: "center"}
	}

	return doc
}
