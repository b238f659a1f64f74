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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dadrus/kvasir/internal/config"
	"github.com/dadrus/kvasir/internal/kvasir"
)

func TestNewAdapter(t *testing.T) {
	for uc, tc := range map[string]struct {
		specs  []config.ChartSpec
		assert func(t *testing.T, err error, adpt Adapter)
	}{
		"empty spec list": {
			assert: func(t *testing.T, err error, adpt Adapter) {
				t.Helper()

				require.NoError(t, err)
				assert.Empty(t, adpt.Names())
			},
		},
		"valid specs": {
			specs: []config.ChartSpec{
				{Name: "cpu", Type: "line", Resource: "timeseries"},
				{Name: "errors", Type: "bar", Resource: "errors"},
				{Name: "shares", Type: "pie", Resource: "summary"},
			},
			assert: func(t *testing.T, err error, adpt Adapter) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, []string{"cpu", "errors", "shares"}, adpt.Names())
				assert.True(t, adpt.Supports("cpu"))
				assert.False(t, adpt.Supports("memory"))

				resource, err := adpt.ResourceFor("shares")
				require.NoError(t, err)
				assert.Equal(t, "summary", resource)
			},
		},
		"unsupported chart type": {
			specs: []config.ChartSpec{
				{Name: "cpu", Type: "scatter", Resource: "timeseries"},
			},
			assert: func(t *testing.T, err error, _ Adapter) {
				t.Helper()

				require.ErrorIs(t, err, kvasir.ErrConfiguration)
				assert.Contains(t, err.Error(), "scatter")
			},
		},
		"duplicate chart name": {
			specs: []config.ChartSpec{
				{Name: "cpu", Type: "line", Resource: "timeseries"},
				{Name: "cpu", Type: "bar", Resource: "timeseries"},
			},
			assert: func(t *testing.T, err error, _ Adapter) {
				t.Helper()

				require.ErrorIs(t, err, kvasir.ErrConfiguration)
				assert.Contains(t, err.Error(), "multiple times")
			},
		},
	} {
		t.Run(uc, func(t *testing.T) {
			// WHEN
			adpt, err := NewAdapter(tc.specs)

			// THEN
			tc.assert(t, err, adpt)
		})
	}
}

func TestAdapterResourceForUnknownChart(t *testing.T) {
	// GIVEN
	adpt, err := NewAdapter(nil)
	require.NoError(t, err)

	// WHEN
	_, err = adpt.ResourceFor("unknown")

	// THEN
	require.ErrorIs(t, err, kvasir.ErrArgument)
}

func TestAdapterRender(t *testing.T) {
	for uc, tc := range map[string]struct {
		spec    config.ChartSpec
		payload string
		assert  func(t *testing.T, err error, doc *Document)
	}{
		"line chart with default paths": {
			spec:    config.ChartSpec{Name: "cpu", Type: "line", Resource: "timeseries", Title: "CPU", Smooth: true},
			payload: `{"labels": ["10:00", "10:05", "10:10"], "values": [1.5, 2.25, 1.75]}`,
			assert: func(t *testing.T, err error, doc *Document) {
				t.Helper()

				require.NoError(t, err)
				require.NotNil(t, doc)

				assert.Equal(t, "CPU", doc.Title.Text)
				assert.Equal(t, "axis", doc.Tooltip.Trigger)
				assert.Equal(t, []string{"10:00", "10:05", "10:10"}, doc.XAxis.Data)
				assert.Equal(t, "value", doc.YAxis.Type)
				assert.Equal(t, defaultPalette, doc.Color)

				require.Len(t, doc.Series, 1)
				assert.Equal(t, "line", doc.Series[0].Type)
				assert.True(t, doc.Series[0].Smooth)
				assert.Empty(t, doc.Series[0].Stack)
				assert.Equal(t, []float64{1.5, 2.25, 1.75}, doc.Series[0].Data)
			},
		},
		"stacked bar chart with custom paths": {
			spec: config.ChartSpec{
				Name: "errors", Type: "bar", Resource: "errors",
				LabelsPath: "data.days", ValuesPath: "data.counts", Stacked: true, Smooth: true,
			},
			payload: `{"data": {"days": ["mon", "tue"], "counts": [4, 9]}}`,
			assert: func(t *testing.T, err error, doc *Document) {
				t.Helper()

				require.NoError(t, err)
				require.NotNil(t, doc)

				assert.Nil(t, doc.Title)
				assert.Equal(t, []string{"mon", "tue"}, doc.XAxis.Data)

				require.Len(t, doc.Series, 1)
				assert.Equal(t, "bar", doc.Series[0].Type)
				assert.Equal(t, "total", doc.Series[0].Stack)
				assert.False(t, doc.Series[0].Smooth)
			},
		},
		"pie chart with payload colors": {
			spec: config.ChartSpec{
				Name: "shares", Type: "pie", Resource: "summary",
				Title: "Shares", ColorsPath: "colors",
			},
			payload: `{"labels": ["chrome", "firefox"], "values": [70, 30], "colors": ["#111111", "#222222"]}`,
			assert: func(t *testing.T, err error, doc *Document) {
				t.Helper()

				require.NoError(t, err)
				require.NotNil(t, doc)

				assert.Equal(t, "item", doc.Tooltip.Trigger)
				assert.Equal(t, []string{"chrome", "firefox"}, doc.Legend.Data)
				assert.Equal(t, []string{"#111111", "#222222"}, doc.Color)
				assert.Nil(t, doc.XAxis)

				require.Len(t, doc.Series, 1)
				assert.Equal(t, "pie", doc.Series[0].Type)
				assert.Equal(t, []PieItem{
					{Name: "chrome", Value: 70},
					{Name: "firefox", Value: 30},
				}, doc.Series[0].Data)
			},
		},
		"labels missing": {
			spec:    config.ChartSpec{Name: "cpu", Type: "line", Resource: "timeseries"},
			payload: `{"values": [1, 2]}`,
			assert: func(t *testing.T, err error, doc *Document) {
				t.Helper()

				require.ErrorIs(t, err, kvasir.ErrMalformedPayload)
				assert.Contains(t, err.Error(), "labels")
				assert.Nil(t, doc)
			},
		},
		"values not an array": {
			spec:    config.ChartSpec{Name: "cpu", Type: "line", Resource: "timeseries"},
			payload: `{"labels": ["a"], "values": 42}`,
			assert: func(t *testing.T, err error, doc *Document) {
				t.Helper()

				require.ErrorIs(t, err, kvasir.ErrMalformedPayload)
				assert.Contains(t, err.Error(), "values")
				assert.Nil(t, doc)
			},
		},
		"values contain non numeric entries": {
			spec:    config.ChartSpec{Name: "cpu", Type: "line", Resource: "timeseries"},
			payload: `{"labels": ["a", "b"], "values": [1, "two"]}`,
			assert: func(t *testing.T, err error, doc *Document) {
				t.Helper()

				require.ErrorIs(t, err, kvasir.ErrMalformedPayload)
				assert.Contains(t, err.Error(), "non numeric")
				assert.Nil(t, doc)
			},
		},
		"labels and values of different length": {
			spec:    config.ChartSpec{Name: "cpu", Type: "line", Resource: "timeseries"},
			payload: `{"labels": ["a", "b", "c"], "values": [1, 2]}`,
			assert: func(t *testing.T, err error, doc *Document) {
				t.Helper()

				require.ErrorIs(t, err, kvasir.ErrMalformedPayload)
				assert.Contains(t, err.Error(), "3 labels")
				assert.Nil(t, doc)
			},
		},
		"colors path configured but missing in payload": {
			spec: config.ChartSpec{
				Name: "shares", Type: "pie", Resource: "summary", ColorsPath: "colors",
			},
			payload: `{"labels": ["a"], "values": [1]}`,
			assert: func(t *testing.T, err error, doc *Document) {
				t.Helper()

				require.ErrorIs(t, err, kvasir.ErrMalformedPayload)
				assert.Contains(t, err.Error(), "colors")
				assert.Nil(t, doc)
			},
		},
	} {
		t.Run(uc, func(t *testing.T) {
			// GIVEN
			adpt, err := NewAdapter([]config.ChartSpec{tc.spec})
			require.NoError(t, err)

			// WHEN
			doc, err := adpt.Render(t.Context(), tc.spec.Name, []byte(tc.payload))

			// THEN
			tc.assert(t, err, doc)
		})
	}
}

func TestAdapterRenderUnknownChart(t *testing.T) {
	// GIVEN
	adpt, err := NewAdapter([]config.ChartSpec{
		{Name: "cpu", Type: "line", Resource: "timeseries"},
	})
	require.NoError(t, err)

	// WHEN
	doc, err := adpt.Render(t.Context(), "memory", []byte(`{}`))

	// THEN
	require.ErrorIs(t, err, kvasir.ErrArgument)
	assert.Nil(t, doc)
}
