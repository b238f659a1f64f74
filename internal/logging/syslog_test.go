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

package logging

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestToSyslogLevel(t *testing.T) {
	for uc, tc := range map[string]struct {
		level    zerolog.Level
		expected SyslogLevel
	}{
		"trace":    {level: zerolog.TraceLevel, expected: Debugging},
		"debug":    {level: zerolog.DebugLevel, expected: Debugging},
		"info":     {level: zerolog.InfoLevel, expected: Informational},
		"warn":     {level: zerolog.WarnLevel, expected: Warning},
		"error":    {level: zerolog.ErrorLevel, expected: Error},
		"fatal":    {level: zerolog.FatalLevel, expected: Critical},
		"panic":    {level: zerolog.PanicLevel, expected: Alert},
		"no level": {level: zerolog.NoLevel, expected: Emergency},
	} {
		t.Run(uc, func(t *testing.T) {
			assert.Equal(t, tc.expected, toSyslogLevel(tc.level))
		})
	}
}
