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

package loggeradapter

import (
	"log"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dadrus/kvasir/internal/x/stringx"
)

// NewStdLogger adapts the given zerolog logger to a *log.Logger, so it can
// be used e.g. as the ErrorLog of an http.Server. Everything written to the
// returned logger ends up on error level.
func NewStdLogger(logger zerolog.Logger) *log.Logger {
	return log.New(writerFunc(func(data []byte) (int, error) {
		logger.Error().Msg(strings.TrimSuffix(stringx.ToString(data), "\n"))

		return len(data), nil
	}), "", 0)
}

type writerFunc func([]byte) (int, error)

func (f writerFunc) Write(data []byte) (int, error) { return f(data) }
