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

package validation

import (
	"reflect"
	"strconv"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

// the default "gt" translation renders durations as plain int64 nanoseconds,
// which is useless in config error messages. This one keeps the parameter
// formatting as written in the validation tag.
func registerTranslations(validate *validator.Validate, trans ut.Translator) error {
	return validate.RegisterTranslation(
		"gt",
		trans,
		func(ut ut.Translator) error {
			return ut.Add("gt-duration", "{0} must be greater than {1}", false)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			kind := fe.Kind()
			if kind == reflect.Ptr {
				kind = fe.Type().Elem().Kind()
			}

			if kind == reflect.Int64 && fe.Type() == reflect.TypeOf(time.Duration(0)) {
				if translation, err := ut.T("gt-duration", fe.Field(), fe.Param()); err == nil {
					return translation
				}

				return fe.Error()
			}

			f64, err := strconv.ParseFloat(fe.Param(), 64)
			if err != nil {
				return fe.Error()
			}

			translation, err := ut.T("gt-number", fe.Field(), ut.FmtNumber(f64, 0))
			if err != nil {
				return fe.Error()
			}

			return translation
		},
	)
}
