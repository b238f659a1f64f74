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

package errorchain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/iancoleman/strcase"
)

type link struct {
	err  error
	msg  string
	next *link
}

// ErrorChain wraps an ordered list of errors. The first error in the chain
// classifies the failure, the remaining ones carry the details about its
// actual cause.
type ErrorChain struct { // nolint: errname
	head *link
	tail *link
}

func New(err error) *ErrorChain {
	return (&ErrorChain{}).append(err, "")
}

func NewWithMessage(err error, message string) *ErrorChain {
	return (&ErrorChain{}).append(err, message)
}

func NewWithMessagef(err error, format string, a ...any) *ErrorChain {
	return (&ErrorChain{}).append(err, fmt.Sprintf(format, a...))
}

func (ec *ErrorChain) CausedBy(err error) *ErrorChain {
	return ec.append(err, "")
}

func (ec *ErrorChain) Error() string {
	parts := make([]string, 0, 2) // nolint: mnd

	for c := ec.head; c != nil; c = c.next {
		if len(c.msg) == 0 {
			parts = append(parts, c.err.Error())
		} else {
			parts = append(parts, c.err.Error()+": "+c.msg)
		}
	}

	return strings.Join(parts, ": ")
}

func (ec *ErrorChain) Unwrap() error {
	if ec.head == nil || ec.head.next == nil {
		return nil
	}

	return &ErrorChain{head: ec.head.next, tail: ec.tail}
}

func (ec *ErrorChain) Is(target error) bool {
	if ec.head == nil {
		return false
	}

	return errors.Is(ec.head.err, target)
}

func (ec *ErrorChain) As(target any) bool {
	if ec.head == nil {
		return false
	}

	return errors.As(ec.head.err, target)
}

func (ec *ErrorChain) Errors() []error {
	var errs []error

	for c := ec.head; c != nil; c = c.next {
		errs = append(errs, c.err)
	}

	return errs
}

func (ec *ErrorChain) String() string {
	if len(ec.head.msg) == 0 {
		return ec.head.err.Error()
	}

	return ec.head.err.Error() + ": " + ec.head.msg
}

func (ec *ErrorChain) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Code    string `json:"code"`
		Message string `json:"message,omitempty"`
	}{
		Code:    strcase.ToLowerCamel(ec.head.err.Error()),
		Message: ec.head.msg,
	})
}

func (ec *ErrorChain) append(err error, msg string) *ErrorChain {
	wrapped := &link{err: err, msg: msg}

	if ec.head == nil {
		ec.head = wrapped
	} else {
		ec.tail.next = wrapped
	}

	ec.tail = wrapped

	return ec
}
