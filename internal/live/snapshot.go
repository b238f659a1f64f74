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

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/tidwall/gjson"

	"github.com/dadrus/kvasir/internal/kvasir"
	"github.com/dadrus/kvasir/internal/x/errorchain"
)

// Snapshot is the last known metrics document. It survives upstream
// disconnects and is only ever updated via merge patches.
type Snapshot struct {
	mut     sync.RWMutex
	raw     []byte
	version uint64
}

func newSnapshot() *Snapshot {
	return &Snapshot{raw: []byte(`{}`)}
}

// Raw returns a copy of the current document.
func (s *Snapshot) Raw() []byte {
	s.mut.RLock()
	defer s.mut.RUnlock()

	raw := make([]byte, len(s.raw))
	copy(raw, s.raw)

	return raw
}

func (s *Snapshot) Get(path string) gjson.Result {
	s.mut.RLock()
	defer s.mut.RUnlock()

	return gjson.GetBytes(s.raw, path)
}

// Version is incremented with every applied patch.
func (s *Snapshot) Version() uint64 {
	s.mut.RLock()
	defer s.mut.RUnlock()

	return s.version
}

func (s *Snapshot) merge(patch []byte) error {
	s.mut.Lock()
	defer s.mut.Unlock()

	merged, err := jsonpatch.MergePatch(s.raw, patch)
	if err != nil {
		return errorchain.NewWithMessage(kvasir.ErrMalformedPayload,
			"failed applying metrics patch").CausedBy(err)
	}

	s.raw = merged
	s.version++

	return nil
}
