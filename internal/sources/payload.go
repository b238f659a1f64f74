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

package sources

import (
	"time"

	"github.com/goccy/go-json"

	"github.com/dadrus/kvasir/internal/kvasir"
	"github.com/dadrus/kvasir/internal/x/errorchain"
)

// Payload is a fetched resource document.
type Payload struct {
	Resource  string
	Raw       []byte
	FetchedAt time.Time
	FromCache bool
}

func (p *Payload) Decode(v any) error {
	if err := json.Unmarshal(p.Raw, v); err != nil {
		return errorchain.NewWithMessagef(kvasir.ErrMalformedPayload,
			"failed decoding payload of %s", p.Resource).CausedBy(err)
	}

	return nil
}

// envelope is the cache representation of a payload. The fetch time
// stamp is kept so cached payloads expose their age. Validity is
// enforced by the cache backend itself.
type envelope struct {
	FetchedAt int64           `json:"fetched_at"`
	Payload   json.RawMessage `json:"payload"`
}

func marshalEnvelope(fetchedAt time.Time, payload []byte) ([]byte, error) {
	return json.Marshal(envelope{FetchedAt: fetchedAt.UnixNano(), Payload: payload})
}

func unmarshalEnvelope(resource string, raw []byte) (*Payload, error) {
	var env envelope

	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, errorchain.NewWithMessagef(kvasir.ErrInternal,
			"corrupt cache entry for %s", resource).CausedBy(err)
	}

	return &Payload{
		Resource:  resource,
		Raw:       env.Payload,
		FetchedAt: time.Unix(0, env.FetchedAt),
		FromCache: true,
	}, nil
}
