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

import "sync"

const subscriberBufferSize = 16

// hub fans received updates out to subscribers. A subscriber not
// draining its channel loses the subscription, not the hub its
// throughput.
type hub struct {
	mut  sync.Mutex
	subs map[chan []byte]struct{}
}

func newHub() *hub {
	return &hub{subs: make(map[chan []byte]struct{})}
}

func (h *hub) subscribe() (<-chan []byte, func()) {
	ch := make(chan []byte, subscriberBufferSize)

	h.mut.Lock()
	h.subs[ch] = struct{}{}
	h.mut.Unlock()

	return ch, func() { h.drop(ch) }
}

func (h *hub) publish(msg []byte) {
	h.mut.Lock()
	defer h.mut.Unlock()

	for ch := range h.subs {
		select {
		case ch <- msg:
		default:
			delete(h.subs, ch)
			close(ch)
		}
	}
}

func (h *hub) drop(ch chan []byte) {
	h.mut.Lock()
	defer h.mut.Unlock()

	if _, present := h.subs[ch]; present {
		delete(h.subs, ch)
		close(ch)
	}
}

func (h *hub) closeAll() {
	h.mut.Lock()
	defer h.mut.Unlock()

	for ch := range h.subs {
		delete(h.subs, ch)
		close(ch)
	}
}
