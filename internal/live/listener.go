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
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/dadrus/kvasir/internal/config"
)

const (
	defaultHandshakeTimeout = 5 * time.Second
	defaultBackoffMin       = 1 * time.Second
	defaultBackoffMax       = 30 * time.Second
	defaultAlertHistory     = 100
)

// Handler consumes a raw message of a registered type.
type Handler func(ctx context.Context, msg []byte)

type Option func(*Listener)

func WithDialer(dialer *websocket.Dialer) Option {
	return func(l *Listener) {
		if dialer != nil {
			l.dialer = dialer
		}
	}
}

// Listener maintains the connection to the live update feed and
// dispatches received messages by their type tag.
type Listener struct {
	enabled    bool
	url        string
	backoffMin time.Duration
	backoffMax time.Duration

	dialer   *websocket.Dialer
	log      zerolog.Logger
	handlers map[string]Handler

	snapshot *Snapshot
	alerts   *alertHistory
	updates  *hub

	cancel context.CancelFunc
	done   chan struct{}
}

func NewListener(cfg config.LiveConfig, logger zerolog.Logger, opts ...Option) *Listener {
	lst := &Listener{
		enabled:    cfg.Enabled,
		url:        cfg.URL,
		backoffMin: cfg.Backoff.Min,
		backoffMax: cfg.Backoff.Max,
		dialer: &websocket.Dialer{
			HandshakeTimeout: cfg.HandshakeTimeout,
		},
		log:      logger,
		handlers: make(map[string]Handler),
		snapshot: newSnapshot(),
		alerts:   newAlertHistory(cfg.AlertHistory),
		updates:  newHub(),
	}

	if cfg.HandshakeTimeout <= 0 {
		lst.dialer.HandshakeTimeout = defaultHandshakeTimeout
	}

	if lst.backoffMin <= 0 {
		lst.backoffMin = defaultBackoffMin
	}

	if lst.backoffMax < lst.backoffMin {
		lst.backoffMax = defaultBackoffMax
	}

	if cfg.AlertHistory <= 0 {
		lst.alerts = newAlertHistory(defaultAlertHistory)
	}

	for _, opt := range opts {
		opt(lst)
	}

	lst.OnMessage("metrics_update", lst.onMetricsUpdate)
	lst.OnMessage("alert", lst.onAlert)

	return lst
}

// OnMessage registers a handler for the given message type. It is not
// safe for use once the listener is started.
func (l *Listener) OnMessage(typ string, handler Handler) {
	l.handlers[typ] = handler
}

func (l *Listener) Snapshot() *Snapshot { return l.snapshot }

func (l *Listener) Alerts() []Alert { return l.alerts.all() }

// Subscribe registers for snapshot updates. The returned function
// cancels the subscription.
func (l *Listener) Subscribe() (<-chan []byte, func()) { return l.updates.subscribe() }

func (l *Listener) Start(_ context.Context) error {
	if !l.enabled {
		l.log.Info().Msg("Live updates are disabled")

		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.done = make(chan struct{})

	go l.run(ctx)

	l.log.Info().Str("_endpoint", l.url).Msg("Live update listener started")

	return nil
}

func (l *Listener) Stop(ctx context.Context) error {
	if l.cancel == nil {
		return nil
	}

	l.log.Info().Msg("Tearing down live update listener")

	l.cancel()

	select {
	case <-l.done:
	case <-ctx.Done():
		return ctx.Err()
	}

	l.updates.closeAll()

	return nil
}

func (l *Listener) run(ctx context.Context) {
	defer close(l.done)

	backoff := l.backoffMin

	for ctx.Err() == nil {
		conn, _, err := l.dialer.DialContext(ctx, l.url, nil)
		if err != nil {
			l.log.Warn().Err(err).
				Dur("_backoff", backoff).
				Msg("Failed connecting to live update feed")

			if !sleep(ctx, backoff) {
				return
			}

			backoff = min(backoff*2, l.backoffMax)

			continue
		}

		l.log.Info().Msg("Connected to live update feed")

		backoff = l.backoffMin

		l.consume(ctx, conn)
	}
}

func (l *Listener) consume(ctx context.Context, conn *websocket.Conn) {
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				l.log.Warn().Err(err).Msg("Live update feed disconnected")
			}

			return
		}

		l.dispatch(ctx, msg)
	}
}

func (l *Listener) dispatch(ctx context.Context, msg []byte) {
	if !gjson.ValidBytes(msg) {
		l.log.Warn().Msg("Skipping malformed live update frame")

		return
	}

	typ := gjson.GetBytes(msg, "type").String()

	handler, present := l.handlers[typ]
	if !present {
		l.log.Debug().Str("_type", typ).Msg("Dropping live update of unknown type")

		return
	}

	handler(ctx, msg)
}

func (l *Listener) onMetricsUpdate(_ context.Context, msg []byte) {
	data := gjson.GetBytes(msg, "data")
	if !data.IsObject() {
		l.log.Warn().Msg("Skipping metrics update without data object")

		return
	}

	if err := l.snapshot.merge([]byte(data.Raw)); err != nil {
		l.log.Warn().Err(err).Msg("Skipping unappliable metrics update")

		return
	}

	l.updates.publish(l.snapshot.Raw())
}

func (l *Listener) onAlert(_ context.Context, msg []byte) {
	alert := Alert{
		ID:         uuid.NewString(),
		Level:      gjson.GetBytes(msg, "level").String(),
		Message:    gjson.GetBytes(msg, "message").String(),
		ReceivedAt: time.Now(),
	}

	if data := gjson.GetBytes(msg, "data"); data.Exists() {
		alert.Data = []byte(data.Raw)
	}

	l.alerts.add(alert)

	l.log.Warn().
		Str("_level", alert.Level).
		Str("_alert", alert.Message).
		Msg("Alert received")
}

func sleep(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
