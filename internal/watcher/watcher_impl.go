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

package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/dadrus/kvasir/internal/kvasir"
	"github.com/dadrus/kvasir/internal/x/errorchain"
)

type listenerEntry struct {
	listener     []ChangeListener
	resolvedPath string
}

type watcher struct {
	w *fsnotify.Watcher
	m map[string]*listenerEntry
	l zerolog.Logger

	mut sync.Mutex
}

func newWatcher(logger zerolog.Logger) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errorchain.
			NewWithMessage(kvasir.ErrInternal, "failed to instantiating new file watcher").
			CausedBy(err)
	}

	return &watcher{w: fsw, m: make(map[string]*listenerEntry), l: logger}, err
}

func (w *watcher) Add(path string, cl ChangeListener) error {
	w.mut.Lock()
	defer w.mut.Unlock()

	entry := w.m[path]
	if entry == nil {
		if err := w.w.Add(path); err != nil {
			return errorchain.NewWithMessagef(kvasir.ErrInternal,
				"listener registration for %s failed", path).CausedBy(err)
		}

		resolvedPath, err := filepath.EvalSymlinks(path)
		if err != nil {
			return errorchain.NewWithMessagef(kvasir.ErrInternal,
				"listener registration for %s failed", path).CausedBy(err)
		}

		w.m[path] = &listenerEntry{
			listener:     []ChangeListener{cl},
			resolvedPath: resolvedPath,
		}
	} else {
		entry.listener = append(entry.listener, cl)
	}

	return nil
}

func (w *watcher) startWatching() {
	for {
		select {
		case evt, ok := <-w.w.Events:
			if !ok {
				w.l.Debug().Msg("File watcher closed")

				return
			}

			var (
				changed bool
				err     error
			)

			// symlink based update strategies, like those used by
			// kubernetes, result in Chmod events only
			if evt.Has(fsnotify.Chmod) {
				changed, err = w.checkForUpdate(evt.Name)
				if err != nil {
					w.l.Warn().Err(err).Msgf("Handling modification for %s failed", evt.Name)
				}
			}

			if evt.Has(fsnotify.Write) || evt.Has(fsnotify.Create) || evt.Has(fsnotify.Remove) || changed {
				w.fireOnChange(evt)
			}
		case err, ok := <-w.w.Errors:
			if !ok {
				w.l.Debug().Msg("File watcher error channel closed")

				return
			}

			w.l.Warn().Err(err).Msg("File watcher error received")
		}
	}
}

func (w *watcher) checkForUpdate(path string) (bool, error) {
	_, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			_ = w.w.Remove(path)

			return false, nil
		}

		return false, err
	}

	resolvedPath, err := filepath.EvalSymlinks(path)
	if err != nil {
		return false, err
	}

	w.mut.Lock()
	defer w.mut.Unlock()

	entry := w.m[path]
	if entry != nil && entry.resolvedPath != resolvedPath {
		_ = w.w.Remove(path)
		entry.resolvedPath = resolvedPath
		_ = w.w.Add(path)

		return true, nil
	}

	return false, nil
}

func (w *watcher) start(_ context.Context) error {
	w.l.Debug().Msg("Starting watching files for changes")

	go w.startWatching()

	return nil
}

func (w *watcher) stop(_ context.Context) error {
	w.l.Debug().Msg("Stopping watching files for changes")

	return w.w.Close()
}

func (w *watcher) fireOnChange(evt fsnotify.Event) {
	var listeners []ChangeListener

	w.mut.Lock()
	if entry, ok := w.m[evt.Name]; ok {
		listeners = entry.listener
	} else if entry, ok := w.m[filepath.Dir(evt.Name)]; ok {
		// directory watches receive events for the files within
		listeners = entry.listener
	}
	w.mut.Unlock()

	for _, listener := range listeners {
		go listener.OnChanged(w.l.Level(zerolog.InfoLevel))
	}
}
