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
	"maps"
	"path/filepath"
	"strings"

	"github.com/dadrus/kvasir/internal/config"
)

// Target is the resolved location of a logical resource. Either URL or
// Path is set, never both.
type Target struct {
	URL  string
	Path string
}

func (t Target) Static() bool { return len(t.Path) != 0 }

func (t Target) String() string {
	if t.Static() {
		return t.Path
	}

	return t.URL
}

// Resolver maps a logical resource name to the location it is served
// from. Resolution is pure and total. Whether the resolved target
// actually exists surfaces later as a fetch error.
type Resolver interface {
	Resolve(name string) Target
}

// NewResolver creates the resolution strategy matching the configured
// mode. The endpoint table is copied and immutable afterwards.
func NewResolver(conf config.SourcesConfig) Resolver {
	endpoints := maps.Clone(conf.Endpoints)

	if conf.Mode == config.StaticMode {
		return &staticResolver{dir: conf.StaticDir, endpoints: endpoints}
	}

	return &liveResolver{
		baseURL:   strings.TrimSuffix(conf.BaseURL, "/"),
		endpoints: endpoints,
	}
}

type liveResolver struct {
	baseURL   string
	endpoints map[string]string
}

func (r *liveResolver) Resolve(name string) Target {
	if path, ok := r.endpoints[name]; ok {
		return Target{URL: r.baseURL + ensureLeadingSlash(path)}
	}

	return Target{URL: r.baseURL + "/api/" + name}
}

type staticResolver struct {
	dir       string
	endpoints map[string]string
}

func (r *staticResolver) Resolve(name string) Target {
	if path, ok := r.endpoints[name]; ok {
		return Target{Path: filepath.Join(r.dir, path)}
	}

	return Target{Path: filepath.Join(r.dir, name+".json")}
}

func ensureLeadingSlash(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}

	return "/" + path
}
