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

package dump

import (
	"bufio"
	"bytes"
	"fmt"
	"net"
	"net/http"
	"net/http/httputil"
	"strconv"
	"strings"

	"github.com/felixge/httpsnoop"
	"github.com/rs/zerolog"

	"github.com/dadrus/kvasir/internal/x/stringx"
)

// New dumps requests and responses on trace level. Hijacked
// connections, like websocket upgrades, are dumped up to the upgrade
// response only.
func New() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
			logger := zerolog.Ctx(req.Context())

			if logger.GetLevel() != zerolog.TraceLevel {
				next.ServeHTTP(rw, req)

				return
			}

			contentType := req.Header.Get("Content-Type")
			// don't dump the body if content type is some sort of stream
			if dump, err := httputil.DumpRequest(req,
				req.ContentLength != 0 && !strings.Contains(contentType, "stream")); err == nil {
				logger.Trace().Msgf("Request: %s\n", stringx.ToString(dump))
			} else {
				logger.Trace().Err(err).Msg("Failed dumping request")
			}

			var (
				wroteHeader bool
				hijacked    bool
				buffer      bytes.Buffer
			)

			next.ServeHTTP(httpsnoop.Wrap(rw, httpsnoop.Hooks{
				Hijack: func(hijack httpsnoop.HijackFunc) httpsnoop.HijackFunc {
					return func() (net.Conn, *bufio.ReadWriter, error) {
						hijacked = true
						buffer.Reset()

						return hijack()
					}
				},
				WriteHeader: func(writeHeader httpsnoop.WriteHeaderFunc) httpsnoop.WriteHeaderFunc {
					return func(code int) {
						if !wroteHeader {
							writeStatusLine(&buffer, req.Proto, code)
							rw.Header().Write(&buffer) //nolint:errcheck
							buffer.Write([]byte("\r\n"))

							wroteHeader = true
						}

						writeHeader(code)
					}
				},
				Write: func(write httpsnoop.WriteFunc) httpsnoop.WriteFunc {
					return func(data []byte) (int, error) {
						if !wroteHeader {
							writeStatusLine(&buffer, req.Proto, http.StatusOK)
							rw.Header().Write(&buffer) //nolint:errcheck
							buffer.Write([]byte("\r\n"))

							wroteHeader = true
						}

						buffer.Write(data)

						return write(data)
					}
				},
			}), req)

			if !hijacked {
				logger.Trace().Msgf("Response: %s\n", stringx.ToString(buffer.Bytes()))
			}
		})
	}
}

func writeStatusLine(bw *bytes.Buffer, proto string, code int) {
	bw.WriteString(proto + " ")

	if text := http.StatusText(code); text != "" {
		bw.WriteString(strconv.Itoa(code))
		bw.WriteByte(' ')
		bw.WriteString(text)
		bw.WriteString("\r\n")
	} else {
		fmt.Fprintf(bw, "%03d status code %d\r\n", code, code)
	}
}
