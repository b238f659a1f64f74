// Copyright 2023 Dimitrij Drus <dadrus@gmx.de>
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

package serve

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dadrus/kvasir/cmd/flags"
	"github.com/dadrus/kvasir/internal/handler/dashboard"
)

// NewCommand represents the serve command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Starts kvasir's dashboard service",
		Example: "kvasir serve",
		Run: func(cmd *cobra.Command, _ []string) {
			app, err := createApp(cmd, dashboard.Module)
			if err != nil {
				cmd.PrintErrf("Failed to initialize dashboard service: %v", err)

				os.Exit(1)
			}

			app.Run()
		},
	}

	flags.RegisterGlobalFlags(cmd)

	return cmd
}
