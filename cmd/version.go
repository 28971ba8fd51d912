// Copyright 2020 Coinbase, Inc.
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

package cmd

import (
	"github.com/ethereum/go-ethereum/params"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/atmosieve/carbon-api/configuration"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print carbon-api version",
	Run:   runVersionCmd,
}

func runVersionCmd(cmd *cobra.Command, args []string) {
	color.Cyan("carbon-api %s", configuration.MiddlewareVersion)
	color.Cyan("go-ethereum %s", params.VersionWithMeta)
}
