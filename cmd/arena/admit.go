// Copyright 2025 Menagerie Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/menagerie-labs/arena"
	"github.com/menagerie-labs/arena/internal/config"
	"github.com/menagerie-labs/arena/internal/node"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// admissionList is the YAML shape consumed by the admit command
type admissionList struct {
	Collections []struct {
		Collection       string `yaml:"collection"`
		RoyaltyRecipient string `yaml:"royaltyRecipient"`
	} `yaml:"collections"`
}

func admitRun(_ *cobra.Command, args []string, cfg *config.Config) {
	logger := commonRun()
	buf, err := os.ReadFile(args[0])
	if err != nil {
		slog.Error(fmt.Sprintf("failed to read admission list: %s", err))
		os.Exit(1)
	}
	var list admissionList
	if err := yaml.Unmarshal(buf, &list); err != nil {
		slog.Error(fmt.Sprintf("failed to parse admission list: %s", err))
		os.Exit(1)
	}
	if len(list.Collections) == 0 {
		slog.Error("admission list is empty")
		os.Exit(1)
	}
	opts, err := node.BuildOptions(cfg, logger)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
	a, err := arena.New(arena.NewConfig(opts...))
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
	defer a.Stop()
	addresses := make([]string, 0, len(list.Collections))
	royalties := make([]string, 0, len(list.Collections))
	for _, item := range list.Collections {
		addresses = append(addresses, item.Collection)
		royalties = append(royalties, item.RoyaltyRecipient)
	}
	if err := a.Ledger().AdmitBatch(time.Now(), addresses, royalties); err != nil {
		slog.Error(fmt.Sprintf("batch admission failed: %s", err))
		os.Exit(1)
	}
	logger.Info(
		fmt.Sprintf("admitted %d collections", len(addresses)),
		"component", programName,
	)
}

func admitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admit <list.yaml>",
		Short: "Admit a batch of collections from a YAML list",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.FromContext(cmd.Context())
			if cfg == nil {
				slog.Error("no config found in context")
				os.Exit(1)
			}
			admitRun(cmd, args, cfg)
		},
	}
	return cmd
}
