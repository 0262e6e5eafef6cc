// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package cli wires configuration, logging and the engine into the
// gyro-pointer command tree.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/relabs-tech/gyro_pointer/internal/config"
	"github.com/relabs-tech/gyro_pointer/internal/observability"
)

// Version is set at build time:
// go build -ldflags "-X github.com/relabs-tech/gyro_pointer/internal/cli.Version=1.2.3"
var Version = "dev"

// state is shared by the root command and its subcommands.
type state struct {
	configPath string
	cfg        *config.Config
}

// NewRootCmd builds the gyro-pointer command tree.
func NewRootCmd() *cobra.Command {
	st := &state{}
	root := &cobra.Command{
		Use:           "gyro-pointer",
		Short:         "Drive the desktop pointer from a phone's orientation sensors.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(st.configPath)
			if err != nil {
				observability.InitializeLogger(config.LoggerConfig{Level: "info", Format: "console", ServiceName: "gyro-pointer"})
				return fmt.Errorf("failed to load config: %w", err)
			}
			st.cfg = cfg
			observability.InitializeLogger(cfg.LoggerConfig)
			observability.GetLogger().Debug("starting gyro-pointer",
				zap.String("version", Version), zap.String("config", st.configPath))
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&st.configPath, "config", "c", config.DefaultPath, "KEY=VALUE config file")
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	root.AddCommand(
		newServeCmd(st),
		newSimulateCmd(st),
		newMonitorCmd(st),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command tree and returns the process exit code.
func Execute(ctx context.Context) int {
	defer observability.Sync()
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "gyro-pointer:", err)
		return 1
	}
	return 0
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
		},
	}
}
