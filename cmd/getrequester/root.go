package main

import (
	"fmt"

	"github.com/samvad-hq/getrequester/internal/app"
	"github.com/samvad-hq/getrequester/internal/config"
	"github.com/samvad-hq/getrequester/internal/logger"
	"github.com/spf13/cobra"
)

// newRootCmd wires the get and targets subcommands around a shared config and logger.
func newRootCmd(cfg *config.Config, log logger.Logger, opts ...app.Option) *cobra.Command {
	root := &cobra.Command{
		Use:           cfg.AppName,
		Short:         "Fetch a URL over HTTP GET and print its body or decoded JSON",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newGetCmd(cfg, log, opts...), newTargetsCmd(cfg, log, opts...))
	return root
}

func newGetCmd(cfg *config.Config, log logger.Logger, opts ...app.Option) *cobra.Command {
	var req app.Request

	cmd := &cobra.Command{
		Use:   "get [url]",
		Short: "Fetch a URL and print the body (raw) or its JSON value (json, yaml)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				req.URL = args[0]
			}
			runner, err := app.NewRunner(cfg, log, opts...)
			if err != nil {
				return err
			}
			return runner.Run(cmd.Context(), req, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&req.TargetID, "target", "t", "", "id of an entry in the targets file")
	cmd.Flags().StringVarP(&req.Format, "format", "f", "", "output format: raw, json or yaml (default from config)")
	return cmd
}

func newTargetsCmd(cfg *config.Config, log logger.Logger, opts ...app.Option) *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List the entries of the configured targets file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.TargetsFile == "" {
				return fmt.Errorf("no targets file configured (set TARGETS_FILE)")
			}
			runner, err := app.NewRunner(cfg, log, opts...)
			if err != nil {
				return err
			}
			for _, t := range runner.Targets() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", t.ID, t.Format, t.URL, t.Name)
			}
			return nil
		},
	}
}
