package main

import (
	"context"
	"fmt"
	"imgstore/internal"
	"imgstore/internal/di"
	"imgstore/internal/structures"
	"strconv"

	"github.com/spf13/cobra"
)

const defaultConfigPath = "config/config.yml"

func newRootCmd() *cobra.Command {
	flags := &structures.CliFlags{}

	cmd := &cobra.Command{
		Use:           "imgstore",
		Short:         "Image asset storage and view log",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", defaultConfigPath, "path to the YAML config file")
	cmd.PersistentFlags().BoolVarP(&flags.DebugMode, "debug", "d", false, "log to the console as well")

	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newAssetsCmd(flags))
	cmd.AddCommand(newViewsCmd(flags))
	return cmd
}

func newServeCmd(flags *structures.CliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := di.InitApp(flags)
			return err
		},
	}
}

// withToolbox builds the components, makes sure the view table exists and
// releases everything when fn returns.
func withToolbox(ctx context.Context, flags *structures.CliFlags, fn func(tb *internal.Toolbox) error) error {
	tb, err := di.InitToolbox(flags)
	if err != nil {
		return err
	}
	defer tb.Close()

	if err := tb.ViewLog.Initialize(ctx); err != nil {
		return err
	}
	return fn(tb)
}

// withAssets builds only what the asset commands use, so they keep working
// while another process holds the view log.
func withAssets(flags *structures.CliFlags, fn func(at *internal.AssetTools) error) error {
	at, err := di.InitAssetTools(flags)
	if err != nil {
		return err
	}
	defer at.Close()
	return fn(at)
}

func parseImageID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid image id %q", raw)
	}
	return id, nil
}
