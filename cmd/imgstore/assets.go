package main

import (
	"fmt"
	"imgstore/internal"
	"imgstore/internal/structures"
	"os"

	"github.com/spf13/cobra"
)

func newAssetsCmd(flags *structures.CliFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assets",
		Short: "Store, remove and resolve image assets",
	}
	cmd.AddCommand(newAssetsPutCmd(flags))
	cmd.AddCommand(newAssetsRmCmd(flags))
	cmd.AddCommand(newAssetsRefCmd(flags))
	return cmd
}

func newAssetsPutCmd(flags *structures.CliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "put <image-id> <file.jpg>",
		Short: "Validate and store a JPEG under the given image id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseImageID(args[0])
			if err != nil {
				return err
			}
			file, err := os.Open(args[1])
			if err != nil {
				return err
			}
			defer file.Close()

			return withAssets(flags, func(at *internal.AssetTools) error {
				if err := at.Assets.Save(cmd.Context(), id, file); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), at.Assets.ResolveReference(id))
				return nil
			})
		},
	}
}

func newAssetsRmCmd(flags *structures.CliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <image-id>",
		Short: "Remove the stored image; missing images are ignored",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseImageID(args[0])
			if err != nil {
				return err
			}
			return withAssets(flags, func(at *internal.AssetTools) error {
				return at.Assets.Remove(cmd.Context(), id)
			})
		},
	}
}

func newAssetsRefCmd(flags *structures.CliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "ref <image-id>",
		Short: "Print the reference an image would be served from",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseImageID(args[0])
			if err != nil {
				return err
			}
			return withAssets(flags, func(at *internal.AssetTools) error {
				fmt.Fprintln(cmd.OutOrStdout(), at.Assets.ResolveReference(id))
				return nil
			})
		},
	}
}
