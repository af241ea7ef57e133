package main

import (
	"fmt"
	"imgstore/internal"
	"imgstore/internal/models"
	"imgstore/internal/structures"
	"imgstore/internal/viewlog"
	"io"
	"os"
	"text/tabwriter"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func newViewsCmd(flags *structures.CliFlags) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "views",
		Short: "Record and inspect the image view log",
	}
	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print JSON")

	cmd.AddCommand(newViewsAddCmd(flags))
	cmd.AddCommand(newViewsTodayCmd(flags, &jsonOutput))
	cmd.AddCommand(newViewsDaysCmd(flags))
	cmd.AddCommand(newViewsCountsCmd(flags, &jsonOutput))
	cmd.AddCommand(newViewsArchiveCmd(flags))
	cmd.AddCommand(newViewsInspectCmd(flags, &jsonOutput))
	return cmd
}

func newViewsAddCmd(flags *structures.CliFlags) *cobra.Command {
	var caption string

	cmd := &cobra.Command{
		Use:   "add <image-id> <username>",
		Short: "Record a view of an image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseImageID(args[0])
			if err != nil {
				return err
			}
			return withToolbox(cmd.Context(), flags, func(tb *internal.Toolbox) error {
				return tb.Reports.RecordView(cmd.Context(), args[1], id, caption)
			})
		},
	}
	cmd.Flags().StringVar(&caption, "caption", "", "image caption")
	return cmd
}

func newViewsTodayCmd(flags *structures.CliFlags, jsonOutput *bool) *cobra.Command {
	var day string

	cmd := &cobra.Command{
		Use:   "today",
		Short: "List today's views, or another day's with --day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withToolbox(cmd.Context(), flags, func(tb *internal.Toolbox) error {
				var (
					entries []*models.ViewLogEntry
					err     error
				)
				if day == "" {
					entries, err = tb.Reports.Today(cmd.Context())
				} else {
					entries, err = tb.Reports.Day(cmd.Context(), day)
				}
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(cmd.OutOrStdout(), entries)
				}
				return writeEntries(cmd.OutOrStdout(), entries)
			})
		},
	}
	cmd.Flags().StringVar(&day, "day", "", "partition to list (MMDDYYYY)")
	return cmd
}

func newViewsDaysCmd(flags *structures.CliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "days",
		Short: "List the partition keys of the last two weeks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withToolbox(cmd.Context(), flags, func(tb *internal.Toolbox) error {
				for _, day := range tb.Reports.RecentDays() {
					fmt.Fprintln(cmd.OutOrStdout(), day)
				}
				return nil
			})
		},
	}
}

func newViewsCountsCmd(flags *structures.CliFlags, jsonOutput *bool) *cobra.Command {
	var day string

	cmd := &cobra.Command{
		Use:   "counts",
		Short: "Views per image, most viewed first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withToolbox(cmd.Context(), flags, func(tb *internal.Toolbox) error {
				counts, err := tb.Reports.Counts(cmd.Context(), day)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(cmd.OutOrStdout(), counts)
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "IMAGE\tVIEWS\tCAPTION")
				for _, c := range counts {
					fmt.Fprintf(w, "%d\t%d\t%s\n", c.ImageID, c.Views, c.Caption)
				}
				return w.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&day, "day", "", "partition to count (MMDDYYYY), today by default")
	return cmd
}

func newViewsArchiveCmd(flags *structures.CliFlags) *cobra.Command {
	var day string

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Write a day partition to a compressed archive file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if day == "" {
				day = viewlog.PartitionKey(time.Now().AddDate(0, 0, -1))
			}
			return withToolbox(cmd.Context(), flags, func(tb *internal.Toolbox) error {
				n, err := tb.Archiver.ArchiveDay(cmd.Context(), day)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d entries written to %s\n", n, tb.Archiver.Path(day))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&day, "day", "", "partition to archive (MMDDYYYY), yesterday by default")
	return cmd
}

func newViewsInspectCmd(flags *structures.CliFlags, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <archive-file>",
		Short: "Print the entries of an archive file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); err != nil {
				return err
			}
			return withToolbox(cmd.Context(), flags, func(tb *internal.Toolbox) error {
				snapshot, err := tb.Archiver.LoadArchive(args[0])
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(cmd.OutOrStdout(), snapshot)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "day %s, archived %s\n", snapshot.Day, snapshot.ArchivedAt.Format(time.RFC3339))
				return writeEntries(cmd.OutOrStdout(), snapshot.Entries)
			})
		},
	}
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeEntries(out io.Writer, entries []*models.ViewLogEntry) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tIMAGE\tUSER\tCAPTION\tURI")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n", e.EntryTimestamp.Format(time.RFC3339), e.ImageID, e.Username, e.Caption, e.AssetURI)
	}
	return w.Flush()
}
