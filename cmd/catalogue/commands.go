package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/AkhmadOnline/transport-catalogue/internal/buildinfo"
	"github.com/AkhmadOnline/transport-catalogue/internal/logging"
	"github.com/AkhmadOnline/transport-catalogue/internal/requests"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "catalogue",
		Short:        "Answer transport catalogue batch documents",
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}
	root.AddCommand(newJSONCommand(), newTextCommand())
	return root
}

func newJSONCommand() *cobra.Command {
	var input, output string
	var cacheSize int
	var verbose bool

	cmd := &cobra.Command{
		Use:   "json",
		Short: "Read a JSON document and write the JSON answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, closeIn, err := openInput(cmd, input)
			if err != nil {
				return err
			}
			defer closeIn()

			out, closeOut, err := openOutput(cmd, output)
			if err != nil {
				return err
			}
			defer closeOut()

			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			opts := requests.Options{
				Logger:    logging.NewStructuredLogger(cmd.ErrOrStderr(), level),
				CacheSize: cacheSize,
			}
			return requests.ProcessJSON(cmd.Context(), in, out, opts)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "input document (default stdin)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().IntVar(&cacheSize, "route-cache-size", 0, "number of itineraries to cache")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level to stderr")
	return cmd
}

func newTextCommand() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "text",
		Short: "Read commands and queries in the text format and print the answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, closeIn, err := openInput(cmd, input)
			if err != nil {
				return err
			}
			defer closeIn()

			return requests.ProcessText(in, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "input file (default stdin)")
	return cmd
}

func openInput(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { logging.SafeCloseWithLogging(f, nil, "input_file") }, nil
}

func openOutput(cmd *cobra.Command, path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { logging.SafeCloseWithLogging(f, nil, "output_file") }, nil
}
