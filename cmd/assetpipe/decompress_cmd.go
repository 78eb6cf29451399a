// cmd/assetpipe/decompress_cmd.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"

	"github.com/creativeyann17/go-assetpipe/pkg/assetpipe"
	"github.com/creativeyann17/go-assetpipe/pkg/decompress"
)

func decompressCmd() *cobra.Command {
	var inputPath, outputPath, password string
	var clear bool
	var verbose, quiet bool

	cmd := &cobra.Command{
		Use:   "decompress",
		Short: "Unpack a ZIP or tar.xz archive into a folder",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &decompress.Options{
				InputPath:  inputPath,
				OutputPath: outputPath,
				Password:   password,
				Verbose:    verbose,
				Quiet:      quiet,
			}
			if err := opts.Validate(); err != nil {
				return err
			}

			// Logging helper
			log := func(format string, args ...interface{}) {
				if !quiet {
					fmt.Printf(format+"\n", args...)
				}
			}

			log("Starting decompression...")
			log("  Input:  %s", opts.InputPath)
			log("  Output: %s", opts.OutputPath)
			if clear {
				log("  Mode:   CLEAR (output folder emptied first)")
			}
			log("")

			if clear {
				if err := decompress.ClearDir(opts.OutputPath); err != nil {
					return err
				}
			}

			if verbose {
				opts.Hooks = &assetpipe.Hooks{
					PostEntry: func(e *assetpipe.Entry) {
						fmt.Printf("  extracted %s\n", e.Name)
					},
				}
			}

			var progressCb decompress.ProgressCallback
			var progress *mpb.Progress
			if !quiet && !verbose {
				progressCb, progress = decompress.ProgressBarCallback()
			}

			result, err := decompress.Decompress(opts, progressCb)

			// Wait for progress bars to finish rendering
			if progress != nil {
				progress.Wait()
			}
			if err != nil {
				return err
			}

			if !quiet {
				fmt.Println()
				fmt.Print(decompress.FormatSummary(result))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Input archive file (required)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", ".", "Output directory")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password for encrypted ZIP entries")
	cmd.Flags().BoolVar(&clear, "clear", false, "Empty the output directory before extracting")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Show detailed output")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Minimal output (overrides verbose)")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}
