// cmd/assetpipe/compress_cmd.go
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"

	"github.com/creativeyann17/go-assetpipe/pkg/assetpipe"
	"github.com/creativeyann17/go-assetpipe/pkg/compress"
)

func compressCmd() *cobra.Command {
	var inputPath, outputPath, password, format string
	var files []string
	var level int
	var aes, ignoreFiles bool
	var verbose, quiet bool

	cmd := &cobra.Command{
		Use:   "compress",
		Short: "Pack a folder or a list of files into an archive",
		Long: `Pack a folder (--input, entries relative to it) or a list of files and
folders (--files, each folder stored under its own name) into a ZIP or tar.xz archive.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Add the extension if missing
			ext := "." + format
			if outputPath != "" && !strings.HasSuffix(strings.ToLower(outputPath), ext) {
				outputPath += ext
			}

			opts := &compress.Options{
				InputPath:      inputPath,
				Files:          files,
				OutputPath:     outputPath,
				Password:       password,
				AES:            aes,
				Level:          level,
				Format:         compress.Format(format),
				UseIgnoreFiles: ignoreFiles,
				Verbose:        verbose,
				Quiet:          quiet,
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

			log("Starting compression...")
			if opts.InputPath != "" {
				log("  Input:   %s", opts.InputPath)
			} else {
				log("  Files:   %s", strings.Join(opts.Files, ", "))
			}
			log("  Output:  %s", opts.OutputPath)
			log("  Format:  %s (level %d)", opts.Format, opts.Level)
			if opts.Password != "" {
				scheme := "ZipCrypto"
				if opts.AES {
					scheme = "AES-256"
				}
				log("  Encrypt: %s", scheme)
			}
			if opts.UseIgnoreFiles {
				log("  Ignore:  %s", strings.Join(compress.IgnoreFileNames, ", "))
			}
			log("")

			if verbose {
				opts.Hooks = &assetpipe.Hooks{
					PostEntry: func(e *assetpipe.Entry) {
						fmt.Printf("  added %s (%s)\n", e.Name, assetpipe.FormatSize(e.Size))
					},
				}
			}

			var progressCb compress.ProgressCallback
			var progress *mpb.Progress
			if !quiet && !verbose {
				progressCb, progress = compress.ProgressBarCallback()
			}

			result, err := compress.Compress(opts, progressCb)

			// Wait for progress bars to finish rendering
			if progress != nil {
				progress.Wait()
			}
			if err != nil {
				return err
			}

			if !quiet {
				fmt.Println()
				fmt.Print(compress.FormatSummary(result))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Folder to pack (entries relative to it)")
	cmd.Flags().StringSliceVarP(&files, "files", "f", nil, "Files or folders to pack (folders keep their name)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output archive file (required)")
	cmd.Flags().StringVar(&format, "format", string(compress.FormatZIP), "Archive format: zip or tar.xz")
	cmd.Flags().IntVarP(&level, "level", "l", compress.DefaultLevel, "Compression level (1=fastest, 9=best)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Encrypt ZIP entries with a password")
	cmd.Flags().BoolVar(&aes, "aes", false, "Use AES-256 instead of ZipCrypto for encrypted entries")
	cmd.Flags().BoolVar(&ignoreFiles, "ignore-files", false, "Honour .gitignore and .assetignore files")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Show detailed output")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Minimal output (overrides verbose)")

	_ = cmd.MarkFlagRequired("output")
	cmd.MarkFlagsOneRequired("input", "files")
	cmd.MarkFlagsMutuallyExclusive("input", "files")

	return cmd
}
