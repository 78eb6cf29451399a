// cmd/assetpipe/verify_cmd.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/creativeyann17/go-assetpipe/pkg/verify"
)

func verifyCmd() *cobra.Command {
	var inputPath, password string
	var verifyData bool
	var verbose, quiet bool

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify archive integrity",
		Long: `Verify the integrity of a ZIP or tar.xz archive without extracting it.

By default, checks the structure and entry names (duplicates, paths escaping
the output folder). Use --data to also read every entry through its checksum.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &verify.Options{
				InputPath:  inputPath,
				Password:   password,
				VerifyData: verifyData,
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

			log("Verifying archive: %s", inputPath)
			if verifyData {
				log("Mode: Full data integrity check")
			} else {
				log("Mode: Structural validation only")
			}
			log("")

			var progressCb verify.ProgressCallback
			if !quiet && !verbose {
				lastFile := ""
				progressCb = func(event verify.ProgressEvent) {
					switch event.Type {
					case verify.EventStart:
						if event.Total > 0 {
							fmt.Printf("Checking %d entries...\n", event.Total)
						}
					case verify.EventFileVerify:
						if event.Current%100 == 0 || event.Current == event.Total {
							fmt.Printf("\r  Progress: %d/%d entries", event.Current, event.Total)
						}
						lastFile = event.FilePath
					case verify.EventComplete:
						fmt.Printf("\r  Progress: %d entries checked\n", event.Current)
					case verify.EventError:
						fmt.Printf("\n  Error in: %s\n", lastFile)
					}
				}
			} else if verbose {
				progressCb = func(event verify.ProgressEvent) {
					switch event.Type {
					case verify.EventStart:
						fmt.Printf("Starting verification: %s\n", event.Message)
					case verify.EventFileVerify:
						fmt.Printf("  [%d] %s\n", event.Current, event.FilePath)
					case verify.EventComplete:
						fmt.Printf("Verification complete\n")
					}
				}
			}

			result, err := verify.Verify(opts, progressCb)
			if err != nil && result == nil {
				return err
			}

			fmt.Println()
			fmt.Print(result.Summary())

			if !result.IsValid() {
				return fmt.Errorf("archive verification failed")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Input archive file (required)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password for encrypted ZIP entries")
	cmd.Flags().BoolVar(&verifyData, "data", false, "Verify data integrity by reading all content")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Show detailed output")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Minimal output (overrides verbose)")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}
