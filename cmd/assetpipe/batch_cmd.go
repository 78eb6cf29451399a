// cmd/assetpipe/batch_cmd.go
package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"

	"github.com/creativeyann17/go-assetpipe/pkg/loader"
)

func batchCmd() *cobra.Command {
	var verbose, quiet bool

	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Load every model file directly inside a folder, one at a time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			s, err := openSession(verbose, quiet)
			if err != nil {
				return err
			}

			// Logging helper
			log := func(format string, args ...interface{}) {
				if !quiet {
					fmt.Printf(format+"\n", args...)
				}
			}

			log("Loading folder: %s", dir)
			log("")

			b := loader.NewBatchLoader(s)
			ch, err := b.LoadAsync(cmd.Context(), dir)
			if err != nil {
				return err
			}

			var results []*loader.Result
			if quiet {
				results = <-ch
			} else {
				progress := mpb.New(mpb.WithWidth(60))
				overall := newFractionBar(progress, "Total")
				item := newFractionBar(progress, "Item")
				ctx, cancel := context.WithCancel(context.Background())
				go trackFraction(ctx, overall, b.Overall)
				go trackFraction(ctx, item, b.Progress)
				results = <-ch
				cancel()
				progress.Wait()
			}
			if b.State() != loader.Succeeded {
				return fmt.Errorf("batch %s", stateLabel(b))
			}

			fmt.Println()
			failed := 0
			for _, res := range results {
				if res == nil {
					failed++
					continue
				}
				fmt.Printf("  %-30s %d clips, %d textures\n",
					filepath.Base(res.Path), len(res.Clips), len(res.Textures))
			}
			fmt.Printf("\nSummary:\n")
			fmt.Printf("  Models loaded: %d / %d\n", len(results)-failed, len(results))
			if failed > 0 {
				return fmt.Errorf("%d models failed to load", failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&verbose, "verbose", false, "Show debug logs")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Minimal output (overrides verbose)")

	return cmd
}
