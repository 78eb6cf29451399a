// cmd/assetpipe/find_cmd.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/creativeyann17/go-assetpipe/pkg/discovery"
)

func findCmd() *cobra.Command {
	var exts []string
	var name, suffix string
	var all, models, ignoreCase bool

	cmd := &cobra.Command{
		Use:   "find <dir>",
		Short: "Search a folder tree for model or texture files",
		Long: `Search a folder tree, files before sub-folders, and print the first match.

By default looks for the first model file. --ext, --name and --suffix select
another criterion; --all lists every extension match; --models lists the model
files directly inside the folder (what "batch" would load).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			s, err := openSession(false, false)
			if err != nil {
				return err
			}
			finder := s.Finder
			set := s.Config.Extensions()
			if len(exts) > 0 {
				set = discovery.NewExtensionSet(exts...)
			}

			var found []string
			switch {
			case models:
				found = finder.ListModelFiles(dir, set)
			case name != "":
				found = appendFound(found, finder.FindFirstByName(dir, name, ignoreCase))
			case suffix != "":
				found = appendFound(found, finder.FindFirstBySuffix(dir, suffix))
			case all:
				found = finder.FindAllByExtension(dir, set)
			default:
				path, _ := finder.FindFirstModel(dir, set)
				found = appendFound(found, path)
			}

			if len(found) == 0 {
				return fmt.Errorf("no match in %s", dir)
			}
			for _, path := range found {
				fmt.Println(path)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&exts, "ext", "e", nil, "Extensions to match (default: model extensions)")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Match files whose name contains this text")
	cmd.Flags().StringVarP(&suffix, "suffix", "s", "", "Match files whose name ends with this text")
	cmd.Flags().BoolVarP(&ignoreCase, "ignore-case", "I", false, "Case-insensitive --name match")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "List every extension match")
	cmd.Flags().BoolVarP(&models, "models", "m", false, "List model files directly inside the folder")

	return cmd
}

func appendFound(found []string, path string) []string {
	if path == "" {
		return found
	}
	return append(found, path)
}
