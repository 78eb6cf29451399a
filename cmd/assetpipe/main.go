// cmd/assetpipe/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:           "assetpipe",
	Short:         "assetpipe - acquire, unpack and load 3D model assets",
	Long:          "assetpipe packs model folders into archives, unpacks them, discovers model files and loads them with their side-car textures.",
	Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
}

var configPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Session config file (TOML)")
	rootCmd.AddCommand(
		versionCmd(),
		compressCmd(),
		decompressCmd(),
		verifyCmd(),
		findCmd(),
		loadCmd(),
		batchCmd(),
	)
}
