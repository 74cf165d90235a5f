package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"yourtranscript/cmd/yts/cmd/serve"
	"yourtranscript/cmd/yts/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "yts",
	Short: "Transcript extraction orchestration service",
	Long: `yts fronts a transcript extraction worker with quota enforcement,
two-tier caching and async job dispatch.
- serve starts the HTTP API
- extraction results are cached in Redis and persisted to Postgres`,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
