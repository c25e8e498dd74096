package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var debugFlag bool

var rootCmd = &cobra.Command{
	Use:   "bucketbackup",
	Short: "Archive a local folder to S3-compatible storage with retention cleanup",
	Long:  "BucketBackup prunes remote backups past the retention window, archives a local folder into a month-year tar, and uploads it to an S3 bucket.",
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")

	// Failures must surface as one alert-prefixed line on stderr, never
	// followed by the usage block.
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "🚨 Error: %v\n", err)
		return 1
	}
	return 0
}
