package cmd

import (
	"github.com/spf13/cobra"

	"BucketBackup/internal/config"
)

var initPath string

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVar(&initPath, "path", "", "Where to write the config file (default: the resolved config path)")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	path := initPath
	if path == "" {
		path = config.ResolveConfigPath()
	}
	if err := config.Write(config.Default(), path); err != nil {
		return err
	}
	cmd.Printf("Config written to %s\n", path)
	return nil
}
