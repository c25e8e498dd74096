package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"BucketBackup/internal/backup"
	"BucketBackup/internal/progress"
)

func init() {
	rootCmd.AddCommand(pruneCmd)
}

var pruneCmd = &cobra.Command{
	Use:   "prune <PROFILE> <BUCKET>",
	Short: "Apply retention and remove old backups without creating a new one",
	Args:  cobra.ExactArgs(2),
	RunE:  runPrune,
}

func runPrune(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	profile, bucket := args[0], args[1]

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	client, err := newClient(ctx, profile, bucket, settings)
	if err != nil {
		return err
	}

	cmd.Printf("Scanning for backups older than %d days...\n", settings.RetentionDays)
	deleted, err := backup.Prune(ctx, client, settings.Policy(), time.Now(), progress.NewConsole(cmd.OutOrStdout()))
	if err != nil {
		return err
	}
	if deleted == 0 {
		cmd.Println("No old backups found for cleanup")
		return nil
	}
	cmd.Printf("Deleted %d old backups\n", deleted)

	if notif := notifierFromSettings(settings); notif != nil {
		if nerr := notif.NotifyPrune(ctx, deleted); nerr != nil {
			cmd.PrintErrln("Warning: webhook notification failed:", nerr)
		}
	}
	return nil
}
