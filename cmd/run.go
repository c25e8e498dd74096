package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"BucketBackup/internal/archive"
	"BucketBackup/internal/backup"
	"BucketBackup/internal/config"
	"BucketBackup/internal/logging"
	"BucketBackup/internal/progress"
)

func init() {
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run <PROFILE> <BUCKET> <LOCAL_FOLDER>",
	Short: "Prune old backups, archive the folder, and upload it",
	Long:  "Run the full pipeline: delete remote backups older than the retention window, archive LOCAL_FOLDER into a month-year tar, upload it to BUCKET using the AWS profile PROFILE, and remove the local archive.",
	Args:  cobra.ExactArgs(3),
	RunE:  runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	profile, bucket, folder := args[0], args[1], args[2]

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	log := logging.New(settings.Debug || debugFlag)
	defer log.Sync()

	if err := config.ValidateSourceDir(folder); err != nil {
		return backup.ValidationErr(err)
	}
	format, err := archive.ParseFormat(settings.Format)
	if err != nil {
		return backup.ConfigErr(err)
	}

	client, err := newClient(ctx, profile, bucket, settings)
	if err != nil {
		return err
	}

	orch := &backup.Orchestrator{
		Store:       client,
		Policy:      settings.Policy(),
		Source:      folder,
		OutDir:      settings.OutputDir,
		Format:      format,
		PruneMeter:  progress.NewConsole(cmd.OutOrStdout()),
		BuildMeter:  progress.NewConsole(cmd.OutOrStdout()),
		UploadMeter: progress.NewConsole(cmd.OutOrStdout()),
		Log:         log,
	}

	notif := notifierFromSettings(settings)
	start := time.Now()
	sum, err := orch.Run(ctx)
	if err != nil {
		if notif != nil {
			if nerr := notif.NotifyError(ctx, folder, err); nerr != nil {
				cmd.PrintErrln("Warning: webhook notification failed:", nerr)
			}
		}
		return err
	}

	cmd.Println()
	cmd.Println("Backup Summary")
	cmd.Printf("  Source folder:       %s\n", sum.Source)
	cmd.Printf("  Archive size:        %.2f MB\n", sum.SizeMB())
	cmd.Printf("  S3 location:         %s\n", sum.Location)
	cmd.Printf("  Old backups deleted: %d\n", sum.Deleted)
	if sum.CleanupWarning != "" {
		cmd.PrintErrln("Warning:", sum.CleanupWarning)
	}

	if notif != nil {
		if nerr := notif.NotifySuccess(ctx, folder, sum.Location, sum.SizeBytes, time.Since(start)); nerr != nil {
			cmd.PrintErrln("Warning: webhook notification failed:", nerr)
		}
	}
	return nil
}
