package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list <PROFILE> <BUCKET>",
	Short: "List remote backups with age and retention status",
	Args:  cobra.ExactArgs(2),
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
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

	objects, err := client.ListObjects(ctx)
	if err != nil {
		return err
	}
	if len(objects) == 0 {
		cmd.Println("No backups found")
		return nil
	}

	now := time.Now()
	policy := settings.Policy()
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tLAST MODIFIED\tAGE\tSTATUS")
	for _, o := range objects {
		age := int(now.UTC().Sub(o.LastModified).Hours() / 24)
		status := "retained"
		if policy.IsStale(o.LastModified, now) {
			status = "stale"
		}
		fmt.Fprintf(w, "%s\t%s\t%dd\t%s\n", o.Key, o.LastModified.Format(time.RFC3339), age, status)
	}
	return w.Flush()
}
