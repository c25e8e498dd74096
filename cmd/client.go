package cmd

import (
	"context"

	"BucketBackup/internal/backup"
	"BucketBackup/internal/config"
	"BucketBackup/internal/notifier"
	"BucketBackup/internal/s3"
)

func loadSettings() (*config.Settings, error) {
	v, err := config.Load()
	if err != nil {
		return nil, backup.ConfigErr(err)
	}
	settings, err := config.Unmarshal(v)
	if err != nil {
		return nil, backup.ConfigErr(err)
	}
	if err := config.Validate(settings); err != nil {
		return nil, backup.ConfigErr(err)
	}
	return settings, nil
}

func newClient(ctx context.Context, profile, bucket string, settings *config.Settings) (*s3.Client, error) {
	client, err := s3.New(ctx, s3.Options{
		Profile:            profile,
		Bucket:             bucket,
		Region:             settings.Region,
		Endpoint:           settings.Endpoint,
		AccessKey:          settings.AccessKey,
		SecretKey:          settings.SecretKey,
		InsecureSkipVerify: settings.TLS != nil && settings.TLS.InsecureSkipVerify,
	})
	if err != nil {
		return nil, backup.ConfigErr(err)
	}
	return client, nil
}

func notifierFromSettings(settings *config.Settings) notifier.Notifier {
	if settings.WebhookURL == "" {
		return nil
	}
	n, err := notifier.NewWebhookNotifier(settings.WebhookURL)
	if err != nil {
		return nil
	}
	return n
}
