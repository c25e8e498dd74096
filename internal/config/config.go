package config

import (
	"github.com/spf13/viper"

	"BucketBackup/internal/archive"
)

// DefaultRetentionDays is the retention window applied when neither the
// config file nor the environment override it.
const DefaultRetentionDays = 90

type Settings struct {
	RetentionDays int    `mapstructure:"retention_days" yaml:"retention_days"`
	Region        string `mapstructure:"region" yaml:"region,omitempty"`
	Format        string `mapstructure:"format" yaml:"format"`
	OutputDir     string `mapstructure:"output_dir" yaml:"output_dir"`
	WebhookURL    string `mapstructure:"webhook_url" yaml:"webhook_url,omitempty"`
	Debug         bool   `mapstructure:"debug" yaml:"debug"`

	// S3-compatible endpoint mode (MinIO etc.). When Endpoint is empty the
	// client is built from the AWS shared-config profile instead.
	Endpoint  string     `mapstructure:"endpoint" yaml:"endpoint,omitempty"`
	AccessKey string     `mapstructure:"access_key" yaml:"access_key,omitempty"`
	SecretKey string     `mapstructure:"secret_key" yaml:"secret_key,omitempty"`
	TLS       *TLSConfig `mapstructure:"tls" yaml:"tls,omitempty"`
}

type TLSConfig struct {
	InsecureSkipVerify bool `mapstructure:"insecure_skip_verify" yaml:"insecure_skip_verify"`
}

func Default() *Settings {
	return &Settings{
		RetentionDays: DefaultRetentionDays,
		Format:        string(archive.FormatTar),
		OutputDir:     ".",
	}
}

func Unmarshal(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Policy returns the retention policy the settings describe.
func (s *Settings) Policy() RetentionPolicy {
	return RetentionPolicy{Days: s.RetentionDays}
}
