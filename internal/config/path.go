package config

import (
	"os"
	"path/filepath"
)

const (
	DefaultConfigDir  = "/etc/bucketbackup"
	DefaultConfigName = "config.yaml"
)

const (
	EnvPrefix     = "BUCKETBACKUP"
	EnvConfigPath = "BUCKETBACKUP_CONFIG"
)

func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir, DefaultConfigName)
}

func ResolveConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return DefaultConfigPath()
}
