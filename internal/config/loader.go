package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/viper"
)

// Load reads the optional config file and the environment. A missing file is
// not an error: every setting has a working default so the tool can run from
// its positional arguments alone.
func Load() (*viper.Viper, error) {
	path := ResolveConfigPath()
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return v, nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	return v, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("retention_days", d.RetentionDays)
	v.SetDefault("format", d.Format)
	v.SetDefault("output_dir", d.OutputDir)
}
