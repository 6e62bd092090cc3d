package main

import (
	"github.com/spf13/viper"
)

// fileConfig is the project-level config file viper merges under the
// CLI flags: allowed start rules, trace/cache flags, and a
// reserved-word override, per SPEC_FULL.md's ambient-stack config
// section.
type fileConfig struct {
	AllowedStartRules []string `mapstructure:"allowedStartRules"`
	Trace             bool     `mapstructure:"trace"`
	Cache             bool     `mapstructure:"cache"`
	ReservedWords     []string `mapstructure:"reservedWords"`
}

func loadFileConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return cfg, nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return cfg, err
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
