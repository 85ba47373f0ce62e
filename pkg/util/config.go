package util

import (
	"fmt"

	"github.com/spf13/viper"
)

// ReadConfig loads the optional ./data/config.yaml. Every key the server
// reads has a viper default, so callers treat a missing file as a warning,
// not a failure.
func ReadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./data/")

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	return nil
}
