package main

import (
	"errors"

	"github.com/folio-track/ftrack/cmd"

	"github.com/spf13/viper"
)

func configureViper() {
	viper.SetConfigName("config")
	viper.SetConfigType("toml")
	viper.AddConfigPath("/etc/ftrack/")
	viper.AddConfigPath("$HOME/.config/ftrack")
	viper.AddConfigPath(".")

	// a config file is optional; flags and env vars cover everything
	var notFound viper.ConfigFileNotFoundError
	if err := viper.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
		panic(err)
	}
}

func main() {
	configureViper()
	cmd.Execute()
}
