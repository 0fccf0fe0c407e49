// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "host_port")

	v.BindEnv("telegram.token", "telegram_token")
	v.BindEnv("telegram.admin_users", "telegram_admin_users")

	v.BindEnv("ffmpeg.path", "ffmpeg_path")

	v.BindEnv("audio.tracks_dir", "audio_tracks_dir")
	v.BindEnv("audio.tmp_dir", "audio_tmp_dir")

	v.BindEnv("db.path", "db_path")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)

	v.SetDefault("ffmpeg.path", "ffmpeg")

	v.SetDefault("audio.tracks_dir", "files")
	v.SetDefault("audio.tmp_dir", os.TempDir())
	v.SetDefault("audio.sweep_interval", 24*time.Hour)
	v.SetDefault("audio.sweep_delay", 5*time.Second)
	v.SetDefault("audio.retention", 48*time.Hour)

	v.SetDefault("db.path", "database.db")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); ok {
			return errors.New("config.toml file is missing")
		}

		return fmt.Errorf("failed to read config file, %w", err)
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if v.GetString("telegram.token") == "" {
		return errors.New("telegram.token can't be empty")
	}

	if v.GetString("audio.tracks_dir") == "" {
		return errors.New("audio.tracks_dir can't be empty")
	}

	if v.GetDuration("audio.retention") <= 0 {
		return errors.New("audio.retention must be bigger than 0")
	}

	if v.GetDuration("audio.sweep_interval") <= 0 {
		return errors.New("audio.sweep_interval must be bigger than 0")
	}

	if len(v.GetIntSlice("telegram.admin_users")) == 0 {
		fmt.Println("[WARNING]: No telegram.admin_users configured, the /stats command will be refused for everyone")
	}

	return nil
}
