package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Settings holds process-wide runtime knobs that are never part of the
// dependency document itself: how verbose to log, and where (if anywhere)
// to push a one-shot metrics summary on exit. These are read from the
// environment, separate from "what we're waiting for".
type Settings struct {
	LogLevel           string `mapstructure:"log_level"`
	Verbose            bool   `mapstructure:"verbose"`
	MetricsPushgateway string `mapstructure:"metrics_pushgateway"`
	MetricsJobName     string `mapstructure:"metrics_job"`
}

func defaultSettings() Settings {
	return Settings{
		LogLevel:       "warn",
		Verbose:        false,
		MetricsJobName: "depwait",
	}
}

// LoadSettings reads Settings from the process environment. Recognized
// variables are LOG_LEVEL, VERBOSE, METRICS_PUSHGATEWAY and METRICS_JOB;
// anything unset keeps its default.
func LoadSettings() (Settings, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := defaultSettings()
	for key, fallback := range map[string]interface{}{
		"log_level":           cfg.LogLevel,
		"verbose":             cfg.Verbose,
		"metrics_pushgateway": cfg.MetricsPushgateway,
		"metrics_job":         cfg.MetricsJobName,
	} {
		v.SetDefault(key, fallback)
		if err := v.BindEnv(key); err != nil {
			return Settings{}, err
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return Settings{}, err
	}
	return settings, nil
}
