package manager

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var (
	once sync.Once
	v    *viper.Viper
)

type ConfigManager struct{}

var Config = &ConfigManager{}

// ConfigPath is where Load expects the user config file.
func ConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, "lumen", "lumen.yaml")
}

// Load reads the user config once, seeding defaults first. A missing config
// file is fine; everything has a usable default.
func (c *ConfigManager) Load() *viper.Viper {
	once.Do(func() {
		v = viper.New()

		v.SetDefault("device", "")
		v.SetDefault("curve.exponent", 2.0)
		v.SetDefault("writer.helper", []string{"pkexec", "tee"})
		v.SetDefault("notify.enabled", true)
		v.SetDefault("notify.timeout_ms", 2000)
		v.SetDefault("notify.handle_ttl_ms", 5000)
		v.SetDefault("notify.fallback", "zenity")

		v.SetConfigFile(ConfigPath())
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || os.IsNotExist(err) {
				logrus.Debugf("no config at %s, using defaults", ConfigPath())
			} else {
				logrus.Warnf("failed to read config: %v", err)
			}
		}
	})

	return v
}

// Watch re-runs onChange whenever the config file changes on disk. Only the
// watch command uses this; one-shot invocations never do.
func (c *ConfigManager) Watch(onChange func()) {
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		logrus.Debugf("config changed: %s", e.Name)
		onChange()
	})
}
