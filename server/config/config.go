package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config wraps viper and provides typed accessors.
type Config struct {
	v *viper.Viper
}

// Load reads the config file and prepares defaults. A missing file is not an
// error: the server runs entirely on defaults and environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("MUSICDL")
	v.AutomaticEnv()

	setDefaults(v)

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return &Config{v: v}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("Port", 5000)
	v.SetDefault("LogLevel", "info")
	v.SetDefault("LogFormat", "text")
	v.SetDefault("LogSource", false)
	v.SetDefault("StateFile", ".config.json")
	v.SetDefault("StaticDir", "./public")
	v.SetDefault("PaugramEndpoint", "https://api.paugram.com/netease")
	v.SetDefault("GDStudioEndpoint", "https://music-api.gdstudio.xyz/api.php")
	v.SetDefault("PlaylistEndpoint", "https://www.oiapi.net/api/NeteasePlaylistDetail")
	v.SetDefault("QQAPIBase", "https://api.ygking.top/api")
	v.SetDefault("LookupTimeoutSec", 10)
	v.SetDefault("QQAPITimeoutSec", 15)
	v.SetDefault("StreamTimeoutSec", 20)
	v.SetDefault("QQStreamTimeoutSec", 25)
	v.SetDefault("ShutdownTimeoutSec", 10)
}

// GetString returns a string value.
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt returns an int value.
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetBool returns a bool value.
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}
