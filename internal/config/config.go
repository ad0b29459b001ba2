package config

import "github.com/spf13/viper"

// Config is the resolved application configuration.
type Config struct {
	DatabasePath  string
	RulesPath     string
	TemplatesPath string
	ServerAddr    string
	LogLevel      string
	LogFormat     string
}

// SetDefaults registers the default configuration values with viper.
func SetDefaults() {
	viper.SetDefault("database.path", "$HOME/.local/share/geoshelf/catalog.db")
	viper.SetDefault("classification.rules", "")
	viper.SetDefault("organization.templates", "")
	viper.SetDefault("server.addr", "localhost:8338")
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")
}

// Load resolves the configuration from viper, expanding paths.
func Load() Config {
	return Config{
		DatabasePath:  ExpandPath(viper.GetString("database.path")),
		RulesPath:     ExpandPath(viper.GetString("classification.rules")),
		TemplatesPath: ExpandPath(viper.GetString("organization.templates")),
		ServerAddr:    viper.GetString("server.addr"),
		LogLevel:      viper.GetString("logging.level"),
		LogFormat:     viper.GetString("logging.format"),
	}
}
