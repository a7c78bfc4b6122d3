// Package config loads the server's configuration from defaults, an optional
// YAML file, the environment and command line flags, in increasing order of
// precedence.
package config

import (
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// EnvPrefix starts every environment variable read into the configuration.
// A double underscore separates nested keys, so SWAGGER_ROUTER_LOG__FILE sets
// log.file.
const EnvPrefix = "SWAGGER_ROUTER_"

// DefaultPort is the port listened on when neither a port nor a unix socket
// is configured.
const DefaultPort = 6065

// Config is the server configuration.
type Config struct {
	Port     int       `koanf:"port"`
	Unix     string    `koanf:"unix"`
	Spec     string    `koanf:"spec"`
	Strict   bool      `koanf:"strict"`
	DocsPath string    `koanf:"docs_path"`
	Verbose  bool      `koanf:"verbose"`
	Log      LogConfig `koanf:"log"`
}

// LogConfig configures where logs go. Without a file they go to stderr;
// with one they are written to it and rotated.
type LogConfig struct {
	File       string `koanf:"file"`
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
	MaxAgeDays int    `koanf:"max_age_days"`
	Compress   bool   `koanf:"compress"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		DocsPath: "/api-docs",
		Log: LogConfig{
			MaxSizeMB:  10,
			MaxBackups: 10,
			MaxAgeDays: 30,
			Compress:   true,
		},
	}
}

// Load builds the configuration. path names an optional YAML file and may be
// empty. flags may be nil; flags the user didn't set don't override the other
// sources.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, errors.Wrap(err, "error loading defaults")
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "error loading config file %s", path)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, "error loading environment")
	}

	if flags != nil {
		provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			return flagKey(f.Name), posflag.FlagVal(flags, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return nil, errors.Wrap(err, "error loading flags")
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, "error decoding configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks for settings that contradict each other.
func (c *Config) Validate() error {
	if c.Unix != "" && c.Port != 0 {
		return errors.New("specify only one of port or unix")
	}
	if c.DocsPath != "" && !strings.HasPrefix(c.DocsPath, "/") {
		return errors.Errorf("docs path %q must start with a slash", c.DocsPath)
	}
	return nil
}

// ListenAddress returns the network and address to listen on.
func (c *Config) ListenAddress() (network, address string) {
	if c.Unix != "" {
		return "unix", c.Unix
	}
	port := c.Port
	if port == 0 {
		port = DefaultPort
	}
	return "tcp", ":" + strconv.Itoa(port)
}

//
// Private functions
//

// envKey turns SWAGGER_ROUTER_LOG__MAX_SIZE_MB into log.max_size_mb.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// flagKey maps flag names onto configuration keys. The config flag names the
// file and isn't a setting itself.
func flagKey(name string) string {
	switch name {
	case "config", "help":
		return ""
	case "log-file":
		return "log.file"
	}
	return strings.ReplaceAll(name, "-", "_")
}
