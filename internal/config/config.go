package config

import (
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/mutker/hwdiag/internal/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultInterval       = 2
	DefaultLogLevel       = string(LogLevelWarning)
	DefaultRoot           = "/"
	DefaultSmartctl       = "smartctl"
	DefaultCommandTimeout = 5
	DefaultBattery        = "BAT0"

	defaultEnvPrefix = "HWDIAG"
	configName       = "hwdiag"
)

type Config struct {
	Interval       int    `mapstructure:"interval"`
	LogLevel       string `mapstructure:"log_level"`
	Debug          bool   `mapstructure:"debug"`
	Verbose        bool   `mapstructure:"verbose"`
	Monitor        bool   `mapstructure:"monitor"`
	Root           string `mapstructure:"root"`
	Smartctl       string `mapstructure:"smartctl"`
	Sudo           bool   `mapstructure:"sudo"`
	CommandTimeout int    `mapstructure:"command_timeout"`
	GPU            bool   `mapstructure:"gpu"`
	NoColor        bool   `mapstructure:"no_color"`
	Battery        string `mapstructure:"battery"`
}

var _ Provider = (*Config)(nil)

// flag name -> config key
var flagKeys = map[string]string{
	"interval":        "interval",
	"log-level":       "log_level",
	"debug":           "debug",
	"verbose":         "verbose",
	"monitor":         "monitor",
	"root":            "root",
	"smartctl":        "smartctl",
	"sudo":            "sudo",
	"command-timeout": "command_timeout",
	"gpu":             "gpu",
	"no-color":        "no_color",
	"battery":         "battery",
}

func Load(opts ...Option) (*Config, error) {
	errFactory := errors.New()

	o := &options{envPrefix: defaultEnvPrefix}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
		}
	}
	if !o.argsSet && len(os.Args) > 1 {
		o.args = os.Args[1:]
	}

	v := viper.New()
	setDefaults(v)

	// Define flags
	fs := pflag.NewFlagSet(configName, pflag.ContinueOnError)
	fs.Int("interval", DefaultInterval, "Monitor refresh interval in seconds")
	fs.String("log-level", DefaultLogLevel, "Log level (debug, info, warning, error)")
	fs.Bool("debug", false, "Enable debugging mode")
	fs.Bool("verbose", false, "Enable verbose logging")
	fs.Bool("monitor", false, "Start the temperature monitor directly, without the menu")
	fs.String("root", DefaultRoot, "Filesystem root that /proc and /sys are read under")
	fs.String("smartctl", DefaultSmartctl, "Path or name of the smartctl binary")
	fs.Bool("sudo", true, "Run smartctl through 'sudo -n' first")
	fs.Int("command-timeout", DefaultCommandTimeout, "Timeout for external commands in seconds")
	fs.Bool("gpu", true, "Show NVIDIA GPU temperature when NVML is available")
	fs.Bool("no-color", false, "Disable coloured output")
	fs.String("battery", DefaultBattery, "Power supply node name of the battery")

	// Parse flags
	if err := fs.Parse(o.args); err != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	for name, key := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return nil, errFactory.Wrap(errors.ErrBindFlags, err)
		}
	}

	v.SetEnvPrefix(o.envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// Load configuration from file
	v.SetConfigType("toml")
	path := o.configPath
	if env := os.Getenv(o.envPrefix + "_CONFIG"); env != "" {
		path = env
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath("/etc")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, configName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errFactory.Wrap(errors.ErrReadConfig, err)
		}
	}

	// Unmarshal the configuration
	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	// Apply debug and verbose shortcuts
	if config.Debug {
		config.LogLevel = string(LogLevelDebug)
	} else if config.Verbose && config.LogLevel == DefaultLogLevel {
		config.LogLevel = string(LogLevelInfo)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("interval", DefaultInterval)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("root", DefaultRoot)
	v.SetDefault("smartctl", DefaultSmartctl)
	v.SetDefault("sudo", true)
	v.SetDefault("command_timeout", DefaultCommandTimeout)
	v.SetDefault("gpu", true)
	v.SetDefault("battery", DefaultBattery)
}

// Validate checks the loaded values
func (c *Config) Validate() error {
	errFactory := errors.New()

	if c.Interval <= 0 {
		return errFactory.WithData(errors.ErrInvalidInterval, c.Interval)
	}
	if c.CommandTimeout <= 0 {
		return errFactory.WithData(errors.ErrInvalidTimeout, c.CommandTimeout)
	}
	if !LogLevel(strings.ToLower(c.LogLevel)).IsValid() {
		return errFactory.WithData(errors.ErrInvalidLogLevel, c.LogLevel)
	}
	if c.Root == "" {
		c.Root = DefaultRoot
	}

	return nil
}

func (c *Config) GetInterval() int       { return c.Interval }
func (c *Config) GetLogLevel() string    { return c.LogLevel }
func (c *Config) IsMonitorMode() bool    { return c.Monitor }
func (c *Config) GetRoot() string        { return c.Root }
func (c *Config) GetCommandTimeout() int { return c.CommandTimeout }
