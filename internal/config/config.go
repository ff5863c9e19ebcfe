package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

type Twitch struct {
	ClientID     string `toml:"-"`
	ClientSecret string `toml:"-"`
}

type Theme struct {
	Text     string `toml:"text"`
	Overlay1 string `toml:"overlay1"`
	Sky      string `toml:"sky"`
	Sapphire string `toml:"sapphire"`
	Green    string `toml:"green"`
	Yellow   string `toml:"yellow"`
	Red      string `toml:"red"`
}

type Style struct {
	DateFormat string `toml:"date_format"`
}

type Log struct {
	Enable bool   `toml:"enable"`
	Path   string `toml:"path"`
}

// Config is built once at startup and handed to every component by value.
type Config struct {
	Twitch       Twitch        `toml:"-"`
	Channels     []string      `toml:"-"`
	PollInterval time.Duration `toml:"-"`

	Theme Theme `toml:"theme"`
	Style Style `toml:"style"`
	Log   Log   `toml:"log"`
}

const defaultPollInterval = 60 * time.Second

const configFileName = "config.toml"
const logFileName = "monitor.log"
const envFileName = ".env"
const appDir = "twitch-monitor"

// Load resolves the configuration from the process environment, falling back
// to a .env file in the working directory, and applies the optional
// config.toml for presentation settings.
func Load() (Config, error) {
	cfg := defaultConfig()

	configPath, err := getConfigPath()
	if err == nil {
		if err := loadConfigFile(configPath, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Printf("CONFIG: ignoring %s: %v", configPath, err)
		}
	}

	if err := applyEnv(&cfg, envLookup(envFileName)); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func defaultConfig() Config {
	return Config{
		PollInterval: defaultPollInterval,
		Theme:        defaultTheme(),
		Style:        defaultStyle(),
		Log:          defaultLog(),
	}
}

func defaultTheme() Theme {
	// Catppuccin Frappe
	return Theme{
		Text:     "#c6d0f5",
		Overlay1: "#838ba7",
		Sky:      "#99d1db",
		Sapphire: "#85c1dc",
		Green:    "#a6d189",
		Yellow:   "#e5c890",
		Red:      "#e78284",
	}
}

func defaultStyle() Style {
	return Style{
		DateFormat: "2006-01-02 15:04:05",
	}
}

func defaultLog() Log {
	return Log{
		Enable: false,
		Path:   "",
	}
}

// LogPath returns the file log output should go to, creating its directory.
func (c Config) LogPath() (string, error) {
	path := c.Log.Path
	if path == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("failed to get config directory: %v", err)
		}
		path = filepath.Join(configDir, appDir, logFileName)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create log directory: %v", err)
	}

	return path, nil
}

func getConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %v", err)
	}

	return filepath.Join(configDir, appDir, configFileName), nil
}

func loadConfigFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := toml.NewDecoder(file)
	if err := decoder.Decode(cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %v", err)
	}

	if cfg.Style.DateFormat == "" {
		cfg.Style.DateFormat = defaultStyle().DateFormat
	}

	return nil
}
