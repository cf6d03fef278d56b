package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"meetsched/internal/meeting"
	"meetsched/internal/suggest"
)

const configFileName = "config.yml"

// EnvSuggestURL overrides suggest_url when set in the environment or .env
const EnvSuggestURL = "MEETSCHED_SUGGEST_URL"

const (
	defaultSuggestURL = "http://localhost:8787" + suggest.SuggestPath
	defaultServeAddr  = "localhost:8787"
	defaultOutput     = "log"
)

// Duration is a time.Duration that reads and writes as "30s", "2m" in YAML
type Duration time.Duration

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	if s == "" {
		*d = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

type Config struct {
	SuggestURL     string   `yaml:"suggest_url"`
	RequestTimeout Duration `yaml:"request_timeout,omitempty"` // zero waits indefinitely
	HourlyRate     float64  `yaml:"hourly_rate"`
	Language       string   `yaml:"language,omitempty"` // empty means auto-detect
	DarkMode       *bool    `yaml:"dark_mode,omitempty"`
	Output         string   `yaml:"output"` // log, json or ics
	Notify         bool     `yaml:"notify"`
	LogFile        string   `yaml:"log_file,omitempty"`

	// Development suggestion server
	ServeAddr   string   `yaml:"serve_addr"`
	ServeLabels []string `yaml:"serve_labels,omitempty"`
}

func DefaultConfig() Config {
	dark := true
	return Config{
		SuggestURL: defaultSuggestURL,
		HourlyRate: meeting.DefaultHourlyRate,
		DarkMode:   &dark,
		Output:     defaultOutput,
		ServeAddr:  defaultServeAddr,
	}
}

// Dark reports whether the dark palette is enabled (the default)
func (c Config) Dark() bool {
	return c.DarkMode == nil || *c.DarkMode
}

// Timeout returns the suggestion request timeout
func (c Config) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout)
}

// Load reads config.yml, fills zero values with defaults and applies the
// endpoint override from a .env file in the working directory or the
// environment
func Load() (Config, error) {
	cfg, err := loadFile()
	if err != nil {
		return cfg, err
	}

	_ = godotenv.Load()
	if url := os.Getenv(EnvSuggestURL); url != "" {
		cfg.SuggestURL = url
	}
	return cfg, nil
}

func loadFile() (Config, error) {
	configDir, err := getConfigDir()
	if err != nil {
		return DefaultConfig(), err
	}

	configPath := filepath.Join(configDir, configFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), err
	}

	// Apply defaults for zero values
	def := DefaultConfig()
	if cfg.SuggestURL == "" {
		cfg.SuggestURL = def.SuggestURL
	}
	if cfg.HourlyRate == 0 {
		cfg.HourlyRate = def.HourlyRate
	}
	if cfg.Output == "" {
		cfg.Output = def.Output
	}
	if cfg.ServeAddr == "" {
		cfg.ServeAddr = def.ServeAddr
	}
	if cfg.DarkMode == nil {
		cfg.DarkMode = def.DarkMode
	}

	return cfg, nil
}

func (c Config) Save() error {
	configDir, err := getConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}

	configPath := filepath.Join(configDir, configFileName)
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600)
}

// LogPath returns the configured log file, defaulting into the config dir
func (c Config) LogPath() (string, error) {
	if c.LogFile != "" {
		return c.LogFile, nil
	}
	dir, err := getConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "meetsched.log"), nil
}

func getConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "meetsched"), nil
}

func GetConfigDir() (string, error) {
	return getConfigDir()
}

// RecordsPath returns the file the TUI appends records to for an output
// format, e.g. meetings.json or meetings.ics in the config dir
func RecordsPath(output string) (string, error) {
	dir, err := getConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "meetings."+output), nil
}

// Path returns the location of config.yml
func Path() (string, error) {
	dir, err := getConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}
