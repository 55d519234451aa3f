package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything dreamline reads from its config file.
type Config struct {
	APIURL         string
	RequestTimeout time.Duration
	LogDir         string
	Server         Server
}

// Server configures the interpretation service.
type Server struct {
	Listen      string
	Env         string
	CORSOrigins []string
	LogLevel    string
	LogEncoding string
	StaticDir   string
}

const (
	defaultConfigPath     = "~/.config/dreamline/config.toml"
	defaultLogDir         = "~/.local/state/dreamline"
	defaultAPIURL         = "http://127.0.0.1:8787"
	defaultListen         = "127.0.0.1:8787"
	defaultEnv            = "production"
	defaultLogLevel       = "info"
	defaultLogEncoding    = "json"
	defaultRequestTimeout = 15 * time.Second

	envPrefix = "dreamline"
)

var defaultCORSOrigins = []string{"http://localhost:3000"}

type rawConfig struct {
	APIURL         string `toml:"api_url"`
	RequestTimeout string `toml:"request_timeout"`
	LogDir         string `toml:"log_dir"`
	Server         struct {
		Listen      string   `toml:"listen"`
		Env         string   `toml:"env"`
		CORSOrigins []string `toml:"cors_origins"`
		LogLevel    string   `toml:"log_level"`
		LogEncoding string   `toml:"log_encoding"`
		StaticDir   string   `toml:"static_dir"`
	} `toml:"server"`
}

// envOverrides mirrors the DREAMLINE_* variables. Empty values are ignored.
type envOverrides struct {
	APIURL         string        `envconfig:"API_URL"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT"`
	LogDir         string        `envconfig:"LOG_DIR"`
	Listen         string        `envconfig:"LISTEN"`
	Env            string        `envconfig:"ENV"`
	CORSOrigins    []string      `envconfig:"CORS_ORIGINS"`
	LogLevel       string        `envconfig:"LOG_LEVEL"`
	LogEncoding    string        `envconfig:"LOG_ENCODING"`
	StaticDir      string        `envconfig:"STATIC_DIR"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIURL:         defaultAPIURL,
		RequestTimeout: defaultRequestTimeout,
		LogDir:         mustExpand(defaultLogDir),
		Server: Server{
			Listen:      defaultListen,
			Env:         defaultEnv,
			CORSOrigins: append([]string(nil), defaultCORSOrigins...),
			LogLevel:    defaultLogLevel,
			LogEncoding: defaultLogEncoding,
		},
	}
}

// Load reads the config file at path (or the default location), applies
// DREAMLINE_* environment overrides, and fills blanks with defaults.
func Load(path string) (Config, error) {
	cfg, err := loadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.APIURL = orDefault(raw.APIURL, defaultAPIURL)
	if timeout := strings.TrimSpace(raw.RequestTimeout); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse request_timeout %q: %w", raw.RequestTimeout, err)
		}
		if d > 0 {
			cfg.RequestTimeout = d
		}
	}
	cfg.LogDir = mustExpand(orDefault(raw.LogDir, defaultLogDir))

	cfg.Server.Listen = orDefault(raw.Server.Listen, defaultListen)
	cfg.Server.Env = strings.ToLower(orDefault(raw.Server.Env, defaultEnv))
	cfg.Server.LogLevel = strings.ToLower(orDefault(raw.Server.LogLevel, defaultLogLevel))
	cfg.Server.LogEncoding = strings.ToLower(orDefault(raw.Server.LogEncoding, defaultLogEncoding))
	if origins := trimAll(raw.Server.CORSOrigins); len(origins) > 0 {
		cfg.Server.CORSOrigins = origins
	}
	if dir := strings.TrimSpace(raw.Server.StaticDir); dir != "" {
		cfg.Server.StaticDir = mustExpand(dir)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	var env envOverrides
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}

	if v := strings.TrimSpace(env.APIURL); v != "" {
		cfg.APIURL = v
	}
	if env.RequestTimeout > 0 {
		cfg.RequestTimeout = env.RequestTimeout
	}
	if v := strings.TrimSpace(env.LogDir); v != "" {
		cfg.LogDir = mustExpand(v)
	}
	if v := strings.TrimSpace(env.Listen); v != "" {
		cfg.Server.Listen = v
	}
	if v := strings.TrimSpace(env.Env); v != "" {
		cfg.Server.Env = strings.ToLower(v)
	}
	if origins := trimAll(env.CORSOrigins); len(origins) > 0 {
		cfg.Server.CORSOrigins = origins
	}
	if v := strings.TrimSpace(env.LogLevel); v != "" {
		cfg.Server.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(env.LogEncoding); v != "" {
		cfg.Server.LogEncoding = strings.ToLower(v)
	}
	if v := strings.TrimSpace(env.StaticDir); v != "" {
		cfg.Server.StaticDir = mustExpand(v)
	}
	return nil
}

// ClientLogPath returns the file the interactive client writes diagnostics to.
func (c Config) ClientLogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultLogDir + "/dreamline.log")
	}
	return filepath.Join(c.LogDir, "dreamline.log")
}

// Development reports whether the server runs in development mode.
func (s Server) Development() bool {
	return s.Env == "development"
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func trimAll(values []string) []string {
	var out []string
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
