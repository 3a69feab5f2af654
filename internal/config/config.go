// Package config provides unified configuration loading for the
// conversion API. Supports YAML files, environment variables, and
// programmatic overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the conversion API.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Limits        LimitsConfig        `yaml:"limits"`
	Scratch       ScratchConfig       `yaml:"scratch"`
	CORS          CORSConfig          `yaml:"cors"`
	Office        OfficeConfig        `yaml:"office"`
	Image         ImageConfig         `yaml:"image"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host             string        `yaml:"host"`
	Port             int           `yaml:"port"`
	ReadTimeout      time.Duration `yaml:"read_timeout"`
	WriteTimeout     time.Duration `yaml:"write_timeout"`
	IdleTimeout      time.Duration `yaml:"idle_timeout"`
	GracefulShutdown time.Duration `yaml:"graceful_shutdown"`
}

// LimitsConfig bounds each request.
type LimitsConfig struct {
	// MaxUploadBytes caps the request body size.
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`
	// RequestTimeout is the per-request deadline applied by middleware
	// and propagated into capability calls.
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// ScratchConfig locates per-request working storage.
type ScratchConfig struct {
	Dir string `yaml:"dir"`
}

// CORSConfig lists browser origins permitted to call the API.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// OfficeConfig configures the LibreOffice conversion capability.
type OfficeConfig struct {
	BinaryPath string        `yaml:"binary_path"`
	Timeout    time.Duration `yaml:"timeout"`
}

// ImageConfig holds raster encoding settings.
type ImageConfig struct {
	// JPEGQuality is the encoder quality for single-shot JPEG outputs
	// (resize, watermark, pdf-to-image). The target-size compression
	// loop manages its own quality schedule.
	JPEGQuality int `yaml:"jpeg_quality"`
	// FontPath optionally points at a TTF/OTF used for watermark text.
	FontPath string `yaml:"font_path"`
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
	ServiceName string `yaml:"service_name"`
}

// Load reads configuration from a YAML file and applies environment
// overrides. An empty path loads defaults plus environment only.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// DefaultConfig returns sensible development defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:             "0.0.0.0",
			Port:             8080,
			ReadTimeout:      60 * time.Second,
			WriteTimeout:     120 * time.Second,
			IdleTimeout:      120 * time.Second,
			GracefulShutdown: 10 * time.Second,
		},
		Limits: LimitsConfig{
			MaxUploadBytes: 64 << 20, // 64 MiB
			RequestTimeout: 2 * time.Minute,
		},
		Scratch: ScratchConfig{
			Dir: "", // falls back to the OS temp dir
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"https://www.tooconvert.in",
				"https://tooconvert.in",
				"https://api.tooconvert.in",
			},
		},
		Office: OfficeConfig{
			BinaryPath: "",
			Timeout:    60 * time.Second,
		},
		Image: ImageConfig{
			JPEGQuality: 95,
		},
		Observability: ObservabilityConfig{
			LogLevel:    "info",
			LogFormat:   "json",
			ServiceName: "conversion-api",
		},
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Limits.MaxUploadBytes = n
		}
	}
	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Limits.RequestTimeout = d
		}
	}
	if v := os.Getenv("SCRATCH_DIR"); v != "" {
		cfg.Scratch.Dir = v
	}
	if v := os.Getenv("LIBREOFFICE_PATH"); v != "" {
		cfg.Office.BinaryPath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}
	if v := os.Getenv("WATERMARK_FONT_PATH"); v != "" {
		cfg.Image.FontPath = v
	}
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Limits.MaxUploadBytes <= 0 {
		return fmt.Errorf("limits.max_upload_bytes must be positive")
	}
	if c.Limits.RequestTimeout <= 0 {
		return fmt.Errorf("limits.request_timeout must be positive")
	}
	if c.Image.JPEGQuality < 1 || c.Image.JPEGQuality > 100 {
		return fmt.Errorf("image.jpeg_quality %d out of range", c.Image.JPEGQuality)
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		return fmt.Errorf("cors.allowed_origins must not be empty")
	}
	return nil
}
