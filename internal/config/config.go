package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// RenderOptions defines options for a one-shot render from the command line
type RenderOptions struct {
	InputPath    string
	OverlaysPath string // JSON file shaped like the edit request
	OutputPath   string
	Profile      string
	Engine       string
	FFmpegPath   string
	Verbose      bool
}

// ServeOptions defines options for the HTTP editor service
type ServeOptions struct {
	ConfigPath string
	Bind       string
	Verbose    bool
}

const (
	DefaultUploadDir = "uploads"
	DefaultOutputDir = "outputs"
	DefaultBind      = "127.0.0.1:3000"
	DefaultEngine    = "ffmpeg"
	DefaultProfile   = "web"

	// Overlays from the edit endpoint carry only a start time
	DefaultOverlayDuration = 5.0

	// Upload size limit for the HTTP service
	MaxUploadSize = 2 << 30

	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

type Paths struct {
	UploadDir string `toml:"upload_dir"`
	OutputDir string `toml:"output_dir"`
}

type Server struct {
	Bind string `toml:"bind"`
}

type Engine struct {
	Name       string `toml:"name"`
	Profile    string `toml:"profile"`
	FFmpegPath string `toml:"ffmpeg_path"`
}

type Overlay struct {
	DefaultDuration float64 `toml:"default_duration"`
}

type Logging struct {
	Verbose bool   `toml:"verbose"`
	Format  string `toml:"format"`
}

// Config is the service configuration file
type Config struct {
	Paths   Paths   `toml:"paths"`
	Server  Server  `toml:"server"`
	Engine  Engine  `toml:"engine"`
	Overlay Overlay `toml:"overlay"`
	Logging Logging `toml:"logging"`
}

// Default returns the configuration used when no file is given
func Default() Config {
	return Config{
		Paths: Paths{
			UploadDir: DefaultUploadDir,
			OutputDir: DefaultOutputDir,
		},
		Server: Server{Bind: DefaultBind},
		Engine: Engine{
			Name:    DefaultEngine,
			Profile: DefaultProfile,
		},
		Overlay: Overlay{DefaultDuration: DefaultOverlayDuration},
		Logging: Logging{Format: LogFormatConsole},
	}
}

// Load reads a TOML file over the defaults. An empty path or a file that
// does not exist yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		file, err := os.Open(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, errors.Wrap(err, "open config")
		default:
			defer file.Close()
			if err := toml.NewDecoder(file).DisallowUnknownFields().Decode(&cfg); err != nil {
				return nil, errors.Wrap(err, "parse config")
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate ensures the configuration is usable
func (c *Config) Validate() error {
	if c.Paths.UploadDir == "" {
		return errors.New("paths.upload_dir must be set")
	}
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	if c.Server.Bind == "" {
		return errors.New("server.bind must be set")
	}
	if c.Engine.Name == "" {
		return errors.New("engine.name must be set")
	}
	if c.Overlay.DefaultDuration <= 0 {
		return errors.New("overlay.default_duration must be positive")
	}
	switch c.Logging.Format {
	case LogFormatConsole, LogFormatJSON:
	default:
		return errors.Errorf("logging.format must be %q or %q, got %q", LogFormatConsole, LogFormatJSON, c.Logging.Format)
	}
	return nil
}

// Encode writes the configuration as TOML
func (c *Config) Encode() ([]byte, error) {
	b, err := toml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, "encode config")
	}
	return b, nil
}
