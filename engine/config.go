package engine

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/mirafall/strafe/engine/core"
)

// Config is the on-disk engine configuration, read from strafe.toml at the
// working directory. Missing files fall back to defaults so a fresh checkout
// runs without any setup.
type Config struct {
	Window struct {
		Title  string `toml:"title"`
		PosX   int    `toml:"pos_x"`
		PosY   int    `toml:"pos_y"`
		Width  uint32 `toml:"width"`
		Height uint32 `toml:"height"`
	} `toml:"window"`
	Assets struct {
		BasePath  string `toml:"base_path"`
		Pack      string `toml:"pack"`
		HotReload bool   `toml:"hot_reload"`
	} `toml:"assets"`
	Audio struct {
		Enabled bool `toml:"enabled"`
	} `toml:"audio"`
	LogLevel  string `toml:"log_level"`
	FrameRate int    `toml:"frame_rate"`
}

// ConfigFileName is looked up relative to the working directory.
const ConfigFileName = "strafe.toml"

// DefaultConfig returns the configuration used when no strafe.toml exists.
func DefaultConfig() *Config {
	c := &Config{}
	c.Window.Title = "Strafe"
	c.Window.PosX = 100
	c.Window.PosY = 100
	c.Window.Width = 1280
	c.Window.Height = 720
	c.Assets.BasePath = "assets"
	c.Audio.Enabled = true
	c.LogLevel = "info"
	c.FrameRate = 60
	return c
}

// LoadConfig reads path, applies defaults for anything unset and honours the
// STRAFE_ASSETS environment override for the asset base path.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		core.LogDebug("no %s found, using defaults", path)
	case err != nil:
		return nil, err
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	if base := os.Getenv("STRAFE_ASSETS"); base != "" {
		cfg.Assets.BasePath = base
	}
	if cfg.FrameRate <= 0 {
		cfg.FrameRate = 60
	}
	return cfg, nil
}

func (c *Config) logLevel() core.LogLevel {
	switch c.LogLevel {
	case "debug":
		return core.DebugLevel
	case "warn":
		return core.WarnLevel
	case "error":
		return core.ErrorLevel
	default:
		return core.InfoLevel
	}
}
