package engine

// ApplicationConfig carries the window parameters the platform layer needs
// at startup. It is derived from Config but kept separate so tests and tools
// can construct one directly.
type ApplicationConfig struct {
	StartPosX   int
	StartPosY   int
	StartWidth  uint32
	StartHeight uint32
	Name        string
}

func applicationConfigFrom(cfg *Config) *ApplicationConfig {
	return &ApplicationConfig{
		StartPosX:   cfg.Window.PosX,
		StartPosY:   cfg.Window.PosY,
		StartWidth:  cfg.Window.Width,
		StartHeight: cfg.Window.Height,
		Name:        cfg.Window.Title,
	}
}
