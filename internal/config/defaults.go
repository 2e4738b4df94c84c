package config

const (
	defaultCacheDir       = "~/.cache/bookfetch"
	defaultLogDir         = "~/.local/share/bookfetch/logs"
	defaultFormat         = "pdf"
	defaultTimeoutSeconds = 300
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CacheDir: defaultCacheDir,
			LogDir:   defaultLogDir,
		},
		Download: Download{
			Format:         defaultFormat,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
