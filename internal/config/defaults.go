package config

const (
	defaultOutputDir   = "~/Pictures/converted"
	defaultLogDir      = "~/.local/share/imgconv/logs"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
	defaultJPEGQuality = 90
	defaultWebPQuality = 80
	defaultPDFDPI      = 96
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		Convert: Convert{
			JPEGQuality: defaultJPEGQuality,
			WebPQuality: defaultWebPQuality,
			PDFDPI:      defaultPDFDPI,
		},
		History: History{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
