package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeStdio  = "stdio"
	ModeServer = "server"
	ModeOnce   = "once"

	// Default values
	DefaultPort        = 8080
	DefaultHost        = "127.0.0.1"
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB
	DefaultOCRLanguage = "eng"
	DefaultScanMode    = "text"
)

// Config holds all configuration for the doc23 service
type Config struct {
	// Server configuration
	Mode string // "stdio", "server" or "once"
	Host string
	Port int

	// Document configuration
	DocumentDirectory string
	SchemaPath        string // schema file used by once mode and as server default
	InputPath         string // document processed in once mode
	ScanMode          string // "text", "ocr" or "auto"
	OCRLanguage       string

	// Application configuration
	Version     string
	ServerName  string
	LogLevel    string
	MaxFileSize int64 // Maximum document file size in bytes
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = "."
	}

	return &Config{
		Mode:              ModeStdio, // Default to stdio mode for MCP compatibility
		Host:              DefaultHost,
		Port:              DefaultPort,
		DocumentDirectory: currentDir,
		ScanMode:          DefaultScanMode,
		OCRLanguage:       DefaultOCRLanguage,
		Version:           "1.0.0",
		ServerName:        "doc23",
		LogLevel:          DefaultLogLevel,
		MaxFileSize:       DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	// Expand paths if needed
	if cfg.DocumentDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.DocumentDirectory); err == nil {
			cfg.DocumentDirectory = expandedPath
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("DOC23")
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("dir", cfg.DocumentDirectory)
	viper.SetDefault("schema", cfg.SchemaPath)
	viper.SetDefault("input", cfg.InputPath)
	viper.SetDefault("scanmode", cfg.ScanMode)
	viper.SetDefault("ocrlang", cfg.OCRLanguage)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Mode: 'stdio' for MCP standard I/O, 'server' for HTTP API, 'once' for one-shot file structuring")
	pflag.String("host", cfg.Host, "Server host address (server mode only)")
	pflag.Int("port", cfg.Port, "Server port (server mode only)")
	pflag.String("dir", cfg.DocumentDirectory, "Directory containing documents")
	pflag.String("schema", cfg.SchemaPath, "Path to a schema file (.json, .yaml)")
	pflag.String("input", cfg.InputPath, "Document to structure (once mode only)")
	pflag.String("scanmode", cfg.ScanMode, "Scanned-content handling: text, ocr or auto")
	pflag.String("ocrlang", cfg.OCRLanguage, "Tesseract OCR language, e.g. eng or eng+spa")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum document file size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("mode", pflag.Lookup("mode"))
	_ = viper.BindPFlag("host", pflag.Lookup("host"))
	_ = viper.BindPFlag("port", pflag.Lookup("port"))
	_ = viper.BindPFlag("dir", pflag.Lookup("dir"))
	_ = viper.BindPFlag("schema", pflag.Lookup("schema"))
	_ = viper.BindPFlag("input", pflag.Lookup("input"))
	_ = viper.BindPFlag("scanmode", pflag.Lookup("scanmode"))
	_ = viper.BindPFlag("ocrlang", pflag.Lookup("ocrlang"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\ndoc23 - structure documents into hierarchical JSON using a regex level schema\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s --mode=once --input=law.pdf --schema=levels.json   # print the structured tree\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --dir=/path/to/docs                                # MCP stdio mode (default)\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=server --port=8081 --dir=/path/to/docs      # HTTP API mode\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  DOC23_MODE         Mode\n")
		fmt.Fprintf(os.Stderr, "  DOC23_HOST         Server host\n")
		fmt.Fprintf(os.Stderr, "  DOC23_PORT         Server port\n")
		fmt.Fprintf(os.Stderr, "  DOC23_DIR          Document directory\n")
		fmt.Fprintf(os.Stderr, "  DOC23_SCHEMA       Schema file path\n")
		fmt.Fprintf(os.Stderr, "  DOC23_SCANMODE     Scanned-content handling\n")
		fmt.Fprintf(os.Stderr, "  DOC23_OCRLANG      OCR language\n")
		fmt.Fprintf(os.Stderr, "  DOC23_LOGLEVEL     Log level\n")
		fmt.Fprintf(os.Stderr, "  DOC23_MAXFILESIZE  Maximum file size\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.DocumentDirectory = viper.GetString("dir")
	cfg.SchemaPath = viper.GetString("schema")
	cfg.InputPath = viper.GetString("input")
	cfg.ScanMode = viper.GetString("scanmode")
	cfg.OCRLanguage = viper.GetString("ocrlang")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Mode != ModeStdio && c.Mode != ModeServer && c.Mode != ModeOnce {
		return errors.New("mode must be 'stdio', 'server' or 'once'")
	}

	if c.Mode == ModeServer && (c.Port < 1 || c.Port > 65535) {
		return errors.New("port must be between 1 and 65535")
	}

	if c.Mode == ModeOnce {
		if c.InputPath == "" {
			return errors.New("once mode requires --input")
		}
		if c.SchemaPath == "" {
			return errors.New("once mode requires --schema")
		}
	}

	if c.DocumentDirectory == "" {
		return errors.New("document directory cannot be empty")
	}

	switch c.ScanMode {
	case "text", "ocr", "auto":
	default:
		return fmt.Errorf("invalid scan mode: %s (must be one of: text, ocr, auto)", c.ScanMode)
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// Address returns the server address as host:port
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Host: %s, Port: %d, DocumentDirectory: %s, ScanMode: %s, LogLevel: %s, MaxFileSize: %d}",
		c.Mode, c.Host, c.Port, c.DocumentDirectory, c.ScanMode, c.LogLevel, c.MaxFileSize)
}

// IsServerMode returns true if running the HTTP API server
func (c *Config) IsServerMode() bool {
	return c.Mode == ModeServer
}

// IsStdioMode returns true if running as an MCP stdio server
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}

// IsOnceMode returns true if structuring a single document and exiting
func (c *Config) IsOnceMode() bool {
	return c.Mode == ModeOnce
}
