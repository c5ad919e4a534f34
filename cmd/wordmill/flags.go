package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	ConfigPath  string
	LogLevel    string
	LogFormat   string
	Debug       bool
	Workers     int
	Copies      int
	Files       []string
	ShowVersion bool
	ShowHelp    bool
	Validate    bool
}

func parseFlags() *CLIConfig {
	cfg := &CLIConfig{}

	// Define flags with environment variable fallback
	flag.StringVar(&cfg.ConfigPath, "config",
		getEnv("WORDMILL_CONFIG", ""),
		"Path to configuration file, empty for built-in defaults (env: WORDMILL_CONFIG)")

	flag.StringVar(&cfg.ConfigPath, "c",
		getEnv("WORDMILL_CONFIG", ""),
		"Path to configuration file, empty for built-in defaults (env: WORDMILL_CONFIG)")

	flag.StringVar(&cfg.LogLevel, "log-level",
		getEnv("WORDMILL_LOG_LEVEL", "info"),
		"Log level: debug, info, warn, error (env: WORDMILL_LOG_LEVEL)")

	flag.StringVar(&cfg.LogFormat, "log-format",
		getEnv("WORDMILL_LOG_FORMAT", "text"),
		"Log format: json, text (env: WORDMILL_LOG_FORMAT)")

	flag.BoolVar(&cfg.Debug, "debug",
		getEnvBool("WORDMILL_DEBUG", false),
		"Enable debug mode (env: WORDMILL_DEBUG)")

	// Workers and copies leave the zero value to the config layer, which
	// already handles WORDMILL_WORKERS and WORDMILL_COPIES itself.
	flag.IntVar(&cfg.Workers, "workers", 0,
		"Worker pool size, 0 for one per logical CPU (env: WORDMILL_WORKERS)")

	flag.IntVar(&cfg.Copies, "copies", 0,
		"Tasks submitted per input file, 0 for the configured value (env: WORDMILL_COPIES)")

	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	flag.BoolVar(&cfg.ShowVersion, "v", false, "Show version information")
	flag.BoolVar(&cfg.ShowHelp, "help", false, "Show help information")
	flag.BoolVar(&cfg.ShowHelp, "h", false, "Show help information")
	flag.BoolVar(&cfg.Validate, "validate", false, "Validate configuration and exit")

	// Custom usage
	flag.Usage = func() {
		printDetailedHelp()
	}

	flag.Parse()

	// Positional arguments are the input files
	cfg.Files = flag.Args()

	// Override log level if debug is set
	if cfg.Debug {
		cfg.LogLevel = "debug"
	}

	return cfg
}

func validateFlags(cfg *CLIConfig) error {
	// Skip validation for special flags
	if cfg.ShowVersion || cfg.ShowHelp {
		return nil
	}

	// Validate config file exists when one was named
	if cfg.ConfigPath != "" {
		if _, err := os.Stat(cfg.ConfigPath); err != nil {
			return fmt.Errorf("config file not found: %s", cfg.ConfigPath)
		}
	}

	// Validate log level
	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, cfg.LogLevel) {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}

	// Validate log format
	validFormats := []string{"json", "text"}
	if !contains(validFormats, cfg.LogFormat) {
		return fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}

	if cfg.Workers < 0 {
		return fmt.Errorf("invalid worker count: %d", cfg.Workers)
	}
	if cfg.Copies < 0 {
		return fmt.Errorf("invalid copies count: %d", cfg.Copies)
	}

	// Input files are positional; a validate-only run needs none. Missing
	// files are not checked here: an unreadable file is a per-task failure,
	// not a startup error.
	if !cfg.Validate && len(cfg.Files) == 0 {
		return fmt.Errorf("at least one input file is required")
	}

	return nil
}

func printDetailedHelp() {
	_, _ = fmt.Fprintf(os.Stderr, `%s - concurrent word frequency counter

Usage: %s [options] FILE...

Counts line, word, and per-word frequencies in each FILE on a bounded
worker pool. SIGINT or SIGTERM cancels the running tasks cooperatively;
partial counts are kept and reported.

Options:
`, appName, os.Args[0])
	flag.PrintDefaults()
	_, _ = fmt.Fprintf(os.Stderr, `
Examples:
  # Count one file
  %s corpus.txt

  # Four tasks over the same file on four workers
  %s --workers=4 --copies=4 corpus.txt

  # Run with a config file and readable logs
  %s --config=wordmill.yaml --log-format=text corpus.txt

  # Run with environment variables
  export WORDMILL_WORKERS=8
  export WORDMILL_METRICS_ENABLED=true
  %s corpus.txt

  # Validate configuration only
  %s --config=wordmill.yaml --validate

Version: %s
Build: %s
`, os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0], Version, BuildTime)
}

// Environment variable helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Utility function to check if slice contains string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
