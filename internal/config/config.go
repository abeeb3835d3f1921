package config

import (
	"flag"
	"os"
	"strconv"
	"time"
)

// Config holds all process configuration. Flags take precedence over
// RIDWATCH_* environment variables.
type Config struct {
	PcapPath    string
	DBPath      string
	MetricsAddr string
	ReportPath  string

	// Path to an optional YAML file overriding the pattern signature table.
	SignaturesPath string

	SessionTTL      time.Duration
	PatternMinChars int
	Debug           bool
}

// Load parses command line flags and environment variables.
func Load() *Config {
	cfg := &Config{}

	cfg.PcapPath = getEnv("RIDWATCH_PCAP", "")
	cfg.DBPath = getEnv("RIDWATCH_DB", "ridwatch.db")
	cfg.MetricsAddr = getEnv("RIDWATCH_METRICS", "")
	cfg.SignaturesPath = getEnv("RIDWATCH_SIGNATURES", "")
	cfg.SessionTTL = getEnvDuration("RIDWATCH_SESSION_TTL", 5*time.Minute)
	cfg.PatternMinChars = getEnvInt("RIDWATCH_PATTERN_MIN_CHARS", 3)

	flag.StringVar(&cfg.PcapPath, "pcap", cfg.PcapPath, "Path to a pcap file of 802.11 frames (empty reads hex frames from stdin)")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to the SQLite detection database (empty to disable persistence)")
	flag.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "Listen address for the Prometheus /metrics endpoint (empty to disable)")
	flag.StringVar(&cfg.ReportPath, "report", "", "Write a PDF detection summary to this path on exit")
	flag.StringVar(&cfg.SignaturesPath, "signatures", cfg.SignaturesPath, "YAML file overriding the pattern signature table")
	flag.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "Idle time before a per-transmitter session is dropped")
	flag.IntVar(&cfg.PatternMinChars, "pattern-min-chars", cfg.PatternMinChars, "Minimum significant characters for a pattern-path identity")
	flag.BoolVar(&cfg.Debug, "debug", false, "Enable verbose debug logging")

	flag.Parse()

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
