// Package config reads runtime settings from the environment, after
// merging in a .env file when one is present.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting. Empty paths mean "not used" except
// where a default is documented.
type Config struct {
	// MapPath overrides the bundled arena.
	MapPath string
	// SavePath is where a battle is saved and resumed from.
	SavePath string
	// ProgressionPath defaults to progression.json in the data directory.
	ProgressionPath string
	// DataDir holds the progression file and the run log.
	DataDir string

	Class     string
	Encounter string
	// Random replaces the fixed encounters with generated arenas.
	Random bool
	// Seed 0 picks one from the clock.
	Seed int64

	// SpectateAddr enables the spectator hub, e.g. ":8080".
	SpectateAddr string
	SSHPort      int
	HostKey      string

	Telemetry bool

	LogLevel  string
	LogFormat string
	// LogFile receives diagnostics; the terminal client has no other place
	// to put them.
	LogFile string
}

// Defaults returns the settings used when nothing is configured.
func Defaults() Config {
	return Config{
		DataDir:   defaultDataDir(),
		Class:     "gunslinger",
		Encounter: "Ambush",
		SSHPort:   2222,
		HostKey:   "host_key",
		LogLevel:  "info",
		LogFormat: "text",
	}
}

func defaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "skirmish")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "skirmish")
}

// Load merges .env into the environment and reads the configuration. A
// missing .env is fine; a malformed one or an invalid value is an error.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: .env: %w", err)
	}
	return FromEnv()
}

// LoadFiles is Load with explicit .env files. Variables already set in the
// environment win over the files.
func LoadFiles(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return FromEnv()
}

// FromEnv reads the configuration from the environment alone.
func FromEnv() (Config, error) {
	c := Defaults()
	str(&c.MapPath, "SKIRMISH_MAP")
	str(&c.SavePath, "SKIRMISH_SAVE")
	str(&c.DataDir, "SKIRMISH_DATA_DIR")
	str(&c.ProgressionPath, "SKIRMISH_PROGRESSION")
	str(&c.Class, "SKIRMISH_CLASS")
	str(&c.Encounter, "SKIRMISH_ENCOUNTER")
	str(&c.SpectateAddr, "SKIRMISH_SPECTATE_ADDR")
	str(&c.HostKey, "SKIRMISH_HOST_KEY")
	str(&c.LogLevel, "LOG_LEVEL")
	str(&c.LogFormat, "LOG_FORMAT")
	str(&c.LogFile, "LOG_FILE")

	var errs []error
	if v, ok := os.LookupEnv("SKIRMISH_SEED"); ok && v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("SKIRMISH_SEED: %w", err))
		}
		c.Seed = seed
	}
	if v, ok := os.LookupEnv("SKIRMISH_SSH_PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err == nil && (port <= 0 || port > 65535) {
			err = fmt.Errorf("port %d out of range", port)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("SKIRMISH_SSH_PORT: %w", err))
		}
		c.SSHPort = port
	}
	for _, f := range []struct {
		key string
		dst *bool
	}{
		{"SKIRMISH_TELEMETRY", &c.Telemetry},
		{"SKIRMISH_RANDOM", &c.Random},
	} {
		if v, ok := os.LookupEnv(f.key); ok && v != "" {
			on, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", f.key, err))
			}
			*f.dst = on
		}
	}
	if err := errors.Join(errs...); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	if c.ProgressionPath == "" {
		c.ProgressionPath = filepath.Join(c.DataDir, "progression.json")
	}
	return c, nil
}

func str(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}
