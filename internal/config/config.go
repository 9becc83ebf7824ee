// Package config loads snow globe settings from a TOML file, SNOWGLOBE_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"snowglobe/internal/logging"
)

// DefaultPath is the config file read when none is given.
const DefaultPath = "~/.config/snowglobe/config.toml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SNOWGLOBE_"

// Store backends.
const (
	StoreFile   = "file"
	StoreMemory = "memory"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config holds all settings.
type Config struct {
	Listen    string `toml:"listen"`
	BaseURL   string `toml:"base_url"`
	DataDir   string `toml:"data_dir"`
	Store     string `toml:"store"`
	LogLevel  string `toml:"log_level"`
	Advertise bool   `toml:"advertise"`
	Instance  string `toml:"instance"`

	// Server is the base URL the drawing client submits to.
	Server string `toml:"server"`

	SMTP SMTP `toml:"smtp"`
}

// SMTP configures outgoing mail. An empty Addr logs messages instead.
type SMTP struct {
	Addr     string `toml:"addr"`
	From     string `toml:"from"`
	Username string `toml:"username"`
	Password string `toml:"password"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Listen:    ":8080",
		DataDir:   "~/.local/share/snowglobe",
		Store:     StoreFile,
		LogLevel:  "info",
		Advertise: true,
		Server:    "http://localhost:8080",
		SMTP:      SMTP{From: "snowglobe@localhost"},
	}
}

// Decode reads TOML from r over c. Unknown keys are an error.
func (c *Config) Decode(r io.Reader) error {
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("%w: %s", ErrInvalid, strict.String())
		}
		return fmt.Errorf("config: parse: %w", err)
	}
	return nil
}

// LoadFile reads path over c. A missing file leaves c unchanged.
func (c *Config) LoadFile(path string) error {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("config: expand %q: %w", path, err)
	}
	data, err := os.ReadFile(expanded)
	if errors.Is(err, os.ErrNotExist) {
		logging.Logger().Debug("config: no config file", "path", expanded)
		return nil
	}
	if err != nil {
		return fmt.Errorf("config: read %s: %w", expanded, err)
	}
	if err := c.Decode(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("%s: %w", expanded, err)
	}
	return nil
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// ApplyEnv overrides fields from SNOWGLOBE_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"LISTEN":        &c.Listen,
		"BASE_URL":      &c.BaseURL,
		"DATA_DIR":      &c.DataDir,
		"STORE":         &c.Store,
		"LOG_LEVEL":     &c.LogLevel,
		"INSTANCE":      &c.Instance,
		"SERVER":        &c.Server,
		"SMTP_ADDR":     &c.SMTP.Addr,
		"SMTP_FROM":     &c.SMTP.From,
		"SMTP_USERNAME": &c.SMTP.Username,
		"SMTP_PASSWORD": &c.SMTP.Password,
	}
	for name, dst := range strs {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}
	if v, ok := lookup(EnvPrefix + "ADVERTISE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %sADVERTISE=%q", ErrInvalid, EnvPrefix, v)
		}
		c.Advertise = b
	}
	return nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("%w: listen address is empty", ErrInvalid)
	}
	switch c.Store {
	case StoreFile:
		if c.DataDir == "" {
			return fmt.Errorf("%w: data_dir is required for the file store", ErrInvalid)
		}
	case StoreMemory:
	default:
		return fmt.Errorf("%w: unknown store %q", ErrInvalid, c.Store)
	}
	if _, ok := logging.ParseLevel(c.LogLevel); !ok {
		return fmt.Errorf("%w: unknown log level %q", ErrInvalid, c.LogLevel)
	}
	return nil
}

// DataPath returns DataDir with ~ expanded.
func (c *Config) DataPath() (string, error) {
	return homedir.Expand(c.DataDir)
}

func (c *Config) bind(fs *flag.FlagSet, path *string) {
	fs.StringVar(path, "config", *path, "config file")
	fs.StringVar(&c.Listen, "listen", c.Listen, "HTTP listen address")
	fs.StringVar(&c.BaseURL, "base-url", c.BaseURL, "public base URL for share links (default: LAN address)")
	fs.StringVar(&c.DataDir, "data", c.DataDir, "data directory for the file store")
	fs.StringVar(&c.Store, "store", c.Store, "submission store: file or memory")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.BoolVar(&c.Advertise, "advertise", c.Advertise, "advertise the server over mDNS")
	fs.StringVar(&c.Instance, "instance", c.Instance, "mDNS instance name (default: host name)")
	fs.StringVar(&c.Server, "server", c.Server, "server URL used by the drawing pad")
	fs.StringVar(&c.SMTP.Addr, "smtp", c.SMTP.Addr, "SMTP relay host:port (default: log mail)")
}

// PrintDefaults writes the flag list with built-in defaults to w.
func PrintDefaults(w io.Writer) {
	c, path := Default(), DefaultPath
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.SetOutput(w)
	c.bind(fs, &path)
	fs.PrintDefaults()
}

// Load resolves the configuration for a command: defaults, then the config
// file (from -config, SNOWGLOBE_CONFIG or DefaultPath), then the
// environment, then flags. It returns the remaining positional arguments.
func Load(name string, args []string, lookup func(string) (string, bool)) (*Config, []string, error) {
	path := DefaultPath
	if v, ok := lookup(EnvPrefix + "CONFIG"); ok && v != "" {
		path = v
	}

	// First pass only finds -config.
	probe := Default()
	pfs := flag.NewFlagSet(name, flag.ContinueOnError)
	pfs.SetOutput(io.Discard)
	probe.bind(pfs, &path)
	if err := pfs.Parse(args); err != nil {
		return nil, nil, err
	}

	cfg := Default()
	if err := cfg.LoadFile(path); err != nil {
		return nil, nil, err
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, nil, err
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	cfg.bind(fs, &path)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return &cfg, fs.Args(), nil
}
