// Package config resolves attack-csv settings with viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/bjaus/attackcsv"
)

// AppName names the config directory and the environment prefix.
const AppName = "attack-csv"

// Domains lists the ATT&CK matrices published as STIX bundles.
var Domains = []string{"enterprise-attack", "mobile-attack", "ics-attack"}

// Option is one configuration key with its default and meaning.
type Option struct {
	Key     string
	Default any
	Comment string
}

// Options returns the configuration keys, their defaults and meanings.
func Options() []Option {
	return []Option{
		{Key: "attack_version", Default: "11.3", Comment: "ATT&CK release to fetch"},
		{Key: "domain", Default: "enterprise-attack", Comment: "ATT&CK matrix: enterprise-attack, mobile-attack or ics-attack"},
		{Key: "url_prefix", Default: "https://raw.githubusercontent.com/mitre-attack/attack-stix-data/master", Comment: "Base URL of the STIX data repository"},
		{Key: "cache_dir", Default: defaultCacheDir(), Comment: "Directory for downloaded bundles"},
		{Key: "refresh", Default: false, Comment: "Download even when a cached bundle exists"},
		{Key: "input", Default: "", Comment: "Read the bundle from this file instead of the cache or network"},
		{Key: "output_dir", Default: "./attack-csv", Comment: "Output root; files go to output_dir/v<version>"},
		{Key: "attack_id", Default: false, Comment: "Add the mitre_attack_id column"},
		{Key: "format", Default: "csv", Comment: "Output format (csv, tsv, json, jsonl, yaml, markdown, html, go-template=...)"},
		{Key: "workers", Default: 4, Comment: "Number of types written concurrently"},
		{Key: "http_timeout", Default: "5m", Comment: "Timeout for the bundle download"},
		{Key: "log_level", Default: "info", Comment: "Log level: debug, info, warn, error"},
	}
}

// Config is the typed view of the resolved settings.
type Config struct {
	AttackVersion string
	Domain        string
	URLPrefix     string
	CacheDir      string
	Refresh       bool
	Input         string
	OutputDir     string
	AttackID      bool
	Format        attackcsv.Format
	Workers       int
	HTTPTimeout   time.Duration
	LogLevel      string
}

func applyDefaults(v *viper.Viper) {
	for _, o := range Options() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < env.
// Flags bound by the caller override all of these.
func Load(v *viper.Viper) error {
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, AppName))
		}
		v.AddConfigPath(".")
	}

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	// ATTACK_CSV_* environment variables.
	v.SetEnvPrefix(strings.ReplaceAll(AppName, "-", "_"))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return nil
}

// FromViper builds a Config and reports every invalid value at once.
func FromViper(v *viper.Viper) (Config, error) {
	var errs []error

	format, err := attackcsv.ParseFormat(v.GetString("format"))
	if err != nil {
		errs = append(errs, err)
	}
	timeout, err := time.ParseDuration(v.GetString("http_timeout"))
	if err != nil {
		errs = append(errs, fmt.Errorf("http_timeout: %w", err))
	} else if timeout <= 0 {
		errs = append(errs, errors.New("http_timeout must be greater than 0"))
	}

	cfg := Config{
		AttackVersion: strings.TrimPrefix(strings.TrimSpace(v.GetString("attack_version")), "v"),
		Domain:        strings.TrimSpace(v.GetString("domain")),
		URLPrefix:     strings.TrimRight(strings.TrimSpace(v.GetString("url_prefix")), "/"),
		CacheDir:      expandHome(v.GetString("cache_dir")),
		Refresh:       v.GetBool("refresh"),
		Input:         expandHome(v.GetString("input")),
		OutputDir:     expandHome(v.GetString("output_dir")),
		AttackID:      v.GetBool("attack_id"),
		Format:        format,
		Workers:       v.GetInt("workers"),
		HTTPTimeout:   timeout,
		LogLevel:      strings.ToLower(strings.TrimSpace(v.GetString("log_level"))),
	}
	if err := cfg.Check(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	return cfg, nil
}

// Check validates the fields that do not need parsing.
func (c Config) Check() error {
	var errs []error
	if c.AttackVersion == "" {
		errs = append(errs, errors.New("attack_version is required"))
	}
	if !slices.Contains(Domains, c.Domain) {
		errs = append(errs, fmt.Errorf("domain %q must be one of %s", c.Domain, strings.Join(Domains, ", ")))
	}
	if c.URLPrefix == "" && c.Input == "" {
		errs = append(errs, errors.New("url_prefix is required when no input file is given"))
	}
	if c.OutputDir == "" {
		errs = append(errs, errors.New("output_dir is required"))
	}
	if c.Workers <= 0 {
		errs = append(errs, errors.New("workers must be greater than 0"))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log_level %q must be debug, info, warn or error", c.LogLevel))
	}
	return errors.Join(errs...)
}

// ConvertOptions returns the conversion options implied by the config.
func (c Config) ConvertOptions() attackcsv.Options {
	return attackcsv.Options{DerivedID: c.AttackID, Mode: c.Format.Mode()}
}

// defaultCacheDir resolves $XDG_CACHE_HOME/attack-csv or its platform equivalent.
func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, AppName)
	}
	return "."
}

func expandHome(p string) string {
	p = strings.TrimSpace(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[1:])
		}
	}
	return p
}
