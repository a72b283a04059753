package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/techdd/pkg/errors"
	"github.com/matzehuels/techdd/pkg/httputil"
	"github.com/matzehuels/techdd/pkg/pipeline"
)

// Config is the on-disk configuration.
//
//	[fetch]
//	max_attempts = 5
//	base_delay = "1s"
//	timeout = "10s"
//	requests_per_second = 0
//	user_agent = "techdd"
//
//	[enrich]
//	workers = 0
//	throttle = "100ms"
//
//	[registries]
//	npm = "https://npm.internal.example.com"
//	osv = "https://api.osv.dev"
//
//	[vulnerability_ecosystems]
//	php = "Packagist"
type Config struct {
	Fetch                   FetchConfig       `toml:"fetch"`
	Enrich                  EnrichConfig      `toml:"enrich"`
	Registries              map[string]string `toml:"registries"`
	VulnerabilityEcosystems map[string]string `toml:"vulnerability_ecosystems"`
}

// FetchConfig configures the backoff fetcher.
type FetchConfig struct {
	MaxAttempts       int      `toml:"max_attempts"`
	BaseDelay         duration `toml:"base_delay"`
	Timeout           duration `toml:"timeout"`
	RequestsPerSecond float64  `toml:"requests_per_second"`
	UserAgent         string   `toml:"user_agent"`
}

// EnrichConfig configures the orchestrator.
type EnrichConfig struct {
	Workers  int      `toml:"workers"`
	Throttle duration `toml:"throttle"`
}

// duration reads Go duration strings ("250ms", "2s") from TOML.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := parseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func parseDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return 0, errs.Wrap(errs.ErrCodeInvalidConfig, err, "invalid duration %q", s)
	}
	return d, nil
}

// loadConfig reads the config file at path. An empty path looks in the
// default location, where a missing file means defaults. A missing file
// named explicitly is an error, and so is any key the config does not
// know. It returns the path actually read, or "" when none was.
func loadConfig(path string) (*Config, string, error) {
	cfg := &Config{}
	explicit := path != ""
	if !explicit {
		p, err := defaultConfigPath()
		if err != nil {
			return cfg, "", nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, "", nil
		}
		return nil, "", errs.Wrap(errs.ErrCodeInvalidConfig, err, "load config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return nil, "", errs.New(errs.ErrCodeInvalidConfig, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, path, nil
}

// pipelineOptions maps the config onto runner options.
func (c *Config) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		MaxAttempts:             c.Fetch.MaxAttempts,
		BaseDelay:               c.Fetch.BaseDelay.Duration,
		Timeout:                 c.Fetch.Timeout.Duration,
		RequestsPerSecond:       c.Fetch.RequestsPerSecond,
		UserAgent:               c.Fetch.UserAgent,
		Workers:                 c.Enrich.Workers,
		Throttle:                c.Enrich.Throttle.Duration,
		Registries:              c.Registries,
		VulnerabilityEcosystems: c.VulnerabilityEcosystems,
	}
}

// defaultConfig returns the built-in defaults spelled out.
func defaultConfig() *Config {
	return &Config{
		Fetch: FetchConfig{
			MaxAttempts: 5,
			BaseDelay:   duration{time.Second},
			Timeout:     duration{10 * time.Second},
			UserAgent:   pipeline.DefaultUserAgent,
		},
		Enrich: EnrichConfig{Throttle: duration{100 * time.Millisecond}},
	}
}

// configCommand prints the effective configuration, or writes the
// defaults to a new config file with --init.
func (c *CLI) configCommand() *cobra.Command {
	var initFile bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration or create a config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if initFile {
				path, err := c.initConfig()
				if err != nil {
					return err
				}
				printSuccess(c.Out, "Wrote default config")
				printFile(c.Out, path)
				return nil
			}
			if err := toml.NewEncoder(cmd.OutOrStdout()).Encode(c.flags.config); err != nil {
				return err
			}
			policy := httputil.Policy{
				MaxAttempts: c.flags.config.Fetch.MaxAttempts,
				BaseDelay:   c.flags.config.Fetch.BaseDelay.Duration,
			}.WithDefaults()
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "\n# a rate-limited request waits at most %s before giving up\n", policy.MaxWait())
			return err
		},
	}
	cmd.Flags().BoolVar(&initFile, "init", false, "write the default config file (fails if it exists)")
	return cmd
}

func (c *CLI) initConfig() (string, error) {
	path := c.flags.configPath
	if path == "" {
		p, err := defaultConfigPath()
		if err != nil {
			return "", err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", errs.Wrap(errs.ErrCodeInvalidConfig, err, "create config %s", path)
	}
	if err := toml.NewEncoder(f).Encode(defaultConfig()); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}
