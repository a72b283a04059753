package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/techdd/pkg/pipeline"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	verbose    bool
	configPath string
	metrics    string

	// loaded by preRun
	config *Config
}

func (f *globalFlags) register(root *cobra.Command) {
	root.PersistentFlags().BoolVarP(&f.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&f.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/techdd/config.toml)")
	root.PersistentFlags().StringVar(&f.metrics, "metrics", "", "write Prometheus metrics to this file when the command ends")
}

// preRun sets the log level, loads the config file and attaches the logger
// to the command context.
func (c *CLI) preRun(cmd *cobra.Command, _ []string) error {
	level := LogInfo
	if c.flags.verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))

	if f := cmd.Flags().Lookup("init"); f != nil && f.Changed {
		c.flags.config = &Config{}
		return nil
	}
	cfg, path, err := loadConfig(c.flags.configPath)
	if err != nil {
		return err
	}
	if path != "" {
		c.Logger.Debug("loaded config", "path", path)
	}
	c.flags.config = cfg
	return nil
}

// enrichFlags are the flags of commands that query registries.
type enrichFlags struct {
	workers     int
	throttle    string
	maxAttempts int
	rps         float64
}

func (f *enrichFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.workers, "workers", "w", 0, "maximum concurrent packages (0 = unbounded)")
	cmd.Flags().StringVar(&f.throttle, "throttle", "", "pause after each completed package, e.g. 100ms (negative disables)")
	cmd.Flags().IntVar(&f.maxAttempts, "max-attempts", 0, "attempts per registry request")
	cmd.Flags().Float64Var(&f.rps, "rps", 0, "maximum registry requests per second (0 = unlimited)")
}

// apply overrides cfg with the flags the user set.
func (f *enrichFlags) apply(cmd *cobra.Command, opts *pipeline.Options) error {
	if cmd.Flags().Changed("workers") {
		opts.Workers = f.workers
	}
	if cmd.Flags().Changed("throttle") {
		d, err := parseDuration(f.throttle)
		if err != nil {
			return err
		}
		opts.Throttle = d
	}
	if cmd.Flags().Changed("max-attempts") {
		opts.MaxAttempts = f.maxAttempts
	}
	if cmd.Flags().Changed("rps") {
		opts.RequestsPerSecond = f.rps
	}
	return nil
}
