// Package cli implements the gitdeps command-line interface.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gitdeps/pkg/buildinfo"
	"github.com/matzehuels/gitdeps/pkg/config"
	"github.com/matzehuels/gitdeps/pkg/git"
	"github.com/matzehuels/gitdeps/pkg/syncer"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "gitdeps"

	// annotationPaths marks commands whose positional arguments are the
	// library directory and the declaration file name.
	annotationPaths = "gitdeps/paths"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is the effective configuration. It is built once before a
	// command runs and not modified afterwards.
	Config config.Config

	// ConfigPath is the config file that was loaded, or empty.
	ConfigPath string

	// WorkDir is the directory whose declaration file is merged.
	// Empty means the process working directory.
	WorkDir string

	// Sync performs git operations. Nil means the git binary on PATH.
	Sync syncer.Synchronizer

	flags globalFlags
}

// globalFlags holds the persistent flag values before they are merged into
// the configuration.
type globalFlags struct {
	configPath    string
	verbose       bool
	ignoreHeader  bool
	ignoreCurpath bool
	ignorePull    bool
	clean         bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "gitdeps clones and updates git dependencies declared in dependency lists",
		Long: `gitdeps reads dependency lists (one "<url> <ref>" per line after a
#DEPENDENCIES header) from the current directory and from every library
below the library directory, clones what is missing, and updates what is
present. Newly cloned libraries are scanned again until nothing new appears.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.prepare,
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.flags.configPath, "config", "", "config file (default ./"+config.FileName+" or $XDG_CONFIG_HOME/"+appName+"/config.toml)")
	pf.BoolVarP(&c.flags.verbose, "verbose", "v", false, "enable verbose logging")
	pf.BoolVar(&c.flags.ignoreHeader, "ignore-header", false, "accept dependency lists without the #DEPENDENCIES header")
	pf.BoolVar(&c.flags.ignoreCurpath, "ignore-curpath", false, "skip the dependency list of the current directory")
	pf.BoolVar(&c.flags.ignorePull, "ignore-pull", false, "do not update libraries that are already present")
	pf.BoolVar(&c.flags.clean, "clean", false, "hard-reset libraries before updating them")

	root.AddCommand(c.listCommand())
	root.AddCommand(c.updateCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// prepare builds the effective configuration from the config file, the
// persistent flags, and the positional paths, then attaches the logger to
// the command context.
func (c *CLI) prepare(cmd *cobra.Command, args []string) error {
	if c.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		c.WorkDir = wd
	}

	path, err := config.Locate(c.flags.configPath, c.WorkDir)
	if err != nil {
		return err
	}
	cfg := config.Default()
	if path != "" {
		if cfg, err = config.Load(path); err != nil {
			return err
		}
	}

	cfg = c.applyFlags(cmd, cfg)
	if _, ok := cmd.Annotations[annotationPaths]; ok {
		cfg = applyPaths(cfg, args)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	c.Config = cfg
	c.ConfigPath = path
	if cfg.Policy.Verbose {
		c.SetLogLevel(LogDebug)
	}
	if path != "" {
		c.Logger.Debug("loaded config", "path", path)
	}

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// applyFlags overrides cfg with every persistent flag set on the command line.
func (c *CLI) applyFlags(cmd *cobra.Command, cfg config.Config) config.Config {
	flags := cmd.Flags()
	set := func(name string, dst *bool, v bool) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	set("verbose", &cfg.Policy.Verbose, c.flags.verbose)
	set("ignore-header", &cfg.Policy.IgnoreHeader, c.flags.ignoreHeader)
	set("ignore-curpath", &cfg.Policy.IgnoreCurrentPath, c.flags.ignoreCurpath)
	set("ignore-pull", &cfg.Policy.IgnorePull, c.flags.ignorePull)
	set("clean", &cfg.Policy.Clean, c.flags.clean)
	return cfg
}

// applyPaths sets the library directory and declaration file name from
// positional arguments.
func applyPaths(cfg config.Config, args []string) config.Config {
	if len(args) > 0 {
		cfg.LibraryDir = args[0]
	}
	if len(args) > 1 {
		cfg.DependencyFile = args[1]
	}
	return cfg
}

// pathArgs accepts [library-dir] [dependency-file].
var pathArgs = cobra.MaximumNArgs(2)

// pathAnnotations marks a command as taking [library-dir] [dependency-file].
func pathAnnotations() map[string]string {
	return map[string]string{annotationPaths: "true"}
}

// synchronizer returns the configured synchronizer or a git client.
func (c *CLI) synchronizer() syncer.Synchronizer {
	if c.Sync != nil {
		return c.Sync
	}
	return git.New(gitLogger(c.Logger))
}
