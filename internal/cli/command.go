package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/idelchi/zpace/internal/integration"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// Execute runs the CLI with the process arguments. An interrupt cancels the scan.
func (c CLI) Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return c.Command().ExecuteContext(ctx)
}

// Command builds the root command. Each call returns an independent command and configuration.
func (c CLI) Command() *cobra.Command {
	var (
		configFile  string
		debug       bool
		noDiskUsage bool
		initScript  bool
	)

	v := newViper()

	cmd := &cobra.Command{
		Use:   "zpace [flags] [path]",
		Short: "Find what takes up space on your disk",
		Long: heredoc.Doc(`
			zpace scans a directory tree and lists the largest files per category
			(pictures, videos, archives, ...) and the largest "special" directories
			(node_modules, virtual environments, build output, caches, ...).

			Special directories are sized as a whole and never descended into.
			System paths such as /proc or /System are skipped.

			Positional Arguments:
			  path    Directory to analyze. Defaults to the home directory.

			Settings are read from, in increasing priority: built-in defaults,
			$XDG_CONFIG_HOME/zpace/config.{yaml,toml,json} (or ~/.config/zpace),
			ZPACE_<KEY> environment variables, and flags.

			The '-i' flag prints a zsh function 'zp' that pipes the results into 'fzf'.
		`),
		Example: heredoc.Doc(`
			zpace
			zpace -n 5 -m 1MiB ~/Downloads
			zpace -o json / > report.json
		`),
		Args:          cobra.MaximumNArgs(1),
		Version:       c.version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if initScript {
				rendered, err := integration.Render()
				if err != nil {
					return fmt.Errorf("rendering integration script: %w", err)
				}

				fmt.Fprintln(cmd.OutOrStdout(), rendered)

				return nil
			}

			logger := newLogger(cmd.ErrOrStderr(), debug)

			if err := readConfig(v, configFile); err != nil {
				return err
			}

			if used := v.ConfigFileUsed(); used != "" {
				logger.Debug("using config file", "path", used)
			}

			settings, err := loadSettings(v)
			if err != nil {
				return err
			}

			root, err := rootPath(args)
			if err != nil {
				return err
			}

			cfg, err := settings.ScanConfig(root)
			if err != nil {
				return err
			}

			return logic(cmd.Context(), Options{
				Scan:      cfg,
				Output:    settings.Output,
				Debug:     debug,
				DiskUsage: !noDiskUsage,
			}, cmd.OutOrStdout(), cmd.ErrOrStderr(), logger)
		},
	}

	cmd.SetVersionTemplate("{{.Version}}\n")

	flags := cmd.Flags()
	flags.SortFlags = false

	flags.IntP("top", "n", v.GetInt(keyTop), "Number of entries listed per category")
	flags.StringP("min-size", "m", v.GetString(keyMinSize), "Minimum size of listed entries (e.g. 500KiB, 1MB)")
	flags.StringP("output", "o", v.GetString(keyOutput), "Output format: table, json or paths")
	flags.IntP("workers", "w", v.GetInt(keyWorkers), "Number of directories scanned in parallel")
	flags.StringSliceP("exclude", "e", nil, "Regex patterns of paths to exclude (e.g. '/\\.cache$')")
	flags.StringVar(&configFile, "config", "", "Path to a config file")
	flags.BoolVar(&noDiskUsage, "no-disk-usage", false, "Skip the disk capacity and trash report")
	flags.BoolVar(&debug, "debug", false, "Enable debug output")
	flags.BoolVarP(&initScript, "init", "i", false, "Output init script for shell usage")
	flags.BoolP("version", "v", false, "Show version and exit")

	bindFlags(v, flags)

	return cmd
}

// bindFlags lets flags override the config file and environment for the keys they share.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	for key, flag := range map[string]string{
		keyTop:      "top",
		keyMinSize:  "min-size",
		keyOutput:   "output",
		keyWorkers:  "workers",
		keyExcludes: "exclude",
	} {
		//nolint:errcheck // Flags are defined by Command
		v.BindPFlag(key, flags.Lookup(flag))
	}
}

// rootPath returns the directory to scan: the argument with a leading ~ expanded, or the home directory.
func rootPath(args []string) (string, error) {
	home, err := os.UserHomeDir()

	if len(args) == 0 {
		if err != nil {
			return "", fmt.Errorf("locating home directory: %w", err)
		}

		return home, nil
	}

	path := args[0]
	if err == nil && (path == "~" || strings.HasPrefix(path, "~/")) {
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	return path, nil
}
