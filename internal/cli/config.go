package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/wad/internal/config"
)

// NewConfigCommand creates the config command group.
func NewConfigCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change settings",
		Long: `Show or change settings.

Keys: ` + strings.Join(config.Keys(), ", ") + `

Settings can be overridden with WAD_* environment variables, e.g.
WAD_WORKHOURS_PER_WEEK=38.5.`,
	}

	cmd.AddCommand(newConfigPathCommand(opts))
	cmd.AddCommand(newConfigGetCommand(opts))
	cmd.AddCommand(newConfigSetCommand(opts))
	cmd.AddCommand(newConfigListCommand(opts))

	return cmd
}

func (o *RootOptions) configFile() (string, error) {
	if o.ConfigPath != "" {
		return o.ConfigPath, nil
	}
	return config.FilePath()
}

func newConfigPathCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:         "path",
		Short:       "Show the path to the config directory",
		Args:        cobra.NoArgs,
		Annotations: menuEntry,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := opts.configFile()
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to resolve config directory", err)
			}
			return opts.formatter(cmd).Success(filepath.Dir(path))
		},
	}
}

func newConfigGetCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a config value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			value, err := cfg.Get(args[0])
			if err != nil {
				return WrapExitError(ExitCode(err), "config get failed", err)
			}

			f := opts.formatter(cmd)
			if f.JSON() {
				return f.Success(config.KeyValue{Key: args[0], Value: value})
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}

func newConfigSetCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)

			if _, err := opts.loadConfig(); err != nil {
				return err
			}
			path, err := opts.configFile()
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to resolve config file", err)
			}
			// Environment overrides stay out of the file.
			stored, err := config.LoadFile(path)
			if err != nil {
				return WrapExitError(ExitCode(err), "failed to load config", err)
			}
			updated, err := stored.Set(args[0], args[1])
			if err != nil {
				return WrapExitError(ExitCode(err), "config set failed", err)
			}
			if err := updated.Save(path); err != nil {
				return WrapExitError(ExitCode(err), "failed to save config", err)
			}
			opts.logger().WithField("key", args[0]).Debug("config updated")

			value, _ := updated.Get(args[0])
			if f.JSON() {
				return f.Success(config.KeyValue{Key: args[0], Value: value})
			}
			f.VerboseLog("Set %s = %s", args[0], value)
			return nil
		},
	}
}

func newConfigListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:         "list",
		Short:       "List all config values",
		Args:        cobra.NoArgs,
		Annotations: menuEntry,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			f := opts.formatter(cmd)
			if f.JSON() {
				return f.Success(cfg.List())
			}
			for _, kv := range cfg.List() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", kv.Key, kv.Value)
			}
			return nil
		},
	}
}
