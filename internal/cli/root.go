package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"cloud.google.com/go/civil"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/roach88/wad/internal/absence"
	"github.com/roach88/wad/internal/config"
	"github.com/roach88/wad/internal/editor"
	"github.com/roach88/wad/internal/selection"
	"github.com/roach88/wad/internal/spinner"
	"github.com/roach88/wad/internal/store"
	"github.com/roach88/wad/internal/watson"
)

// WatsonClient is the part of the Watson CLI the commands use.
type WatsonClient interface {
	Usable(ctx context.Context) bool
	Log(ctx context.Context, q watson.LogQuery) (watson.Frames, error)
}

// Env holds the collaborators commands talk to.
type Env struct {
	Now      func() time.Time
	Location *time.Location
	IDs      absence.IDGenerator
	Prompter selection.Prompter
	Launcher editor.Launcher
	Watson   WatsonClient
	Spinner  spinner.Config
	// TempDir is where edit scratch files are created; empty means os.TempDir().
	TempDir string
	// LogOutput receives diagnostic logs; nil means the command's stderr.
	LogOutput io.Writer
}

// DefaultEnv returns the production collaborators.
func DefaultEnv() *Env {
	return &Env{
		Now:      time.Now,
		Location: time.Local,
		IDs:      absence.UUIDv7Generator{},
		Prompter: selection.PromptUI{},
		Launcher: editor.CommandLauncher{},
		Spinner:  spinner.DefaultConfig(),
	}
}

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	DataDir    string
	ConfigPath string
	NoColor    bool

	env *Env
	log *logrus.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

const appDescription = "Watson Dashboard - Enhanced querying and overview for Watson time tracker"

// Execute runs the wad command line and returns the process exit code.
func Execute(version string) int {
	cmd := NewRootCommand()
	cmd.Version = version
	if err := executeArgs(context.Background(), cmd, os.Args[1:]); err != nil {
		if format, _ := cmd.PersistentFlags().GetString("format"); format == "json" {
			_ = (&OutputFormatter{Format: format, Writer: os.Stdout}).Fail(err)
		} else {
			fmt.Fprintln(os.Stderr, errorText("Error:"), err)
		}
		return GetExitCode(err)
	}
	return ExitSuccess
}

// executeArgs runs cmd with args, keeping negative numbers positional.
func executeArgs(ctx context.Context, cmd *cobra.Command, args []string) error {
	cmd.SetArgs(positionalNegatives(cmd, args))
	return cmd.ExecuteContext(ctx)
}

// NewRootCommand creates the root command for the wad CLI.
func NewRootCommand() *cobra.Command {
	return NewRootCommandWithEnv(DefaultEnv())
}

// NewRootCommandWithEnv creates the root command with the given collaborators.
func NewRootCommandWithEnv(env *Env) *cobra.Command {
	opts := &RootOptions{env: env}

	cmd := &cobra.Command{
		Use:   "wad",
		Short: "wad - Watson Dashboard",
		Long: appDescription + `.

Shows tracked Watson time per day and week, and keeps a local ledger of
absences (vacation, sick leave, holidays) that count towards work time.

Run without a command to pick one from a menu.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if opts.NoColor || opts.Format == "json" {
				color.NoColor = true
			}
			opts.setup(cmd)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(opts, cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.DataDir, "data-dir", "", "absence data directory (overrides config data_dir)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default is <user config dir>/wad/config.yaml)")
	cmd.PersistentFlags().BoolVar(&opts.NoColor, "no-color", false, "disable colored output")

	// Add subcommands
	cmd.AddCommand(NewAbsenceCommand(opts))
	cmd.AddCommand(NewWorktimeCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))

	return cmd
}

// setup fills in the logger and any collaborator left unset.
func (o *RootOptions) setup(cmd *cobra.Command) {
	out := o.env.LogOutput
	if out == nil {
		out = cmd.ErrOrStderr()
	}
	o.log = logrus.New()
	o.log.SetOutput(out)
	o.log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	o.log.SetLevel(logrus.WarnLevel)
	if o.Verbose {
		o.log.SetLevel(logrus.DebugLevel)
	}

	if o.env.Now == nil {
		o.env.Now = time.Now
	}
	if o.env.Location == nil {
		o.env.Location = time.Local
	}
	if o.env.IDs == nil {
		o.env.IDs = absence.UUIDv7Generator{}
	}
	if o.env.Watson == nil {
		o.env.Watson = watson.NewClient(watson.WithLogger(o.log))
	}
}

func (o *RootOptions) logger() logrus.FieldLogger {
	if o.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		return l
	}
	return o.log
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

func (o *RootOptions) now() time.Time {
	return o.env.Now().In(o.env.Location)
}

func (o *RootOptions) today() civil.Date {
	return civil.DateOf(o.now())
}

func (o *RootOptions) loadConfig() (config.Config, error) {
	cfg, err := config.Open(o.ConfigPath)
	if err != nil {
		return config.Config{}, WrapExitError(ExitCode(err), "failed to load config", err)
	}
	return cfg, nil
}

// openStore opens the absence ledger under --data-dir, config data_dir, or
// the default data directory, in that order.
func (o *RootOptions) openStore() (*store.Store, error) {
	dir := o.DataDir
	if dir == "" {
		cfg, err := o.loadConfig()
		if err != nil {
			return nil, err
		}
		dir, err = cfg.ResolveDataDir()
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to resolve data directory", err)
		}
	}

	st, err := store.Open(dir, store.WithLogger(o.logger().WithField("component", "store")))
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open absence store", err)
	}
	return st, nil
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
