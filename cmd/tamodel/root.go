package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/tamodel/model"
	"github.com/arthur-debert/tamodel/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// CLI bundles the root command with its configuration and output streams.
type CLI struct {
	root   *cobra.Command
	v      *viper.Viper
	out    io.Writer
	errOut io.Writer
	log    *slog.Logger
	closer io.Closer
}

func newCLI(out, errOut io.Writer) *CLI {
	cli := &CLI{
		v:      viper.New(),
		out:    out,
		errOut: errOut,
		log:    slog.Default(),
	}
	cli.setupViperConfig()
	cli.createRootCommand()
	cli.addCommands()
	return cli
}

// Execute runs the command line and prints the error, if any.
func (cli *CLI) Execute() error {
	err := cli.root.Execute()
	if cli.closer != nil {
		_ = cli.closer.Close()
	}
	if err != nil {
		fmt.Fprintf(cli.errOut, "Error: %v\n", err)
	}
	return err
}

func (cli *CLI) setupViperConfig() {
	if configFile := os.Getenv("TAMODEL_CONFIG"); configFile != "" {
		cli.v.SetConfigFile(configFile)
	} else {
		cli.v.SetConfigName("tamodel")
		cli.v.SetConfigType("yaml")
		cli.v.AddConfigPath(".")
		cli.v.AddConfigPath("$HOME/.config/tamodel")
	}

	cli.v.SetEnvPrefix("TAMODEL")
	cli.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	cli.v.AutomaticEnv()

	cli.v.SetDefault("log-level", "warn")
	cli.v.SetDefault("lock-timeout", storage.DefaultLockTimeout)
	cli.v.SetDefault("output", "text")
}

func (cli *CLI) createRootCommand() {
	cli.root = &cobra.Command{
		Use:   "tamodel",
		Short: "Timed-automata project tool",
		Long: `tamodel loads timed-automata project files, checks them and edits
their components and systems while keeping every identifier unique.

Configuration sources (in order of precedence):
  1. Command line flags
  2. Environment variables (TAMODEL_*)
  3. tamodel.yaml in the current directory or ~/.config/tamodel
     (TAMODEL_CONFIG=/path/to/file.yaml overrides the search)

Examples:
  tamodel new --project coffee.json
  tamodel add location Machine --project coffee.json
  tamodel ids --project coffee.json --output yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			if err := cli.v.ReadInConfig(); err != nil {
				var missing viper.ConfigFileNotFoundError
				if !errors.As(err, &missing) {
					return NewConfigError("read configuration", err.Error())
				}
			}
			return cli.initLogging()
		},
	}
	cli.root.SetOut(cli.out)
	cli.root.SetErr(cli.errOut)

	flags := cli.root.PersistentFlags()
	flags.StringP("project", "p", "", "path to the project file")
	flags.StringP("output", "o", "text", "output format (text|yaml)")
	flags.BoolP("dry-run", "n", false, "apply edits in memory without saving")
	flags.BoolP("verbose", "v", false, "show detailed output")
	flags.Bool("no-color", false, "disable colored output")
	flags.String("log-level", "warn", "log level (debug|info|warn|error)")
	flags.Bool("log-stderr", false, "also write logs to stderr")
	flags.Duration("lock-timeout", storage.DefaultLockTimeout, "how long to wait for the project file lock")

	for _, name := range []string{"project", "output", "dry-run", "verbose", "no-color", "log-level", "log-stderr", "lock-timeout"} {
		_ = cli.v.BindPFlag(name, flags.Lookup(name))
	}
}

func (cli *CLI) addCommands() {
	cli.root.AddCommand(
		cli.newCmd(),
		cli.checkCmd(),
		cli.idsCmd(),
		cli.addCmd(),
		cli.connectCmd(),
		cli.renameCmd(),
		cli.removeCmd(),
		cli.normalizeCmd(),
		cli.findCmd(),
	)
}

func (cli *CLI) projectPath(operation string) (string, error) {
	path := cli.v.GetString("project")
	if path == "" {
		return "", NewConfigError(operation, "no project file given",
			"Pass --project <file>",
			"Or set TAMODEL_PROJECT")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", NewConfigError(operation, fmt.Sprintf("invalid project path %q", path))
	}
	return abs, nil
}

// openSession loads the project file in a fresh workspace.
func (cli *CLI) openSession(operation string) (*storage.Session, error) {
	path, err := cli.projectPath(operation)
	if err != nil {
		return nil, err
	}
	ws := model.NewWorkspace(model.WithLogger(cli.log))
	s, err := storage.Open(path, ws,
		storage.WithLockTimeout(cli.v.GetDuration("lock-timeout")),
		storage.WithLogger(cli.log))
	if err != nil {
		return nil, NewStoreError(operation, err)
	}
	return s, nil
}

// edit runs fn on the open project and saves unless --dry-run is set.
func (cli *CLI) edit(operation string, fn func(p *model.Project) (string, error)) error {
	s, err := cli.openSession(operation)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	var result string
	apply := func(p *model.Project) error {
		r, err := fn(p)
		result = r
		return err
	}
	if cli.v.GetBool("dry-run") {
		err = s.Read(apply)
	} else {
		err = s.Write(apply)
	}
	if err != nil {
		return NewModelError(operation, err)
	}

	cli.log.Info("edit applied", "operation", operation, "result", result, "dry_run", cli.v.GetBool("dry-run"))
	fmt.Fprintln(cli.out, result)
	if cli.v.GetBool("dry-run") {
		fmt.Fprintln(cli.out, "(dry run - no changes saved)")
	}
	return nil
}
