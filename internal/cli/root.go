// Package cli wires the task-cli command tree.
package cli

import (
	"errors"
	"io"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/task-cli/internal/config"
	"github.com/idilsaglam/task-cli/internal/logging"
	"github.com/idilsaglam/task-cli/internal/store/jsonstore"
	"github.com/idilsaglam/task-cli/internal/tasks"
	"github.com/idilsaglam/task-cli/internal/tui"
	"github.com/idilsaglam/task-cli/internal/ui"
)

const appName = "task-cli"

// Exit codes: 0 ok, 1 error, 2 usage.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// commandNames are listed after an invalid command. browse is left out
// of that line and mentioned in the tip instead.
var commandNames = []string{"add", "update", "delete", "mark-in-progress", "mark-done", "list"}

// idCommands take a task id as their first argument.
var idCommands = map[string]bool{"update": true, "delete": true, "mark-in-progress": true, "mark-done": true}

type browseFunc func(svc *tasks.Service, c *ui.Console, opts ...tea.ProgramOption) (bool, error)

type app struct {
	stdout, stderr io.Writer

	flags struct {
		file, configPath, theme, logLevel string
		noColor                           bool
	}

	cfg     *config.Config
	log     *log.Logger
	console *ui.Console
	store   *jsonstore.Store
	svc     *tasks.Service

	browse browseFunc
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout:  stdout,
		stderr:  stderr,
		log:     logging.Discard(),
		console: ui.NewConsole(stdout, stderr, ui.LookupTheme(config.DefaultTheme), config.DefaultColor),
		browse:  tui.Run,
	}
}

// Run executes one command line and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	a := newApp(stdout, stderr)
	root := a.rootCmd()
	root.SetArgs(negativeIDArgs(args))
	return a.exitCode(root.Execute())
}

func (a *app) exitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var uerr *UsageError
	if errors.As(err, &uerr) {
		if uerr.Hint != "" {
			a.console.Fail(uerr.Hint)
		}
		if uerr.Tip != "" {
			a.console.Hint(uerr.Tip)
		}
		return ExitUsage
	}
	a.log.Debug("command failed", "err", err)
	a.console.Fail(err.Error())
	return ExitError
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   appName + " <command> [args]",
		Short: "Track tasks in a local JSON file",
		Long: `task-cli records tasks with a description, a status (todo, in-progress, done)
and timestamps, and keeps them in a JSON file in the working directory.`,
		Example: `  task-cli add "Buy milk"
  task-cli update 1 "Buy oat milk"
  task-cli mark-in-progress 1
  task-cli mark-done 1
  task-cli list done
  task-cli delete 1`,
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return &UsageError{}
			}
			return &UsageError{
				Hint: "Invalid command. Available commands: " + strings.Join(commandNames, ", "),
				Tip:  "Run '" + appName + " --help' for details and the interactive browse command.",
			}
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usage(err.Error())
	})

	pf := root.PersistentFlags()
	pf.StringVarP(&a.flags.file, "file", "f", "", "task file path (default tasks.json)")
	pf.StringVar(&a.flags.configPath, "config", "", "config file (replaces user and project config)")
	pf.StringVar(&a.flags.theme, "theme", "", "output theme: "+strings.Join(ui.ThemeNames(), "|"))
	pf.StringVar(&a.flags.logLevel, "log-level", "", "diagnostic level: debug|info|warn|error")
	pf.BoolVar(&a.flags.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		a.addCmd(),
		a.updateCmd(),
		a.deleteCmd(),
		a.markCmd("mark-in-progress", "Set a task's status to in-progress", "in-progress"),
		a.markCmd("mark-done", "Set a task's status to done", "done"),
		a.listCmd(),
		a.browseCmd(),
	)
	return root
}

// setup resolves config and builds the store and service. It never
// reads the task file.
func (a *app) setup() error {
	cfg, err := config.Load(config.Options{
		ConfigPath: a.flags.configPath,
		File:       a.flags.file,
		Theme:      a.flags.theme,
		LogLevel:   a.flags.logLevel,
		NoColor:    a.flags.noColor,
	})
	if err != nil {
		return err
	}
	logger, err := logging.New(a.stderr, cfg.LogLevel)
	if err != nil {
		return err
	}
	st, err := jsonstore.New(cfg.File,
		jsonstore.WithLogger(logger),
		jsonstore.WithValidation(cfg.Validate),
	)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logger
	a.console = ui.NewConsole(a.stdout, a.stderr, ui.LookupTheme(cfg.Theme), cfg.Color)
	a.store = st
	a.svc = tasks.New(st, a.serviceOptions()...)
	logger.Debug("config resolved", "file", cfg.File, "sources", cfg.Sources, "ids", cfg.IDStrategy)
	return nil
}

// serviceOptions are shared by the file-backed and browse services.
func (a *app) serviceOptions() []tasks.Option {
	return []tasks.Option{
		tasks.WithIDStrategy(tasks.IDStrategy(a.cfg.IDStrategy)),
		tasks.WithLogger(a.log),
	}
}

// negativeIDArgs ends flag parsing in front of a negative id, so
// "delete -1" reaches the command instead of failing as a shorthand flag.
func negativeIDArgs(args []string) []string {
	for i, arg := range args {
		if !idCommands[arg] {
			continue
		}
		if i+1 < len(args) && isNegativeInt(args[i+1]) {
			out := append([]string{}, args[:i+1]...)
			out = append(out, "--")
			return append(out, args[i+1:]...)
		}
		return args
	}
	return args
}

func isNegativeInt(s string) bool {
	if !strings.HasPrefix(s, "-") {
		return false
	}
	_, err := strconv.Atoi(s)
	return err == nil
}
