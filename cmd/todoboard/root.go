package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/td0m/todoboard/internal/config"
	"github.com/td0m/todoboard/internal/logging"
	"github.com/td0m/todoboard/pkg/persist"
	"github.com/td0m/todoboard/pkg/todo"
)

type globalFlags struct {
	config   string
	file     string
	backend  string
	logLevel string
}

// session is everything a command needs once flags are parsed
type session struct {
	cfg     *config.Config
	logger  *log.Logger
	gateway *persist.Gateway
	store   *todo.Store
	closers []func()
}

func (s *session) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// run executes the command line args and reports any error on app.Stderr.
func run(app *App, args []string) error {
	if args == nil {
		args = []string{}
	}
	sess := &session{}
	defer sess.close()
	cmd := newRootCmd(app, sess)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(app.Stderr, "error:", err)
		return err
	}
	return nil
}

func newRootCmd(app *App, sess *session) *cobra.Command {
	var flags globalFlags
	cmd := &cobra.Command{
		Use:           "todoboard",
		Short:         "A todo list for the terminal",
		Long:          "todoboard keeps a manually ordered todo list. Run it without a command to open the interactive board.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return sess.open(app, flags)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(app, sess)
		},
	}
	cmd.SetIn(app.Stdin)
	cmd.SetOut(app.Stdout)
	cmd.SetErr(app.Stderr)

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.config, "config", "", "config file (default $XDG_CONFIG_HOME/todoboard/config.toml)")
	pf.StringVar(&flags.file, "file", "", "todo storage file, overrides the config")
	pf.StringVar(&flags.backend, "backend", "", "storage backend: json or sqlite, overrides the config")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn or error")

	cmd.AddCommand(
		newAddCmd(sess),
		newListCmd(sess),
		newDoneCmd(sess),
		newEditCmd(app, sess),
		newRmCmd(sess),
		newClearCmd(sess),
		newMoveCmd(sess),
		newSortCmd(sess),
		newImportCmd(app, sess),
		newExportCmd(app, sess),
		newTemplateCmd(app),
	)
	return cmd
}

func (s *session) open(app *App, flags globalFlags) error {
	path := app.abs(flags.config)
	if path == "" {
		path = config.Path(app.Getenv)
	}
	dataDir := config.DataDir(app.Getenv)
	cfg, err := config.Load(path, dataDir)
	if err != nil {
		return err
	}
	if flags.backend != "" && flags.backend != cfg.Storage.Backend {
		cfg.Storage.Backend = flags.backend
		cfg.Storage.Path = config.StoragePath(dataDir, flags.backend)
	}
	if flags.file != "" {
		cfg.Storage.Path = app.abs(flags.file)
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.cfg = cfg

	logger, closeLog, err := logging.New(cfg.Log.Level, cfg.Log.File, nil)
	if err != nil {
		return err
	}
	s.logger = logger
	s.closers = append(s.closers, closeLog)

	p, err := persist.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		return err
	}
	s.gateway = persist.NewGateway(p, logger)
	s.closers = append(s.closers, func() { _ = s.gateway.Close() })

	s.store = todo.NewStore(todo.WithClock(app.Now), todo.WithSaver(s.gateway))
	s.store.Replace(s.gateway.Load())
	logger.Debug("session opened", "backend", cfg.Storage.Backend, "path", cfg.Storage.Path, "todos", s.store.Len())
	return nil
}

