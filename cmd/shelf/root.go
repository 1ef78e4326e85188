package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/shelf/internal/api"
	"github.com/alexisbeaulieu97/shelf/internal/config"
	"github.com/alexisbeaulieu97/shelf/internal/logger"
)

type rootFlags struct {
	configPath string
	envFile    string
	apiURL     string
	debug      bool
	logLevel   string
}

// appContext carries settings resolved before any command runs.
type appContext struct {
	flags *rootFlags
	cfg   *config.Config
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	app := &appContext{flags: flags}

	cmd := &cobra.Command{
		Use:   "shelf",
		Short: "Shelf administers a books and authors catalogue",
		Long: `Shelf is a terminal admin interface for a books and authors REST backend.

Run it without a subcommand to open the interactive admin screens.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}

	flags.bind(cmd)

	cmd.AddCommand(newBooksCmd(app))
	cmd.AddCommand(newAuthorsCmd(app))
	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newVersionCmd(app))

	return cmd
}

func (f *rootFlags) bind(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&f.configPath, "config", "", "Path to the config file (default ~/.shelf/config.yaml)")
	cmd.PersistentFlags().StringVar(&f.envFile, "env-file", ".env", "Path to a .env file to load")
	cmd.PersistentFlags().StringVar(&f.apiURL, "api-url", "", "Backend base URL (overrides config and SHELF_API_URL)")
	cmd.PersistentFlags().BoolVarP(&f.debug, "debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

// load resolves the configuration from the env file, the config file, the
// environment and finally command-line flags.
func (a *appContext) load(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(a.flags.envFile); err != nil {
		return newCommandError("load configuration", "reading env file", err, "Check the --env-file path.")
	}

	path := a.flags.configPath
	if path == "" {
		defaultPath, err := config.DefaultPath()
		if err != nil {
			return newCommandError("load configuration", "determining config path", err, "Ensure your HOME directory is set correctly.")
		}
		path = defaultPath
	}

	cfg, err := config.Load(path)
	if err != nil {
		return newCommandError("load configuration", path, err, "Fix the reported field and try again.")
	}

	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.APIURL = a.flags.apiURL
	}
	if flags.Changed("debug") {
		cfg.Debug = a.flags.debug
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.flags.logLevel
	}
	if err := config.Validate(cfg); err != nil {
		return newCommandError("load configuration", "validating flags", err, "Run 'shelf --help' for accepted values.")
	}

	a.cfg = cfg
	return nil
}

// logger builds a human-readable logger for headless commands.
func (a *appContext) logger(w io.Writer) (*logger.Logger, error) {
	return logger.New(logger.Options{
		Level:         a.cfg.LogLevel,
		HumanReadable: true,
		Writer:        w,
		Verbose:       a.cfg.Debug,
	})
}

func (a *appContext) client(log *logger.Logger) *api.Client {
	return api.New(a.cfg.APIURL, api.WithLogger(log))
}
