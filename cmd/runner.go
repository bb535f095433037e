package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/shelf/internal/catalog"
	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/repositories"
	"github.com/desertthunder/shelf/internal/shared"
	"github.com/urfave/cli/v3"
)

// StoreOpener opens the storage backend selected by a configuration.
type StoreOpener func(ctx context.Context, config *shared.Config, logger *log.Logger) (models.Store, error)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	logger     *log.Logger
	output     io.Writer
	open       StoreOpener
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Logger     *log.Logger
	Output     io.Writer
	Open       StoreOpener
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Open == nil {
		opts.Open = repositories.Open
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		logger:     opts.Logger,
		output:     opts.Output,
		open:       opts.Open,
	}
}

// SetLogger replaces the runner's logger, e.g. with a file logger while the interactive menu owns the terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		addCommand, removeCommand, searchCommand, listCommand, statsCommand, exportCommand,
		setupCommand, menuCommand, serveCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// configure resolves the configuration from the config file, the environment and the global flags.
//
// A missing config file is not an error; defaults apply.
func (r *Runner) configure(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Bool("verbose") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}

	r.configPath = cmd.String("config")

	config := shared.DefaultConfig()
	if _, err := os.Stat(r.configPath); err == nil {
		if config, err = shared.LoadConfig(r.configPath); err != nil {
			return ctx, err
		}
		r.logger.Debug("loaded config", "path", r.configPath)
	} else {
		r.logger.Debug("config file not found, using defaults", "path", r.configPath)
	}

	if err := config.ApplyEnv(); err != nil {
		return ctx, err
	}

	if backend := cmd.String("backend"); backend != "" {
		config.Storage.Backend = backend
		if err := config.Validate(); err != nil {
			return ctx, err
		}
	}

	r.config = config
	return ctx, nil
}

// withCatalog opens the configured store, runs fn against a catalog over it, and closes the store.
//
// Closing persists the file backend, so a close error is reported when fn succeeded.
func (r *Runner) withCatalog(ctx context.Context, fn func(*catalog.Catalog) error) error {
	store, err := r.open(ctx, r.config, r.logger)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}

	runErr := fn(r.newCatalog(store))

	if err := store.Close(); err != nil {
		if runErr == nil {
			return fmt.Errorf("failed to close store: %w", err)
		}
		r.logger.Error("failed to close store", "error", err)
	}

	return runErr
}

func (r *Runner) newCatalog(store models.Store) *catalog.Catalog {
	return catalog.New(store, catalog.Options{Logger: r.logger, MinYear: r.config.Validation.MinYear})
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) error {
	return r.writePlain("═══════════════════════════════════════\n%s\n═══════════════════════════════════════\n", title)
}
