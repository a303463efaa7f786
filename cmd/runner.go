package main

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/plantx/internal/repositories"
	"github.com/desertthunder/plantx/internal/services"
	"github.com/desertthunder/plantx/internal/session"
	"github.com/desertthunder/plantx/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// The credential database, session and API client are opened lazily by [Runner.connect] so that
// commands like "setup config" and "dev-server" work without them.
type Runner struct {
	config     *shared.Config
	configPath string
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	input      io.Reader

	db      *sql.DB
	session *session.Store
	plants  *services.PlantService
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	// Input is read for password prompts when it is not a terminal.
	Input io.Reader
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
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Config.API.Timeout()}
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		input:      opts.Input,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, plantsCommand, apiCommand, tuiCommand, devServerCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Before loads the configuration file when present, then applies environment and flag overrides.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if path := cmd.String("config"); path != "" {
		r.configPath = path
	}

	if _, err := os.Stat(r.configPath); r.configPath != "" && err == nil {
		config, err := shared.LoadConfig(r.configPath)
		if err != nil {
			return ctx, fmt.Errorf("%w: %v", shared.ErrInvalidConfig, err)
		}
		r.config = config
	}

	if err := shared.ApplyEnv(ctx, r.config); err != nil {
		return ctx, err
	}

	if baseURL := cmd.String("base-url"); baseURL != "" {
		r.config.API.BaseURL = baseURL
	}

	shared.SetLogLevel(r.logger, shared.ParseLogLevel(r.config.Log.Level))
	r.httpClient.Timeout = r.config.API.Timeout()
	return ctx, nil
}

// After releases the credential database.
func (r *Runner) After(ctx context.Context, cmd *cli.Command) error {
	return r.Close()
}

// SetLogger replaces the logger used by commands and by anything [Runner.connect] builds afterwards.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// connect opens the credential database, restores the persisted session and builds the API client.
func (r *Runner) connect(ctx context.Context) error {
	if r.plants != nil {
		return nil
	}

	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return fmt.Errorf("failed to open credential database: %w", err)
	}
	r.db = db

	tokens := repositories.NewTokenStore(repositories.NewCredentialRepository(db), r.config.Session.TokenKey)
	r.session = session.NewStore(tokens, nil, r.logger)
	r.plants = services.NewPlantService(services.PlantServiceOpts{
		BaseURL:           r.config.API.BaseURL,
		Tokens:            r.session,
		HTTPClient:        r.httpClient,
		RequestsPerSecond: r.config.API.RequestsPerSecond,
		Logger:            r.logger,
	})
	r.session.SetVerifier(r.plants)

	r.logger.Debug("restoring session", "db", r.config.Database.Path, "base_url", r.plants.BaseURL())
	return r.session.Restore(ctx)
}

// requireLogin connects and fails with [shared.ErrNotAuthenticated] when no identity is resolved.
func (r *Runner) requireLogin(ctx context.Context) error {
	if err := r.connect(ctx); err != nil {
		return err
	}
	if r.session.Identity() == nil {
		return fmt.Errorf("%w: run 'plantx auth login' first", shared.ErrNotAuthenticated)
	}
	return nil
}

// Close releases the credential database, if open.
func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	r.session = nil
	r.plants = nil
	return err
}

// readPassword prompts on a terminal without echo, or reads one line from a non-terminal input.
func (r *Runner) readPassword(label string) (string, error) {
	if f, ok := r.input.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		r.writePlain("%s", label)
		b, err := term.ReadPassword(int(f.Fd()))
		r.writePlain("\n")
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(r.input).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", fmt.Errorf("%w: password is required", shared.ErrMissingArgument)
	}
	return password, nil
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

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
