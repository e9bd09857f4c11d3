package main

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/fluentctl/internal/formatter"
	"github.com/desertthunder/fluentctl/internal/models"
	"github.com/desertthunder/fluentctl/internal/services"
	"github.com/desertthunder/fluentctl/internal/shared"
	"github.com/desertthunder/fluentctl/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	crm        services.Service
	engine     *tasks.CRMEngine
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	CRM        services.Service
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
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
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:     opts.Config,
		crm:        opts.CRM,
		engine:     tasks.NewCRMEngine(opts.CRM),
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// SetLogger swaps the runner's logger, used when the TUI owns the terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		getContactCommand, createContactCommand, deleteContactCommand,
		updateContactTagsCommand, updateContactListsCommand,
		getTagsCommand, createTagCommand, deleteTagCommand,
		getListsCommand, createListCommand, updateListCommand, deleteListCommand,
		exportCommand, browseCommand, initCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// requireService guards actions that need a configured CRM connection.
func (r *Runner) requireService() error {
	if r.crm == nil {
		return fmt.Errorf("%w: CRM service not initialized, set FLUENT_URL, FLUENT_USER and FLUENT_PASSWORD", shared.ErrServiceUnavailable)
	}
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return err
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

func (r *Runner) writeCSV(items []models.Taxonomy) error {
	data, err := formatter.TaxonomiesToCSV(items)
	if err != nil {
		return err
	}
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
