package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/chainguard-dev/clog"
	"github.com/joho/godotenv"

	"github.com/darkin100/i-am-reviewed/internal/adapter/cli"
	"github.com/darkin100/i-am-reviewed/internal/adapter/gcp"
	gitadapter "github.com/darkin100/i-am-reviewed/internal/adapter/git"
	"github.com/darkin100/i-am-reviewed/internal/adapter/hostcli"
	"github.com/darkin100/i-am-reviewed/internal/adapter/llm/static"
	"github.com/darkin100/i-am-reviewed/internal/adapter/llm/vertex"
	"github.com/darkin100/i-am-reviewed/internal/adapter/platform"
	"github.com/darkin100/i-am-reviewed/internal/config"
	"github.com/darkin100/i-am-reviewed/internal/domain"
	"github.com/darkin100/i-am-reviewed/internal/redaction"
	"github.com/darkin100/i-am-reviewed/internal/usecase/review"
	"github.com/darkin100/i-am-reviewed/internal/version"
)

func main() {
	log.SetFlags(0)
	if err := run(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func run() error {
	// Cancellable context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Local development convenience; CI provides real environment variables.
	_ = godotenv.Load()

	cfg, err := config.Load(config.LoaderOptions{
		ConfigPaths: defaultConfigPaths(),
		FileName:    "iar",
		EnvPrefix:   "IAR",
	})
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	logger := cli.NewLogger(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)
	ctx = clog.WithLogger(ctx, logger)

	env := captureEnvironment()

	// Credentials from CI secrets land in a scoped temp file that is removed
	// on every exit path.
	credCleanup, err := gcp.MaterializeCredentials(env)
	if err != nil {
		return err
	}
	defer credCleanup()

	runner := hostcli.NewExecRunner(cfg.Command.Timeout)

	runReview := func(ctx context.Context, provider string) (domain.ReviewResult, error) {
		host, err := platform.Resolve(provider, runner, env)
		if err != nil {
			return domain.ReviewResult{}, err
		}

		// Validate up front so a misconfigured run reports every missing
		// variable before any process or network activity.
		if err := review.ValidateEnvironment(env, host); err != nil {
			return domain.ReviewResult{}, err
		}

		generator, err := newGenerator(ctx, cfg, env)
		if err != nil {
			return domain.ReviewResult{}, err
		}

		var redactor review.Redactor
		if cfg.Redaction.Enabled {
			redactor = redaction.NewEngine()
		}

		orchestrator := review.NewOrchestrator(review.OrchestratorDeps{
			Host:         host,
			Generator:    generator,
			Redactor:     redactor,
			Env:          env,
			MaxDiffBytes: cfg.Review.MaxDiffBytes,
			Instructions: cfg.Review.Instructions,
		})
		return orchestrator.Run(ctx)
	}

	root := cli.NewRootCommand(cli.Dependencies{
		Run:     runReview,
		Version: version.Value(),
	})

	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, cli.ErrVersionRequested) {
			return nil
		}
		return err
	}
	return nil
}

// newGenerator selects the generator from config. "vertex" is the default;
// "static" runs the full pipeline with a canned review and no model call.
func newGenerator(ctx context.Context, cfg config.Config, env config.Snapshot) (review.Generator, error) {
	switch cfg.Model.Backend {
	case "", "vertex":
		project, _ := review.ProjectRequirement.Resolve(env)
		location, _ := review.LocationRequirement.Resolve(env)
		return vertex.New(ctx, vertex.Options{
			Project:         project,
			Location:        location,
			Model:           cfg.Model.Name,
			Temperature:     cfg.Model.Temperature,
			MaxOutputTokens: cfg.Model.MaxOutputTokens,
		})
	case "static":
		return static.NewGenerator(static.DryRunComment), nil
	default:
		return nil, fmt.Errorf("unknown model backend %q (supported: vertex, static)", cfg.Model.Backend)
	}
}

// captureEnvironment snapshots the process environment and, when no
// repository variable is set, fills the generic fallback from the local
// checkout's origin remote.
func captureEnvironment() config.Snapshot {
	env := config.CaptureEnv()

	repoVars := config.Requirement{Names: []string{"GITHUB_REPOSITORY", "CI_PROJECT_PATH", "REPOSITORY"}}
	if _, ok := repoVars.Resolve(env); !ok {
		if repo, err := gitadapter.OriginRepository("."); err == nil {
			env = env.With("REPOSITORY", repo)
		}
	}
	return env
}

func defaultConfigPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "iar"))
	}
	return paths
}
