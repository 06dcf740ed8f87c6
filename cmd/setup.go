package cmd

import (
	"context"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tanq16/scenefetch/internal/archive"
	"github.com/tanq16/scenefetch/internal/config"
	fetchhttp "github.com/tanq16/scenefetch/internal/downloaders/http"
	s3fetch "github.com/tanq16/scenefetch/internal/downloaders/s3"
	"github.com/tanq16/scenefetch/internal/fetcher"
	"github.com/tanq16/scenefetch/internal/orchestrator"
)

const dotEnvFile = ".env"

// loadConfig layers the YAML file, .env and process env, then asks for
// anything still unset and validates the result.
func loadConfig(path string, p *prompter) (*config.Config, error) {
	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	dotenv, err := config.ReadDotEnv(dotEnvFile)
	if err != nil {
		return nil, err
	}
	cfg = cfg.WithEnv(config.Lookup(dotenv))
	if cfg.NeedsToken() {
		if cfg.Token, err = p.token(); err != nil {
			return nil, err
		}
	}
	if cfg.NeedsDataRoot() {
		if cfg.DataRoot, err = p.dataRoot(); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func usesS3(cfg *config.Config) bool {
	return strings.HasPrefix(cfg.RootURL, "s3://") || strings.HasPrefix(cfg.GSURL, "s3://")
}

func newOrchestrator(ctx context.Context, cfg *config.Config) (*orchestrator.Orchestrator, error) {
	router := &fetcher.Router{HTTP: fetchhttp.NewTransport(cfg.HTTPClientConfig())}
	if usesS3(cfg) {
		t, err := s3fetch.NewTransport(ctx, cfg.S3.Profile, cfg.S3.Region)
		if err != nil {
			return nil, err
		}
		router.S3 = t
		log.Debug().Str("op", "cmd/setup").Msg("s3 backend enabled")
	}
	return orchestrator.New(cfg, orchestrator.Deps{
		Fetcher:   fetcher.New(router, cfg.RetryOptions()),
		Prober:    router,
		Installer: archive.NewInstaller(cfg.Verbose),
	}), nil
}

func newPrompter() *prompter {
	return &prompter{in: os.Stdin, out: os.Stderr, fd: int(os.Stdin.Fd())}
}
