package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Jquirozp0/etl-covid-pipeline/internal/domain"
	"github.com/Jquirozp0/etl-covid-pipeline/internal/infra/envconfig"
	"github.com/Jquirozp0/etl-covid-pipeline/internal/infra/workspacefinder"
	"github.com/Jquirozp0/etl-covid-pipeline/internal/infra/yamlconfig"
)

// resolveWorkspaceRoot picks the workspace root: the --workspace flag when
// given, otherwise the nearest ancestor holding covidetl.yaml, otherwise
// the working directory.
func resolveWorkspaceRoot(workspaceFlag string) (string, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	locator := workspacefinder.NewFinder()
	root, err := locator.FindRoot(wd)
	if err != nil {
		// No covidetl.yaml anywhere above: run from here with env/defaults.
		return filepath.Abs(wd)
	}
	return root, nil
}

// loadConfig layers configuration: built-in defaults, then covidetl.yaml,
// then the environment (optionally seeded from a .env file). CLI flags are
// applied by the caller on top.
func loadConfig(root, envFile string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	cfg, err := yamlconfig.Apply(cfg, filepath.Join(root, yamlconfig.ConfigFile))
	if err != nil {
		return cfg, err
	}

	explicit := envFile != ""
	path := envFile
	if !explicit {
		path = filepath.Join(root, ".env")
	}
	if err := envconfig.LoadDotenv(path, explicit); err != nil {
		return cfg, err
	}

	return envconfig.Apply(cfg)
}
