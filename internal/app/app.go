// Package app wires configuration, storage, and services into one shared
// core used by cmd/strata-server.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cmai/strata/internal/common"
	"github.com/cmai/strata/internal/interfaces"
	"github.com/cmai/strata/internal/services/auth"
	"github.com/cmai/strata/internal/services/drift"
	"github.com/cmai/strata/internal/services/option"
	"github.com/cmai/strata/internal/services/submission"
	"github.com/cmai/strata/internal/services/tower"
	"github.com/cmai/strata/internal/storage"
)

// App holds all initialized services and storage.
type App struct {
	Config            *common.Config
	Logger            *common.Logger
	Storage           interfaces.StorageManager
	TowerService      interfaces.TowerService
	OptionService     interfaces.OptionService
	DriftService      interfaces.DriftService
	SubmissionService interfaces.SubmissionService
	AuthService       interfaces.AuthService
	StartupTime       time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes config, storage, and services. configPath may be empty,
// in which case STRATA_CONFIG, then strata.toml next to the binary, then
// config/strata.toml are tried.
func NewApp(configPath string) (*App, error) {
	common.LoadVersionFromFile()

	binDir := getBinaryDir()

	if configPath == "" {
		configPath = os.Getenv("STRATA_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "strata.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/strata.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewAppWithConfig(config)
}

// NewAppWithConfig builds an App from an already-loaded config.
func NewAppWithConfig(config *common.Config) (*App, error) {
	startupStart := time.Now()

	logger := common.NewLoggerFromConfig(config.Logging)

	storageManager, err := storage.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	towerService := tower.NewService(logger, config.Carrier.Marker)
	optionService := option.NewService(storageManager, towerService, logger, config.Carrier.Name)
	driftService := drift.NewService(storageManager, towerService, logger)
	submissionService := submission.NewService(storageManager, logger)
	authService := auth.NewService(storageManager, &config.Auth, logger)

	if err := authService.EnsureBootstrapUser(context.Background()); err != nil {
		storageManager.Close()
		return nil, fmt.Errorf("failed to ensure bootstrap user: %w", err)
	}

	a := &App{
		Config:            config,
		Logger:            logger,
		Storage:           storageManager,
		TowerService:      towerService,
		OptionService:     optionService,
		DriftService:      driftService,
		SubmissionService: submissionService,
		AuthService:       authService,
		StartupTime:       startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")
	return a, nil
}

// Close releases all resources held by the App.
func (a *App) Close() {
	if a.Storage != nil {
		a.Storage.Close()
		a.Storage = nil
	}
}
