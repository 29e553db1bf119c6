package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/andrescamacho/fuelrouter-go/internal/adapters/persistence"
	"github.com/andrescamacho/fuelrouter-go/internal/infrastructure/config"
	"github.com/andrescamacho/fuelrouter-go/internal/infrastructure/database"
	"github.com/andrescamacho/fuelrouter-go/internal/infrastructure/logging"
)

// runtime bundles the shared pieces every command needs.
type runtime struct {
	cfg      *config.Config
	logger   *logrus.Logger
	db       *gorm.DB
	stations *persistence.GormStationRepository
}

func newRuntime() (*runtime, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.NewLogger(&cfg.Logging)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &runtime{
		cfg:      cfg,
		logger:   logger,
		db:       db,
		stations: persistence.NewGormStationRepository(db),
	}, nil
}
