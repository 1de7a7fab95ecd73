package bootstrap

import (
	"context"
	"fmt"

	"github.com/realboxofme/sintas/domain"
	"github.com/realboxofme/sintas/pkg/log"
)

// InitializeDefaultData seeds the default roles and administrator if no role exists yet.
func InitializeDefaultData(ctx context.Context, setup domain.SetupUsecase, logger log.Logger) error {
	logger.Info("Initializing default roles and admin user...")

	result, err := setup.Initialize(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed default data: %w", err)
	}

	if result.AlreadyExist {
		logger.Info("Default data already present, skipping")
		return nil
	}

	logger.Info("Default data created",
		log.Int("roles", result.Roles),
		log.Int("users", result.User),
	)
	return nil
}
