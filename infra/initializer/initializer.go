// Package initializer builds the infrastructure dependency graph.
package initializer

import (
	"fmt"

	"github.com/fitracker/fitracker/infra"
	googleprovider "github.com/fitracker/fitracker/infra/provider/google"
	infrarepo "github.com/fitracker/fitracker/infra/repository"
	"github.com/fitracker/fitracker/pkg/config"
)

// InitializeDependencies initializes all the application dependencies.
func InitializeDependencies(cfg *config.App) (*config.Deps, error) {
	logger := setupLogger(cfg.Log)

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(infrarepo.Models()...); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	deps := &config.Deps{
		Users:        infrarepo.NewUserRepository(db),
		Integrations: infrarepo.NewIntegrationRepository(db),
		Transactions: infrarepo.NewTransactionRepository(db),
		Wallets:      infrarepo.NewWalletRepository(db),
		Categories:   infrarepo.NewCategoryRepository(db),
		Budgets:      infrarepo.NewBudgetRepository(db),
		OAuth:        googleprovider.NewOAuthClient(cfg.Google, logger),
		Mail:         googleprovider.NewGmailClient(cfg.Google, logger),
		Logger:       logger,
		Config:       cfg,
	}
	return deps, nil
}
