package config

import (
	"log/slog"

	"github.com/fitracker/fitracker/pkg/provider/mail"
	"github.com/fitracker/fitracker/pkg/repository"
)

// Deps holds all infrastructure dependencies for building the app and services.
type Deps struct {
	Users        repository.UserRepository
	Integrations repository.IntegrationRepository
	Transactions repository.TransactionRepository
	Wallets      repository.WalletRepository
	Categories   repository.CategoryRepository
	Budgets      repository.BudgetRepository
	OAuth        mail.TokenExchanger
	Mail         mail.Reader
	Logger       *slog.Logger
	Config       *App
}
