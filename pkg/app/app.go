// Package app bundles the service layer built from infrastructure deps.
package app

import (
	"log/slog"

	"github.com/fitracker/fitracker/pkg/config"
	"github.com/fitracker/fitracker/pkg/service/auth"
	"github.com/fitracker/fitracker/pkg/service/budget"
	"github.com/fitracker/fitracker/pkg/service/category"
	"github.com/fitracker/fitracker/pkg/service/ingest"
	"github.com/fitracker/fitracker/pkg/service/integration"
	"github.com/fitracker/fitracker/pkg/service/transaction"
	"github.com/fitracker/fitracker/pkg/service/wallet"
)

// App exposes all services to the web layer.
type App struct {
	Auth         *auth.Service
	Integrations *integration.Service
	Ingest       *ingest.Service
	Transactions *transaction.Service
	Wallets      *wallet.Service
	Categories   *category.Service
	Budgets      *budget.Service
	Logger       *slog.Logger
	Config       *config.App
}

// New wires the services from infrastructure dependencies.
func New(deps *config.Deps) *App {
	cfg := deps.Config
	return &App{
		Auth:         auth.New(deps.Users, cfg.Jwt, deps.Logger),
		Integrations: integration.New(deps.Integrations, deps.OAuth, cfg.Google, deps.Logger),
		Ingest: ingest.New(
			deps.Integrations,
			deps.Transactions,
			deps.Wallets,
			deps.OAuth,
			deps.Mail,
			cfg.Receipt,
			deps.Logger,
		),
		Transactions: transaction.New(deps.Transactions, deps.Logger),
		Wallets:      wallet.New(deps.Wallets, deps.Logger),
		Categories:   category.New(deps.Categories, deps.Logger),
		Budgets:      budget.New(deps.Budgets, deps.Transactions, deps.Logger),
		Logger:       deps.Logger,
		Config:       cfg,
	}
}
