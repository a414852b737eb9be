// Package webapi assembles the Fiber application.
package webapi

import (
	"github.com/fitracker/fitracker/pkg/app"
	"github.com/fitracker/fitracker/pkg/middleware"
	authapi "github.com/fitracker/fitracker/webapi/auth"
	budgetapi "github.com/fitracker/fitracker/webapi/budget"
	categoryapi "github.com/fitracker/fitracker/webapi/category"
	"github.com/fitracker/fitracker/webapi/common"
	integrationapi "github.com/fitracker/fitracker/webapi/integration"
	transactionapi "github.com/fitracker/fitracker/webapi/transaction"
	walletapi "github.com/fitracker/fitracker/webapi/wallet"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupApp wires middleware and routes onto a new Fiber app.
func SetupApp(a *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return common.ProblemDetailsJSON(c, "Internal Server Error", err, status)
		},
	})

	fiberApp.Use(limiter.New(limiter.Config{
		Max:        a.Config.RateLimit.MaxRequests,
		Expiration: a.Config.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(c, "Too Many Requests", nil,
				"Rate limit exceeded", fiber.StatusTooManyRequests)
		},
	}))
	fiberApp.Use(recover.New())

	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("App is working! 🚀")
	})

	protected := middleware.Protected(a.Config.Jwt.Secret)

	authapi.Routes(fiberApp, a.Auth)
	integrationapi.Routes(fiberApp, a.Integrations, a.Ingest, protected)
	transactionapi.Routes(fiberApp, a.Transactions, protected)
	walletapi.Routes(fiberApp, a.Wallets, protected)
	categoryapi.Routes(fiberApp, a.Categories, protected)
	budgetapi.Routes(fiberApp, a.Budgets, protected)

	return fiberApp
}
