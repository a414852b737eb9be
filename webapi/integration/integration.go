// Package integration exposes the Gmail connect and sync endpoints.
package integration

import (
	"github.com/fitracker/fitracker/pkg/dto"
	ingestsvc "github.com/fitracker/fitracker/pkg/service/ingest"
	integrationsvc "github.com/fitracker/fitracker/pkg/service/integration"
	"github.com/fitracker/fitracker/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(app *fiber.App, integrationSvc *integrationsvc.Service, ingestSvc *ingestsvc.Service, protected fiber.Handler) {
	g := app.Group("/integrations/gmail", protected)
	g.Put("/", SaveCredentials(integrationSvc))
	g.Get("/", Get(integrationSvc))
	g.Get("/auth-url", AuthURL(integrationSvc))
	g.Post("/connect", Connect(integrationSvc))
	g.Post("/sync", Sync(ingestSvc))
}

// SaveCredentials stores the user's own OAuth app credentials.
func SaveCredentials(svc *integrationsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[dto.CredentialsSave](c)
		if input == nil {
			return err
		}
		integ, err := svc.SaveCredentials(c.Context(), userID, input.ClientID, input.ClientSecret)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't save credentials", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Credentials saved", integ)
	}
}

// Get returns the sanitized integration state.
func Get(svc *integrationsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		integ, err := svc.Get(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Integration not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Integration found", integ)
	}
}

// AuthURL returns the provider consent page URL for the stored client id.
func AuthURL(svc *integrationsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		redirectURI := c.Query("redirect_uri")
		if redirectURI == "" {
			return common.ProblemDetailsJSON(c, "Missing redirect_uri", nil,
				"redirect_uri query parameter is required", fiber.StatusBadRequest)
		}
		url, err := svc.AuthCodeURL(c.Context(), userID, redirectURI)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't build auth URL", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Auth URL", fiber.Map{"url": url})
	}
}

// Connect handles the OAuth redirect callback: it exchanges the authorization
// code and activates the integration.
func Connect(svc *integrationsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[dto.ConnectRequest](c)
		if input == nil {
			return err
		}
		if err := svc.Connect(c.Context(), userID, input.Code, input.RedirectURI); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't connect integration", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Integration connected",
			fiber.Map{"success": true})
	}
}

// Sync runs one receipt ingestion pass and reports counts plus per-message
// errors.
func Sync(svc *ingestsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		result, err := svc.Sync(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Sync failed", err)
		}
		return c.Status(fiber.StatusOK).JSON(result)
	}
}
