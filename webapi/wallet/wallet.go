package wallet

import (
	"github.com/fitracker/fitracker/pkg/dto"
	walletsvc "github.com/fitracker/fitracker/pkg/service/wallet"
	"github.com/fitracker/fitracker/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func Routes(app *fiber.App, svc *walletsvc.Service, protected fiber.Handler) {
	g := app.Group("/wallets", protected)
	g.Post("/", Create(svc))
	g.Get("/", List(svc))
	g.Delete("/:id", Delete(svc))
}

func Create(svc *walletsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[dto.WalletCreate](c)
		if input == nil {
			return err
		}
		created, err := svc.Create(c.Context(), userID, *input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create wallet", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Wallet created", created)
	}
}

func List(svc *walletsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		items, err := svc.List(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list wallets", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Wallets found", items)
	}
}

func Delete(svc *walletsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid wallet ID", err,
				"Wallet ID must be a valid UUID", fiber.StatusBadRequest)
		}
		if err := svc.Delete(c.Context(), userID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't delete wallet", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Wallet deleted", nil)
	}
}
