package budget

import (
	"github.com/fitracker/fitracker/pkg/dto"
	budgetsvc "github.com/fitracker/fitracker/pkg/service/budget"
	"github.com/fitracker/fitracker/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func Routes(app *fiber.App, svc *budgetsvc.Service, protected fiber.Handler) {
	g := app.Group("/budgets", protected)
	g.Put("/", Set(svc))
	g.Get("/", List(svc))
	g.Delete("/:id", Delete(svc))
}

func Set(svc *budgetsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[dto.BudgetSet](c)
		if input == nil {
			return err
		}
		saved, err := svc.Set(c.Context(), userID, *input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't save budget", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Budget saved", saved)
	}
}

func List(svc *budgetsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		items, err := svc.List(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list budgets", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Budgets found", items)
	}
}

func Delete(svc *budgetsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid budget ID", err,
				"Budget ID must be a valid UUID", fiber.StatusBadRequest)
		}
		if err := svc.Delete(c.Context(), userID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't delete budget", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Budget deleted", nil)
	}
}
