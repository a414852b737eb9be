package category

import (
	"github.com/fitracker/fitracker/pkg/dto"
	categorysvc "github.com/fitracker/fitracker/pkg/service/category"
	"github.com/fitracker/fitracker/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func Routes(app *fiber.App, svc *categorysvc.Service, protected fiber.Handler) {
	g := app.Group("/categories", protected)
	g.Post("/", Create(svc))
	g.Get("/", List(svc))
	g.Delete("/:id", Delete(svc))
}

func Create(svc *categorysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[dto.CategoryCreate](c)
		if input == nil {
			return err
		}
		created, err := svc.Create(c.Context(), userID, *input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create category", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Category created", created)
	}
}

func List(svc *categorysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		items, err := svc.List(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list categories", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Categories found", items)
	}
}

func Delete(svc *categorysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid category ID", err,
				"Category ID must be a valid UUID", fiber.StatusBadRequest)
		}
		if err := svc.Delete(c.Context(), userID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't delete category", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Category deleted", nil)
	}
}
