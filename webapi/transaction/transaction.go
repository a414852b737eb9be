// Package transaction exposes the ledger CRUD and analytics endpoints.
package transaction

import (
	"time"

	"github.com/fitracker/fitracker/pkg/dto"
	transactionsvc "github.com/fitracker/fitracker/pkg/service/transaction"
	"github.com/fitracker/fitracker/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func Routes(app *fiber.App, svc *transactionsvc.Service, protected fiber.Handler) {
	g := app.Group("/transactions", protected)
	g.Post("/", Create(svc))
	g.Get("/", List(svc))
	g.Get("/summary", Summary(svc))
	g.Delete("/:id", Delete(svc))
}

// Create records a manually entered transaction.
func Create(svc *transactionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[dto.TransactionCreate](c)
		if input == nil {
			return err
		}
		created, err := svc.Create(c.Context(), userID, *input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Transaction created", created)
	}
}

// List returns the user's transactions, optionally filtered.
func List(svc *transactionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		filter := dto.TransactionFilter{
			Type:     c.Query("type"),
			Category: c.Query("category"),
			Limit:    c.QueryInt("limit"),
		}
		if from, err := time.Parse(time.DateOnly, c.Query("from")); err == nil {
			filter.From = &from
		}
		if to, err := time.Parse(time.DateOnly, c.Query("to")); err == nil {
			filter.To = &to
		}
		items, err := svc.List(c.Context(), userID, filter)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list transactions", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions found", items)
	}
}

// Summary aggregates the user's transactions over a date range; the range
// defaults to the last 30 days.
func Summary(svc *transactionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		to := time.Now().UTC()
		from := to.AddDate(0, 0, -30)
		if v, err := time.Parse(time.DateOnly, c.Query("from")); err == nil {
			from = v
		}
		if v, err := time.Parse(time.DateOnly, c.Query("to")); err == nil {
			to = v
		}
		summary, err := svc.Summary(c.Context(), userID, from, to)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't build summary", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Summary", summary)
	}
}

// Delete removes one of the user's transactions.
func Delete(svc *transactionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.UserIDFromContext(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid transaction ID", err,
				"Transaction ID must be a valid UUID", fiber.StatusBadRequest)
		}
		if err := svc.Delete(c.Context(), userID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't delete transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction deleted", nil)
	}
}
