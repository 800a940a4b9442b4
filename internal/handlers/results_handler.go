package handlers

import (
	"github.com/gofiber/fiber/v2"

	"talentsift/resume-screener/internal/models"
	"talentsift/resume-screener/internal/store"
)

type ResultsHandler struct {
	store *store.Store
}

func NewResultsHandler(st *store.Store) *ResultsHandler {
	return &ResultsHandler{store: st}
}

// HandleRecords handles GET /records: every record with its lifecycle status
// and, for failed records, the retained error message.
func (h *ResultsHandler) HandleRecords(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"records": h.store.Records(),
	})
}

// HandleResults handles GET /results: results accumulated so far, updated
// after each analysis batch rather than only at the end of the run.
func (h *ResultsHandler) HandleResults(c *fiber.Ctx) error {
	return c.JSON(models.ResultsResponse{
		Running:   h.store.Running(),
		Results:   h.store.Results(),
		Summary:   h.store.Summary(),
		LastError: h.store.LastError(),
	})
}

// HandleDismissError handles DELETE /error: clears the latest batch-level
// error message.
func (h *ResultsHandler) HandleDismissError(c *fiber.Ctx) error {
	h.store.DismissError()
	return c.SendStatus(fiber.StatusNoContent)
}
