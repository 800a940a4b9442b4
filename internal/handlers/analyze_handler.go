package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"talentsift/resume-screener/internal/models"
	"talentsift/resume-screener/internal/services"
	"talentsift/resume-screener/internal/store"
)

type AnalyzeHandler struct {
	store        *store.Store
	orchestrator services.Orchestrator
}

func NewAnalyzeHandler(st *store.Store, orchestrator services.Orchestrator) *AnalyzeHandler {
	return &AnalyzeHandler{
		store:        st,
		orchestrator: orchestrator,
	}
}

// HandleAnalyze handles POST /analyze: starts a pipeline run over the current
// record set in the background. Once started a run cannot be aborted.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	if h.store.Job().Empty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "no job description set",
		})
	}
	if len(h.store.Records()) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "no resumes to analyze",
		})
	}

	if !h.store.TryBeginRun() {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "an analysis run is already in progress",
		})
	}

	go h.orchestrator.Run(context.Background())

	return c.Status(fiber.StatusAccepted).JSON(models.AnalyzeResponse{Status: "started"})
}
