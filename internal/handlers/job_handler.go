package handlers

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"talentsift/resume-screener/internal/models"
	"talentsift/resume-screener/internal/services"
	"talentsift/resume-screener/internal/store"
)

type JobHandler struct {
	store     *store.Store
	extractor services.Extractor
	fetcher   services.Fetcher
}

func NewJobHandler(st *store.Store, extractor services.Extractor, fetcher services.Fetcher) *JobHandler {
	return &JobHandler{
		store:     st,
		extractor: extractor,
		fetcher:   fetcher,
	}
}

// HandlePut handles PUT /job: a multipart file, pasted text or a URL. Exactly
// one source wins; whatever was set before is replaced.
func (h *JobHandler) HandlePut(c *fiber.Ctx) error {
	if file, err := c.FormFile("job_description"); err == nil {
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !allowedExtensions[ext] {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("unsupported file type %s for %s; allowed: .pdf, .txt, .md", ext, file.Filename),
			})
		}

		src, err := file.Open()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": fmt.Sprintf("failed to open %s: %v", file.Filename, err),
			})
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": fmt.Sprintf("failed to read %s: %v", file.Filename, err),
			})
		}

		text, err := h.extractor.Extract(file.Filename, data)
		if err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		h.store.SetJob(models.JobDescription{Text: text, SourceName: file.Filename})
		return c.JSON(fiber.Map{"message": "Job description set", "source": file.Filename})
	}

	var req models.JobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "send a 'job_description' file, or JSON with 'text' or 'url'",
		})
	}

	switch {
	case req.URL != "":
		doc, err := h.fetcher.FetchDocument(c.Context(), req.URL)
		if err != nil {
			h.store.SetLastError(err.Error())
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		text, err := h.extractor.Extract(doc.Filename, doc.Data)
		if err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		h.store.SetJob(models.JobDescription{Text: text, SourceURL: doc.SourceURL})
		return c.JSON(fiber.Map{"message": "Job description set", "source": doc.SourceURL})

	case strings.TrimSpace(req.Text) != "":
		h.store.SetJob(models.JobDescription{Text: req.Text})
		return c.JSON(fiber.Map{"message": "Job description set", "source": "text"})

	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job description is empty; provide a file, 'text' or 'url'",
		})
	}
}

// HandleGet handles GET /job.
func (h *JobHandler) HandleGet(c *fiber.Ctx) error {
	job := h.store.Job()
	if job.Empty() {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no job description set",
		})
	}
	return c.JSON(job)
}
