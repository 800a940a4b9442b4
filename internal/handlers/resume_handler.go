package handlers

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"talentsift/resume-screener/internal/models"
	"talentsift/resume-screener/internal/services"
	"talentsift/resume-screener/internal/store"
)

var allowedExtensions = map[string]bool{
	".pdf": true,
	".txt": true,
	".md":  true,
}

type ResumeHandler struct {
	store       *store.Store
	fetcher     services.Fetcher
	maxFileSize int64
}

func NewResumeHandler(st *store.Store, fetcher services.Fetcher, maxFileSize int64) *ResumeHandler {
	return &ResumeHandler{
		store:       st,
		fetcher:     fetcher,
		maxFileSize: maxFileSize,
	}
}

// HandleUpload handles POST /resumes: one or more files under the "resumes"
// field. A file whose identity (filename, size, modification time) is already
// tracked is skipped rather than ingested twice.
func (h *ResumeHandler) HandleUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	files := form.File["resumes"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "no files uploaded; send one or more 'resumes' fields (.pdf, .txt, .md)",
		})
	}

	// Browsers report the file's modification time; it is part of the record
	// identity when supplied.
	modTime := time.Time{}
	if v := c.FormValue("last_modified"); v != "" {
		if millis, err := strconv.ParseInt(v, 10, 64); err == nil {
			modTime = time.UnixMilli(millis)
		}
	}

	// Validate every file up front so a rejected upload never leaves the
	// request partially applied.
	for _, file := range files {
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !allowedExtensions[ext] {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("unsupported file type %s for %s; allowed: .pdf, .txt, .md", ext, file.Filename),
			})
		}
		if file.Size > h.maxFileSize {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("file %s too large. Max size: %d bytes", file.Filename, h.maxFileSize),
			})
		}
	}

	var responses []models.UploadResponse
	for _, file := range files {
		src, err := file.Open()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": fmt.Sprintf("failed to open uploaded file %s: %v", file.Filename, err),
			})
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": fmt.Sprintf("failed to read uploaded file %s: %v", file.Filename, err),
			})
		}

		rec := models.NewResumeRecord(file.Filename, data, modTime)
		if !h.store.AddRecord(rec) {
			continue
		}

		responses = append(responses, models.UploadResponse{
			ID:       rec.ID.String(),
			Filename: rec.Filename,
			Status:   string(rec.Status),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Files ingested",
		"records": responses,
	})
}

// HandleIngestURL handles POST /resumes/url: fetches the document and feeds
// it into the same ingestion path as an uploaded file.
func (h *ResumeHandler) HandleIngestURL(c *fiber.Ctx) error {
	var req models.IngestURLRequest
	if err := c.BodyParser(&req); err != nil || req.URL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "url is required",
		})
	}

	doc, err := h.fetcher.FetchDocument(c.Context(), req.URL)
	if err != nil {
		h.store.SetLastError(err.Error())
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	rec := models.NewResumeRecord(doc.Filename, doc.Data, time.Time{})
	rec.SourceURL = doc.SourceURL
	if !h.store.AddRecord(rec) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": fmt.Sprintf("document %s is already tracked", doc.Filename),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.UploadResponse{
		ID:       rec.ID.String(),
		Filename: rec.Filename,
		Status:   string(rec.Status),
	})
}

// HandleRemove handles DELETE /resumes/:id.
func (h *ResumeHandler) HandleRemove(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid record ID format",
		})
	}

	if !h.store.Remove(id) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "record not found",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// HandleClear handles DELETE /resumes: drops all records and results.
func (h *ResumeHandler) HandleClear(c *fiber.Ctx) error {
	h.store.Clear()
	return c.SendStatus(fiber.StatusNoContent)
}
