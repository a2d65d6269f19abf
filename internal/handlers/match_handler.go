package handlers

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resumatch/internal/models"
	"resumatch/internal/services"
)

type MatchHandler struct {
	validator   services.UploadValidator
	cleaner     services.JobDescriptionCleaner
	matchClient services.MatchClient
}

func NewMatchHandler(
	validator services.UploadValidator,
	cleaner services.JobDescriptionCleaner,
	matchClient services.MatchClient,
) *MatchHandler {
	return &MatchHandler{
		validator:   validator,
		cleaner:     cleaner,
		matchClient: matchClient,
	}
}

// HandleCalculateMatch relays one scoring request: multipart in, MatchResult
// JSON out. The route mirrors the scoring service's own contract so existing
// form clients can point here unchanged.
func (h *MatchHandler) HandleCalculateMatch(c *fiber.Ctx) error {
	c.Set("X-Request-ID", uuid.New().String())

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "no file selected",
			"code":  fiber.StatusBadRequest,
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to read uploaded file",
			"code":  fiber.StatusBadRequest,
		})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to read uploaded file",
			"code":  fiber.StatusBadRequest,
		})
	}

	candidate, err := h.validator.ValidateResume(fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
			"code":  fiber.StatusBadRequest,
		})
	}

	jobDescription := h.cleaner.Normalize(c.FormValue("job_description"))
	if err := h.validator.ValidateJobDescription(jobDescription); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
			"code":  fiber.StatusBadRequest,
		})
	}

	result, err := h.matchClient.CalculateMatch(c.Context(), candidate, jobDescription)
	if err != nil {
		// Carry upstream error statuses through. A network failure has no
		// status and a 2xx with an unusable body must not relay its success
		// status around an error envelope; both become a bad gateway.
		status := fiber.StatusBadGateway
		message := err.Error()
		var transportErr *models.TransportError
		if errors.As(err, &transportErr) {
			message = transportErr.Message
			if transportErr.StatusCode >= fiber.StatusBadRequest {
				status = transportErr.StatusCode
			}
		}
		return c.Status(status).JSON(fiber.Map{
			"error": message,
			"code":  status,
		})
	}

	return c.JSON(result)
}
