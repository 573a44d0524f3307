package handlers

import (
	"errors"
	"io"
	"time"

	"pulse-go-api/internal/models"
	"pulse-go-api/internal/services"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	store *services.Store
}

func NewDashboardHandler(store *services.Store) *DashboardHandler {
	return &DashboardHandler{store: store}
}

// Dashboard handles GET /v1/dashboard
func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	return c.JSON(h.store.Render())
}

// Chart handles GET /v1/charts/:name
func (h *DashboardHandler) Chart(c *fiber.Ctx) error {
	name := c.Params("name")

	series, err := h.store.Chart(name)
	if err != nil {
		if services.IsInsufficientHistory(err) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(models.ErrorResponse{
				Error:   "Not enough data",
				Message: err.Error(),
				Code:    fiber.StatusUnprocessableEntity,
			})
		}
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{
			Error:   "Unknown chart",
			Message: err.Error(),
			Code:    fiber.StatusNotFound,
		})
	}

	return c.JSON(fiber.Map{"name": name, "series": series})
}

// Upload handles POST /v1/upload. Accepts a multipart "file" part or a raw
// CSV body. Commit is atomic: any failure leaves the prior dataset intact.
func (h *DashboardHandler) Upload(c *fiber.Ctx) error {
	data, filename, err := uploadBytes(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error:   "Unable to read upload",
			Message: err.Error(),
			Code:    fiber.StatusBadRequest,
		})
	}

	info, err := h.store.CommitUpload(data, filename)
	if err != nil {
		var schemaErr *models.SchemaError
		if errors.As(err, &schemaErr) {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
				Error:   "Invalid dataset",
				Message: schemaErr.Reason,
				Code:    fiber.StatusBadRequest,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error:   "Failed to commit dataset",
			Message: err.Error(),
			Code:    fiber.StatusInternalServerError,
		})
	}

	return c.JSON(models.UploadResponse{
		Message: "Loaded " + info.Source,
		Dataset: info,
	})
}

// GetScenario handles GET /v1/scenario
func (h *DashboardHandler) GetScenario(c *fiber.Ctx) error {
	return c.JSON(h.store.Scenario())
}

// SetScenario handles PUT /v1/scenario. The body is a complete parameter
// replacement, no partial-field patches.
func (h *DashboardHandler) SetScenario(c *fiber.Ctx) error {
	var params models.ScenarioParameters
	if err := c.BodyParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
			Code:    fiber.StatusBadRequest,
		})
	}

	if err := h.store.SetScenario(params); err != nil {
		var paramErr *models.ParameterError
		if errors.As(err, &paramErr) {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
				Error:   "Invalid scenario parameter",
				Message: paramErr.Error(),
				Code:    fiber.StatusBadRequest,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error:   "Failed to update scenario",
			Message: err.Error(),
			Code:    fiber.StatusInternalServerError,
		})
	}

	return c.JSON(fiber.Map{
		"message":  "Scenario updated",
		"scenario": h.store.Scenario(),
	})
}

// Reset handles POST /v1/admin/reset
func (h *DashboardHandler) Reset(c *fiber.Ctx) error {
	info := h.store.Reset()
	return c.JSON(fiber.Map{
		"message": "Restored sample dataset and default scenario",
		"dataset": info,
		"time":    time.Now().UTC(),
	})
}

func uploadBytes(c *fiber.Ctx) ([]byte, string, error) {
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return nil, "", err
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, "", err
		}
		return data, fh.Filename, nil
	}

	body := c.Body()
	if len(body) == 0 {
		return nil, "", errors.New("empty request body: send a multipart \"file\" part or raw CSV")
	}
	data := make([]byte, len(body))
	copy(data, body)
	return data, "", nil
}

// CustomErrorHandler handles Fiber errors
func CustomErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}

	return c.Status(code).JSON(models.ErrorResponse{
		Error:   "Request failed",
		Message: err.Error(),
		Code:    code,
	})
}
