package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"unite-dashboard/internal/domain"
	"unite-dashboard/internal/middleware"
	"unite-dashboard/internal/service/event"
)

type EventHandler struct {
	eventSvc event.Service
}

func NewEventHandler(eventSvc event.Service) *EventHandler {
	return &EventHandler{eventSvc: eventSvc}
}

func (h *EventHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateEventInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Title == "" || input.Location == "" {
		return middleware.BadRequest("Title and location are required")
	}

	err := h.eventSvc.Create(c.Context(), middleware.GetViewer(c), middleware.GetToken(c), input)
	if err != nil {
		return mapEventError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Event created"})
}

func (h *EventHandler) UploadPoster(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("poster")
	if err != nil {
		return middleware.BadRequest("A poster file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return middleware.BadRequest("Unable to read the uploaded file")
	}
	defer file.Close()

	url, err := h.eventSvc.UploadPoster(c.Context(),
		middleware.GetViewer(c),
		fileHeader.Filename,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		return mapEventError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
}

func mapEventError(err error) error {
	switch {
	case errors.Is(err, event.ErrAdminOnly):
		return middleware.Forbidden(err.Error())
	case errors.Is(err, event.ErrInvalidSchedule):
		return middleware.BadRequest(err.Error())
	case errors.Is(err, event.ErrPosterUnstorage):
		return middleware.NewError(fiber.StatusServiceUnavailable, err.Error())
	}
	return err
}
