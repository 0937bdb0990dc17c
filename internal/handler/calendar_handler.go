package handler

import (
	"github.com/gofiber/fiber/v2"

	"unite-dashboard/internal/service/calendar"
)

type CalendarHandler struct {
	calendarSvc calendar.Service
}

func NewCalendarHandler(calendarSvc calendar.Service) *CalendarHandler {
	return &CalendarHandler{calendarSvc: calendarSvc}
}

func (h *CalendarHandler) PublicEvents(c *fiber.Ctx) error {
	events, err := h.calendarSvc.PublicEvents(c.Context())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"events": events})
}
