package handler

import (
	"github.com/gofiber/fiber/v2"

	"unite-dashboard/internal/middleware"
	"unite-dashboard/internal/service/reference"
)

type ReferenceHandler struct {
	referenceSvc reference.Service
}

func NewReferenceHandler(referenceSvc reference.Service) *ReferenceHandler {
	return &ReferenceHandler{referenceSvc: referenceSvc}
}

func (h *ReferenceHandler) Stakeholders(c *fiber.Ctx) error {
	items, err := h.referenceSvc.Stakeholders(c.Context(), middleware.GetToken(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"stakeholders": items})
}

func (h *ReferenceHandler) Coordinators(c *fiber.Ctx) error {
	items, err := h.referenceSvc.Coordinators(c.Context(), middleware.GetToken(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"coordinators": items})
}

func (h *ReferenceHandler) Districts(c *fiber.Ctx) error {
	items, err := h.referenceSvc.Districts(c.Context(), middleware.GetToken(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"districts": items})
}
