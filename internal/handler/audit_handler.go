package handler

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"unite-dashboard/internal/middleware"
	"unite-dashboard/internal/service/audit"
)

type AuditHandler struct {
	auditSvc audit.Service
}

func NewAuditHandler(auditSvc audit.Service) *AuditHandler {
	return &AuditHandler{auditSvc: auditSvc}
}

func (h *AuditHandler) RecentActivity(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)

	logs, err := h.auditSvc.RecentActivity(c.Context(), limit)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"activities": logs})
}

func (h *AuditHandler) RecentJournal(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)

	entries, err := h.auditSvc.RecentJournal(c.Context(), limit)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"journal": entries})
}

func (h *AuditHandler) JournalEntry(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("journalId"))
	if err != nil {
		return middleware.BadRequest("Invalid journal entry ID")
	}

	entry, err := h.auditSvc.JournalEntry(c.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return middleware.NotFound("Journal entry not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(entry)
}

func (h *AuditHandler) RequestActivity(c *fiber.Ctx) error {
	id := c.Params("requestId")
	if id == "" {
		return middleware.BadRequest("Invalid request ID")
	}

	limit := c.QueryInt("limit", 20)
	logs, err := h.auditSvc.RequestActivity(c.Context(), id, limit)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"activities": logs})
}
