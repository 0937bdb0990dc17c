package handler

import (
	"github.com/gofiber/fiber/v2"

	"unite-dashboard/internal/middleware"
	"unite-dashboard/internal/service/notification"
)

type NotificationHandler struct {
	notificationSvc notification.Service
}

func NewNotificationHandler(notificationSvc notification.Service) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	unreadOnly := c.QueryBool("unread_only", false)

	list, err := h.notificationSvc.List(c.Context(), middleware.GetToken(c), unreadOnly)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(list)
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id := c.Params("notificationId")
	if id == "" {
		return middleware.BadRequest("Invalid notification ID")
	}

	if err := h.notificationSvc.MarkRead(c.Context(), middleware.GetToken(c), id); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Notification marked as read"})
}

func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	if err := h.notificationSvc.MarkAllRead(c.Context(), middleware.GetToken(c)); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "All notifications marked as read"})
}
