package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"unite-dashboard/internal/domain"
	"unite-dashboard/internal/middleware"
	"unite-dashboard/internal/service/audit"
	"unite-dashboard/internal/service/dispatch"
	"unite-dashboard/internal/service/request"
)

type RequestHandler struct {
	requestSvc request.Service
	auditSvc   audit.Service
}

func NewRequestHandler(requestSvc request.Service, auditSvc audit.Service) *RequestHandler {
	return &RequestHandler{requestSvc: requestSvc, auditSvc: auditSvc}
}

func (h *RequestHandler) List(c *fiber.Ctx) error {
	var params domain.ListParams
	if err := c.QueryParser(&params); err != nil {
		return middleware.BadRequest("Invalid query parameters")
	}

	list, err := h.requestSvc.List(c.Context(), middleware.GetToken(c), params)
	if err != nil {
		return err
	}

	viewer := middleware.GetViewer(c)
	items := make([]*request.Detail, 0, len(list.Items))
	for i := range list.Items {
		items = append(items, h.requestSvc.Enrich(&list.Items[i], viewer))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"items":         items,
		"total":         list.Total,
		"skip":          list.Skip,
		"limit":         list.Limit,
		"status_counts": list.StatusCounts,
	})
}

func (h *RequestHandler) Get(c *fiber.Ctx) error {
	id := c.Params("requestId")
	if id == "" {
		return middleware.BadRequest("Invalid request ID")
	}

	detail, err := h.requestSvc.Detail(c.Context(), middleware.GetViewer(c), middleware.GetToken(c), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(detail)
}

type actionRequest struct {
	Action          string     `json:"action"`
	Note            string     `json:"note"`
	RescheduledDate *time.Time `json:"rescheduled_date"`
}

func (h *RequestHandler) Act(c *fiber.Ctx) error {
	id := c.Params("requestId")
	if id == "" {
		return middleware.BadRequest("Invalid request ID")
	}

	var body actionRequest
	if err := c.BodyParser(&body); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if body.Action == "" {
		return middleware.BadRequest("An action is required")
	}

	viewer := middleware.GetViewer(c)
	input := dispatch.Input{
		Action:          domain.NormalizeAction(body.Action),
		Note:            body.Note,
		RescheduledDate: body.RescheduledDate,
	}

	result, err := h.requestSvc.Act(c.Context(), viewer, middleware.GetToken(c), id, input)
	if err != nil {
		return mapActionError(err)
	}

	h.auditSvc.Record(c.Context(), domain.CreateAuditLogInput{
		ActorID:   viewer.ID,
		ActorRole: viewer.Role,
		Action:    string(input.Action),
		RequestID: id,
		Detail:    result,
		IPAddress: middleware.GetIPAddress(c),
		UserAgent: middleware.GetUserAgent(c),
	})

	return c.Status(fiber.StatusOK).JSON(result)
}

// Delete is the REST spelling of the delete action. It runs through the
// same dispatch path so the guard rails and journal apply either way.
func (h *RequestHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("requestId")
	if id == "" {
		return middleware.BadRequest("Invalid request ID")
	}

	viewer := middleware.GetViewer(c)
	input := dispatch.Input{Action: domain.ActionDelete}

	result, err := h.requestSvc.Act(c.Context(), viewer, middleware.GetToken(c), id, input)
	if err != nil {
		return mapActionError(err)
	}

	h.auditSvc.Record(c.Context(), domain.CreateAuditLogInput{
		ActorID:   viewer.ID,
		ActorRole: viewer.Role,
		Action:    string(domain.ActionDelete),
		RequestID: id,
		Detail:    result,
		IPAddress: middleware.GetIPAddress(c),
		UserAgent: middleware.GetUserAgent(c),
	})

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *RequestHandler) Journal(c *fiber.Ctx) error {
	id := c.Params("requestId")
	if id == "" {
		return middleware.BadRequest("Invalid request ID")
	}

	limit := c.QueryInt("limit", 20)
	entries, err := h.auditSvc.RequestJournal(c.Context(), id, limit)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"entries": entries})
}

func mapActionError(err error) error {
	switch {
	case errors.Is(err, dispatch.ErrNoteRequired),
		errors.Is(err, dispatch.ErrDateRequired):
		return middleware.BadRequest(err.Error())
	case errors.Is(err, request.ErrDeleteRequiresAdmin):
		return middleware.Forbidden(err.Error())
	case errors.Is(err, request.ErrDeleteRequiresCancelled):
		return middleware.Conflict(err.Error())
	}
	return err
}
