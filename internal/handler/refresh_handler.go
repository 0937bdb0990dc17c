package handler

import (
	"bufio"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"unite-dashboard/internal/service/refresh"
)

type RefreshHandler struct {
	refreshSvc refresh.Service
}

func NewRefreshHandler(refreshSvc refresh.Service) *RefreshHandler {
	return &RefreshHandler{refreshSvc: refreshSvc}
}

// Stream pushes refresh signals to the dashboard over SSE. The client
// re-fetches its lists whenever a signal arrives; the payload only says why.
func (h *RefreshHandler) Stream(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	signals, unsubscribe := h.refreshSvc.Subscribe()

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer unsubscribe()
		for sig := range signals {
			payload, err := json.Marshal(sig)
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(w, "event: refresh\ndata: %s\n\n", payload); err != nil {
				return
			}
			if err := w.Flush(); err != nil {
				return
			}
		}
	}))

	return nil
}

type forceRefreshRequest struct {
	Reason  string `json:"reason"`
	Pattern string `json:"pattern"`
}

// Force cancels in-flight fetches matching the pattern and broadcasts a
// fresh signal, for the dashboard's manual refresh button.
func (h *RefreshHandler) Force(c *fiber.Ctx) error {
	var body forceRefreshRequest
	_ = c.BodyParser(&body)

	if body.Reason == "" {
		body.Reason = "manual"
	}
	if body.Pattern == "" {
		body.Pattern = "event-requests"
	}

	h.refreshSvc.ForceRefresh(body.Reason, body.Pattern)
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"message": "Refresh requested"})
}
