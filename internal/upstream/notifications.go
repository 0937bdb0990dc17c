package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"unite-dashboard/internal/domain"
)

type wireNotification struct {
	ID        string          `json:"id"`
	MongoID   json.RawMessage `json:"_id"`
	Title     string          `json:"title"`
	Message   string          `json:"message"`
	Type      string          `json:"type"`
	RequestID string          `json:"requestId"`
	IsRead    bool            `json:"isRead"`
	Read      bool            `json:"read"`
	ReadAt    *time.Time      `json:"readAt"`
	CreatedAt *time.Time      `json:"createdAt"`
}

func (w wireNotification) normalize() domain.Notification {
	id := w.ID
	if id == "" && len(w.MongoID) > 0 {
		var s string
		if json.Unmarshal(w.MongoID, &s) == nil {
			id = s
		} else {
			var oid struct {
				OID string `json:"$oid"`
			}
			if json.Unmarshal(w.MongoID, &oid) == nil {
				id = oid.OID
			}
		}
	}
	return domain.Notification{
		ID:        id,
		Title:     w.Title,
		Message:   w.Message,
		Type:      w.Type,
		RequestID: w.RequestID,
		IsRead:    w.IsRead || w.Read,
		ReadAt:    w.ReadAt,
		CreatedAt: w.CreatedAt,
	}
}

func (c *client) ListNotifications(ctx context.Context, token string, unreadOnly bool) (*domain.NotificationList, error) {
	query := url.Values{}
	if unreadOnly {
		query.Set("unread", "true")
	}

	var payload struct {
		Notifications []wireNotification `json:"notifications"`
		Data          []wireNotification `json:"data"`
		Total         int64              `json:"total"`
		UnreadCount   int64              `json:"unreadCount"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/notifications", token, query, nil, &payload); err != nil {
		return nil, err
	}

	wire := payload.Notifications
	if wire == nil {
		wire = payload.Data
	}

	items := make([]domain.Notification, 0, len(wire))
	unread := payload.UnreadCount
	for _, w := range wire {
		n := w.normalize()
		items = append(items, n)
		if payload.UnreadCount == 0 && !n.IsRead {
			unread++
		}
	}

	total := payload.Total
	if total == 0 {
		total = int64(len(items))
	}

	return &domain.NotificationList{Items: items, Total: total, UnreadCount: unread}, nil
}

func (c *client) MarkNotificationRead(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodPost, "/api/notifications/"+url.PathEscape(id)+"/read", token, nil, nil, nil)
}

func (c *client) MarkAllNotificationsRead(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/api/notifications/mark-all-read", token, nil, nil, nil)
}
