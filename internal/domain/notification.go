package domain

import "time"

// Notification is the canonical form of an upstream in-app notification.
type Notification struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Type      string     `json:"type,omitempty"`
	RequestID string     `json:"request_id,omitempty"`
	IsRead    bool       `json:"is_read"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

type NotificationList struct {
	Items       []Notification `json:"items"`
	Total       int64          `json:"total"`
	UnreadCount int64          `json:"unread_count"`
}
