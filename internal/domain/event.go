package domain

import "time"

// CreateEventInput is the payload for admin direct event creation. Direct
// events bypass the review workflow entirely; the upstream publishes them
// immediately.
type CreateEventInput struct {
	Title    string        `json:"title" validate:"required"`
	Location string        `json:"location" validate:"required"`
	StartsAt time.Time     `json:"starts_at" validate:"required"`
	EndsAt   time.Time     `json:"ends_at" validate:"required"`
	Category EventCategory `json:"category" validate:"required"`

	TargetDonations  *int `json:"target_donations,omitempty"`
	MaxParticipants  *int `json:"max_participants,omitempty"`
	ExpectedAudience *int `json:"expected_audience,omitempty"`

	PosterURL string `json:"poster_url,omitempty"`
}

// PublicEvent is one entry of the published calendar feed.
type PublicEvent struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Location string        `json:"location"`
	StartsAt *time.Time    `json:"starts_at,omitempty"`
	EndsAt   *time.Time    `json:"ends_at,omitempty"`
	Category EventCategory `json:"category"`
	Status   string        `json:"status,omitempty"`
}
