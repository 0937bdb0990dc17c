package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"unite-dashboard/internal/domain"
)

// Client is the typed surface over the upstream UNITE REST API. The
// gateway never talks HTTP to the upstream outside this package.
type Client interface {
	ListRequests(ctx context.Context, token string, params domain.ListParams) (*domain.RequestList, error)
	GetRequest(ctx context.Context, token, id string) (*domain.Request, error)
	SubmitAction(ctx context.Context, token, id string, input ActionInput) error
	DeleteRequest(ctx context.Context, token, id string) error

	CreateEvent(ctx context.Context, token string, input domain.CreateEventInput, direct bool) error

	ListStakeholders(ctx context.Context, token string) ([]domain.Stakeholder, error)
	ListCoordinators(ctx context.Context, token string) ([]domain.Coordinator, error)
	ListDistricts(ctx context.Context, token string) ([]domain.District, error)

	PublicEvents(ctx context.Context) ([]domain.PublicEvent, error)

	ListNotifications(ctx context.Context, token string, unreadOnly bool) (*domain.NotificationList, error)
	MarkNotificationRead(ctx context.Context, token, id string) error
	MarkAllNotificationsRead(ctx context.Context, token string) error
}

// Error is a non-2xx upstream response. Message is taken from the response
// body's message/errors fields so handlers can surface it to users without
// leaking transport details.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("upstream responded %d: %s", e.StatusCode, e.Message)
}

// IsTimeout reports whether the error is a client-side deadline rather
// than an upstream rejection. Timed-out dispatches are candidates for
// verification, not immediate failures.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

type client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

func NewClient(baseURL string, logger *zap.Logger) Client {
	return &client{
		baseURL: strings.TrimRight(baseURL, "/"),
		// Per-call deadlines come from the caller's context; the transport
		// itself stays unbounded so verification polls can reuse it.
		http:   &http.Client{},
		logger: logger,
	}
}

func (c *client) do(ctx context.Context, method, path, token string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, payload)
	}

	if out != nil && len(payload) > 0 {
		if err := json.Unmarshal(payload, out); err != nil {
			return fmt.Errorf("decode upstream response: %w", err)
		}
	}
	return nil
}

func decodeError(status int, body []byte) *Error {
	var parsed struct {
		Message string          `json:"message"`
		Error   string          `json:"error"`
		Errors  json.RawMessage `json:"errors"`
	}
	_ = json.Unmarshal(body, &parsed)

	msg := parsed.Message
	if msg == "" {
		msg = parsed.Error
	}
	if msg == "" && len(parsed.Errors) > 0 {
		var list []string
		if json.Unmarshal(parsed.Errors, &list) == nil && len(list) > 0 {
			msg = strings.Join(list, "; ")
		} else {
			msg = string(parsed.Errors)
		}
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &Error{StatusCode: status, Message: msg}
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	var ue *Error
	return errors.As(err, &ue) && ue.StatusCode == http.StatusNotFound
}

func formatDate(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
