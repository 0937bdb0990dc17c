package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"unite-dashboard/internal/cache"
	"unite-dashboard/internal/config"
	"unite-dashboard/internal/domain"
	"unite-dashboard/internal/repository"
	"unite-dashboard/internal/service/email"
	"unite-dashboard/internal/service/refresh"
	"unite-dashboard/internal/upstream"
)

var (
	ErrNoteRequired = errors.New("a note is required for this action")
	ErrDateRequired = errors.New("a rescheduled date is required")
)

// Input is one mutating decision to dispatch upstream.
type Input struct {
	Action          domain.Action
	Note            string
	RescheduledDate *time.Time
}

// Result reports how the dispatch concluded. State is always
// DispatchConfirmed on success; Recovered marks a success observed by
// verification after the original call timed out, and ShortCircuit marks a
// synthetic success for a request already in the expected terminal state.
type Result struct {
	State        domain.DispatchState `json:"state"`
	Recovered    bool                 `json:"recovered"`
	ShortCircuit bool                 `json:"short_circuit"`
	Attempts     int                  `json:"attempts"`
}

type Service interface {
	Do(ctx context.Context, viewer domain.Viewer, token string, req *domain.Request, input Input) (*Result, error)
}

type service struct {
	api       upstream.Client
	cacheSvc  cache.Store
	refresher refresh.Service
	journal   repository.JournalRepository
	emailSvc  email.Service
	cfg       *config.Config
	logger    *zap.Logger
}

func NewService(
	api upstream.Client,
	cacheSvc cache.Store,
	refresher refresh.Service,
	journal repository.JournalRepository,
	emailSvc email.Service,
	cfg *config.Config,
	logger *zap.Logger,
) Service {
	return &service{
		api:       api,
		cacheSvc:  cacheSvc,
		refresher: refresher,
		journal:   journal,
		emailSvc:  emailSvc,
		cfg:       cfg,
		logger:    logger,
	}
}

func (s *service) Do(ctx context.Context, viewer domain.Viewer, token string, req *domain.Request, input Input) (*Result, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	expected := expectedStatus(input.Action, viewer)

	// A request already in the action's terminal state short-circuits to a
	// success-shaped result with no upstream call. Repeating accept on an
	// approved request must stay a no-op. Delete is exempt: Cancelled is its
	// precondition, not its terminal state, so it always goes upstream.
	if expected != "" && input.Action != domain.ActionDelete && statusSatisfies(req, expected) {
		s.logger.Debug("action short-circuited, request already in expected state",
			zap.String("request_id", req.ID), zap.String("action", string(input.Action)))
		return &Result{State: domain.DispatchConfirmed, ShortCircuit: true}, nil
	}

	entry := s.journalEntry(req, viewer, input.Action)

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.UpstreamTimeout)
	defer cancel()

	var err error
	if input.Action == domain.ActionDelete {
		err = s.api.DeleteRequest(callCtx, token, req.ID)
	} else {
		err = s.api.SubmitAction(callCtx, token, req.ID, upstream.ActionInput{
			Action:          input.Action,
			Note:            input.Note,
			RescheduledDate: input.RescheduledDate,
			Role:            viewer.Role,
		})
	}

	if err == nil {
		s.settle(ctx, token, entry, req, viewer, input, domain.DispatchConfirmed, 0, false, nil)
		return &Result{State: domain.DispatchConfirmed}, nil
	}

	if upstream.IsTimeout(err) && expected != "" {
		return s.verify(ctx, token, entry, req, viewer, input, expected, err)
	}

	msg := err.Error()
	s.settle(ctx, token, entry, req, viewer, input, domain.DispatchFailed, 0, false, &msg)
	return nil, err
}

// verify polls the request after a timed-out dispatch. The upstream may
// well have completed the mutation after the client stopped waiting, so
// the timeout is only surfaced once every poll fails to observe the
// expected state.
func (s *service) verify(ctx context.Context, token string, entry *domain.ActionJournalEntry, req *domain.Request, viewer domain.Viewer, input Input, expected domain.RequestStatus, timeoutErr error) (*Result, error) {
	s.updateJournal(ctx, entry, domain.DispatchTimedOut, 0, false, nil)
	s.logger.Warn("dispatch timed out, verifying outcome",
		zap.String("request_id", req.ID),
		zap.String("action", string(input.Action)),
		zap.Int("attempts", s.cfg.VerifyAttempts))
	s.updateJournal(ctx, entry, domain.DispatchVerifying, 0, false, nil)

	for attempt := 1; attempt <= s.cfg.VerifyAttempts; attempt++ {
		if err := sleepCtx(ctx, s.cfg.VerifyInterval); err != nil {
			break
		}

		polled, err := s.api.GetRequest(ctx, token, req.ID)

		if input.Action == domain.ActionDelete {
			// A delete leaves nothing to observe a status on. The record
			// being gone is the confirming observation; a still-readable
			// request (Cancelled was true before the delete) proves nothing.
			if upstream.IsNotFound(err) {
				s.logger.Info("timed-out delete confirmed by verification",
					zap.String("request_id", req.ID), zap.Int("attempt", attempt))
				s.settle(ctx, token, entry, req, viewer, input, domain.DispatchConfirmed, attempt, true, nil)
				return &Result{State: domain.DispatchConfirmed, Recovered: true, Attempts: attempt}, nil
			}
			if err != nil {
				s.logger.Debug("verification poll failed",
					zap.String("request_id", req.ID), zap.Int("attempt", attempt), zap.Error(err))
			}
			continue
		}

		if err != nil {
			s.logger.Debug("verification poll failed",
				zap.String("request_id", req.ID), zap.Int("attempt", attempt), zap.Error(err))
			continue
		}

		if statusSatisfies(polled, expected) {
			s.logger.Info("timed-out dispatch confirmed by verification",
				zap.String("request_id", req.ID),
				zap.String("action", string(input.Action)),
				zap.Int("attempt", attempt))
			s.settle(ctx, token, entry, req, viewer, input, domain.DispatchConfirmed, attempt, true, nil)
			return &Result{State: domain.DispatchConfirmed, Recovered: true, Attempts: attempt}, nil
		}
	}

	msg := timeoutErr.Error()
	s.settle(ctx, token, entry, req, viewer, input, domain.DispatchFailed, s.cfg.VerifyAttempts, false, &msg)
	return nil, fmt.Errorf("action %q on request %s timed out: %w", input.Action, req.ID, timeoutErr)
}

// settle records the final journal state and, on success, runs the
// post-mutation reconciliation: broad cache invalidation, an eager list
// re-fetch, the double refresh broadcast, and the best-effort outcome
// email.
func (s *service) settle(ctx context.Context, token string, entry *domain.ActionJournalEntry, req *domain.Request, viewer domain.Viewer, input Input, state domain.DispatchState, attempts int, recovered bool, errMsg *string) {
	s.updateJournal(ctx, entry, state, attempts, recovered, errMsg)

	if state != domain.DispatchConfirmed {
		return
	}

	// Broad invalidation over precise keys: every list variant drops.
	if err := s.cacheSvc.InvalidatePattern(ctx, "*event-requests*"); err != nil {
		s.logger.Debug("cache invalidation failed", zap.Error(err))
	}
	if err := s.cacheSvc.InvalidatePattern(ctx, "*requests*"); err != nil {
		s.logger.Debug("cache invalidation failed", zap.Error(err))
	}

	// Eager re-fetch rather than a local patch: the list is the source of
	// truth for whatever status the mutation produced.
	if _, err := s.api.ListRequests(ctx, token, domain.ListParams{}); err != nil {
		s.logger.Debug("post-mutation list re-fetch failed", zap.Error(err))
	}

	s.refresher.BroadcastAfterMutation()

	if isTerminalDecision(input.Action) && req.ContactEmail != "" {
		go func() {
			err := s.emailSvc.SendDecisionEmail(context.Background(),
				req.ContactEmail, req.ContactName, eventTitle(req), input.Action, input.Note)
			if err != nil {
				s.logger.Debug("outcome email failed", zap.String("request_id", req.ID), zap.Error(err))
			}
		}()
	}
}

func (s *service) journalEntry(req *domain.Request, viewer domain.Viewer, action domain.Action) *domain.ActionJournalEntry {
	entry := &domain.ActionJournalEntry{
		ID:        uuid.New(),
		RequestID: req.ID,
		Action:    action,
		ActorID:   viewer.ID,
		ActorRole: viewer.Role,
		State:     domain.DispatchSent,
	}
	if err := s.journal.Create(context.Background(), entry); err != nil {
		s.logger.Debug("journal write failed", zap.String("request_id", req.ID), zap.Error(err))
	}
	return entry
}

func (s *service) updateJournal(ctx context.Context, entry *domain.ActionJournalEntry, state domain.DispatchState, attempts int, recovered bool, errMsg *string) {
	entry.State = state
	entry.Attempts = attempts
	entry.Recovered = recovered
	entry.Error = errMsg
	if err := s.journal.UpdateState(ctx, entry.ID, state, attempts, recovered, errMsg); err != nil {
		s.logger.Debug("journal update failed", zap.String("journal_id", entry.ID.String()), zap.Error(err))
	}
}

func validateInput(input Input) error {
	switch input.Action {
	case domain.ActionReject, domain.ActionCancel:
		if strings.TrimSpace(input.Note) == "" {
			return ErrNoteRequired
		}
	case domain.ActionReschedule:
		if input.RescheduledDate == nil {
			return ErrDateRequired
		}
	}
	return nil
}

// expectedStatus maps an action to the terminal status it should leave the
// request in. Actions without a predictable terminal state return "" and
// are not eligible for timeout verification.
func expectedStatus(action domain.Action, viewer domain.Viewer) domain.RequestStatus {
	switch action {
	case domain.ActionAccept, domain.ActionConfirm:
		return domain.StatusApproved
	case domain.ActionReject:
		return domain.StatusRejected
	case domain.ActionCancel:
		return domain.StatusCancelled
	case domain.ActionDelete:
		// Non-empty keeps a timed-out delete eligible for verification.
		// The verifier confirms deletes by absence, never by this status.
		return domain.StatusCancelled
	case domain.ActionReschedule:
		switch {
		case viewer.IsAdmin:
			return domain.StatusRescheduledByAdmin
		case viewer.IsCoordinator():
			return domain.StatusRescheduledByCoordinator
		case viewer.IsStakeholder():
			return domain.StatusRescheduledByStakeholder
		default:
			return domain.StatusRescheduledByAdmin
		}
	default:
		return ""
	}
}

// statusSatisfies is deliberately lenient about the observed status: the
// verification polls may see either the workflow vocabulary or legacy
// free-text values.
func statusSatisfies(r *domain.Request, expected domain.RequestStatus) bool {
	if r.Status == expected {
		return true
	}
	switch expected {
	case domain.StatusApproved:
		return domain.DisplayLabel(r) == domain.LabelApproved
	case domain.StatusRejected:
		return domain.DisplayLabel(r) == domain.LabelRejected
	case domain.StatusCancelled:
		return domain.DisplayLabel(r) == domain.LabelCancelled
	default:
		return strings.Contains(strings.ToLower(string(r.Status)), "resched")
	}
}

func isTerminalDecision(action domain.Action) bool {
	switch action {
	case domain.ActionAccept, domain.ActionConfirm, domain.ActionReject, domain.ActionCancel, domain.ActionReschedule:
		return true
	default:
		return false
	}
}

func eventTitle(r *domain.Request) string {
	if r.Event != nil {
		return r.Event.Title
	}
	return ""
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
