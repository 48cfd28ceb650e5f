package domain

import (
	"context"
	"errors"
	"fmt"

	"approval-workflow/internal/entities"

	"github.com/google/uuid"
)

const (
	opCreate  = "create"
	opApprove = "approve"
	opReject  = "reject"
)

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case entities.IsNotFound(err):
		return "not_found"
	case errors.Is(err, entities.ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, entities.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, entities.ErrInvalidArgument):
		return "invalid_argument"
	default:
		return "error"
	}
}

// CreateRequest opens a pending request and notifies its approver.
// Requester, approver and request type are resolved in that order; the first missing one is reported.
func (u *Usecase) CreateRequest(ctx context.Context, in entities.CreateRequestInput) (*entities.RequestSummary, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	res, err := u.createRequest(ctx, in)
	observe(opCreate, err)
	return res, err
}

func (u *Usecase) createRequest(ctx context.Context, in entities.CreateRequestInput) (*entities.RequestSummary, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	requester, err := u.resolveUser(ctx, "requester", in.RequesterID)
	if err != nil {
		return nil, err
	}
	approver, err := u.resolveUser(ctx, "approver", in.ApproverID)
	if err != nil {
		return nil, err
	}
	reqType, err := u.repo.GetRequestType(ctx, in.RequestTypeID)
	if err != nil {
		if entities.IsNotFound(err) {
			u.log.Warnw("request type not found", "request_type_id", in.RequestTypeID)
			return nil, fmt.Errorf("%w: request type id %d", entities.ErrRequestTypeNotFound, in.RequestTypeID)
		}
		return nil, fmt.Errorf("lookup request type: %w", err)
	}

	approverID := approver.ID
	created, err := u.repo.CreateRequest(ctx, entities.ApprovalRequest{
		ID:          uuid.New(),
		Title:       in.Title,
		Description: in.Description,
		Status:      entities.StatusPending,
		RequesterID: requester.ID,
		ApproverID:  &approverID,
		TypeID:      reqType.ID,
	})
	if err != nil {
		u.log.Errorw("failed to create request", "error", err, "requester_id", requester.ID)
		return nil, err
	}

	snap := entities.RequestSnapshot{
		Request:   *created,
		Requester: *requester,
		Approver:  approver,
		Type:      *reqType,
	}
	u.log.Infow("request created", "request_id", created.ID, "requester_id", requester.ID, "approver_id", approverID)
	u.notifier.NotifyCreated(snap)

	summary := snap.SummaryForRequester()
	return &summary, nil
}

func (u *Usecase) resolveUser(ctx context.Context, role string, id int64) (*entities.User, error) {
	user, err := u.repo.GetUser(ctx, id)
	if err != nil {
		if entities.IsNotFound(err) {
			u.log.Warnw(role+" not found", "user_id", id)
			return nil, fmt.Errorf("%w: %s id %d", entities.ErrUserNotFound, role, id)
		}
		return nil, fmt.Errorf("lookup %s: %w", role, err)
	}
	return user, nil
}

// ApproveRequest moves a pending request to APPROVED on behalf of its approver.
func (u *Usecase) ApproveRequest(ctx context.Context, requestID uuid.UUID, comments *string, approverID int64) (*entities.RequestSummary, error) {
	return u.decide(ctx, opApprove, entities.Decision{
		RequestID: requestID,
		ActorID:   approverID,
		Outcome:   entities.StatusApproved,
		Comments:  comments,
	})
}

// RejectRequest moves a pending request to REJECTED on behalf of its approver.
func (u *Usecase) RejectRequest(ctx context.Context, requestID uuid.UUID, comments *string, approverID int64) (*entities.RequestSummary, error) {
	return u.decide(ctx, opReject, entities.Decision{
		RequestID: requestID,
		ActorID:   approverID,
		Outcome:   entities.StatusRejected,
		Comments:  comments,
	})
}

func (u *Usecase) decide(ctx context.Context, op string, d entities.Decision) (*entities.RequestSummary, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	res, err := u.applyDecision(ctx, d)
	observe(op, err)
	return res, err
}

func (u *Usecase) applyDecision(ctx context.Context, d entities.Decision) (*entities.RequestSummary, error) {
	current, err := u.repo.GetRequest(ctx, d.RequestID)
	if err != nil {
		return nil, err
	}
	// Parties are resolved before the transition so a committed decision is never reported as failed.
	snap, err := u.snapshot(ctx, *current)
	if err != nil {
		return nil, err
	}

	decided, entry, err := u.repo.DecideRequest(ctx, d)
	if err != nil {
		switch {
		case errors.Is(err, entities.ErrUnauthorized):
			u.log.Warnw("user is not permitted to act on this request",
				"request_id", d.RequestID, "user_id", d.ActorID, "action", d.Action())
		case errors.Is(err, entities.ErrInvalidState):
			u.log.Warnw("request is not pending", "request_id", d.RequestID, "error", err)
		case entities.IsNotFound(err):
		default:
			u.log.Errorw("failed to decide request", "error", err, "request_id", d.RequestID)
		}
		return nil, err
	}

	snap.Request = *decided
	actor := snap.Approver
	if actor == nil || actor.ID != d.ActorID {
		if actor, err = u.repo.GetUser(ctx, d.ActorID); err != nil {
			u.log.Errorw("acting user lookup failed after decision", "error", err, "request_id", d.RequestID)
			actor = &entities.User{ID: d.ActorID}
		}
	}

	u.log.Infow("request decided",
		"request_id", decided.ID,
		"status", decided.Status,
		"actor_id", d.ActorID,
		"audit_id", entry.ID,
	)
	u.notifier.NotifyStatusChanged(snap, *actor, d.Comments)

	summary := snap.SummaryForRequester()
	return &summary, nil
}

// RequestsCreatedBy lists the user's own requests, newest first; the related user is the approver.
// An unknown user yields an empty list.
func (u *Usecase) RequestsCreatedBy(ctx context.Context, userID int64) ([]entities.RequestSummary, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	reqs, err := u.repo.ListRequestsByRequester(ctx, userID)
	if err != nil {
		return nil, err
	}
	snaps, err := u.snapshots(ctx, reqs)
	if err != nil {
		return nil, err
	}

	res := make([]entities.RequestSummary, 0, len(snaps))
	for _, s := range snaps {
		res = append(res, s.SummaryForRequester())
	}
	return res, nil
}

// RequestsAssignedTo lists requests awaiting the user's decision, newest first; the related user is the requester.
// An unknown user yields an empty list.
func (u *Usecase) RequestsAssignedTo(ctx context.Context, userID int64) ([]entities.RequestSummary, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	reqs, err := u.repo.ListRequestsByApprover(ctx, userID)
	if err != nil {
		return nil, err
	}
	snaps, err := u.snapshots(ctx, reqs)
	if err != nil {
		return nil, err
	}

	res := make([]entities.RequestSummary, 0, len(snaps))
	for _, s := range snaps {
		res = append(res, s.SummaryForApprover())
	}
	return res, nil
}

// RequestDetails returns the full view of a request with its most recent audit comment.
func (u *Usecase) RequestDetails(ctx context.Context, requestID uuid.UUID) (*entities.RequestDetails, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	req, err := u.repo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	snap, err := u.snapshot(ctx, *req)
	if err != nil {
		return nil, err
	}

	latest, err := u.repo.LatestRequestLog(ctx, requestID)
	if err != nil {
		return nil, err
	}
	var comments *string
	if latest != nil {
		comments = latest.Comments
	}

	details := snap.Details(comments)
	return &details, nil
}

func (u *Usecase) snapshot(ctx context.Context, req entities.ApprovalRequest) (entities.RequestSnapshot, error) {
	snaps, err := u.snapshots(ctx, []entities.ApprovalRequest{req})
	if err != nil {
		return entities.RequestSnapshot{}, err
	}
	return snaps[0], nil
}

// snapshots resolves parties with one batched user lookup and one lookup per distinct request type.
func (u *Usecase) snapshots(ctx context.Context, reqs []entities.ApprovalRequest) ([]entities.RequestSnapshot, error) {
	if len(reqs) == 0 {
		return []entities.RequestSnapshot{}, nil
	}

	seen := make(map[int64]struct{})
	ids := make([]int64, 0, len(reqs)*2)
	addID := func(id int64) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	for _, r := range reqs {
		addID(r.RequesterID)
		if r.ApproverID != nil {
			addID(*r.ApproverID)
		}
	}

	users, err := u.repo.GetUsers(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve users: %w", err)
	}

	types := make(map[int64]entities.RequestType)
	res := make([]entities.RequestSnapshot, 0, len(reqs))
	for _, r := range reqs {
		requester, ok := users[r.RequesterID]
		if !ok {
			return nil, fmt.Errorf("%w: requester id %d of request %s", entities.ErrUserNotFound, r.RequesterID, r.ID)
		}
		snap := entities.RequestSnapshot{Request: r, Requester: requester}

		if r.ApproverID != nil {
			if approver, ok := users[*r.ApproverID]; ok {
				snap.Approver = &approver
			}
		}

		rt, ok := types[r.TypeID]
		if !ok {
			found, err := u.repo.GetRequestType(ctx, r.TypeID)
			if err != nil {
				return nil, err
			}
			rt = *found
			types[r.TypeID] = rt
		}
		snap.Type = rt

		res = append(res, snap)
	}
	return res, nil
}
