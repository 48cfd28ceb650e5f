package memory

import (
	"context"
	"fmt"
	"sort"

	"approval-workflow/internal/entities"

	"github.com/google/uuid"
)

// CreateRequest stores a pending request, enforcing the same references as the database schema.
func (s *Store) CreateRequest(_ context.Context, req entities.ApprovalRequest) (*entities.ApprovalRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[req.RequesterID]; !ok {
		return nil, fmt.Errorf("%w: requester id %d", entities.ErrUserNotFound, req.RequesterID)
	}
	if req.ApproverID != nil {
		if _, ok := s.users[*req.ApproverID]; !ok {
			return nil, fmt.Errorf("%w: approver id %d", entities.ErrUserNotFound, *req.ApproverID)
		}
	}
	if _, ok := s.types[req.TypeID]; !ok {
		return nil, fmt.Errorf("%w: id %d", entities.ErrRequestTypeNotFound, req.TypeID)
	}

	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	if _, exists := s.requests[req.ID]; exists {
		return nil, fmt.Errorf("insert request: duplicate id %s", req.ID)
	}

	now := s.now()
	req.Status = entities.StatusPending
	req.CreatedAt = now
	req.UpdatedAt = now

	stored := req
	s.requests[req.ID] = &stored
	s.order = append(s.order, req.ID)

	s.log.Debugw("approval request stored", "request_id", req.ID)
	return &req, nil
}

// GetRequest returns a request by id.
func (s *Store) GetRequest(_ context.Context, id uuid.UUID) (*entities.ApprovalRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	req, ok := s.requests[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %s", entities.ErrRequestNotFound, id)
	}
	cp := *req
	return &cp, nil
}

// ListRequestsByRequester returns requests opened by userID, newest first.
func (s *Store) ListRequestsByRequester(_ context.Context, userID int64) ([]entities.ApprovalRequest, error) {
	return s.listRequests(func(r *entities.ApprovalRequest) bool {
		return r.RequesterID == userID
	}), nil
}

// ListRequestsByApprover returns requests assigned to userID, newest first.
func (s *Store) ListRequestsByApprover(_ context.Context, userID int64) ([]entities.ApprovalRequest, error) {
	return s.listRequests(func(r *entities.ApprovalRequest) bool {
		return r.ApproverID != nil && *r.ApproverID == userID
	}), nil
}

func (s *Store) listRequests(match func(*entities.ApprovalRequest) bool) []entities.ApprovalRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]entities.ApprovalRequest, 0)
	for _, id := range s.order {
		if r := s.requests[id]; match(r) {
			res = append(res, *r)
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	return res
}

// DecideRequest applies the decision and appends its audit entry under the write lock.
func (s *Store) DecideRequest(_ context.Context, d entities.Decision) (*entities.ApprovalRequest, *entities.RequestLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.requests[d.RequestID]
	if !ok {
		return nil, nil, fmt.Errorf("%w: id %s", entities.ErrRequestNotFound, d.RequestID)
	}

	next := *stored
	now := s.now()
	if err := next.Apply(d, now); err != nil {
		return nil, nil, err
	}
	*stored = next

	s.nextLogID++
	entry := entities.RequestLog{
		ID:          s.nextLogID,
		RequestID:   d.RequestID,
		UserID:      d.ActorID,
		ActionTaken: d.Action(),
		Comments:    d.Comments,
		ActionDate:  now,
	}
	s.logs[d.RequestID] = append(s.logs[d.RequestID], entry)

	s.log.Debugw("request decided", "request_id", d.RequestID, "status", next.Status, "actor_id", d.ActorID)
	return &next, &entry, nil
}
