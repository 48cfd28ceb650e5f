package postgres

import (
	"context"
	"errors"
	"fmt"

	"approval-workflow/internal/entities"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	requestColumns     = `id, title, description, status, requester_id, approver_id, type_id, created_at, updated_at`
	insertRequestQuery = `
INSERT INTO approval_requests (id, title, description, status, requester_id, approver_id, type_id)
VALUES ($1, $2, $3, 'PENDING', $4, $5, $6)
RETURNING ` + requestColumns
	selectRequestQuery          = `SELECT ` + requestColumns + ` FROM approval_requests WHERE id = $1`
	selectRequestForUpdateQuery = selectRequestQuery + ` FOR UPDATE`
	listByRequesterQuery        = `SELECT ` + requestColumns + `
FROM approval_requests
WHERE requester_id = $1
ORDER BY created_at DESC, seq ASC`
	listByApproverQuery = `SELECT ` + requestColumns + `
FROM approval_requests
WHERE approver_id = $1
ORDER BY created_at DESC, seq ASC`
	updateStatusQuery = `
UPDATE approval_requests
SET status = $2, updated_at = NOW()
WHERE id = $1 AND status = 'PENDING'
RETURNING updated_at`
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner) (*entities.ApprovalRequest, error) {
	var r entities.ApprovalRequest
	err := row.Scan(
		&r.ID, &r.Title, &r.Description, &r.Status,
		&r.RequesterID, &r.ApproverID, &r.TypeID,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateRequest inserts a pending request and returns it with store-assigned timestamps.
func (p *Postgres) CreateRequest(ctx context.Context, req entities.ApprovalRequest) (*entities.ApprovalRequest, error) {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}

	created, err := scanRequest(p.db.QueryRow(ctx, insertRequestQuery,
		req.ID, req.Title, req.Description, req.RequesterID, req.ApproverID, req.TypeID,
	))
	if err != nil {
		p.log.Errorw("failed to insert approval request", "error", err, "request_id", req.ID)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgForeignKeyViolation:
				if pgErr.ConstraintName == "approval_requests_type_id_fkey" {
					return nil, fmt.Errorf("%w: id %d", entities.ErrRequestTypeNotFound, req.TypeID)
				}
				return nil, fmt.Errorf("%w: %s", entities.ErrUserNotFound, pgErr.ConstraintName)
			case pgUniqueViolation:
				return nil, fmt.Errorf("insert request: duplicate id %s", req.ID)
			}
		}
		return nil, fmt.Errorf("insert request: %w", err)
	}

	p.log.Debugw("approval request stored", "request_id", created.ID)
	return created, nil
}

// GetRequest returns a request by id.
func (p *Postgres) GetRequest(ctx context.Context, id uuid.UUID) (*entities.ApprovalRequest, error) {
	req, err := scanRequest(p.db.QueryRow(ctx, selectRequestQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %s", entities.ErrRequestNotFound, id)
		}
		p.log.Errorw("failed to select approval request", "error", err, "request_id", id)
		return nil, fmt.Errorf("get request: %w", err)
	}
	return req, nil
}

// ListRequestsByRequester returns requests opened by userID, newest first.
func (p *Postgres) ListRequestsByRequester(ctx context.Context, userID int64) ([]entities.ApprovalRequest, error) {
	return p.listRequests(ctx, listByRequesterQuery, userID)
}

// ListRequestsByApprover returns requests assigned to userID, newest first.
func (p *Postgres) ListRequestsByApprover(ctx context.Context, userID int64) ([]entities.ApprovalRequest, error) {
	return p.listRequests(ctx, listByApproverQuery, userID)
}

func (p *Postgres) listRequests(ctx context.Context, query string, userID int64) ([]entities.ApprovalRequest, error) {
	rows, err := p.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()

	res := make([]entities.ApprovalRequest, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			p.log.Errorw("failed to scan approval request", "error", err, "user_id", userID)
			return nil, fmt.Errorf("scan request: %w", err)
		}
		res = append(res, *req)
	}
	if err := rows.Err(); err != nil {
		p.log.Errorw("failed to iterate approval requests", "error", err, "user_id", userID)
		return nil, fmt.Errorf("iterate requests: %w", err)
	}
	return res, nil
}

// DecideRequest locks the request row, applies the decision and appends the audit entry in one transaction.
func (p *Postgres) DecideRequest(ctx context.Context, d entities.Decision) (*entities.ApprovalRequest, *entities.RequestLog, error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	req, err := scanRequest(tx.QueryRow(ctx, selectRequestForUpdateQuery, d.RequestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, fmt.Errorf("%w: id %s", entities.ErrRequestNotFound, d.RequestID)
		}
		p.log.Errorw("failed to select request for update", "error", err, "request_id", d.RequestID)
		return nil, nil, fmt.Errorf("get request: %w", err)
	}

	if err := req.Apply(d, p.now()); err != nil {
		return nil, nil, err
	}

	if err := tx.QueryRow(ctx, updateStatusQuery, d.RequestID, d.Outcome).Scan(&req.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, fmt.Errorf("%w: request %s changed concurrently", entities.ErrInvalidState, d.RequestID)
		}
		p.log.Errorw("failed to update request status", "error", err, "request_id", d.RequestID)
		return nil, nil, fmt.Errorf("update status: %w", err)
	}

	entry, err := p.appendLog(ctx, tx, d)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("commit decision: %w", err)
	}

	p.log.Debugw("request decided", "request_id", d.RequestID, "status", req.Status, "actor_id", d.ActorID)
	return req, entry, nil
}
