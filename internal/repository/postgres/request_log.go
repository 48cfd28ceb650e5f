package postgres

import (
	"context"
	"errors"
	"fmt"

	"approval-workflow/internal/entities"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	logColumns     = `id, request_id, user_id, action_taken, comments, action_date`
	insertLogQuery = `
INSERT INTO approval_history (action_taken, comments, request_id, user_id)
VALUES ($1, $2, $3, $4)
RETURNING id, action_date`
	listLogsQuery = `SELECT ` + logColumns + `
FROM approval_history
WHERE request_id = $1
ORDER BY action_date DESC, id DESC`
	latestLogQuery = listLogsQuery + ` LIMIT 1`
)

func (p *Postgres) appendLog(ctx context.Context, tx pgx.Tx, d entities.Decision) (*entities.RequestLog, error) {
	entry := entities.RequestLog{
		RequestID:   d.RequestID,
		UserID:      d.ActorID,
		ActionTaken: d.Action(),
		Comments:    d.Comments,
	}
	err := tx.QueryRow(ctx, insertLogQuery, entry.ActionTaken, entry.Comments, entry.RequestID, entry.UserID).
		Scan(&entry.ID, &entry.ActionDate)
	if err != nil {
		p.log.Errorw("failed to insert audit entry", "error", err, "request_id", d.RequestID)
		return nil, fmt.Errorf("insert audit entry: %w", err)
	}
	return &entry, nil
}

func scanLog(row rowScanner) (*entities.RequestLog, error) {
	var l entities.RequestLog
	if err := row.Scan(&l.ID, &l.RequestID, &l.UserID, &l.ActionTaken, &l.Comments, &l.ActionDate); err != nil {
		return nil, err
	}
	return &l, nil
}

// ListRequestLogs returns the audit trail of a request, newest first.
func (p *Postgres) ListRequestLogs(ctx context.Context, requestID uuid.UUID) ([]entities.RequestLog, error) {
	rows, err := p.db.Query(ctx, listLogsQuery, requestID)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	logs := make([]entities.RequestLog, 0)
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			p.log.Errorw("failed to scan audit entry", "error", err, "request_id", requestID)
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		logs = append(logs, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}
	return logs, nil
}

// LatestRequestLog returns the most recent audit entry or nil when there is none.
func (p *Postgres) LatestRequestLog(ctx context.Context, requestID uuid.UUID) (*entities.RequestLog, error) {
	l, err := scanLog(p.db.QueryRow(ctx, latestLogQuery, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		p.log.Errorw("failed to select latest audit entry", "error", err, "request_id", requestID)
		return nil, fmt.Errorf("latest audit entry: %w", err)
	}
	return l, nil
}
