package postgres

import (
	"context"
	"errors"
	"fmt"

	"approval-workflow/internal/entities"

	"github.com/jackc/pgx/v5"
)

const (
	selectRequestTypeQuery = `SELECT id, name, description FROM request_types WHERE id = $1`
	listRequestTypesQuery  = `SELECT id, name, description FROM request_types ORDER BY id`
)

// GetRequestType returns a catalog entry by id.
func (p *Postgres) GetRequestType(ctx context.Context, id int64) (*entities.RequestType, error) {
	var rt entities.RequestType
	err := p.db.QueryRow(ctx, selectRequestTypeQuery, id).Scan(&rt.ID, &rt.Name, &rt.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %d", entities.ErrRequestTypeNotFound, id)
		}
		p.log.Errorw("failed to select request type", "error", err, "request_type_id", id)
		return nil, fmt.Errorf("get request type: %w", err)
	}
	return &rt, nil
}

// ListRequestTypes returns the catalog ordered by id.
func (p *Postgres) ListRequestTypes(ctx context.Context) ([]entities.RequestType, error) {
	rows, err := p.db.Query(ctx, listRequestTypesQuery)
	if err != nil {
		return nil, fmt.Errorf("list request types: %w", err)
	}
	defer rows.Close()

	types := make([]entities.RequestType, 0)
	for rows.Next() {
		var rt entities.RequestType
		if err := rows.Scan(&rt.ID, &rt.Name, &rt.Description); err != nil {
			p.log.Errorw("failed to scan request type", "error", err)
			return nil, fmt.Errorf("scan request type: %w", err)
		}
		types = append(types, rt)
	}
	if err := rows.Err(); err != nil {
		p.log.Errorw("failed to iterate request types", "error", err)
		return nil, fmt.Errorf("iterate request types: %w", err)
	}
	return types, nil
}
