package postgres

import (
	"context"
	"errors"
	"fmt"

	"approval-workflow/internal/entities"

	"github.com/jackc/pgx/v5"
)

const (
	selectUserQuery  = `SELECT id, username, full_name, email FROM users WHERE id = $1`
	selectUsersQuery = `SELECT id, username, full_name, email FROM users WHERE id = ANY($1::bigint[])`
	listUsersQuery   = `SELECT id, username, full_name, email FROM users ORDER BY id`
)

// GetUser returns a user by id.
func (p *Postgres) GetUser(ctx context.Context, id int64) (*entities.User, error) {
	var u entities.User
	err := p.db.QueryRow(ctx, selectUserQuery, id).Scan(&u.ID, &u.Username, &u.FullName, &u.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %d", entities.ErrUserNotFound, id)
		}
		p.log.Errorw("failed to select user", "error", err, "user_id", id)
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// GetUsers returns the users found among ids keyed by id; missing ids are absent from the map.
func (p *Postgres) GetUsers(ctx context.Context, ids []int64) (map[int64]entities.User, error) {
	res := make(map[int64]entities.User, len(ids))
	if len(ids) == 0 {
		return res, nil
	}

	rows, err := p.db.Query(ctx, selectUsersQuery, ids)
	if err != nil {
		return nil, fmt.Errorf("get users: %w", err)
	}
	users, err := scanUsers(rows)
	if err != nil {
		p.log.Errorw("failed to scan users", "error", err)
		return nil, err
	}
	for _, u := range users {
		res[u.ID] = u
	}
	return res, nil
}

// ListUsers returns the whole directory ordered by id.
func (p *Postgres) ListUsers(ctx context.Context) ([]entities.User, error) {
	rows, err := p.db.Query(ctx, listUsersQuery)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	users, err := scanUsers(rows)
	if err != nil {
		p.log.Errorw("failed to scan users", "error", err)
		return nil, err
	}
	return users, nil
}

func scanUsers(rows pgx.Rows) ([]entities.User, error) {
	defer rows.Close()

	users := make([]entities.User, 0)
	for rows.Next() {
		var u entities.User
		if err := rows.Scan(&u.ID, &u.Username, &u.FullName, &u.Email); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}
