package memory

import (
	"context"
	"sort"

	"approval-workflow/internal/entities"

	"github.com/google/uuid"
)

// ListRequestLogs returns the audit trail of a request, newest first.
func (s *Store) ListRequestLogs(_ context.Context, requestID uuid.UUID) ([]entities.RequestLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	logs := append([]entities.RequestLog(nil), s.logs[requestID]...)
	sort.SliceStable(logs, func(i, j int) bool {
		if logs[i].ActionDate.Equal(logs[j].ActionDate) {
			return logs[i].ID > logs[j].ID
		}
		return logs[i].ActionDate.After(logs[j].ActionDate)
	})
	if logs == nil {
		logs = make([]entities.RequestLog, 0)
	}
	return logs, nil
}

// LatestRequestLog returns the most recent audit entry or nil when there is none.
func (s *Store) LatestRequestLog(ctx context.Context, requestID uuid.UUID) (*entities.RequestLog, error) {
	logs, err := s.ListRequestLogs(ctx, requestID)
	if err != nil || len(logs) == 0 {
		return nil, err
	}
	return &logs[0], nil
}
