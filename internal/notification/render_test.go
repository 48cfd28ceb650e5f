package notification

import (
	"testing"
	"time"

	"approval-workflow/internal/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func testSnapshot(status entities.RequestStatus) entities.RequestSnapshot {
	approverID := int64(2)
	return entities.RequestSnapshot{
		Request: entities.ApprovalRequest{
			ID:          uuid.MustParse("8a1f7e36-6a0b-4a8e-9d8e-3c1b0d3f2a11"),
			Title:       "Laptop",
			Description: strPtr("New <b>laptop</b> for onboarding"),
			Status:      status,
			RequesterID: 1,
			ApproverID:  &approverID,
			TypeID:      1,
			CreatedAt:   time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC),
		},
		Requester: entities.User{ID: 1, FullName: "John Doe", Email: strPtr("john@example.com")},
		Approver:  &entities.User{ID: 2, FullName: "Alice Smith", Email: strPtr("alice@example.com")},
		Type:      entities.RequestType{ID: 1, Name: "Hardware"},
	}
}

func TestRenderCreated(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	msg, err := r.Render(Event{Kind: KindRequestCreated, Snapshot: testSnapshot(entities.StatusPending)})
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", msg.To)
	require.Equal(t, "Alice Smith", msg.ToName)
	require.Equal(t, "New Approval Request: Laptop", msg.Subject)
	require.Contains(t, msg.HTMLBody, "Hello Alice Smith")
	require.Contains(t, msg.HTMLBody, "John Doe")
	require.Contains(t, msg.HTMLBody, "Hardware")
	require.Contains(t, msg.HTMLBody, "2024-03-05 14:07:09")
	require.Contains(t, msg.HTMLBody, "8a1f7e36-6a0b-4a8e-9d8e-3c1b0d3f2a11")
	require.Contains(t, msg.HTMLBody, "&lt;b&gt;laptop&lt;/b&gt;")
}

func TestRenderStatusChanged(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	snap := testSnapshot(entities.StatusApproved)
	msg, err := r.Render(Event{Kind: KindStatusChanged, Snapshot: snap, Actor: snap.Approver, Comments: strPtr("looks good")})
	require.NoError(t, err)
	require.Equal(t, "john@example.com", msg.To)
	require.Equal(t, "Request Approved: Laptop", msg.Subject)
	require.Contains(t, msg.HTMLBody, "looks good")
	require.Contains(t, msg.HTMLBody, "Alice Smith")

	snap = testSnapshot(entities.StatusRejected)
	msg, err = r.Render(Event{Kind: KindStatusChanged, Snapshot: snap, Actor: snap.Approver})
	require.NoError(t, err)
	require.Equal(t, "Request Rejected: Laptop", msg.Subject)
	require.Contains(t, msg.HTMLBody, entities.NoCommentsText)
}

func TestRenderWithoutRecipient(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	snap := testSnapshot(entities.StatusPending)
	snap.Approver.Email = nil
	_, err = r.Render(Event{Kind: KindRequestCreated, Snapshot: snap})
	require.ErrorIs(t, err, ErrNoRecipient)

	snap = testSnapshot(entities.StatusPending)
	snap.Approver = nil
	_, err = r.Render(Event{Kind: KindRequestCreated, Snapshot: snap})
	require.ErrorIs(t, err, ErrNoRecipient)

	snap = testSnapshot(entities.StatusRejected)
	snap.Requester.Email = nil
	_, err = r.Render(Event{Kind: KindStatusChanged, Snapshot: snap})
	require.ErrorIs(t, err, ErrNoRecipient)
}

func TestRenderUnknownKind(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	_, err = r.Render(Event{Kind: "bogus"})
	require.Error(t, err)
}
